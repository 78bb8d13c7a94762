package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/odeonlabs/theater-reservation-system/internal/domain"
)

type PostgresScreeningRepository struct {
	db *pgxpool.Pool
}

func NewPostgresScreeningRepository(db *pgxpool.Pool) *PostgresScreeningRepository {
	return &PostgresScreeningRepository{
		db: db,
	}
}

// Create relies on the unique index over (hall_id, show_date, start_time), so
// the conflict check and the insert are a single atomic statement: two
// concurrent calls for the same slot cannot both pass.
func (p *PostgresScreeningRepository) Create(ctx context.Context, screening *domain.Screening) error {
	query := `
		INSERT INTO screenings (id, movie_id, hall_id, show_date, start_time, seats_remaining)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := p.db.Exec(
		ctx,
		query,
		screening.ID,
		screening.MovieID,
		screening.HallID,
		screening.ShowDate,
		screening.StartTime,
		screening.SeatsRemaining,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return p.schedulingConflict(ctx, screening)
		}

		return err
	}

	return nil
}

// schedulingConflict names the movie sitting in the contested slot. Screenings
// are never deleted, so the conflicting row is still there to read.
func (p *PostgresScreeningRepository) schedulingConflict(ctx context.Context, screening *domain.Screening) error {
	query := `
		SELECT m.title
		FROM screenings sc
		JOIN movies m ON sc.movie_id = m.id
		WHERE sc.hall_id = $1 AND sc.show_date = $2 AND sc.start_time = $3
	`

	var conflictingMovie string

	err := p.db.QueryRow(ctx, query, screening.HallID, screening.ShowDate, screening.StartTime).
		Scan(&conflictingMovie)
	if err != nil {
		return err
	}

	return domain.SchedulingConflictError{
		Hall:      screening.HallName,
		Date:      screening.ShowDate,
		StartTime: screening.StartTime,
		Movie:     conflictingMovie,
	}
}

func (p *PostgresScreeningRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Screening, error) {
	query := `
		SELECT sc.id, sc.movie_id, sc.hall_id, sc.show_date, sc.start_time, sc.seats_remaining,
			m.title, h.name, h.capacity
		FROM screenings sc
		JOIN movies m ON sc.movie_id = m.id
		JOIN halls h ON sc.hall_id = h.id
		WHERE sc.id = $1
	`

	return p.scanScreening(p.db.QueryRow(ctx, query, id))
}

func (p *PostgresScreeningRepository) FindByMovieAndSlot(
	ctx context.Context,
	movieTitle string,
	date time.Time,
	startTime string) (*domain.Screening, error) {

	query := `
		SELECT sc.id, sc.movie_id, sc.hall_id, sc.show_date, sc.start_time, sc.seats_remaining,
			m.title, h.name, h.capacity
		FROM screenings sc
		JOIN movies m ON sc.movie_id = m.id
		JOIN halls h ON sc.hall_id = h.id
		WHERE m.title = $1 AND sc.show_date = $2 AND sc.start_time = $3
		ORDER BY h.name
		LIMIT 1
	`

	return p.scanScreening(p.db.QueryRow(ctx, query, movieTitle, date, startTime))
}

func (p *PostgresScreeningRepository) scanScreening(row pgx.Row) (*domain.Screening, error) {
	var screening domain.Screening

	err := row.Scan(
		&screening.ID,
		&screening.MovieID,
		&screening.HallID,
		&screening.ShowDate,
		&screening.StartTime,
		&screening.SeatsRemaining,
		&screening.MovieTitle,
		&screening.HallName,
		&screening.HallCapacity,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrScreeningNotFound
		}

		return nil, err
	}

	return &screening, nil
}

func (p *PostgresScreeningRepository) GetAllByDate(ctx context.Context, date time.Time) ([]*domain.Screening, error) {
	query := `
		SELECT sc.id, sc.movie_id, sc.hall_id, sc.show_date, sc.start_time, sc.seats_remaining,
			m.title, h.name, h.capacity
		FROM screenings sc
		JOIN movies m ON sc.movie_id = m.id
		JOIN halls h ON sc.hall_id = h.id
		WHERE sc.show_date = $1
		ORDER BY sc.start_time, h.name
	`

	rows, err := p.db.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	screenings := make([]*domain.Screening, 0)

	for rows.Next() {
		var screening domain.Screening

		err := rows.Scan(
			&screening.ID,
			&screening.MovieID,
			&screening.HallID,
			&screening.ShowDate,
			&screening.StartTime,
			&screening.SeatsRemaining,
			&screening.MovieTitle,
			&screening.HallName,
			&screening.HallCapacity,
		)
		if err != nil {
			return nil, err
		}

		screenings = append(screenings, &screening)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return screenings, nil
}
