package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/odeonlabs/theater-reservation-system/internal/domain"
)

type PostgresScheduleRepository struct {
	db *pgxpool.Pool
}

func NewPostgresScheduleRepository(db *pgxpool.Pool) *PostgresScheduleRepository {
	return &PostgresScheduleRepository{
		db: db,
	}
}

func (p *PostgresScheduleRepository) DailySchedule(ctx context.Context, date time.Time) ([]domain.ScheduleEntry, error) {
	query := `
		SELECT m.title, h.name, sc.start_time, sc.seats_remaining
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

	entries := make([]domain.ScheduleEntry, 0)

	for rows.Next() {
		var entry domain.ScheduleEntry

		err := rows.Scan(&entry.MovieTitle, &entry.HallName, &entry.StartTime, &entry.SeatsRemaining)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
