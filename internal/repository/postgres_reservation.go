package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/odeonlabs/theater-reservation-system/internal/domain"
)

type PostgresReservationRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReservationRepository(db *pgxpool.Pool) *PostgresReservationRepository {
	return &PostgresReservationRepository{
		db: db,
	}
}

// Reserve runs the whole capacity check, decrement and insert as one
// transaction holding a row lock on the screening, so concurrent bookings for
// the same screening serialize and seats_remaining can never go negative.
// Waiting longer than lockTimeout for the row surfaces domain.ErrBusy.
func (p *PostgresReservationRepository) Reserve(
	ctx context.Context,
	screeningID uuid.UUID,
	customerName string,
	seats int,
	policy domain.Policy) (*domain.Reservation, error) {

	var reservation *domain.Reservation

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%s'", lockTimeout))
		if err != nil {
			return err
		}

		var remaining int

		err = tx.QueryRow(ctx,
			`SELECT seats_remaining FROM screenings WHERE id = $1 FOR UPDATE`,
			screeningID,
		).Scan(&remaining)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrScreeningNotFound
			}
			if isLockContention(err) {
				return domain.ErrBusy
			}

			return err
		}

		existing, err := getReservationForUpdate(ctx, tx, screeningID, customerName)
		if err != nil {
			return err
		}

		if existing != nil {
			if policy.DuplicatePolicy == domain.DuplicateReject {
				return domain.ErrDuplicateReservation
			}

			reservation, err = mergeReservation(ctx, tx, existing, seats, remaining, policy)
			return err
		}

		if seats > remaining {
			return domain.InsufficientCapacityError{Requested: seats, Available: remaining}
		}

		if err = decrementSeats(ctx, tx, screeningID, seats); err != nil {
			return err
		}

		created := domain.Reservation{
			ID:             uuid.New(),
			ScreeningID:    screeningID,
			CustomerName:   customerName,
			Seats:          seats,
			Status:         domain.ReservationStatusConfirmed,
			SeatsRemaining: remaining - seats,
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO reservations (id, screening_id, customer_name, seats, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at
		`, created.ID, created.ScreeningID, created.CustomerName, created.Seats, created.Status).
			Scan(&created.CreatedAt)

		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateReservation
			}

			return err
		}

		reservation = &created

		return nil
	})

	if err != nil {
		if isLockContention(err) {
			return nil, domain.ErrBusy
		}

		return nil, err
	}

	return reservation, nil
}

func getReservationForUpdate(
	ctx context.Context,
	tx pgx.Tx,
	screeningID uuid.UUID,
	customerName string) (*domain.Reservation, error) {

	var existing domain.Reservation

	err := tx.QueryRow(ctx, `
		SELECT id, screening_id, customer_name, seats, status, created_at
		FROM reservations
		WHERE screening_id = $1 AND customer_name = $2
	`, screeningID, customerName).Scan(
		&existing.ID,
		&existing.ScreeningID,
		&existing.CustomerName,
		&existing.Seats,
		&existing.Status,
		&existing.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &existing, nil
}

// mergeReservation folds the requested seats into the customer's existing
// reservation under the duplicate-merge policy. The combined total still obeys
// the per-booking maximum and the screening's remaining capacity.
func mergeReservation(
	ctx context.Context,
	tx pgx.Tx,
	existing *domain.Reservation,
	seats int,
	remaining int,
	policy domain.Policy) (*domain.Reservation, error) {

	total := existing.Seats + seats
	if total > policy.MaxSeatsPerReservation {
		return nil, domain.PerBookingLimitError{Requested: total, Max: policy.MaxSeatsPerReservation}
	}

	if seats > remaining {
		return nil, domain.InsufficientCapacityError{Requested: seats, Available: remaining}
	}

	_, err := tx.Exec(ctx,
		`UPDATE reservations SET seats = $1 WHERE id = $2`,
		total, existing.ID,
	)
	if err != nil {
		return nil, err
	}

	if err = decrementSeats(ctx, tx, existing.ScreeningID, seats); err != nil {
		return nil, err
	}

	merged := *existing
	merged.Seats = total
	merged.SeatsRemaining = remaining - seats

	return &merged, nil
}

func decrementSeats(ctx context.Context, tx pgx.Tx, screeningID uuid.UUID, seats int) error {
	_, err := tx.Exec(ctx,
		`UPDATE screenings SET seats_remaining = seats_remaining - $1 WHERE id = $2`,
		seats, screeningID,
	)

	return err
}

func (p *PostgresReservationRepository) GetAll(ctx context.Context) ([]domain.RosterEntry, error) {
	query := `
		SELECT m.title, h.name, sc.show_date, sc.start_time, r.customer_name, r.seats
		FROM reservations r
		JOIN screenings sc ON r.screening_id = sc.id
		JOIN movies m ON sc.movie_id = m.id
		JOIN halls h ON sc.hall_id = h.id
		ORDER BY sc.show_date, sc.start_time, m.title, r.customer_name
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roster := make([]domain.RosterEntry, 0)

	for rows.Next() {
		var entry domain.RosterEntry

		err := rows.Scan(
			&entry.MovieTitle,
			&entry.HallName,
			&entry.ShowDate,
			&entry.StartTime,
			&entry.CustomerName,
			&entry.Seats,
		)
		if err != nil {
			return nil, err
		}

		roster = append(roster, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return roster, nil
}

func (p *PostgresReservationRepository) GetAllByScreening(
	ctx context.Context,
	screeningID uuid.UUID) ([]*domain.Reservation, error) {

	query := `
		SELECT id, screening_id, customer_name, seats, status, created_at
		FROM reservations
		WHERE screening_id = $1
		ORDER BY created_at
	`

	rows, err := p.db.Query(ctx, query, screeningID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var reservation domain.Reservation

		err := rows.Scan(
			&reservation.ID,
			&reservation.ScreeningID,
			&reservation.CustomerName,
			&reservation.Seats,
			&reservation.Status,
			&reservation.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		reservations = append(reservations, &reservation)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return reservations, nil
}
