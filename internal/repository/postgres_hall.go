package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/odeonlabs/theater-reservation-system/internal/domain"
)

type PostgresHallRepository struct {
	db *pgxpool.Pool
}

func NewPostgresHallRepository(db *pgxpool.Pool) *PostgresHallRepository {
	return &PostgresHallRepository{
		db: db,
	}
}

func (p *PostgresHallRepository) Create(ctx context.Context, hall *domain.Hall) error {
	query := `
		INSERT INTO halls (name, capacity)
		VALUES ($1, $2)
		RETURNING id
	`

	err := p.db.QueryRow(ctx, query, hall.Name, hall.Capacity).Scan(&hall.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateHall
		}

		return err
	}

	return nil
}

func (p *PostgresHallRepository) GetByName(ctx context.Context, name string) (*domain.Hall, error) {
	query := `
		SELECT id, name, capacity
		FROM halls
		WHERE name = $1
	`

	var hall domain.Hall

	err := p.db.QueryRow(ctx, query, name).Scan(&hall.ID, &hall.Name, &hall.Capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHallNotFound
		}

		return nil, err
	}

	return &hall, nil
}

func (p *PostgresHallRepository) GetAll(ctx context.Context) ([]*domain.Hall, error) {
	query := `
		SELECT id, name, capacity
		FROM halls
		ORDER BY name
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	halls := make([]*domain.Hall, 0)

	for rows.Next() {
		var hall domain.Hall

		err := rows.Scan(&hall.ID, &hall.Name, &hall.Capacity)
		if err != nil {
			return nil, err
		}

		halls = append(halls, &hall)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return halls, nil
}
