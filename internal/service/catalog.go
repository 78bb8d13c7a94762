// Package service implements the reservation and scheduling engine: the
// catalog of movies and halls, the screening scheduler, the reservation
// ledger and the read-only query projections. The presentation layer calls
// these with already-parsed, typed arguments; all expected failures come back
// as domain error values.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/odeonlabs/theater-reservation-system/internal/domain"
)

// Catalog owns movie and hall reference data.
type Catalog struct {
	movies domain.MovieRepository
	halls  domain.HallRepository
}

func NewCatalog(movies domain.MovieRepository, halls domain.HallRepository) *Catalog {
	return &Catalog{
		movies: movies,
		halls:  halls,
	}
}

// AddMovie registers a movie. Titles are unique and case-sensitive; adding an
// existing title fails with domain.ErrDuplicateMovie.
func (c *Catalog) AddMovie(ctx context.Context, title string, duration int) (*domain.Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: movie title is required", domain.ErrInvalidInput)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: movie duration must be a positive number of minutes", domain.ErrInvalidInput)
	}

	movie := &domain.Movie{
		Title:    title,
		Duration: duration,
	}

	if err := c.movies.Create(ctx, movie); err != nil {
		return nil, err
	}

	return movie, nil
}

func (c *Catalog) GetMovie(ctx context.Context, title string) (*domain.Movie, error) {
	return c.movies.GetByTitle(ctx, title)
}

func (c *Catalog) ListMovies(ctx context.Context) ([]*domain.Movie, error) {
	return c.movies.GetAll(ctx)
}

// AddHall registers a hall. Names are unique; adding an existing name fails
// with domain.ErrDuplicateHall.
func (c *Catalog) AddHall(ctx context.Context, name string, capacity int) (*domain.Hall, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: hall name is required", domain.ErrInvalidInput)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: hall capacity must be a positive number of seats", domain.ErrInvalidInput)
	}

	hall := &domain.Hall{
		Name:     name,
		Capacity: capacity,
	}

	if err := c.halls.Create(ctx, hall); err != nil {
		return nil, err
	}

	return hall, nil
}

func (c *Catalog) GetHall(ctx context.Context, name string) (*domain.Hall, error) {
	return c.halls.GetByName(ctx, name)
}

func (c *Catalog) ListHalls(ctx context.Context) ([]*domain.Hall, error) {
	return c.halls.GetAll(ctx)
}
