package domain

import "context"

// Movie is reference data identified by its title. Titles are unique and
// case-sensitive; a movie is immutable once created.
type Movie struct {
	ID       int
	Title    string
	Duration int // minutes
}

type MovieRepository interface {
	Create(ctx context.Context, movie *Movie) error
	GetByTitle(ctx context.Context, title string) (*Movie, error)
	GetAll(ctx context.Context) ([]*Movie, error)
}
