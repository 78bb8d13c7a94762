package domain

import "context"

// Hall is a physical venue with a fixed seat capacity. Halls are usually
// seeded at deployment time but can also be registered dynamically.
type Hall struct {
	ID       int
	Name     string
	Capacity int
}

type HallRepository interface {
	Create(ctx context.Context, hall *Hall) error
	GetByName(ctx context.Context, name string) (*Hall, error)
	GetAll(ctx context.Context) ([]*Hall, error)
}
