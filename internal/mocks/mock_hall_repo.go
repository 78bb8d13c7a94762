package mocks

import (
	"context"

	"github.com/odeonlabs/theater-reservation-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockHallRepo struct {
	mock.Mock
	domain.HallRepository
}

func (m *MockHallRepo) Create(ctx context.Context, hall *domain.Hall) error {
	args := m.Called(ctx, hall)
	return args.Error(0)
}

func (m *MockHallRepo) GetByName(ctx context.Context, name string) (*domain.Hall, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hall), args.Error(1)
}

func (m *MockHallRepo) GetAll(ctx context.Context) ([]*domain.Hall, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Hall), args.Error(1)
}
