package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/odeonlabs/theater-reservation-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockScreeningRepo struct {
	mock.Mock
	domain.ScreeningRepository
}

func (m *MockScreeningRepo) Create(ctx context.Context, screening *domain.Screening) error {
	args := m.Called(ctx, screening)
	return args.Error(0)
}

func (m *MockScreeningRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Screening, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Screening), args.Error(1)
}

func (m *MockScreeningRepo) FindByMovieAndSlot(
	ctx context.Context,
	movieTitle string,
	date time.Time,
	startTime string) (*domain.Screening, error) {

	args := m.Called(ctx, movieTitle, date, startTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Screening), args.Error(1)
}

func (m *MockScreeningRepo) GetAllByDate(ctx context.Context, date time.Time) ([]*domain.Screening, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Screening), args.Error(1)
}
