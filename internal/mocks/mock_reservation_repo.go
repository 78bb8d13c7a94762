package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/odeonlabs/theater-reservation-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockReservationRepo struct {
	mock.Mock
	domain.ReservationRepository
}

func (m *MockReservationRepo) Reserve(
	ctx context.Context,
	screeningID uuid.UUID,
	customerName string,
	seats int,
	policy domain.Policy) (*domain.Reservation, error) {

	args := m.Called(ctx, screeningID, customerName, seats, policy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepo) GetAll(ctx context.Context) ([]domain.RosterEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RosterEntry), args.Error(1)
}

func (m *MockReservationRepo) GetAllByScreening(
	ctx context.Context,
	screeningID uuid.UUID) ([]*domain.Reservation, error) {

	args := m.Called(ctx, screeningID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}
