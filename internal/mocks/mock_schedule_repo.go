package mocks

import (
	"context"
	"time"

	"github.com/odeonlabs/theater-reservation-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockScheduleRepo struct {
	mock.Mock
	domain.ScheduleRepository
}

func (m *MockScheduleRepo) DailySchedule(ctx context.Context, date time.Time) ([]domain.ScheduleEntry, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduleEntry), args.Error(1)
}
