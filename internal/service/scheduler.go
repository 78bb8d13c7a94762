package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/odeonlabs/theater-reservation-system/internal/domain"
)

// Scheduler creates screenings, keeping each hall/date/time slot unique. It
// resolves movies and halls through the Catalog; the conflict check itself is
// atomic with the insert in the screening repository.
type Scheduler struct {
	screenings domain.ScreeningRepository
	catalog    *Catalog
	policy     domain.Policy
}

func NewScheduler(screenings domain.ScreeningRepository, catalog *Catalog, policy domain.Policy) *Scheduler {
	return &Scheduler{
		screenings: screenings,
		catalog:    catalog,
		policy:     policy,
	}
}

func (s *Scheduler) AddScreening(
	ctx context.Context,
	movieTitle string,
	hallName string,
	date time.Time,
	startTime string) (*domain.Screening, error) {

	hallName = strings.TrimSpace(hallName)
	if hallName == "" {
		return nil, fmt.Errorf("%w: hall name is required", domain.ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: screening date is required", domain.ErrInvalidInput)
	}
	if !validClock(startTime) {
		return nil, fmt.Errorf("%w: screening time must be a 24-hour HH:MM value", domain.ErrInvalidInput)
	}

	movie, err := s.catalog.GetMovie(ctx, movieTitle)
	if err != nil {
		return nil, err
	}

	hall, err := s.resolveHall(ctx, hallName)
	if err != nil {
		return nil, err
	}

	screening := &domain.Screening{
		ID:             uuid.New(),
		MovieID:        movie.ID,
		HallID:         hall.ID,
		ShowDate:       truncateToDate(date),
		StartTime:      startTime,
		SeatsRemaining: hall.Capacity,
		MovieTitle:     movie.Title,
		HallName:       hall.Name,
		HallCapacity:   hall.Capacity,
	}

	if err := s.screenings.Create(ctx, screening); err != nil {
		return nil, err
	}

	return screening, nil
}

// resolveHall looks the hall up in the catalog. With RequireRegisteredHall
// disabled, an unknown hall name is treated as a label and auto-registered at
// the default capacity; a concurrent auto-register of the same name is folded
// into a plain lookup.
func (s *Scheduler) resolveHall(ctx context.Context, hallName string) (*domain.Hall, error) {
	hall, err := s.catalog.GetHall(ctx, hallName)
	if err == nil {
		return hall, nil
	}

	if !errors.Is(err, domain.ErrHallNotFound) || s.policy.RequireRegisteredHall {
		return nil, err
	}

	hall, err = s.catalog.AddHall(ctx, hallName, s.policy.DefaultHallCapacity)
	if errors.Is(err, domain.ErrDuplicateHall) {
		return s.catalog.GetHall(ctx, hallName)
	}

	return hall, err
}

func (s *Scheduler) GetScreening(ctx context.Context, id uuid.UUID) (*domain.Screening, error) {
	return s.screenings.GetByID(ctx, id)
}

func (s *Scheduler) FindScreening(
	ctx context.Context,
	movieTitle string,
	date time.Time,
	startTime string) (*domain.Screening, error) {

	return s.screenings.FindByMovieAndSlot(ctx, movieTitle, truncateToDate(date), startTime)
}

// ListScreeningsForDate returns the screenings of a day sorted by start time.
func (s *Scheduler) ListScreeningsForDate(ctx context.Context, date time.Time) ([]*domain.Screening, error) {
	return s.screenings.GetAllByDate(ctx, truncateToDate(date))
}

// validClock accepts zero-padded 24-hour "HH:MM" values. The presentation
// layer validates formats up front; this is the core's defensive re-check.
func validClock(clock string) bool {
	if len(clock) != 5 || clock[2] != ':' {
		return false
	}

	_, err := time.Parse("15:04", clock)

	return err == nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
