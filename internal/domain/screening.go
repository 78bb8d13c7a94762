package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Screening is a scheduled showing of a movie in a hall at a given date and
// time. A hall hosts at most one screening per (date, time) slot.
// SeatsRemaining starts at the hall's capacity and is decremented only by the
// reservation ledger; it never goes below zero.
type Screening struct {
	ID             uuid.UUID
	MovieID        int
	HallID         int
	ShowDate       time.Time // date component only
	StartTime      string    // 24-hour clock, "HH:MM"
	SeatsRemaining int

	// Denormalized for display; populated on reads that join reference data.
	MovieTitle   string
	HallName     string
	HallCapacity int
}

type ScreeningRepository interface {
	// Create inserts the screening, detecting hall/slot conflicts atomically
	// with the insert. A conflict surfaces as SchedulingConflictError naming
	// the movie already holding the slot.
	Create(ctx context.Context, screening *Screening) error
	GetByID(ctx context.Context, id uuid.UUID) (*Screening, error)
	FindByMovieAndSlot(ctx context.Context, movieTitle string, date time.Time, startTime string) (*Screening, error)
	GetAllByDate(ctx context.Context, date time.Time) ([]*Screening, error)
}

// ScheduleEntry is one row of the daily schedule projection.
type ScheduleEntry struct {
	MovieTitle     string `json:"movieTitle"`
	HallName       string `json:"hallName"`
	StartTime      string `json:"startTime"`
	SeatsRemaining int    `json:"seatsRemaining"`
}

type ScheduleRepository interface {
	DailySchedule(ctx context.Context, date time.Time) ([]ScheduleEntry, error)
}
