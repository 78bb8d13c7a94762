package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReservationStatusConfirmed is the only status a reservation can hold today.
// The column exists so a cancelled state can be added without schema changes.
const ReservationStatusConfirmed = "confirmed"

// Reservation is a customer's claim on a number of seats for one screening.
// A customer holds at most one reservation per screening.
type Reservation struct {
	ID           uuid.UUID
	ScreeningID  uuid.UUID
	CustomerName string
	Seats        int
	Status       string
	CreatedAt    time.Time

	// SeatsRemaining is the screening's remaining capacity right after this
	// booking, for the caller to display.
	SeatsRemaining int
}

// RosterEntry is one row of the full reservation listing.
type RosterEntry struct {
	MovieTitle   string    `json:"movieTitle"`
	HallName     string    `json:"hallName"`
	ShowDate     time.Time `json:"showDate"`
	StartTime    string    `json:"startTime"`
	CustomerName string    `json:"customerName"`
	Seats        int       `json:"seats"`
}

type ReservationRepository interface {
	// Reserve checks remaining capacity, decrements it and inserts the
	// reservation row as one atomic unit. The duplicate-customer guard is
	// applied according to policy inside the same transaction.
	Reserve(ctx context.Context, screeningID uuid.UUID, customerName string, seats int, policy Policy) (*Reservation, error)
	GetAll(ctx context.Context) ([]RosterEntry, error)
	GetAllByScreening(ctx context.Context, screeningID uuid.UUID) ([]*Reservation, error)
}
