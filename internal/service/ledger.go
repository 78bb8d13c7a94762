package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/odeonlabs/theater-reservation-system/internal/domain"
)

// Ledger creates and reads reservations. Capacity enforcement and the
// duplicate-customer guard are concurrency-safe: the check-then-act sequence
// runs inside one repository transaction, so the ledger only validates the
// request shape and surfaces domain errors untouched.
type Ledger struct {
	reservations domain.ReservationRepository
	policy       domain.Policy
}

func NewLedger(reservations domain.ReservationRepository, policy domain.Policy) *Ledger {
	return &Ledger{
		reservations: reservations,
		policy:       policy,
	}
}

// Reserve books seats on a screening for a customer. The returned reservation
// carries the screening's remaining seat count after the booking.
func (l *Ledger) Reserve(
	ctx context.Context,
	screeningID uuid.UUID,
	customerName string,
	seats int) (*domain.Reservation, error) {

	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, fmt.Errorf("%w: customer name is required", domain.ErrInvalidInput)
	}

	if seats < 1 || seats > l.policy.MaxSeatsPerReservation {
		return nil, domain.PerBookingLimitError{
			Requested: seats,
			Max:       l.policy.MaxSeatsPerReservation,
		}
	}

	return l.reservations.Reserve(ctx, screeningID, customerName, seats, l.policy)
}

// ListReservations returns the full roster ordered by date, time, movie and
// customer.
func (l *Ledger) ListReservations(ctx context.Context) ([]domain.RosterEntry, error) {
	return l.reservations.GetAll(ctx)
}

func (l *Ledger) ListReservationsForScreening(ctx context.Context, screeningID uuid.UUID) ([]*domain.Reservation, error) {
	return l.reservations.GetAllByScreening(ctx, screeningID)
}
