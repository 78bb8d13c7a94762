package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrMovieNotFound        = errors.New("movie not found")
	ErrHallNotFound         = errors.New("hall not found")
	ErrScreeningNotFound    = errors.New("screening not found")
	ErrDuplicateMovie       = errors.New("a movie with this title already exists")
	ErrDuplicateHall        = errors.New("a hall with this name already exists")
	ErrDuplicateReservation = errors.New("customer already holds a reservation for this screening")
	ErrInvalidInput         = errors.New("invalid input")
	ErrBusy                 = errors.New("resource is busy, try again")
)

// SchedulingConflictError reports that a hall/slot is already taken, naming
// the movie that holds it.
type SchedulingConflictError struct {
	Hall      string
	Date      time.Time
	StartTime string
	Movie     string
}

func (e SchedulingConflictError) Error() string {
	return fmt.Sprintf("hall %q is already booked at %s %s for movie %q",
		e.Hall, e.Date.Format("2006-01-02"), e.StartTime, e.Movie)
}

// InsufficientCapacityError reports a booking that would overrun the
// screening's remaining seats.
type InsufficientCapacityError struct {
	Requested int
	Available int
}

func (e InsufficientCapacityError) Error() string {
	return fmt.Sprintf("not enough seats: requested %d, %d available", e.Requested, e.Available)
}

// PerBookingLimitError reports a seat count outside the allowed per-booking
// range.
type PerBookingLimitError struct {
	Requested int
	Max       int
}

func (e PerBookingLimitError) Error() string {
	return fmt.Sprintf("seat count %d outside allowed range 1..%d per booking", e.Requested, e.Max)
}
