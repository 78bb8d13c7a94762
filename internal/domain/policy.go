package domain

import "fmt"

// DuplicatePolicy decides what happens when a customer who already holds a
// reservation for a screening tries to reserve again.
type DuplicatePolicy int

const (
	// DuplicateReject refuses the second attempt with ErrDuplicateReservation.
	DuplicateReject DuplicatePolicy = iota
	// DuplicateMerge folds the requested seats into the existing reservation,
	// still bounded by the per-booking maximum and remaining capacity.
	DuplicateMerge
)

func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "reject":
		return DuplicateReject, nil
	case "merge":
		return DuplicateMerge, nil
	}
	return 0, fmt.Errorf("unknown duplicate policy %q (want reject or merge)", s)
}

func (p DuplicatePolicy) String() string {
	if p == DuplicateMerge {
		return "merge"
	}
	return "reject"
}

// Policy holds the deployment-configurable booking rules.
type Policy struct {
	// RequireRegisteredHall makes scheduling fail for unknown halls. When
	// false, unknown hall names are auto-registered with DefaultHallCapacity
	// so capacity accounting stays meaningful in label mode.
	RequireRegisteredHall bool
	DefaultHallCapacity   int

	DuplicatePolicy        DuplicatePolicy
	MaxSeatsPerReservation int
}

func DefaultPolicy() Policy {
	return Policy{
		RequireRegisteredHall:  true,
		DefaultHallCapacity:    100,
		DuplicatePolicy:        DuplicateReject,
		MaxSeatsPerReservation: 10,
	}
}
