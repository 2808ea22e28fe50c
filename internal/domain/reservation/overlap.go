package reservation

import (
	"time"

	"stayhub/internal/domain/shared/daterange"
)

// Conflicts reports whether any non-cancelled reservation intersects the
// candidate range. Pure over its inputs; cancelled reservations never block
// a stay.
func Conflicts(existing []*Reservation, candidate daterange.DateRange) bool {
	for _, r := range existing {
		if r == nil || r.Status == StatusCancelled {
			continue
		}
		if r.Range.Overlaps(candidate) {
			return true
		}
	}
	return false
}

// IsFutureObligation reports whether the reservation still binds the
// accommodation: not cancelled and starting on or after from.
func IsFutureObligation(r *Reservation, from time.Time) bool {
	if r == nil || r.Status == StatusCancelled {
		return false
	}
	return !r.Range.Start.Before(daterange.Truncate(from))
}

// CountFutureObligations applies IsFutureObligation over a loaded
// collection; the manual fallback for the optimized store count.
func CountFutureObligations(existing []*Reservation, from time.Time) int {
	count := 0
	for _, r := range existing {
		if IsFutureObligation(r, from) {
			count++
		}
	}
	return count
}
