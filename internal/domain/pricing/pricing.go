package pricing

import (
	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/fault"
	"stayhub/internal/domain/shared/money"
)

var ErrTooFewNights = fault.New(fault.Validation, "pricing: stay must cover at least one night")

// Quote is the price derivation cached into a reservation at booking time.
// Previews recompute it through the same function, so the preview and the
// stored amount can never diverge.
type Quote struct {
	Nights  int
	Nightly money.Money
	Total   money.Money
}

// ForStay derives nights and total from a nightly rate and a stay range
// using exact integer arithmetic.
func ForStay(nightly money.Money, dr daterange.DateRange) (Quote, error) {
	nights := dr.Nights()
	if nights < 1 {
		return Quote{}, ErrTooFewNights
	}
	return Quote{
		Nights:  nights,
		Nightly: nightly,
		Total:   nightly.Multiply(int64(nights)),
	}, nil
}
