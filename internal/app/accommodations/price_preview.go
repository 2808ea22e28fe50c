package accommodations

import (
	"context"
	"time"

	"stayhub/internal/app/queries"
	"stayhub/internal/app/support"
	"stayhub/internal/app/uow"
	domainaccommodation "stayhub/internal/domain/accommodation"
	domainpricing "stayhub/internal/domain/pricing"
	domainreservation "stayhub/internal/domain/reservation"
	domainrange "stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/fault"
)

const pricePreviewKey = "accommodations.price_preview"

type PricePreviewQuery struct {
	AccommodationID string
	Start           time.Time
	End             time.Time
	Guests          int
}

func (q PricePreviewQuery) Key() string { return pricePreviewKey }

type PricePreviewResult struct {
	Nights       int    `json:"nights"`
	NightlyCents int64  `json:"nightly_cents"`
	TotalCents   int64  `json:"total_cents"`
	Currency     string `json:"currency"`
}

// PricePreviewHandler recomputes exactly the quote a booking would cache,
// so a preview can never disagree with the stored price.
type PricePreviewHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *PricePreviewHandler) Handle(ctx context.Context, q PricePreviewQuery) (PricePreviewResult, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return PricePreviewResult{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	acc, err := unit.Accommodations().ByID(execCtx, domainaccommodation.ID(q.AccommodationID))
	if err != nil {
		if fault.IsKind(err, fault.NotFound) {
			return PricePreviewResult{}, domainaccommodation.ErrNotFound
		}
		return PricePreviewResult{}, errAccommodationLookup.WithCause(err)
	}
	if acc.Deleted {
		return PricePreviewResult{}, domainaccommodation.ErrNotFound
	}
	if q.Guests > acc.MaxGuests {
		return PricePreviewResult{}, fault.New(fault.Validation, "accommodations: guest count exceeds capacity")
	}

	dr, err := domainrange.New(q.Start, q.End)
	if err != nil {
		return PricePreviewResult{}, domainreservation.ErrInvalidDates.WithCause(err)
	}
	quote, err := domainpricing.ForStay(acc.NightlyRate, dr)
	if err != nil {
		return PricePreviewResult{}, err
	}
	return PricePreviewResult{
		Nights:       quote.Nights,
		NightlyCents: quote.Nightly.Amount,
		TotalCents:   quote.Total.Amount,
		Currency:     quote.Total.Currency,
	}, nil
}

var _ queries.Handler[PricePreviewQuery, PricePreviewResult] = (*PricePreviewHandler)(nil)
