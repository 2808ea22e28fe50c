package metrics

import (
	"context"
	"time"

	"stayhub/internal/app/queries"
	"stayhub/internal/app/support"
	"stayhub/internal/app/uow"
	domainaccommodation "stayhub/internal/domain/accommodation"
	domainrange "stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/fault"
)

const accommodationMetricsKey = "metrics.accommodation"

type AccommodationMetricsQuery struct {
	AccommodationID string
	From            time.Time
	To              time.Time
}

func (q AccommodationMetricsQuery) Key() string { return accommodationMetricsKey }

type AccommodationMetrics struct {
	TotalReservations int     `json:"total_reservations"`
	TotalRevenueCents int64   `json:"total_revenue_cents"`
	Currency          string  `json:"currency"`
	AverageRating     float64 `json:"average_rating"`
}

// AccommodationMetricsHandler aggregates bookings and ratings for one
// accommodation. Both optional bounds select reservations by start date;
// ratings are never date-filtered. A reservation without a priced total
// still counts, contributing zero revenue.
type AccommodationMetricsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *AccommodationMetricsHandler) Handle(ctx context.Context, q AccommodationMetricsQuery) (AccommodationMetrics, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return AccommodationMetrics{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	acc, err := unit.Accommodations().ByID(execCtx, domainaccommodation.ID(q.AccommodationID))
	if err != nil {
		if fault.IsKind(err, fault.NotFound) {
			return AccommodationMetrics{}, domainaccommodation.ErrNotFound
		}
		return AccommodationMetrics{}, fault.Wrap(fault.Infrastructure, "metrics: accommodation lookup failed", err)
	}

	reservations, err := unit.Reservations().ListByAccommodation(execCtx, acc.ID)
	if err != nil {
		return AccommodationMetrics{}, fault.Wrap(fault.Infrastructure, "metrics: reservation load failed", err)
	}
	comments, err := unit.Comments().ListByAccommodation(execCtx, acc.ID)
	if err != nil {
		return AccommodationMetrics{}, fault.Wrap(fault.Infrastructure, "metrics: comment load failed", err)
	}

	from := domainrange.Truncate(q.From)
	to := domainrange.Truncate(q.To)

	out := AccommodationMetrics{Currency: acc.NightlyRate.Currency}
	for _, r := range reservations {
		if r == nil || r.Range.Start.IsZero() || r.Range.End.IsZero() {
			continue
		}
		if !from.IsZero() && r.Range.Start.Before(from) {
			continue
		}
		if !to.IsZero() && r.Range.Start.After(to) {
			continue
		}
		out.TotalReservations++
		out.TotalRevenueCents += r.Total.Amount
	}

	if len(comments) > 0 {
		sum := 0
		for _, c := range comments {
			if c == nil {
				continue
			}
			sum += c.Rating
		}
		out.AverageRating = float64(sum) / float64(len(comments))
	}
	return out, nil
}

var _ queries.Handler[AccommodationMetricsQuery, AccommodationMetrics] = (*AccommodationMetricsHandler)(nil)
