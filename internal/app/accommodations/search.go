package accommodations

import (
	"context"
	"time"

	"stayhub/internal/app/queries"
	"stayhub/internal/app/support"
	"stayhub/internal/app/uow"
	domainaccommodation "stayhub/internal/domain/accommodation"
	domainreservation "stayhub/internal/domain/reservation"
	"stayhub/internal/domain/shared/fault"
)

const searchAccommodationsKey = "accommodations.search"

var ErrSearchFailed = fault.New(fault.Infrastructure, "accommodations: search failed")

type SearchAccommodationsQuery struct {
	HostID        string
	City          string
	Country       string
	CheckIn       time.Time
	CheckOut      time.Time
	MinGuests     int
	PriceMinCents int64
	PriceMaxCents int64
	Amenities     []string
	Limit         int
	Offset        int
}

func (q SearchAccommodationsQuery) Key() string { return searchAccommodationsKey }

type SearchAccommodationsResult struct {
	Items []*domainaccommodation.Accommodation
	Total int
}

// SearchAccommodationsHandler plans the catalog lookup. Without an amenity
// filter a single combined query returns the page. With one, joining
// amenities into that query would multiply rows per matching label and
// corrupt page counts, so the planner resolves a page of distinct ids first
// and bulk-fetches the records in order. A date range additionally screens
// each returned row through the overlap predicate.
type SearchAccommodationsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *SearchAccommodationsHandler) Handle(ctx context.Context, q SearchAccommodationsQuery) (SearchAccommodationsResult, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return SearchAccommodationsResult{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	params := domainaccommodation.SearchParams{
		Host:          domainaccommodation.HostID(q.HostID),
		City:          q.City,
		Country:       q.Country,
		CheckIn:       q.CheckIn,
		CheckOut:      q.CheckOut,
		MinGuests:     q.MinGuests,
		PriceMinCents: q.PriceMinCents,
		PriceMaxCents: q.PriceMaxCents,
		Amenities:     append([]string(nil), q.Amenities...),
		Limit:         q.Limit,
		Offset:        q.Offset,
	}.Normalized()

	var (
		items []*domainaccommodation.Accommodation
		total int
	)
	if len(params.Amenities) == 0 {
		result, err := unit.Accommodations().Search(execCtx, params)
		if err != nil {
			return SearchAccommodationsResult{}, ErrSearchFailed.WithCause(err)
		}
		items, total = result.Items, result.Total
	} else {
		ids, count, err := unit.Accommodations().SearchIDs(execCtx, params)
		if err != nil {
			return SearchAccommodationsResult{}, ErrSearchFailed.WithCause(err)
		}
		total = count
		if len(ids) == 0 {
			return SearchAccommodationsResult{Items: []*domainaccommodation.Accommodation{}, Total: total}, nil
		}
		items, err = unit.Accommodations().ByIDs(execCtx, ids)
		if err != nil {
			return SearchAccommodationsResult{}, ErrSearchFailed.WithCause(err)
		}
	}

	if stay, ok := params.StayRange(); ok {
		available := items[:0:len(items)]
		for _, acc := range items {
			existing, err := unit.Reservations().FindOverlapping(execCtx, acc.ID, stay)
			if err != nil {
				return SearchAccommodationsResult{}, ErrSearchFailed.WithCause(err)
			}
			if domainreservation.Conflicts(existing, stay) {
				total--
				continue
			}
			available = append(available, acc)
		}
		items = available
	}

	return SearchAccommodationsResult{Items: items, Total: total}, nil
}

var _ queries.Handler[SearchAccommodationsQuery, SearchAccommodationsResult] = (*SearchAccommodationsHandler)(nil)
