package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainaccommodation "stayhub/internal/domain/accommodation"
	domaincomment "stayhub/internal/domain/comment"
	domainreservation "stayhub/internal/domain/reservation"
	domainrange "stayhub/internal/domain/shared/daterange"
	domainuser "stayhub/internal/domain/user"
)

// AccommodationRepository is an in-memory implementation for tests and
// standalone runs.
type AccommodationRepository struct {
	mu    sync.RWMutex
	items map[domainaccommodation.ID]*domainaccommodation.Accommodation
}

// NewAccommodationRepository builds an empty repository.
func NewAccommodationRepository() *AccommodationRepository {
	return &AccommodationRepository{
		items: make(map[domainaccommodation.ID]*domainaccommodation.Accommodation),
	}
}

func (r *AccommodationRepository) ByID(ctx context.Context, id domainaccommodation.ID) (*domainaccommodation.Accommodation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.items[id]
	if !ok {
		return nil, domainaccommodation.ErrNotFound
	}
	return acc, nil
}

func (r *AccommodationRepository) Save(ctx context.Context, acc *domainaccommodation.Accommodation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc.Version++
	r.items[acc.ID] = acc
	return nil
}

func (r *AccommodationRepository) ExistsNotDeleted(ctx context.Context, id domainaccommodation.ID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.items[id]
	return ok && !acc.Deleted, nil
}

// Search returns a page of matching accommodations. Amenity filters are
// handled by SearchIDs, never here.
func (r *AccommodationRepository) Search(ctx context.Context, params domainaccommodation.SearchParams) (domainaccommodation.SearchResult, error) {
	matches, err := r.match(ctx, params, false)
	if err != nil {
		return domainaccommodation.SearchResult{}, err
	}
	total := len(matches)
	page := paginate(matches, params.Offset, params.Limit)
	return domainaccommodation.SearchResult{Items: page, Total: total}, nil
}

// SearchIDs resolves a page of ids satisfying every filter, amenities
// included.
func (r *AccommodationRepository) SearchIDs(ctx context.Context, params domainaccommodation.SearchParams) ([]domainaccommodation.ID, int, error) {
	matches, err := r.match(ctx, params, true)
	if err != nil {
		return nil, 0, err
	}
	total := len(matches)
	page := paginate(matches, params.Offset, params.Limit)
	ids := make([]domainaccommodation.ID, 0, len(page))
	for _, acc := range page {
		ids = append(ids, acc.ID)
	}
	return ids, total, nil
}

// ByIDs fetches records preserving the order of ids; unknown ids are
// skipped.
func (r *AccommodationRepository) ByIDs(ctx context.Context, ids []domainaccommodation.ID) ([]*domainaccommodation.Accommodation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainaccommodation.Accommodation, 0, len(ids))
	for _, id := range ids {
		if acc, ok := r.items[id]; ok {
			out = append(out, acc)
		}
	}
	return out, nil
}

func (r *AccommodationRepository) match(ctx context.Context, params domainaccommodation.SearchParams, withAmenities bool) ([]*domainaccommodation.Accommodation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	opts := params.Normalized()
	matches := make([]*domainaccommodation.Accommodation, 0, len(r.items))
	for _, acc := range r.items {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		if acc.Deleted || !acc.Active {
			continue
		}
		if opts.Host != "" && acc.Host != opts.Host {
			continue
		}
		if opts.City != "" && !strings.EqualFold(acc.Address.City, opts.City) {
			continue
		}
		if opts.Country != "" && !strings.EqualFold(acc.Address.Country, opts.Country) {
			continue
		}
		if opts.MinGuests > 0 && acc.MaxGuests < opts.MinGuests {
			continue
		}
		if opts.PriceMinCents > 0 && acc.NightlyRate.Amount < opts.PriceMinCents {
			continue
		}
		if opts.PriceMaxCents > 0 && acc.NightlyRate.Amount > opts.PriceMaxCents {
			continue
		}
		if withAmenities && !acc.HasAmenities(opts.Amenities) {
			continue
		}
		matches = append(matches, acc)
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].NightlyRate.Amount == matches[j].NightlyRate.Amount {
			return matches[i].ID < matches[j].ID
		}
		return matches[i].NightlyRate.Amount < matches[j].NightlyRate.Amount
	})
	return matches, nil
}

func paginate(matches []*domainaccommodation.Accommodation, offset, limit int) []*domainaccommodation.Accommodation {
	total := len(matches)
	start := offset
	if start > total {
		start = total
	}
	end := total
	if limit > 0 && start+limit < total {
		end = start + limit
	}
	return matches[start:end]
}

// ReservationRepository stores reservations in memory.
type ReservationRepository struct {
	mu    sync.RWMutex
	items map[domainreservation.ID]*domainreservation.Reservation
}

// NewReservationRepository builds an empty reservation repo.
func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{items: make(map[domainreservation.ID]*domainreservation.Reservation)}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ID) (*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.items[id]
	if !ok {
		return nil, domainreservation.ErrNotFound
	}
	return res, nil
}

func (r *ReservationRepository) Save(ctx context.Context, res *domainreservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	res.Version++
	r.items[res.ID] = res
	return nil
}

func (r *ReservationRepository) ListByAccommodation(ctx context.Context, accommodationID domainaccommodation.ID) ([]*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domainreservation.Reservation, 0)
	for _, res := range r.items {
		if res.AccommodationID == accommodationID {
			matches = append(matches, res)
		}
	}
	sortByCreated(matches)
	return matches, nil
}

func (r *ReservationRepository) ListByGuest(ctx context.Context, guestID domainuser.ID, limit, offset int) ([]*domainreservation.Reservation, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domainreservation.Reservation, 0)
	for _, res := range r.items {
		if res.GuestID == guestID {
			matches = append(matches, res)
		}
	}
	sortByCreated(matches)
	total := len(matches)
	start := offset
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := total
	if limit > 0 && start+limit < total {
		end = start + limit
	}
	page := make([]*domainreservation.Reservation, end-start)
	copy(page, matches[start:end])
	return page, total, nil
}

func (r *ReservationRepository) FindOverlapping(ctx context.Context, accommodationID domainaccommodation.ID, dr domainrange.DateRange) ([]*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domainreservation.Reservation, 0)
	for _, res := range r.items {
		if res.AccommodationID != accommodationID {
			continue
		}
		if res.Status == domainreservation.StatusCancelled {
			continue
		}
		if res.Range.Overlaps(dr) {
			matches = append(matches, res)
		}
	}
	sortByCreated(matches)
	return matches, nil
}

func (r *ReservationRepository) CountFutureActive(ctx context.Context, accommodationID domainaccommodation.ID, from time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, res := range r.items {
		if res.AccommodationID != accommodationID {
			continue
		}
		if domainreservation.IsFutureObligation(res, from) {
			count++
		}
	}
	return count, nil
}

func sortByCreated(matches []*domainreservation.Reservation) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].ID < matches[j].ID
		}
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
}

// CommentRepository is a lightweight in-memory comment store.
type CommentRepository struct {
	mu    sync.RWMutex
	items []*domaincomment.Comment
}

// NewCommentRepository builds an empty comment store.
func NewCommentRepository() *CommentRepository {
	return &CommentRepository{}
}

// Add appends a comment; used by fixtures and tests.
func (r *CommentRepository) Add(ctx context.Context, c *domaincomment.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, c)
	return nil
}

func (r *CommentRepository) ListByAccommodation(ctx context.Context, accommodationID domainaccommodation.ID) ([]*domaincomment.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domaincomment.Comment, 0)
	for _, c := range r.items {
		if c.AccommodationID == accommodationID {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

var _ domainaccommodation.Repository = (*AccommodationRepository)(nil)
var _ domainreservation.Repository = (*ReservationRepository)(nil)
var _ domaincomment.Repository = (*CommentRepository)(nil)
