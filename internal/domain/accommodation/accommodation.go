package accommodation

import (
	"context"
	"strings"
	"time"

	"stayhub/internal/domain/shared/events"
	"stayhub/internal/domain/shared/fault"
	"stayhub/internal/domain/shared/money"
)

var (
	ErrNotFound       = fault.New(fault.NotFound, "accommodation: not found")
	ErrIDRequired     = fault.New(fault.Validation, "accommodation: id is required")
	ErrHostRequired   = fault.New(fault.Validation, "accommodation: host is required")
	ErrTitleRequired  = fault.New(fault.Validation, "accommodation: title is required")
	ErrGuestsLimit    = fault.New(fault.Validation, "accommodation: max guests must be at least 1")
	ErrNightlyRate    = fault.New(fault.Validation, "accommodation: nightly rate must be positive")
	ErrAlreadyDeleted = fault.New(fault.State, "accommodation: already deleted")
)

type ID string
type HostID string

type Address struct {
	Line1   string
	City    string
	Country string
}

// Accommodation is a bookable listing owned by a host. Soft-deleted
// accommodations stay in the store for reservation history but are invisible
// to search and booking.
type Accommodation struct {
	ID          ID
	Host        HostID
	Title       string
	Description string
	Address     Address
	Amenities   []string
	MaxGuests   int
	NightlyRate money.Money
	Active      bool
	Deleted     bool
	DeletedAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*Accommodation, error)
	Save(ctx context.Context, acc *Accommodation) error
	ExistsNotDeleted(ctx context.Context, id ID) (bool, error)
	// Search runs the single-pass filtered page; amenity filters are the
	// planner's business and must not be passed here.
	Search(ctx context.Context, params SearchParams) (SearchResult, error)
	// SearchIDs resolves a page of distinct accommodation ids satisfying all
	// filters including amenities, with the total matching count.
	SearchIDs(ctx context.Context, params SearchParams) ([]ID, int, error)
	// ByIDs bulk-fetches records preserving the order of ids.
	ByIDs(ctx context.Context, ids []ID) ([]*Accommodation, error)
}

type CreateParams struct {
	ID          ID
	Host        HostID
	Title       string
	Description string
	Address     Address
	Amenities   []string
	MaxGuests   int
	NightlyRate money.Money
	Now         time.Time
}

func New(params CreateParams) (*Accommodation, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(string(params.Host)) == "" {
		return nil, ErrHostRequired
	}
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrTitleRequired
	}
	if params.MaxGuests < 1 {
		return nil, ErrGuestsLimit
	}
	if !params.NightlyRate.IsPositive() {
		return nil, ErrNightlyRate
	}
	now := params.Now.UTC()

	acc := &Accommodation{
		ID:          params.ID,
		Host:        params.Host,
		Title:       strings.TrimSpace(params.Title),
		Description: strings.TrimSpace(params.Description),
		Address:     params.Address,
		Amenities:   normalizeTokens(params.Amenities),
		MaxGuests:   params.MaxGuests,
		NightlyRate: params.NightlyRate,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	acc.Record(Created{AccommodationID: acc.ID, HostID: acc.Host, At: now})
	return acc, nil
}

type UpdateParams struct {
	Title       string
	Description string
	Address     Address
	Amenities   []string
	MaxGuests   int
	NightlyRate money.Money
	Now         time.Time
}

func (a *Accommodation) UpdateAttributes(params UpdateParams) error {
	if a.Deleted {
		return ErrAlreadyDeleted
	}
	if strings.TrimSpace(params.Title) == "" {
		return ErrTitleRequired
	}
	if params.MaxGuests < 1 {
		return ErrGuestsLimit
	}
	if !params.NightlyRate.IsPositive() {
		return ErrNightlyRate
	}
	a.Title = strings.TrimSpace(params.Title)
	a.Description = strings.TrimSpace(params.Description)
	a.Address = params.Address
	a.Amenities = normalizeTokens(params.Amenities)
	a.MaxGuests = params.MaxGuests
	a.NightlyRate = params.NightlyRate
	a.UpdatedAt = params.Now.UTC()
	a.Record(Updated{AccommodationID: a.ID, At: a.UpdatedAt})
	return nil
}

// SoftDelete marks the accommodation invisible without removing it. The
// future-obligation check belongs to the lifecycle guard, not the aggregate.
func (a *Accommodation) SoftDelete(now time.Time) error {
	if a.Deleted {
		return ErrAlreadyDeleted
	}
	a.Deleted = true
	a.Active = false
	a.DeletedAt = now.UTC()
	a.UpdatedAt = a.DeletedAt
	a.Record(Deleted{AccommodationID: a.ID, HostID: a.Host, At: a.DeletedAt})
	return nil
}

// HasAmenities reports whether the accommodation declares every requested
// label.
func (a *Accommodation) HasAmenities(required []string) bool {
	if len(required) == 0 {
		return true
	}
	index := make(map[string]struct{}, len(a.Amenities))
	for _, label := range a.Amenities {
		index[strings.ToLower(strings.TrimSpace(label))] = struct{}{}
	}
	for _, label := range required {
		label = strings.ToLower(strings.TrimSpace(label))
		if label == "" {
			continue
		}
		if _, ok := index[label]; !ok {
			return false
		}
	}
	return true
}
