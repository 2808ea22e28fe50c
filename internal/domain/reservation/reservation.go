package reservation

import (
	"context"
	"strings"
	"time"

	"stayhub/internal/domain/accommodation"
	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/events"
	"stayhub/internal/domain/shared/fault"
	"stayhub/internal/domain/shared/money"
	"stayhub/internal/domain/user"
)

var (
	ErrNotFound          = fault.New(fault.NotFound, "reservation: not found")
	ErrGuestRequired     = fault.New(fault.Validation, "reservation: guest id is required")
	ErrInvalidGuests     = fault.New(fault.Validation, "reservation: guests count must be positive")
	ErrInvalidDates      = fault.New(fault.Validation, "reservation: invalid date range")
	ErrIllegalTransition = fault.New(fault.Validation, "reservation: illegal status transition")
	ErrTerminalState     = fault.New(fault.State, "reservation: status is terminal")
	ErrDatesUnavailable  = fault.New(fault.Availability, "reservation: accommodation not available for requested dates")
)

type ID string

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// Actor tags who triggered a cancellation.
type Actor string

const (
	ActorGuest  Actor = "GUEST"
	ActorHost   Actor = "HOST"
	ActorSystem Actor = "SYSTEM"
)

const hostCancelReason = "cancelled by host"

// Reservation is a guest's claim on an accommodation for a half-open date
// range. Nights and total price are cached at creation; status moves only
// through the transition methods and history is never physically deleted.
type Reservation struct {
	ID              ID
	AccommodationID accommodation.ID
	GuestID         user.ID
	HostID          accommodation.HostID
	Range           daterange.DateRange
	Guests          int
	Nights          int
	Total           money.Money
	Status          Status
	CancelledAt     time.Time
	CancelReason    string
	CancelledBy     Actor
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*Reservation, error)
	Save(ctx context.Context, res *Reservation) error
	ListByAccommodation(ctx context.Context, accommodationID accommodation.ID) ([]*Reservation, error)
	ListByGuest(ctx context.Context, guestID user.ID, limit, offset int) ([]*Reservation, int, error)
	// FindOverlapping returns non-cancelled reservations whose range
	// intersects dr under the half-open rule.
	FindOverlapping(ctx context.Context, accommodationID accommodation.ID, dr daterange.DateRange) ([]*Reservation, error)
	// CountFutureActive counts reservations with status other than CANCELLED
	// and start date on or after from. The lifecycle guard degrades to a
	// manual scan when this optimized path fails.
	CountFutureActive(ctx context.Context, accommodationID accommodation.ID, from time.Time) (int, error)
}

type CreateParams struct {
	ID              ID
	AccommodationID accommodation.ID
	GuestID         user.ID
	HostID          accommodation.HostID
	Range           daterange.DateRange
	Guests          int
	Nights          int
	Total           money.Money
	Now             time.Time
}

func New(params CreateParams) (*Reservation, error) {
	if strings.TrimSpace(string(params.GuestID)) == "" {
		return nil, ErrGuestRequired
	}
	if params.Guests <= 0 {
		return nil, ErrInvalidGuests
	}
	if err := params.Range.Validate(); err != nil {
		return nil, ErrInvalidDates.WithCause(err)
	}
	if params.Nights < 1 {
		return nil, ErrInvalidDates
	}
	now := params.Now.UTC()
	r := &Reservation{
		ID:              params.ID,
		AccommodationID: params.AccommodationID,
		GuestID:         params.GuestID,
		HostID:          params.HostID,
		Range:           params.Range,
		Guests:          params.Guests,
		Nights:          params.Nights,
		Total:           params.Total,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	r.Record(Requested{ReservationID: r.ID, AccommodationID: r.AccommodationID, GuestID: r.GuestID, Range: r.Range, Guests: r.Guests, Total: r.Total, At: now})
	return r, nil
}

// Confirm moves PENDING to CONFIRMED.
func (r *Reservation) Confirm(now time.Time) error {
	if err := r.guardTransition(StatusPending); err != nil {
		return err
	}
	r.Status = StatusConfirmed
	r.UpdatedAt = now.UTC()
	r.Record(Confirmed{ReservationID: r.ID, AccommodationID: r.AccommodationID, At: r.UpdatedAt})
	return nil
}

// Complete moves CONFIRMED to COMPLETED.
func (r *Reservation) Complete(now time.Time) error {
	if err := r.guardTransition(StatusConfirmed); err != nil {
		return err
	}
	r.Status = StatusCompleted
	r.UpdatedAt = now.UTC()
	r.Record(Completed{ReservationID: r.ID, AccommodationID: r.AccommodationID, At: r.UpdatedAt})
	return nil
}

// Cancel terminates a PENDING or CONFIRMED reservation, stamping the acting
// party. Hosts that omit a reason get a default placeholder; guest reasons
// are stored verbatim.
func (r *Reservation) Cancel(actor Actor, reason string, now time.Time) error {
	if r.IsTerminal() {
		return ErrTerminalState
	}
	reason = strings.TrimSpace(reason)
	if reason == "" && actor == ActorHost {
		reason = hostCancelReason
	}
	r.Status = StatusCancelled
	r.CancelledAt = now.UTC()
	r.CancelReason = reason
	r.CancelledBy = actor
	r.UpdatedAt = r.CancelledAt
	r.Record(Cancelled{ReservationID: r.ID, AccommodationID: r.AccommodationID, By: actor, Reason: reason, At: r.CancelledAt})
	return nil
}

// IsTerminal reports whether the status permits no further transition.
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCancelled || r.Status == StatusCompleted
}

// guardTransition distinguishes a terminal reservation (state error) from a
// live one in the wrong status (illegal transition).
func (r *Reservation) guardTransition(want Status) error {
	if r.IsTerminal() {
		return ErrTerminalState
	}
	if r.Status != want {
		return ErrIllegalTransition
	}
	return nil
}
