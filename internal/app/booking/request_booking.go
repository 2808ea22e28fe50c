package booking

import (
	"context"
	"log/slog"
	"time"

	"stayhub/internal/app/commands"
	"stayhub/internal/app/policies"
	"stayhub/internal/app/support"
	"stayhub/internal/app/uow"
	domainaccommodation "stayhub/internal/domain/accommodation"
	domainpricing "stayhub/internal/domain/pricing"
	domainreservation "stayhub/internal/domain/reservation"
	domainrange "stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/fault"
	domainuser "stayhub/internal/domain/user"
)

const requestBookingKey = "booking.request"

var (
	ErrUserNotEligible     = fault.New(fault.Permission, "booking: user not eligible")
	ErrSelfBooking         = fault.New(fault.Permission, "booking: hosts cannot book their own accommodation")
	ErrStartInPast         = fault.New(fault.Validation, "booking: start date is in the past")
	ErrCapacityExceeded    = fault.New(fault.Validation, "booking: guest count exceeds capacity")
	ErrAccommodationClosed = fault.New(fault.Availability, "booking: accommodation is not active")
	errReservationLookup   = fault.New(fault.Infrastructure, "booking: overlap lookup failed")
	errReservationPersist  = fault.New(fault.Infrastructure, "booking: reservation persist failed")
	errAccommodationLookup = fault.New(fault.Infrastructure, "booking: accommodation lookup failed")
)

type RequestBookingCommand struct {
	CommandID       string
	AccommodationID string
	GuestID         string
	Start           time.Time
	End             time.Time
	Guests          int
}

func (c RequestBookingCommand) Key() string { return requestBookingKey }

type RequestBookingResult struct {
	ReservationID string `json:"reservation_id"`
	Nights        int    `json:"nights"`
	TotalCents    int64  `json:"total_cents"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
}

// RequestBookingHandler runs the booking gate sequence in order: eligible
// guest, live accommodation, no self-booking, valid dates, capacity,
// availability. Each gate fails fast; only a fully validated reservation is
// persisted.
type RequestBookingHandler struct {
	UoWFactory uow.UoWFactory
	Notifier   policies.Notifier
	Events     policies.EventPublisher
	Logger     *slog.Logger
	Now        func() time.Time
}

func (h *RequestBookingHandler) Handle(ctx context.Context, cmd RequestBookingCommand) (*RequestBookingResult, error) {
	unit, execCtx, commit, cleanup, err := support.BeginUnit(ctx, h.UoWFactory, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	now := h.now()

	guest, err := unit.Users().ByID(execCtx, domainuser.ID(cmd.GuestID))
	if err != nil {
		if fault.IsKind(err, fault.NotFound) {
			return nil, ErrUserNotEligible
		}
		return nil, fault.Wrap(fault.Infrastructure, "booking: user lookup failed", err)
	}
	if !guest.CanBook() {
		return nil, ErrUserNotEligible
	}

	acc, err := unit.Accommodations().ByID(execCtx, domainaccommodation.ID(cmd.AccommodationID))
	if err != nil {
		if fault.IsKind(err, fault.NotFound) {
			return nil, domainaccommodation.ErrNotFound
		}
		return nil, errAccommodationLookup.WithCause(err)
	}
	if acc.Deleted {
		return nil, domainaccommodation.ErrNotFound
	}
	if !acc.Active {
		return nil, ErrAccommodationClosed
	}
	if acc.Host == domainaccommodation.HostID(cmd.GuestID) {
		return nil, ErrSelfBooking
	}

	dr, err := domainrange.New(cmd.Start, cmd.End)
	if err != nil {
		return nil, domainreservation.ErrInvalidDates.WithCause(err)
	}
	if dr.Start.Before(domainrange.Truncate(now)) {
		return nil, ErrStartInPast
	}
	quote, err := domainpricing.ForStay(acc.NightlyRate, dr)
	if err != nil {
		return nil, err
	}

	if cmd.Guests > acc.MaxGuests {
		return nil, ErrCapacityExceeded
	}

	existing, err := unit.Reservations().FindOverlapping(execCtx, acc.ID, dr)
	if err != nil {
		return nil, errReservationLookup.WithCause(err)
	}
	if domainreservation.Conflicts(existing, dr) {
		return nil, domainreservation.ErrDatesUnavailable
	}

	res, err := domainreservation.New(domainreservation.CreateParams{
		ID:              domainreservation.ID(cmd.CommandID),
		AccommodationID: acc.ID,
		GuestID:         guest.ID,
		HostID:          acc.Host,
		Range:           dr,
		Guests:          cmd.Guests,
		Nights:          quote.Nights,
		Total:           quote.Total,
		Now:             now,
	})
	if err != nil {
		return nil, err
	}
	if err := unit.Reservations().Save(execCtx, res); err != nil {
		return nil, errReservationPersist.WithCause(err)
	}
	pending := res.PendingEvents()
	res.ClearEvents()
	if commit != nil {
		if err := commit(execCtx); err != nil {
			return nil, fault.Wrap(fault.Infrastructure, "booking: commit failed", err)
		}
	}

	policies.PublishAll(execCtx, h.Events, h.Logger, pending)
	policies.NotifyBestEffort(execCtx, h.Notifier, h.Logger, string(acc.Host),
		"New booking request", "A guest requested a stay at "+acc.Title, "reservation.requested")
	policies.NotifyBestEffort(execCtx, h.Notifier, h.Logger, string(guest.ID),
		"Booking request sent", "Your request for "+acc.Title+" is pending host confirmation", "reservation.requested")

	if h.Logger != nil {
		h.Logger.Info("reservation requested", "reservation_id", res.ID, "accommodation_id", acc.ID, "guest_id", guest.ID, "nights", res.Nights)
	}
	return &RequestBookingResult{
		ReservationID: string(res.ID),
		Nights:        res.Nights,
		TotalCents:    res.Total.Amount,
		Currency:      res.Total.Currency,
		Status:        string(res.Status),
	}, nil
}

func (h *RequestBookingHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

var _ commands.Handler[RequestBookingCommand, *RequestBookingResult] = (*RequestBookingHandler)(nil)
