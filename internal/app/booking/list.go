package booking

import (
	"context"

	"stayhub/internal/app/queries"
	"stayhub/internal/app/support"
	"stayhub/internal/app/uow"
	domainaccommodation "stayhub/internal/domain/accommodation"
	domainreservation "stayhub/internal/domain/reservation"
	"stayhub/internal/domain/shared/fault"
	domainuser "stayhub/internal/domain/user"
)

const (
	listGuestReservationsKey = "booking.guest.list"
	listHostReservationsKey  = "booking.host.list"
)

type ListGuestReservationsQuery struct {
	GuestID string
	Limit   int
	Offset  int
}

func (q ListGuestReservationsQuery) Key() string { return listGuestReservationsKey }

type ReservationPage struct {
	Items []*domainreservation.Reservation
	Total int
}

// ListGuestReservationsHandler pages a guest's reservation history, newest
// first.
type ListGuestReservationsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListGuestReservationsHandler) Handle(ctx context.Context, q ListGuestReservationsQuery) (ReservationPage, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return ReservationPage{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	items, total, err := unit.Reservations().ListByGuest(execCtx, domainuser.ID(q.GuestID), q.Limit, q.Offset)
	if err != nil {
		return ReservationPage{}, fault.Wrap(fault.Infrastructure, "booking: guest listing failed", err)
	}
	return ReservationPage{Items: items, Total: total}, nil
}

type ListHostReservationsQuery struct {
	HostID          string
	AccommodationID string
}

func (q ListHostReservationsQuery) Key() string { return listHostReservationsKey }

// ListHostReservationsHandler returns every reservation on one of the
// host's accommodations.
type ListHostReservationsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListHostReservationsHandler) Handle(ctx context.Context, q ListHostReservationsQuery) (ReservationPage, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return ReservationPage{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	acc, err := unit.Accommodations().ByID(execCtx, domainaccommodation.ID(q.AccommodationID))
	if err != nil {
		if fault.IsKind(err, fault.NotFound) {
			return ReservationPage{}, domainaccommodation.ErrNotFound
		}
		return ReservationPage{}, errAccommodationLookup.WithCause(err)
	}
	if acc.Host != domainaccommodation.HostID(q.HostID) {
		return ReservationPage{}, ErrNotReservationHost
	}

	items, err := unit.Reservations().ListByAccommodation(execCtx, acc.ID)
	if err != nil {
		return ReservationPage{}, fault.Wrap(fault.Infrastructure, "booking: host listing failed", err)
	}
	return ReservationPage{Items: items, Total: len(items)}, nil
}

var _ queries.Handler[ListGuestReservationsQuery, ReservationPage] = (*ListGuestReservationsHandler)(nil)
var _ queries.Handler[ListHostReservationsQuery, ReservationPage] = (*ListHostReservationsHandler)(nil)
