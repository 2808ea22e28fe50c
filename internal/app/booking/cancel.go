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
	domainreservation "stayhub/internal/domain/reservation"
	"stayhub/internal/domain/shared/fault"
	domainuser "stayhub/internal/domain/user"
)

const cancelReservationKey = "booking.cancel"

var ErrNotReservationParty = fault.New(fault.Permission, "booking: only the guest or the host may cancel")

type CancelReservationCommand struct {
	ReservationID string
	ActorID       string
	Reason        string
}

func (c CancelReservationCommand) Key() string { return cancelReservationKey }

type CancelResult struct {
	ReservationID string `json:"reservation_id"`
	Status        string `json:"status"`
	CancelledBy   string `json:"cancelled_by"`
}

// CancelBookingHandler applies the voluntary-cancellation rules: the actor
// must be a party to the reservation, the status must still be live, and
// guests must respect the minimum-notice window.
type CancelBookingHandler struct {
	UoWFactory uow.UoWFactory
	Policy     domainreservation.CancellationPolicy
	Notifier   policies.Notifier
	Events     policies.EventPublisher
	Logger     *slog.Logger
	Now        func() time.Time
}

func (h *CancelBookingHandler) Handle(ctx context.Context, cmd CancelReservationCommand) (*CancelResult, error) {
	unit, execCtx, commit, cleanup, err := support.BeginUnit(ctx, h.UoWFactory, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	res, err := unit.Reservations().ByID(execCtx, domainreservation.ID(cmd.ReservationID))
	if err != nil {
		if fault.IsKind(err, fault.NotFound) {
			return nil, domainreservation.ErrNotFound
		}
		return nil, fault.Wrap(fault.Infrastructure, "booking: reservation lookup failed", err)
	}

	var actor domainreservation.Actor
	switch {
	case res.GuestID == domainuser.ID(cmd.ActorID):
		actor = domainreservation.ActorGuest
	case res.HostID == domainaccommodation.HostID(cmd.ActorID):
		actor = domainreservation.ActorHost
	default:
		return nil, ErrNotReservationParty
	}

	now := h.now()
	if err := h.Policy.Authorize(res, actor, now); err != nil {
		return nil, err
	}
	if err := res.Cancel(actor, cmd.Reason, now); err != nil {
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
	counterparty := string(res.HostID)
	if actor == domainreservation.ActorHost {
		counterparty = string(res.GuestID)
	}
	policies.NotifyBestEffort(execCtx, h.Notifier, h.Logger, counterparty,
		"Reservation cancelled", "Reservation "+string(res.ID)+" was cancelled", "reservation.cancelled")

	if h.Logger != nil {
		h.Logger.Info("reservation cancelled", "reservation_id", res.ID, "cancelled_by", actor, "actor_id", cmd.ActorID)
	}
	return &CancelResult{
		ReservationID: string(res.ID),
		Status:        string(res.Status),
		CancelledBy:   string(res.CancelledBy),
	}, nil
}

func (h *CancelBookingHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

var _ commands.Handler[CancelReservationCommand, *CancelResult] = (*CancelBookingHandler)(nil)
