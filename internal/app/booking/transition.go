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
)

const (
	confirmReservationKey  = "booking.confirm"
	completeReservationKey = "booking.complete"
)

var ErrNotReservationHost = fault.New(fault.Permission, "booking: only the accommodation host may transition a reservation")

type ConfirmReservationCommand struct {
	ReservationID string
	ActorID       string
}

func (c ConfirmReservationCommand) Key() string { return confirmReservationKey }

type CompleteReservationCommand struct {
	ReservationID string
	ActorID       string
}

func (c CompleteReservationCommand) Key() string { return completeReservationKey }

type TransitionResult struct {
	ReservationID string `json:"reservation_id"`
	Status        string `json:"status"`
}

// TransitionHandler drives host-only reservation lifecycle moves. The
// aggregate decides legality; this handler decides who is allowed to ask.
type TransitionHandler struct {
	UoWFactory uow.UoWFactory
	Notifier   policies.Notifier
	Events     policies.EventPublisher
	Logger     *slog.Logger
	Now        func() time.Time
}

func (h *TransitionHandler) HandleConfirm(ctx context.Context, cmd ConfirmReservationCommand) (*TransitionResult, error) {
	return h.transition(ctx, cmd.ReservationID, cmd.ActorID, "confirmed",
		func(r *domainreservation.Reservation, now time.Time) error { return r.Confirm(now) })
}

func (h *TransitionHandler) HandleComplete(ctx context.Context, cmd CompleteReservationCommand) (*TransitionResult, error) {
	return h.transition(ctx, cmd.ReservationID, cmd.ActorID, "completed",
		func(r *domainreservation.Reservation, now time.Time) error { return r.Complete(now) })
}

func (h *TransitionHandler) transition(ctx context.Context, reservationID, actorID, verb string, apply func(*domainreservation.Reservation, time.Time) error) (*TransitionResult, error) {
	unit, execCtx, commit, cleanup, err := support.BeginUnit(ctx, h.UoWFactory, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	res, err := unit.Reservations().ByID(execCtx, domainreservation.ID(reservationID))
	if err != nil {
		if fault.IsKind(err, fault.NotFound) {
			return nil, domainreservation.ErrNotFound
		}
		return nil, fault.Wrap(fault.Infrastructure, "booking: reservation lookup failed", err)
	}
	if res.HostID != domainaccommodation.HostID(actorID) {
		return nil, ErrNotReservationHost
	}

	if err := apply(res, h.now()); err != nil {
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
	policies.NotifyBestEffort(execCtx, h.Notifier, h.Logger, string(res.GuestID),
		"Reservation "+verb, "Your reservation was "+verb+" by the host", "reservation."+verb)

	if h.Logger != nil {
		h.Logger.Info("reservation transitioned", "reservation_id", res.ID, "status", res.Status, "actor_id", actorID)
	}
	return &TransitionResult{ReservationID: string(res.ID), Status: string(res.Status)}, nil
}

func (h *TransitionHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

// ConfirmHandler and CompleteHandler expose the two transitions as typed
// command handlers.
func (h *TransitionHandler) ConfirmHandler() commands.Handler[ConfirmReservationCommand, *TransitionResult] {
	return commands.HandlerFunc[ConfirmReservationCommand, *TransitionResult](h.HandleConfirm)
}

func (h *TransitionHandler) CompleteHandler() commands.Handler[CompleteReservationCommand, *TransitionResult] {
	return commands.HandlerFunc[CompleteReservationCommand, *TransitionResult](h.HandleComplete)
}
