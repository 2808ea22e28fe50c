package accommodations

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

const deleteAccommodationKey = "accommodations.delete"

var (
	ErrNotOwner            = fault.New(fault.Permission, "accommodations: only the host may delete")
	ErrFutureObligations   = fault.New(fault.State, "accommodations: cannot delete while future reservations exist")
	errAccommodationLookup = fault.New(fault.Infrastructure, "accommodations: lookup failed")
)

type DeleteAccommodationCommand struct {
	AccommodationID string
	ActorID         string
}

func (c DeleteAccommodationCommand) Key() string { return deleteAccommodationKey }

type DeleteResult struct {
	AccommodationID string    `json:"accommodation_id"`
	DeletedAt       time.Time `json:"deleted_at"`
}

// DeleteAccommodationHandler is the lifecycle guard: soft-delete is refused
// while any non-cancelled reservation starts today or later. The optimized
// store count is preferred; when it fails the guard degrades to loading the
// reservation collection and applying the same predicate in memory, so both
// paths reach identical decisions.
type DeleteAccommodationHandler struct {
	UoWFactory uow.UoWFactory
	Events     policies.EventPublisher
	Logger     *slog.Logger
	Now        func() time.Time
}

func (h *DeleteAccommodationHandler) Handle(ctx context.Context, cmd DeleteAccommodationCommand) (*DeleteResult, error) {
	unit, execCtx, commit, cleanup, err := support.BeginUnit(ctx, h.UoWFactory, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	acc, err := unit.Accommodations().ByID(execCtx, domainaccommodation.ID(cmd.AccommodationID))
	if err != nil {
		if fault.IsKind(err, fault.NotFound) {
			return nil, domainaccommodation.ErrNotFound
		}
		return nil, errAccommodationLookup.WithCause(err)
	}
	if acc.Host != domainaccommodation.HostID(cmd.ActorID) {
		return nil, ErrNotOwner
	}

	now := h.now()
	obligations, err := h.countFutureObligations(execCtx, unit, acc.ID, now)
	if err != nil {
		return nil, err
	}
	if obligations > 0 {
		return nil, ErrFutureObligations
	}

	if err := acc.SoftDelete(now); err != nil {
		return nil, err
	}
	if err := unit.Accommodations().Save(execCtx, acc); err != nil {
		return nil, fault.Wrap(fault.Infrastructure, "accommodations: persist failed", err)
	}
	pending := acc.PendingEvents()
	acc.ClearEvents()
	if commit != nil {
		if err := commit(execCtx); err != nil {
			return nil, fault.Wrap(fault.Infrastructure, "accommodations: commit failed", err)
		}
	}

	policies.PublishAll(execCtx, h.Events, h.Logger, pending)
	if h.Logger != nil {
		h.Logger.Info("accommodation soft-deleted", "accommodation_id", acc.ID, "host_id", acc.Host)
	}
	return &DeleteResult{AccommodationID: string(acc.ID), DeletedAt: acc.DeletedAt}, nil
}

// countFutureObligations tries the optimized count first and falls back to
// a manual scan. Degrade, not fail: only the scan's own failure surfaces.
func (h *DeleteAccommodationHandler) countFutureObligations(ctx context.Context, unit uow.UnitOfWork, id domainaccommodation.ID, now time.Time) (int, error) {
	count, err := unit.Reservations().CountFutureActive(ctx, id, now)
	if err == nil {
		return count, nil
	}
	if h.Logger != nil {
		h.Logger.Warn("future-reservation count unavailable, scanning", "accommodation_id", id, "error", err)
	}
	all, scanErr := unit.Reservations().ListByAccommodation(ctx, id)
	if scanErr != nil {
		return 0, fault.Wrap(fault.Infrastructure, "accommodations: reservation scan failed", scanErr)
	}
	return domainreservation.CountFutureObligations(all, now), nil
}

func (h *DeleteAccommodationHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

var _ commands.Handler[DeleteAccommodationCommand, *DeleteResult] = (*DeleteAccommodationHandler)(nil)
