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
	"stayhub/internal/domain/shared/fault"
	"stayhub/internal/domain/shared/money"
)

const (
	createAccommodationKey = "accommodations.create"
	updateAccommodationKey = "accommodations.update"
)

type CreateAccommodationCommand struct {
	CommandID        string
	HostID           string
	Title            string
	Description      string
	Line1            string
	City             string
	Country          string
	Amenities        []string
	MaxGuests        int
	NightlyRateCents int64
	Currency         string
}

func (c CreateAccommodationCommand) Key() string { return createAccommodationKey }

type AccommodationResult struct {
	AccommodationID string `json:"accommodation_id"`
}

// CreateAccommodationHandler registers a new active listing for a host.
type CreateAccommodationHandler struct {
	UoWFactory uow.UoWFactory
	Events     policies.EventPublisher
	Logger     *slog.Logger
	Now        func() time.Time
}

func (h *CreateAccommodationHandler) Handle(ctx context.Context, cmd CreateAccommodationCommand) (*AccommodationResult, error) {
	unit, execCtx, commit, cleanup, err := support.BeginUnit(ctx, h.UoWFactory, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	rate, err := money.New(cmd.NightlyRateCents, cmd.Currency)
	if err != nil {
		return nil, fault.Wrap(fault.Validation, "accommodations: invalid nightly rate", err)
	}
	acc, err := domainaccommodation.New(domainaccommodation.CreateParams{
		ID:          domainaccommodation.ID(cmd.CommandID),
		Host:        domainaccommodation.HostID(cmd.HostID),
		Title:       cmd.Title,
		Description: cmd.Description,
		Address: domainaccommodation.Address{
			Line1:   cmd.Line1,
			City:    cmd.City,
			Country: cmd.Country,
		},
		Amenities:   cmd.Amenities,
		MaxGuests:   cmd.MaxGuests,
		NightlyRate: rate,
		Now:         h.now(),
	})
	if err != nil {
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
		h.Logger.Info("accommodation created", "accommodation_id", acc.ID, "host_id", acc.Host)
	}
	return &AccommodationResult{AccommodationID: string(acc.ID)}, nil
}

func (h *CreateAccommodationHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

type UpdateAccommodationCommand struct {
	AccommodationID  string
	ActorID          string
	Title            string
	Description      string
	Line1            string
	City             string
	Country          string
	Amenities        []string
	MaxGuests        int
	NightlyRateCents int64
	Currency         string
}

func (c UpdateAccommodationCommand) Key() string { return updateAccommodationKey }

// UpdateAccommodationHandler rewrites a listing's attributes, host-only.
type UpdateAccommodationHandler struct {
	UoWFactory uow.UoWFactory
	Events     policies.EventPublisher
	Logger     *slog.Logger
	Now        func() time.Time
}

func (h *UpdateAccommodationHandler) Handle(ctx context.Context, cmd UpdateAccommodationCommand) (*AccommodationResult, error) {
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

	rate, err := money.New(cmd.NightlyRateCents, cmd.Currency)
	if err != nil {
		return nil, fault.Wrap(fault.Validation, "accommodations: invalid nightly rate", err)
	}
	if err := acc.UpdateAttributes(domainaccommodation.UpdateParams{
		Title:       cmd.Title,
		Description: cmd.Description,
		Address: domainaccommodation.Address{
			Line1:   cmd.Line1,
			City:    cmd.City,
			Country: cmd.Country,
		},
		Amenities:   cmd.Amenities,
		MaxGuests:   cmd.MaxGuests,
		NightlyRate: rate,
		Now:         h.now(),
	}); err != nil {
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
	return &AccommodationResult{AccommodationID: string(acc.ID)}, nil
}

func (h *UpdateAccommodationHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

var _ commands.Handler[CreateAccommodationCommand, *AccommodationResult] = (*CreateAccommodationHandler)(nil)
var _ commands.Handler[UpdateAccommodationCommand, *AccommodationResult] = (*UpdateAccommodationHandler)(nil)
