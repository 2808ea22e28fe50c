package memory

import (
	"context"
	"errors"

	"stayhub/internal/app/uow"
	domainaccommodation "stayhub/internal/domain/accommodation"
	domaincomment "stayhub/internal/domain/comment"
	domainreservation "stayhub/internal/domain/reservation"
	domainuser "stayhub/internal/domain/user"
)

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	UserDir            domainuser.Directory
	AccommodationsRepo domainaccommodation.Repository
	ReservationsRepo   domainreservation.Repository
	CommentsRepo       domaincomment.Repository
}

// ErrFactoryMisconfigured indicates missing repositories.
var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Begin starts a lightweight transaction boundary. No isolation is provided
// but the abstraction matches the application ports.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.UserDir == nil || f.AccommodationsRepo == nil || f.ReservationsRepo == nil || f.CommentsRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{
		users:          f.UserDir,
		accommodations: f.AccommodationsRepo,
		reservations:   f.ReservationsRepo,
		comments:       f.CommentsRepo,
	}, nil
}

// Unit is a lightweight uow.UnitOfWork backed by in-memory stores.
type Unit struct {
	users          domainuser.Directory
	accommodations domainaccommodation.Repository
	reservations   domainreservation.Repository
	comments       domaincomment.Repository
}

func (u *Unit) Users() domainuser.Directory {
	return u.users
}

func (u *Unit) Accommodations() domainaccommodation.Repository {
	return u.accommodations
}

func (u *Unit) Reservations() domainreservation.Repository {
	return u.reservations
}

func (u *Unit) Comments() domaincomment.Repository {
	return u.comments
}

func (u *Unit) Commit(ctx context.Context) error {
	return nil
}

func (u *Unit) Rollback(ctx context.Context) error {
	return nil
}
