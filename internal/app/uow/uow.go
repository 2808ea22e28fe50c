package uow

import (
	"context"

	domainaccommodation "stayhub/internal/domain/accommodation"
	domaincomment "stayhub/internal/domain/comment"
	domainreservation "stayhub/internal/domain/reservation"
	domainuser "stayhub/internal/domain/user"
)

// UnitOfWork coordinates repositories inside one atomic transaction
// boundary. The overlap check and the reservation insert must share a unit
// so two concurrent bookings cannot both pass the check before either
// commits; the backing store enforces that guarantee.
type UnitOfWork interface {
	Users() domainuser.Directory
	Accommodations() domainaccommodation.Repository
	Reservations() domainreservation.Repository
	Comments() domaincomment.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
