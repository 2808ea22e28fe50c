package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stayhub/internal/app/uow"
	domainaccommodation "stayhub/internal/domain/accommodation"
	domaincomment "stayhub/internal/domain/comment"
	domainreservation "stayhub/internal/domain/reservation"
	domainuser "stayhub/internal/domain/user"
)

// Factory wires Mongo transactions into the generic UnitOfWork interface.
type Factory struct {
	DB *mongo.Database

	UserDir            domainuser.Directory
	AccommodationsRepo domainaccommodation.Repository
	ReservationsRepo   domainreservation.Repository
	CommentsRepo       domaincomment.Repository
}

var ErrUnitOfWorkNotConfigured = errors.New("mongo: unit of work factory missing database")

// Begin starts a MongoDB session/transaction.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.DB == nil {
		return nil, ErrUnitOfWorkNotConfigured
	}
	session, err := f.DB.Client().StartSession()
	if err != nil {
		return nil, err
	}
	txnOpts := options.Transaction().SetReadConcern(f.DB.ReadConcern()).SetWriteConcern(f.DB.WriteConcern())
	if err := session.StartTransaction(txnOpts); err != nil {
		session.EndSession(ctx)
		return nil, err
	}
	return &Unit{
		db:             f.DB,
		session:        session,
		users:          f.UserDir,
		accommodations: f.AccommodationsRepo,
		reservations:   f.ReservationsRepo,
		comments:       f.CommentsRepo,
	}, nil
}

type Unit struct {
	db      *mongo.Database
	session mongo.Session

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
	defer u.session.EndSession(ctx)
	if err := u.session.CommitTransaction(ctx); err != nil {
		return err
	}
	return nil
}

func (u *Unit) Rollback(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.AbortTransaction(ctx)
}

// InjectContext ensures Mongo session is available in context for downstream repos.
func (u *Unit) InjectContext(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, u.session)
}
