package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainaccommodation "stayhub/internal/domain/accommodation"
	domainreservation "stayhub/internal/domain/reservation"
	domainrange "stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/money"
	domainuser "stayhub/internal/domain/user"
)

type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection("agg_reservation")}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ID) (*domainreservation.Reservation, error) {
	var doc reservationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainreservation.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate()
}

func (r *ReservationRepository) Save(ctx context.Context, res *domainreservation.Reservation) error {
	doc := newReservationDocument(res)
	filter := bson.M{"_id": doc.ID, "version": res.Version}
	doc.Version = res.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	result, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	res.Version = doc.Version
	return nil
}

func (r *ReservationRepository) ListByAccommodation(ctx context.Context, accommodationID domainaccommodation.ID) ([]*domainreservation.Reservation, error) {
	filter := bson.M{"accommodation_id": string(accommodationID)}
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(createdSort()))
	if err != nil {
		return nil, err
	}
	return decodeReservations(ctx, cursor)
}

func (r *ReservationRepository) ListByGuest(ctx context.Context, guestID domainuser.ID, limit, offset int) ([]*domainreservation.Reservation, int, error) {
	filter := bson.M{"guest_id": string(guestID)}
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	findOpts := options.Find().SetSort(createdSort())
	if offset > 0 {
		findOpts = findOpts.SetSkip(int64(offset))
	}
	if limit > 0 {
		findOpts = findOpts.SetLimit(int64(limit))
	}
	cursor, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	items, err := decodeReservations(ctx, cursor)
	if err != nil {
		return nil, 0, err
	}
	return items, int(total), nil
}

// FindOverlapping matches the half-open rule: an existing stay conflicts
// when it starts before the candidate ends and ends after the candidate
// starts.
func (r *ReservationRepository) FindOverlapping(ctx context.Context, accommodationID domainaccommodation.ID, dr domainrange.DateRange) ([]*domainreservation.Reservation, error) {
	filter := bson.M{
		"accommodation_id": string(accommodationID),
		"status":           bson.M{"$ne": string(domainreservation.StatusCancelled)},
		"range.start":      bson.M{"$lt": dr.End.UnixMilli()},
		"range.end":        bson.M{"$gt": dr.Start.UnixMilli()},
	}
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(createdSort()))
	if err != nil {
		return nil, err
	}
	return decodeReservations(ctx, cursor)
}

func (r *ReservationRepository) CountFutureActive(ctx context.Context, accommodationID domainaccommodation.ID, from time.Time) (int, error) {
	filter := bson.M{
		"accommodation_id": string(accommodationID),
		"status":           bson.M{"$ne": string(domainreservation.StatusCancelled)},
		"range.start":      bson.M{"$gte": domainrange.Truncate(from).UnixMilli()},
	}
	count, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func decodeReservations(ctx context.Context, cursor *mongo.Cursor) ([]*domainreservation.Reservation, error) {
	defer cursor.Close(ctx)
	items := make([]*domainreservation.Reservation, 0)
	for cursor.Next(ctx) {
		var doc reservationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		res, err := doc.toAggregate()
		if err != nil {
			return nil, err
		}
		items = append(items, res)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func createdSort() bson.D {
	return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}
}

type reservationDocument struct {
	ID              string        `bson:"_id"`
	AccommodationID string        `bson:"accommodation_id"`
	GuestID         string        `bson:"guest_id"`
	HostID          string        `bson:"host_id"`
	Range           rangeDocument `bson:"range"`
	Guests          int           `bson:"guests"`
	Nights          int           `bson:"nights"`
	TotalCents      int64         `bson:"total_cents"`
	Currency        string        `bson:"currency"`
	Status          string        `bson:"status"`
	CancelledAt     int64         `bson:"cancelled_at"`
	CancelReason    string        `bson:"cancel_reason"`
	CancelledBy     string        `bson:"cancelled_by"`
	CreatedAt       int64         `bson:"created_at"`
	UpdatedAt       int64         `bson:"updated_at"`
	Version         int64         `bson:"version"`
}

type rangeDocument struct {
	Start int64 `bson:"start"`
	End   int64 `bson:"end"`
}

func newReservationDocument(res *domainreservation.Reservation) reservationDocument {
	var cancelledAt int64
	if !res.CancelledAt.IsZero() {
		cancelledAt = res.CancelledAt.UnixMilli()
	}
	return reservationDocument{
		ID:              string(res.ID),
		AccommodationID: string(res.AccommodationID),
		GuestID:         string(res.GuestID),
		HostID:          string(res.HostID),
		Range:           rangeDocument{Start: res.Range.Start.UnixMilli(), End: res.Range.End.UnixMilli()},
		Guests:          res.Guests,
		Nights:          res.Nights,
		TotalCents:      res.Total.Amount,
		Currency:        res.Total.Currency,
		Status:          string(res.Status),
		CancelledAt:     cancelledAt,
		CancelReason:    res.CancelReason,
		CancelledBy:     string(res.CancelledBy),
		CreatedAt:       res.CreatedAt.UnixMilli(),
		UpdatedAt:       res.UpdatedAt.UnixMilli(),
		Version:         res.Version,
	}
}

func (d reservationDocument) toAggregate() (*domainreservation.Reservation, error) {
	// Legacy rows may lack a priced total; they decode to a zero value.
	var total money.Money
	if d.Currency != "" {
		decoded, err := money.New(d.TotalCents, d.Currency)
		if err != nil {
			return nil, err
		}
		total = decoded
	}
	res := &domainreservation.Reservation{
		ID:              domainreservation.ID(d.ID),
		AccommodationID: domainaccommodation.ID(d.AccommodationID),
		GuestID:         domainuser.ID(d.GuestID),
		HostID:          domainaccommodation.HostID(d.HostID),
		Range:           domainrange.DateRange{Start: timestampToTime(d.Range.Start), End: timestampToTime(d.Range.End)},
		Guests:          d.Guests,
		Nights:          d.Nights,
		Total:           total,
		Status:          domainreservation.Status(d.Status),
		CancelReason:    d.CancelReason,
		CancelledBy:     domainreservation.Actor(d.CancelledBy),
		CreatedAt:       timestampToTime(d.CreatedAt),
		UpdatedAt:       timestampToTime(d.UpdatedAt),
		Version:         d.Version,
	}
	if d.CancelledAt > 0 {
		res.CancelledAt = timestampToTime(d.CancelledAt)
	}
	return res, nil
}

var _ domainreservation.Repository = (*ReservationRepository)(nil)
