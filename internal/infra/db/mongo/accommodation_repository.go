package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainaccommodation "stayhub/internal/domain/accommodation"
	"stayhub/internal/domain/shared/money"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type AccommodationRepository struct {
	col *mongo.Collection
}

func NewAccommodationRepository(db *mongo.Database) *AccommodationRepository {
	return &AccommodationRepository{col: db.Collection("agg_accommodation")}
}

func (r *AccommodationRepository) ByID(ctx context.Context, id domainaccommodation.ID) (*domainaccommodation.Accommodation, error) {
	var doc accommodationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainaccommodation.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate()
}

func (r *AccommodationRepository) Save(ctx context.Context, acc *domainaccommodation.Accommodation) error {
	doc := newAccommodationDocument(acc)
	filter := bson.M{"_id": doc.ID, "version": acc.Version}
	doc.Version = acc.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	acc.Version = doc.Version
	return nil
}

func (r *AccommodationRepository) ExistsNotDeleted(ctx context.Context, id domainaccommodation.ID) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"_id": string(id), "deleted": false})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AccommodationRepository) Search(ctx context.Context, params domainaccommodation.SearchParams) (domainaccommodation.SearchResult, error) {
	opts := params.Normalized()
	filter := searchFilter(opts, false)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return domainaccommodation.SearchResult{}, err
	}
	cursor, err := r.col.Find(ctx, filter, pageOptions(opts))
	if err != nil {
		return domainaccommodation.SearchResult{}, err
	}
	defer cursor.Close(ctx)

	items := make([]*domainaccommodation.Accommodation, 0, opts.Limit)
	for cursor.Next(ctx) {
		var doc accommodationDocument
		if err := cursor.Decode(&doc); err != nil {
			return domainaccommodation.SearchResult{}, err
		}
		acc, err := doc.toAggregate()
		if err != nil {
			return domainaccommodation.SearchResult{}, err
		}
		items = append(items, acc)
	}
	if err := cursor.Err(); err != nil {
		return domainaccommodation.SearchResult{}, err
	}
	return domainaccommodation.SearchResult{Items: items, Total: int(total)}, nil
}

func (r *AccommodationRepository) SearchIDs(ctx context.Context, params domainaccommodation.SearchParams) ([]domainaccommodation.ID, int, error) {
	opts := params.Normalized()
	filter := searchFilter(opts, true)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	findOpts := pageOptions(opts).SetProjection(bson.M{"_id": 1})
	cursor, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	ids := make([]domainaccommodation.ID, 0, opts.Limit)
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, err
		}
		ids = append(ids, domainaccommodation.ID(doc.ID))
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}
	return ids, int(total), nil
}

func (r *AccommodationRepository) ByIDs(ctx context.Context, ids []domainaccommodation.ID) ([]*domainaccommodation.Accommodation, error) {
	if len(ids) == 0 {
		return []*domainaccommodation.Accommodation{}, nil
	}
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, string(id))
	}
	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": raw}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	byID := make(map[domainaccommodation.ID]*domainaccommodation.Accommodation, len(ids))
	for cursor.Next(ctx) {
		var doc accommodationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		acc, err := doc.toAggregate()
		if err != nil {
			return nil, err
		}
		byID[acc.ID] = acc
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	// Mongo returns $in matches in arbitrary order; callers rely on the
	// requested order.
	out := make([]*domainaccommodation.Accommodation, 0, len(ids))
	for _, id := range ids {
		if acc, ok := byID[id]; ok {
			out = append(out, acc)
		}
	}
	return out, nil
}

func searchFilter(opts domainaccommodation.SearchParams, withAmenities bool) bson.M {
	filter := bson.M{"deleted": false, "active": true}
	if opts.Host != "" {
		filter["host_id"] = string(opts.Host)
	}
	if opts.City != "" {
		filter["address.city"] = caseInsensitiveExact(opts.City)
	}
	if opts.Country != "" {
		filter["address.country"] = caseInsensitiveExact(opts.Country)
	}
	if opts.MinGuests > 0 {
		filter["max_guests"] = bson.M{"$gte": opts.MinGuests}
	}
	price := bson.M{}
	if opts.PriceMinCents > 0 {
		price["$gte"] = opts.PriceMinCents
	}
	if opts.PriceMaxCents > 0 {
		price["$lte"] = opts.PriceMaxCents
	}
	if len(price) > 0 {
		filter["nightly_rate_cents"] = price
	}
	if withAmenities && len(opts.Amenities) > 0 {
		filter["amenities"] = bson.M{"$all": opts.Amenities}
	}
	return filter
}

func caseInsensitiveExact(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}

func pageOptions(opts domainaccommodation.SearchParams) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "nightly_rate_cents", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(opts.Offset)).
		SetLimit(int64(opts.Limit))
}

type accommodationDocument struct {
	ID               string          `bson:"_id"`
	HostID           string          `bson:"host_id"`
	Title            string          `bson:"title"`
	Description      string          `bson:"description"`
	Address          addressDocument `bson:"address"`
	Amenities        []string        `bson:"amenities"`
	MaxGuests        int             `bson:"max_guests"`
	NightlyRateCents int64           `bson:"nightly_rate_cents"`
	Currency         string          `bson:"currency"`
	Active           bool            `bson:"active"`
	Deleted          bool            `bson:"deleted"`
	DeletedAt        int64           `bson:"deleted_at"`
	CreatedAt        int64           `bson:"created_at"`
	UpdatedAt        int64           `bson:"updated_at"`
	Version          int64           `bson:"version"`
}

type addressDocument struct {
	Line1   string `bson:"line1"`
	City    string `bson:"city"`
	Country string `bson:"country"`
}

func newAccommodationDocument(acc *domainaccommodation.Accommodation) accommodationDocument {
	var deletedAt int64
	if !acc.DeletedAt.IsZero() {
		deletedAt = acc.DeletedAt.UnixMilli()
	}
	return accommodationDocument{
		ID:          string(acc.ID),
		HostID:      string(acc.Host),
		Title:       acc.Title,
		Description: acc.Description,
		Address: addressDocument{
			Line1:   acc.Address.Line1,
			City:    acc.Address.City,
			Country: acc.Address.Country,
		},
		Amenities:        acc.Amenities,
		MaxGuests:        acc.MaxGuests,
		NightlyRateCents: acc.NightlyRate.Amount,
		Currency:         acc.NightlyRate.Currency,
		Active:           acc.Active,
		Deleted:          acc.Deleted,
		DeletedAt:        deletedAt,
		CreatedAt:        acc.CreatedAt.UnixMilli(),
		UpdatedAt:        acc.UpdatedAt.UnixMilli(),
		Version:          acc.Version,
	}
}

func (d accommodationDocument) toAggregate() (*domainaccommodation.Accommodation, error) {
	rate, err := money.New(d.NightlyRateCents, d.Currency)
	if err != nil {
		return nil, err
	}
	acc := &domainaccommodation.Accommodation{
		ID:          domainaccommodation.ID(d.ID),
		Host:        domainaccommodation.HostID(d.HostID),
		Title:       d.Title,
		Description: d.Description,
		Address: domainaccommodation.Address{
			Line1:   d.Address.Line1,
			City:    d.Address.City,
			Country: d.Address.Country,
		},
		Amenities:   d.Amenities,
		MaxGuests:   d.MaxGuests,
		NightlyRate: rate,
		Active:      d.Active,
		Deleted:     d.Deleted,
		CreatedAt:   timestampToTime(d.CreatedAt),
		UpdatedAt:   timestampToTime(d.UpdatedAt),
		Version:     d.Version,
	}
	if d.DeletedAt > 0 {
		acc.DeletedAt = timestampToTime(d.DeletedAt)
	}
	return acc, nil
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

var _ domainaccommodation.Repository = (*AccommodationRepository)(nil)
