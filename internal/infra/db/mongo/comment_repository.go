package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainaccommodation "stayhub/internal/domain/accommodation"
	domaincomment "stayhub/internal/domain/comment"
	domainuser "stayhub/internal/domain/user"
)

type CommentRepository struct {
	col *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{col: db.Collection("comments")}
}

func (r *CommentRepository) ListByAccommodation(ctx context.Context, accommodationID domainaccommodation.ID) ([]*domaincomment.Comment, error) {
	filter := bson.M{"accommodation_id": string(accommodationID)}
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]*domaincomment.Comment, 0)
	for cursor.Next(ctx) {
		var doc commentDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, doc.toComment())
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

type commentDocument struct {
	ID              string `bson:"_id"`
	AccommodationID string `bson:"accommodation_id"`
	AuthorID        string `bson:"author_id"`
	Rating          int    `bson:"rating"`
	Text            string `bson:"text"`
	CreatedAt       int64  `bson:"created_at"`
}

func (d commentDocument) toComment() *domaincomment.Comment {
	return &domaincomment.Comment{
		ID:              domaincomment.ID(d.ID),
		AccommodationID: domainaccommodation.ID(d.AccommodationID),
		AuthorID:        domainuser.ID(d.AuthorID),
		Rating:          d.Rating,
		Text:            d.Text,
		CreatedAt:       timestampToTime(d.CreatedAt),
	}
}

var _ domaincomment.Repository = (*CommentRepository)(nil)
