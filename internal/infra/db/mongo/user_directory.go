package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	domainuser "stayhub/internal/domain/user"
)

// UserDirectory reads the user collection maintained by the identity
// service. The booking engine never writes it.
type UserDirectory struct {
	col *mongo.Collection
}

func NewUserDirectory(db *mongo.Database) *UserDirectory {
	return &UserDirectory{col: db.Collection("users")}
}

func (d *UserDirectory) ByID(ctx context.Context, id domainuser.ID) (*domainuser.User, error) {
	var doc userDocument
	if err := d.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainuser.ErrNotFound
		}
		return nil, err
	}
	return doc.toUser(), nil
}

func (d *UserDirectory) Exists(ctx context.Context, id domainuser.ID) (bool, error) {
	count, err := d.col.CountDocuments(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type userDocument struct {
	ID        string   `bson:"_id"`
	Email     string   `bson:"email"`
	Name      string   `bson:"name"`
	Enabled   bool     `bson:"enabled"`
	Roles     []string `bson:"roles"`
	CreatedAt int64    `bson:"created_at"`
	UpdatedAt int64    `bson:"updated_at"`
}

func (d userDocument) toUser() *domainuser.User {
	roles := make([]domainuser.Role, 0, len(d.Roles))
	for _, role := range d.Roles {
		roles = append(roles, domainuser.Role(role))
	}
	return &domainuser.User{
		ID:        domainuser.ID(d.ID),
		Email:     d.Email,
		Name:      d.Name,
		Enabled:   d.Enabled,
		Roles:     roles,
		CreatedAt: timestampToTime(d.CreatedAt),
		UpdatedAt: timestampToTime(d.UpdatedAt),
	}
}

var _ domainuser.Directory = (*UserDirectory)(nil)
