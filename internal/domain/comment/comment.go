package comment

import (
	"context"
	"time"

	"stayhub/internal/domain/accommodation"
	"stayhub/internal/domain/shared/fault"
	"stayhub/internal/domain/user"
)

var ErrInvalidRating = fault.New(fault.Validation, "comment: rating must be between 1 and 5")

type ID string

// Comment is a guest's rated feedback on an accommodation. The engine only
// reads comments, for rating averages; authoring belongs to the request
// layer.
type Comment struct {
	ID              ID
	AccommodationID accommodation.ID
	AuthorID        user.ID
	Rating          int
	Text            string
	CreatedAt       time.Time
}

// Repository is the read-only contract the metrics aggregator consumes.
type Repository interface {
	ListByAccommodation(ctx context.Context, accommodationID accommodation.ID) ([]*Comment, error)
}
