package reservation

import (
	"time"

	"stayhub/internal/domain/accommodation"
	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/money"
	"stayhub/internal/domain/user"
)

type Requested struct {
	ReservationID   ID
	AccommodationID accommodation.ID
	GuestID         user.ID
	Range           daterange.DateRange
	Guests          int
	Total           money.Money
	At              time.Time
}

func (e Requested) EventName() string     { return "reservation.requested" }
func (e Requested) AggregateID() string   { return string(e.ReservationID) }
func (e Requested) OccurredAt() time.Time { return e.At }

type Confirmed struct {
	ReservationID   ID
	AccommodationID accommodation.ID
	At              time.Time
}

func (e Confirmed) EventName() string     { return "reservation.confirmed" }
func (e Confirmed) AggregateID() string   { return string(e.ReservationID) }
func (e Confirmed) OccurredAt() time.Time { return e.At }

type Completed struct {
	ReservationID   ID
	AccommodationID accommodation.ID
	At              time.Time
}

func (e Completed) EventName() string     { return "reservation.completed" }
func (e Completed) AggregateID() string   { return string(e.ReservationID) }
func (e Completed) OccurredAt() time.Time { return e.At }

type Cancelled struct {
	ReservationID   ID
	AccommodationID accommodation.ID
	By              Actor
	Reason          string
	At              time.Time
}

func (e Cancelled) EventName() string     { return "reservation.cancelled" }
func (e Cancelled) AggregateID() string   { return string(e.ReservationID) }
func (e Cancelled) OccurredAt() time.Time { return e.At }
