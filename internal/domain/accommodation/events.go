package accommodation

import "time"

type Created struct {
	AccommodationID ID
	HostID          HostID
	At              time.Time
}

func (e Created) EventName() string     { return "accommodation.created" }
func (e Created) AggregateID() string   { return string(e.AccommodationID) }
func (e Created) OccurredAt() time.Time { return e.At }

type Updated struct {
	AccommodationID ID
	At              time.Time
}

func (e Updated) EventName() string     { return "accommodation.updated" }
func (e Updated) AggregateID() string   { return string(e.AccommodationID) }
func (e Updated) OccurredAt() time.Time { return e.At }

type Deleted struct {
	AccommodationID ID
	HostID          HostID
	At              time.Time
}

func (e Deleted) EventName() string     { return "accommodation.deleted" }
func (e Deleted) AggregateID() string   { return string(e.AccommodationID) }
func (e Deleted) OccurredAt() time.Time { return e.At }
