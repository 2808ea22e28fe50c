package daterange

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: end must be after start")
)

// DateRange represents a half-open stay interval [start, end).
type DateRange struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (DateRange, error) {
	dr := DateRange{Start: Truncate(start), End: Truncate(end)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ErrInvalidRange
	}
	if !dr.End.After(dr.Start) {
		return ErrInvalidRange
	}
	return nil
}

// Nights counts whole days between start and end using calendar days,
// not elapsed hours, so DST shifts cannot skew the count.
func (dr DateRange) Nights() int {
	return int(epochDay(dr.End) - epochDay(dr.Start))
}

// Overlaps reports interval intersection under half-open semantics:
// back-to-back stays sharing a boundary day do not conflict.
func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.Start.Before(other.End) && other.Start.Before(dr.End)
}

func (dr DateRange) ContainsDate(t time.Time) bool {
	t = Truncate(t)
	return !t.Before(dr.Start) && t.Before(dr.End)
}

func (dr DateRange) IsZero() bool {
	return dr.Start.IsZero() && dr.End.IsZero()
}

// Truncate drops the time-of-day component, keeping the UTC calendar date.
func Truncate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from a to b; negative when b
// precedes a.
func DaysBetween(a, b time.Time) int {
	return int(epochDay(b) - epochDay(a))
}

func epochDay(t time.Time) int64 {
	return Truncate(t).Unix() / 86400
}
