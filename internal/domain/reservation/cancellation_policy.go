package reservation

import (
	"time"

	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/fault"
)

var ErrNoticeTooShort = fault.New(fault.Validation, "reservation: cancellation notice too short")

// DefaultMinNoticeDays is the guest cancellation window. The exact constant
// is a product decision; it is configurable through GUEST_CANCEL_NOTICE_DAYS.
const DefaultMinNoticeDays = 2

// CancellationPolicy holds the voluntary-cancellation rules. Hosts may
// cancel at any time before the stay ends; guests must leave minimum notice
// before check-in.
type CancellationPolicy struct {
	MinNoticeDays int
}

func DefaultCancellationPolicy() CancellationPolicy {
	return CancellationPolicy{MinNoticeDays: DefaultMinNoticeDays}
}

// Authorize checks whether the actor may cancel the reservation now.
// Callers resolve the actor tag first; SYSTEM bypasses the notice window.
func (p CancellationPolicy) Authorize(r *Reservation, actor Actor, now time.Time) error {
	if r.IsTerminal() {
		return ErrTerminalState
	}
	if actor != ActorGuest {
		return nil
	}
	notice := p.MinNoticeDays
	if notice < 0 {
		notice = 0
	}
	if daterange.DaysBetween(now, r.Range.Start) < notice {
		return ErrNoticeTooShort
	}
	return nil
}
