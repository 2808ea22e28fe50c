package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/money"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func testRange(t *testing.T, startDay, endDay int) daterange.DateRange {
	t.Helper()
	dr, err := daterange.New(
		time.Date(2026, 10, startDay, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, endDay, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return dr
}

func newTestReservation(t *testing.T) *Reservation {
	t.Helper()
	res, err := New(CreateParams{
		ID:              "res-1",
		AccommodationID: "acc-1",
		GuestID:         "guest-1",
		HostID:          "host-1",
		Range:           testRange(t, 10, 14),
		Guests:          2,
		Nights:          4,
		Total:           money.Must(40000, "USD"),
		Now:             testNow,
	})
	require.NoError(t, err)
	return res
}

func TestNewStartsPending(t *testing.T) {
	res := newTestReservation(t)
	assert.Equal(t, StatusPending, res.Status)
	assert.Equal(t, 4, res.Nights)
	assert.Equal(t, int64(40000), res.Total.Amount)
	assert.Len(t, res.PendingEvents(), 1)
}

func TestNewValidation(t *testing.T) {
	valid := CreateParams{
		ID:              "res-1",
		AccommodationID: "acc-1",
		GuestID:         "guest-1",
		Range:           testRange(t, 10, 14),
		Guests:          2,
		Nights:          4,
		Now:             testNow,
	}

	missingGuest := valid
	missingGuest.GuestID = " "
	_, err := New(missingGuest)
	assert.ErrorIs(t, err, ErrGuestRequired)

	zeroGuests := valid
	zeroGuests.Guests = 0
	_, err = New(zeroGuests)
	assert.ErrorIs(t, err, ErrInvalidGuests)

	badRange := valid
	badRange.Range = daterange.DateRange{}
	_, err = New(badRange)
	assert.ErrorIs(t, err, ErrInvalidDates)

	zeroNights := valid
	zeroNights.Nights = 0
	_, err = New(zeroNights)
	assert.ErrorIs(t, err, ErrInvalidDates)
}

func TestLifecycleHappyPath(t *testing.T) {
	res := newTestReservation(t)

	require.NoError(t, res.Confirm(testNow))
	assert.Equal(t, StatusConfirmed, res.Status)

	require.NoError(t, res.Complete(testNow.Add(time.Hour)))
	assert.Equal(t, StatusCompleted, res.Status)
	assert.True(t, res.IsTerminal())
}

func TestIllegalTransitionVersusTerminal(t *testing.T) {
	// A live reservation in the wrong status is a validation problem.
	pending := newTestReservation(t)
	err := pending.Complete(testNow)
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, StatusPending, pending.Status)

	confirmed := newTestReservation(t)
	require.NoError(t, confirmed.Confirm(testNow))
	err = confirmed.Confirm(testNow)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	// A terminal reservation reports a state fault instead.
	done := newTestReservation(t)
	require.NoError(t, done.Confirm(testNow))
	require.NoError(t, done.Complete(testNow))
	assert.ErrorIs(t, done.Confirm(testNow), ErrTerminalState)
	assert.ErrorIs(t, done.Complete(testNow), ErrTerminalState)
	assert.ErrorIs(t, done.Cancel(ActorGuest, "", testNow), ErrTerminalState)

	cancelled := newTestReservation(t)
	require.NoError(t, cancelled.Cancel(ActorGuest, "plans changed", testNow))
	assert.ErrorIs(t, cancelled.Confirm(testNow), ErrTerminalState)
	assert.ErrorIs(t, cancelled.Cancel(ActorGuest, "", testNow), ErrTerminalState)
}

func TestCancelStampsActor(t *testing.T) {
	res := newTestReservation(t)
	require.NoError(t, res.Cancel(ActorGuest, "plans changed", testNow))
	assert.Equal(t, StatusCancelled, res.Status)
	assert.Equal(t, ActorGuest, res.CancelledBy)
	assert.Equal(t, "plans changed", res.CancelReason)
	assert.False(t, res.CancelledAt.IsZero())
}

func TestHostCancelDefaultsReason(t *testing.T) {
	res := newTestReservation(t)
	require.NoError(t, res.Confirm(testNow))
	require.NoError(t, res.Cancel(ActorHost, "  ", testNow))
	assert.Equal(t, ActorHost, res.CancelledBy)
	assert.Equal(t, "cancelled by host", res.CancelReason)
}
