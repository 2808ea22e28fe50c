package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reservationWithRange(t *testing.T, startDay, endDay int, status Status) *Reservation {
	t.Helper()
	res := newTestReservation(t)
	res.Range = testRange(t, startDay, endDay)
	res.Status = status
	return res
}

func TestConflictsSkipsCancelled(t *testing.T) {
	existing := []*Reservation{
		reservationWithRange(t, 10, 14, StatusCancelled),
		nil,
	}
	assert.False(t, Conflicts(existing, testRange(t, 11, 13)))

	existing = append(existing, reservationWithRange(t, 10, 14, StatusPending))
	assert.True(t, Conflicts(existing, testRange(t, 11, 13)))
}

func TestConflictsHalfOpenBoundary(t *testing.T) {
	existing := []*Reservation{reservationWithRange(t, 10, 14, StatusConfirmed)}
	// Checking in on another stay's checkout day is allowed.
	assert.False(t, Conflicts(existing, testRange(t, 14, 18)))
	assert.False(t, Conflicts(existing, testRange(t, 6, 10)))
	assert.True(t, Conflicts(existing, testRange(t, 13, 15)))
}

func TestCountFutureObligations(t *testing.T) {
	from := time.Date(2026, 10, 12, 18, 30, 0, 0, time.UTC)
	existing := []*Reservation{
		reservationWithRange(t, 5, 8, StatusCompleted),   // past start
		reservationWithRange(t, 12, 15, StatusPending),   // starts on the cutoff day
		reservationWithRange(t, 20, 22, StatusConfirmed), // future
		reservationWithRange(t, 20, 22, StatusCancelled), // cancelled never binds
		nil,
	}
	assert.Equal(t, 2, CountFutureObligations(existing, from))

	res := reservationWithRange(t, 12, 15, StatusPending)
	require.True(t, IsFutureObligation(res, from))
	assert.False(t, IsFutureObligation(res, time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC)))
}
