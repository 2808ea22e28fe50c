package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestNoticeWindow(t *testing.T) {
	policy := DefaultCancellationPolicy()
	res := newTestReservation(t) // stay starts 2026-10-10

	cases := []struct {
		name string
		now  time.Time
		err  error
	}{
		{"well in advance", time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC), nil},
		{"exactly at the window", time.Date(2026, 10, 8, 23, 0, 0, 0, time.UTC), nil},
		{"one day before", time.Date(2026, 10, 9, 1, 0, 0, 0, time.UTC), ErrNoticeTooShort},
		{"check-in day", time.Date(2026, 10, 10, 8, 0, 0, 0, time.UTC), ErrNoticeTooShort},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := policy.Authorize(res, ActorGuest, tc.now)
			if tc.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.err)
			}
		})
	}
}

func TestHostAndSystemBypassNotice(t *testing.T) {
	policy := DefaultCancellationPolicy()
	res := newTestReservation(t)
	lastMinute := time.Date(2026, 10, 10, 8, 0, 0, 0, time.UTC)

	assert.NoError(t, policy.Authorize(res, ActorHost, lastMinute))
	assert.NoError(t, policy.Authorize(res, ActorSystem, lastMinute))
}

func TestAuthorizeRejectsTerminal(t *testing.T) {
	policy := DefaultCancellationPolicy()
	res := newTestReservation(t)
	require.NoError(t, res.Cancel(ActorGuest, "", testNow))

	err := policy.Authorize(res, ActorHost, testNow)
	assert.ErrorIs(t, err, ErrTerminalState)
}

func TestConfigurableNotice(t *testing.T) {
	policy := CancellationPolicy{MinNoticeDays: 5}
	res := newTestReservation(t)

	assert.ErrorIs(t, policy.Authorize(res, ActorGuest, time.Date(2026, 10, 7, 0, 0, 0, 0, time.UTC)), ErrNoticeTooShort)
	assert.NoError(t, policy.Authorize(res, ActorGuest, time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)))
}
