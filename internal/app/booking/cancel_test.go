package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainreservation "stayhub/internal/domain/reservation"
)

func newCancelHandler(env *testEnv, notifier *stubNotifier, now func() time.Time) *CancelBookingHandler {
	return &CancelBookingHandler{
		UoWFactory: env.factory,
		Policy:     domainreservation.DefaultCancellationPolicy(),
		Notifier:   notifier,
		Now:        now,
	}
}

func TestGuestCancelWithNotice(t *testing.T) {
	env := newTestEnv(t)
	seedReservation(t, env) // stay starts 2026-10-20
	notifier := &stubNotifier{}
	handler := newCancelHandler(env, notifier, fixedClock)

	result, err := handler.Handle(context.Background(), CancelReservationCommand{
		ReservationID: "res-1",
		ActorID:       "guest-1",
		Reason:        "plans changed",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domainreservation.StatusCancelled), result.Status)
	assert.Equal(t, string(domainreservation.ActorGuest), result.CancelledBy)
	assert.Contains(t, notifier.sent, "host-1:reservation.cancelled")

	stored, err := env.reservations.ByID(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Equal(t, "plans changed", stored.CancelReason)
}

func TestGuestCancelTooLate(t *testing.T) {
	env := newTestEnv(t)
	seedReservation(t, env)
	// One day before check-in is inside the notice window.
	lateClock := func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }
	handler := newCancelHandler(env, &stubNotifier{}, lateClock)

	_, err := handler.Handle(context.Background(), CancelReservationCommand{
		ReservationID: "res-1",
		ActorID:       "guest-1",
	})
	assert.ErrorIs(t, err, domainreservation.ErrNoticeTooShort)

	stored, err := env.reservations.ByID(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Equal(t, domainreservation.StatusPending, stored.Status)
}

func TestHostCancelAnyTime(t *testing.T) {
	env := newTestEnv(t)
	seedReservation(t, env)
	lateClock := func() time.Time { return time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC) }
	notifier := &stubNotifier{}
	handler := newCancelHandler(env, notifier, lateClock)

	result, err := handler.Handle(context.Background(), CancelReservationCommand{
		ReservationID: "res-1",
		ActorID:       "host-1",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domainreservation.ActorHost), result.CancelledBy)
	assert.Contains(t, notifier.sent, "guest-1:reservation.cancelled")

	stored, err := env.reservations.ByID(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Equal(t, "cancelled by host", stored.CancelReason)
}

func TestCancelRequiresParty(t *testing.T) {
	env := newTestEnv(t)
	seedReservation(t, env)
	handler := newCancelHandler(env, &stubNotifier{}, fixedClock)

	_, err := handler.Handle(context.Background(), CancelReservationCommand{
		ReservationID: "res-1",
		ActorID:       "stranger",
	})
	assert.ErrorIs(t, err, ErrNotReservationParty)
}

func TestCancelTerminalReservation(t *testing.T) {
	env := newTestEnv(t)
	seedReservation(t, env)
	handler := newCancelHandler(env, &stubNotifier{}, fixedClock)
	ctx := context.Background()

	_, err := handler.Handle(ctx, CancelReservationCommand{ReservationID: "res-1", ActorID: "guest-1"})
	require.NoError(t, err)

	_, err = handler.Handle(ctx, CancelReservationCommand{ReservationID: "res-1", ActorID: "guest-1"})
	assert.ErrorIs(t, err, domainreservation.ErrTerminalState)
}
