package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainaccommodation "stayhub/internal/domain/accommodation"
	domainreservation "stayhub/internal/domain/reservation"
	"stayhub/internal/domain/shared/money"
	domainuser "stayhub/internal/domain/user"
	"stayhub/internal/infra/storage/memory"
)

var fixedNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func stayDay(d int) time.Time {
	return time.Date(2026, 10, d, 0, 0, 0, 0, time.UTC)
}

type testEnv struct {
	factory        memory.Factory
	users          *memory.UserDirectory
	accommodations *memory.AccommodationRepository
	reservations   *memory.ReservationRepository
	comments       *memory.CommentRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		users:          memory.NewUserDirectory(),
		accommodations: memory.NewAccommodationRepository(),
		reservations:   memory.NewReservationRepository(),
		comments:       memory.NewCommentRepository(),
	}
	env.factory = memory.Factory{
		UserDir:            env.users,
		AccommodationsRepo: env.accommodations,
		ReservationsRepo:   env.reservations,
		CommentsRepo:       env.comments,
	}

	ctx := context.Background()
	require.NoError(t, env.users.Put(ctx, &domainuser.User{
		ID:      "guest-1",
		Email:   "guest@example.com",
		Enabled: true,
		Roles:   []domainuser.Role{domainuser.RoleGuest},
	}))
	require.NoError(t, env.users.Put(ctx, &domainuser.User{
		ID:      "host-1",
		Email:   "host@example.com",
		Enabled: true,
		Roles:   []domainuser.Role{domainuser.RoleHost, domainuser.RoleGuest},
	}))
	require.NoError(t, env.users.Put(ctx, &domainuser.User{
		ID:      "disabled-1",
		Email:   "off@example.com",
		Enabled: false,
		Roles:   []domainuser.Role{domainuser.RoleGuest},
	}))

	acc, err := domainaccommodation.New(domainaccommodation.CreateParams{
		ID:          "acc-1",
		Host:        "host-1",
		Title:       "Seaside flat",
		Address:     domainaccommodation.Address{City: "Lisbon", Country: "Portugal"},
		Amenities:   []string{"wifi", "pool"},
		MaxGuests:   4,
		NightlyRate: money.Must(10000, "USD"),
		Now:         fixedNow,
	})
	require.NoError(t, err)
	acc.ClearEvents()
	require.NoError(t, env.accommodations.Save(ctx, acc))
	return env
}

type stubNotifier struct {
	sent []string
	fail error
}

func (s *stubNotifier) Notify(ctx context.Context, userID string, title, body, tag string) error {
	if s.fail != nil {
		return s.fail
	}
	s.sent = append(s.sent, userID+":"+tag)
	return nil
}

func newRequestHandler(env *testEnv, notifier *stubNotifier) *RequestBookingHandler {
	return &RequestBookingHandler{
		UoWFactory: env.factory,
		Notifier:   notifier,
		Now:        fixedClock,
	}
}

func validRequest() RequestBookingCommand {
	return RequestBookingCommand{
		CommandID:       "res-1",
		AccommodationID: "acc-1",
		GuestID:         "guest-1",
		Start:           stayDay(20),
		End:             stayDay(24),
		Guests:          2,
	}
}

func TestRequestBookingComputesExactPrice(t *testing.T) {
	env := newTestEnv(t)
	notifier := &stubNotifier{}
	handler := newRequestHandler(env, notifier)

	result, err := handler.Handle(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "res-1", result.ReservationID)
	assert.Equal(t, 4, result.Nights)
	assert.Equal(t, int64(40000), result.TotalCents)
	assert.Equal(t, "USD", result.Currency)
	assert.Equal(t, string(domainreservation.StatusPending), result.Status)

	stored, err := env.reservations.ByID(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Equal(t, domainreservation.StatusPending, stored.Status)
	assert.Equal(t, int64(40000), stored.Total.Amount)

	// Both parties hear about the request.
	assert.Contains(t, notifier.sent, "host-1:reservation.requested")
	assert.Contains(t, notifier.sent, "guest-1:reservation.requested")
}

func TestRequestBookingGates(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*RequestBookingCommand)
		prepare func(t *testing.T, env *testEnv)
		wantErr error
	}{
		{
			name:    "unknown user",
			mutate:  func(cmd *RequestBookingCommand) { cmd.GuestID = "nobody" },
			wantErr: ErrUserNotEligible,
		},
		{
			name:    "disabled user",
			mutate:  func(cmd *RequestBookingCommand) { cmd.GuestID = "disabled-1" },
			wantErr: ErrUserNotEligible,
		},
		{
			name:    "unknown accommodation",
			mutate:  func(cmd *RequestBookingCommand) { cmd.AccommodationID = "missing" },
			wantErr: domainaccommodation.ErrNotFound,
		},
		{
			name: "deleted accommodation",
			prepare: func(t *testing.T, env *testEnv) {
				acc, err := env.accommodations.ByID(context.Background(), "acc-1")
				require.NoError(t, err)
				require.NoError(t, acc.SoftDelete(fixedNow))
				require.NoError(t, env.accommodations.Save(context.Background(), acc))
			},
			wantErr: domainaccommodation.ErrNotFound,
		},
		{
			name: "inactive accommodation",
			prepare: func(t *testing.T, env *testEnv) {
				acc, err := env.accommodations.ByID(context.Background(), "acc-1")
				require.NoError(t, err)
				acc.Active = false
				require.NoError(t, env.accommodations.Save(context.Background(), acc))
			},
			wantErr: ErrAccommodationClosed,
		},
		{
			name:    "host books own place",
			mutate:  func(cmd *RequestBookingCommand) { cmd.GuestID = "host-1" },
			wantErr: ErrSelfBooking,
		},
		{
			name: "end not after start",
			mutate: func(cmd *RequestBookingCommand) {
				cmd.Start = stayDay(24)
				cmd.End = stayDay(20)
			},
			wantErr: domainreservation.ErrInvalidDates,
		},
		{
			name: "start in the past",
			mutate: func(cmd *RequestBookingCommand) {
				cmd.Start = time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
				cmd.End = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
			},
			wantErr: ErrStartInPast,
		},
		{
			name:    "too many guests",
			mutate:  func(cmd *RequestBookingCommand) { cmd.Guests = 5 },
			wantErr: ErrCapacityExceeded,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			if tc.prepare != nil {
				tc.prepare(t, env)
			}
			cmd := validRequest()
			if tc.mutate != nil {
				tc.mutate(&cmd)
			}
			handler := newRequestHandler(env, &stubNotifier{})
			_, err := handler.Handle(context.Background(), cmd)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestRequestBookingRejectsOverlap(t *testing.T) {
	env := newTestEnv(t)
	handler := newRequestHandler(env, &stubNotifier{})
	ctx := context.Background()

	first := validRequest()
	_, err := handler.Handle(ctx, first)
	require.NoError(t, err)

	second := validRequest()
	second.CommandID = "res-2"
	second.Start = stayDay(22)
	second.End = stayDay(26)
	_, err = handler.Handle(ctx, second)
	assert.ErrorIs(t, err, domainreservation.ErrDatesUnavailable)

	// A back-to-back stay on the checkout day is allowed.
	third := validRequest()
	third.CommandID = "res-3"
	third.Start = stayDay(24)
	third.End = stayDay(27)
	result, err := handler.Handle(ctx, third)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Nights)
}

func TestRequestBookingAllowsDatesFreedByCancellation(t *testing.T) {
	env := newTestEnv(t)
	handler := newRequestHandler(env, &stubNotifier{})
	ctx := context.Background()

	_, err := handler.Handle(ctx, validRequest())
	require.NoError(t, err)

	res, err := env.reservations.ByID(ctx, "res-1")
	require.NoError(t, err)
	require.NoError(t, res.Cancel(domainreservation.ActorGuest, "plans changed", fixedNow))
	require.NoError(t, env.reservations.Save(ctx, res))

	retry := validRequest()
	retry.CommandID = "res-2"
	_, err = handler.Handle(ctx, retry)
	assert.NoError(t, err)
}

func TestRequestBookingSurvivesNotifierFailure(t *testing.T) {
	env := newTestEnv(t)
	notifier := &stubNotifier{fail: assert.AnError}
	handler := newRequestHandler(env, notifier)

	result, err := handler.Handle(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "res-1", result.ReservationID)
}
