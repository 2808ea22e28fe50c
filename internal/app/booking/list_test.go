package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainaccommodation "stayhub/internal/domain/accommodation"
)

func TestListGuestReservationsPages(t *testing.T) {
	env := newTestEnv(t)
	handler := newRequestHandler(env, &stubNotifier{})
	ctx := context.Background()

	for i, startDay := range []int{5, 10, 15} {
		cmd := validRequest()
		cmd.CommandID = string(rune('a' + i))
		cmd.Start = stayDay(startDay)
		cmd.End = stayDay(startDay + 2)
		_, err := handler.Handle(ctx, cmd)
		require.NoError(t, err)
	}

	listHandler := &ListGuestReservationsHandler{UoWFactory: env.factory}
	page, err := listHandler.Handle(ctx, ListGuestReservationsQuery{GuestID: "guest-1", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 3, page.Total)

	rest, err := listHandler.Handle(ctx, ListGuestReservationsQuery{GuestID: "guest-1", Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, rest.Items, 1)
	assert.Equal(t, 3, rest.Total)

	empty, err := listHandler.Handle(ctx, ListGuestReservationsQuery{GuestID: "other"})
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.Zero(t, empty.Total)
}

func TestListHostReservationsChecksOwnership(t *testing.T) {
	env := newTestEnv(t)
	seedReservation(t, env)
	handler := &ListHostReservationsHandler{UoWFactory: env.factory}
	ctx := context.Background()

	page, err := handler.Handle(ctx, ListHostReservationsQuery{HostID: "host-1", AccommodationID: "acc-1"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	_, err = handler.Handle(ctx, ListHostReservationsQuery{HostID: "guest-1", AccommodationID: "acc-1"})
	assert.ErrorIs(t, err, ErrNotReservationHost)

	_, err = handler.Handle(ctx, ListHostReservationsQuery{HostID: "host-1", AccommodationID: "missing"})
	assert.ErrorIs(t, err, domainaccommodation.ErrNotFound)
}
