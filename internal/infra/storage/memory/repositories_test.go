package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainaccommodation "stayhub/internal/domain/accommodation"
	domainreservation "stayhub/internal/domain/reservation"
	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/money"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func seedAccommodation(t *testing.T, repo *AccommodationRepository, id string, rateCents int64, amenities []string) {
	t.Helper()
	acc, err := domainaccommodation.New(domainaccommodation.CreateParams{
		ID:          domainaccommodation.ID(id),
		Host:        "host-1",
		Title:       "Listing " + id,
		Address:     domainaccommodation.Address{City: "Lisbon", Country: "Portugal"},
		Amenities:   amenities,
		MaxGuests:   4,
		NightlyRate: money.Must(rateCents, "USD"),
		Now:         testNow,
	})
	require.NoError(t, err)
	acc.ClearEvents()
	require.NoError(t, repo.Save(context.Background(), acc))
}

func TestAccommodationSearchPaging(t *testing.T) {
	repo := NewAccommodationRepository()
	seedAccommodation(t, repo, "a", 300, nil)
	seedAccommodation(t, repo, "b", 100, nil)
	seedAccommodation(t, repo, "c", 200, nil)
	ctx := context.Background()

	page, err := repo.Search(ctx, domainaccommodation.SearchParams{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, domainaccommodation.ID("b"), page.Items[0].ID)
	assert.Equal(t, domainaccommodation.ID("c"), page.Items[1].ID)

	rest, err := repo.Search(ctx, domainaccommodation.SearchParams{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, rest.Items, 1)
	assert.Equal(t, domainaccommodation.ID("a"), rest.Items[0].ID)
}

func TestAccommodationSearchIDsAndByIDs(t *testing.T) {
	repo := NewAccommodationRepository()
	seedAccommodation(t, repo, "a", 300, []string{"wifi", "pool"})
	seedAccommodation(t, repo, "b", 100, []string{"wifi"})
	seedAccommodation(t, repo, "c", 200, []string{"pool", "wifi"})
	ctx := context.Background()

	ids, total, err := repo.SearchIDs(ctx, domainaccommodation.SearchParams{Amenities: []string{"wifi", "pool"}})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, []domainaccommodation.ID{"c", "a"}, ids)

	items, err := repo.ByIDs(ctx, []domainaccommodation.ID{"a", "missing", "c"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, domainaccommodation.ID("a"), items[0].ID)
	assert.Equal(t, domainaccommodation.ID("c"), items[1].ID)
}

func seedReservation(t *testing.T, repo *ReservationRepository, id string, startDay, endDay int, status domainreservation.Status) {
	t.Helper()
	dr, err := daterange.New(
		time.Date(2026, 10, startDay, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, endDay, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	res, err := domainreservation.New(domainreservation.CreateParams{
		ID:              domainreservation.ID(id),
		AccommodationID: "acc-1",
		GuestID:         "guest-1",
		HostID:          "host-1",
		Range:           dr,
		Guests:          2,
		Nights:          dr.Nights(),
		Total:           money.Must(1000, "USD"),
		Now:             testNow,
	})
	require.NoError(t, err)
	res.ClearEvents()
	res.Status = status
	require.NoError(t, repo.Save(context.Background(), res))
}

func TestReservationFindOverlapping(t *testing.T) {
	repo := NewReservationRepository()
	seedReservation(t, repo, "res-1", 10, 14, domainreservation.StatusConfirmed)
	seedReservation(t, repo, "res-2", 10, 14, domainreservation.StatusCancelled)
	ctx := context.Background()

	dr, err := daterange.New(
		time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	matches, err := repo.FindOverlapping(ctx, "acc-1", dr)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, domainreservation.ID("res-1"), matches[0].ID)

	adjacent, err := daterange.New(
		time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	none, err := repo.FindOverlapping(ctx, "acc-1", adjacent)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReservationCountFutureActive(t *testing.T) {
	repo := NewReservationRepository()
	seedReservation(t, repo, "res-1", 10, 14, domainreservation.StatusPending)
	seedReservation(t, repo, "res-2", 20, 24, domainreservation.StatusConfirmed)
	seedReservation(t, repo, "res-3", 20, 24, domainreservation.StatusCancelled)
	ctx := context.Background()

	count, err := repo.CountFutureActive(ctx, "acc-1", time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	all, err := repo.CountFutureActive(ctx, "acc-1", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, all)
}

func TestReservationListByGuestPaging(t *testing.T) {
	repo := NewReservationRepository()
	seedReservation(t, repo, "res-1", 5, 7, domainreservation.StatusPending)
	seedReservation(t, repo, "res-2", 10, 12, domainreservation.StatusPending)
	seedReservation(t, repo, "res-3", 15, 17, domainreservation.StatusPending)
	ctx := context.Background()

	page, total, err := repo.ListByGuest(ctx, "guest-1", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 2)

	rest, total, err := repo.ListByGuest(ctx, "guest-1", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, rest, 1)
}
