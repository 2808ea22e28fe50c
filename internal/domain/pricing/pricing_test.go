package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/money"
)

func TestForStayExactArithmetic(t *testing.T) {
	dr, err := daterange.New(
		time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	quote, err := ForStay(money.Must(10000, "USD"), dr)
	require.NoError(t, err)
	assert.Equal(t, 4, quote.Nights)
	assert.Equal(t, int64(40000), quote.Total.Amount)
	assert.Equal(t, "USD", quote.Total.Currency)
}

func TestForStayRejectsZeroNights(t *testing.T) {
	dr := daterange.DateRange{
		Start: time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC),
	}
	_, err := ForStay(money.Must(10000, "USD"), dr)
	assert.ErrorIs(t, err, ErrTooFewNights)
}
