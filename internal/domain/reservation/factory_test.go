//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"property-revenue-sync/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	listing := reservation.Listing{ID: "2001", Name: "Marina Studio 12", Category: reservation.CategoryStudio}
	src := reservation.Source{
		ID:                " 101 ",
		ListingID:         "2001",
		GuestName:         "  Ada Lovelace ",
		ArrivalDate:       day("2024-03-01"),
		DepartureDate:     day("2024-03-04"),
		ReservationStatus: "new",
		Payment:           reservation.PaymentInput{TotalAmount: 200, RawStatus: "partial", PaidAmount: amount(50)},
	}

	t.Run("derived amounts", func(t *testing.T) {
		r := reservation.Normalize(src, listing, nil)

		assert.Equal(t, "101", r.ID)
		assert.Equal(t, "Marina Studio 12", r.ListingName)
		assert.Equal(t, reservation.CategoryStudio, r.ListingCategory)
		assert.Equal(t, "Ada Lovelace", r.GuestName)
		assert.Equal(t, reservation.StatusPartiallyPaid, r.PaymentStatus)
		assert.Equal(t, 50.0, r.PaidAmount)
		assert.Equal(t, 150.0, r.RemainingAmount)
		assert.Equal(t, 3, r.Nights())
		assert.False(t, r.FinanceSourced)
		assert.True(t, r.BalancedAmounts())
	})

	t.Run("finance sourced amounts are flagged", func(t *testing.T) {
		r := reservation.Normalize(src, listing, &reservation.FinanceFigures{Total: 210, Paid: 210, Remaining: 0})

		assert.True(t, r.FinanceSourced)
		assert.Equal(t, reservation.StatusPaid, r.PaymentStatus)
		assert.Equal(t, 210.0, r.TotalAmount)
	})

	t.Run("listing name falls back to catalog and category to the name", func(t *testing.T) {
		r := reservation.Normalize(reservation.Source{ID: "7", ListingID: "3"}, reservation.Listing{Name: "Creek 2BR"}, nil)

		assert.Equal(t, "Creek 2BR", r.ListingName)
		assert.Equal(t, reservation.CategoryTwoBR, r.ListingCategory)
		assert.Equal(t, reservation.StatusUnpaid, r.PaymentStatus)
	})
}

func TestReservation_IsStaying(t *testing.T) {
	r := reservation.Reservation{ArrivalDate: day("2024-03-01"), DepartureDate: day("2024-03-04")}

	assert.True(t, r.IsStaying(time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)))
	assert.True(t, r.IsStaying(day("2024-03-03")))
	assert.False(t, r.IsStaying(day("2024-03-04")), "departure day is not a night")
	assert.False(t, r.IsStaying(day("2024-02-29")))
}

func TestParseDate(t *testing.T) {
	dubai := time.FixedZone("GST", 4*3600)

	for _, raw := range []string{"2024-03-01", "2024-03-01T22:15:00Z", "2024-03-01 08:00:00", "2024-03-01T08:00:00"} {
		got, err := reservation.ParseDate(raw, dubai)
		require.NoError(t, err, raw)
		assert.Equal(t, "2024-03-01", reservation.FormatDate(got), raw)
		assert.Equal(t, dubai, got.Location())
	}

	_, err := reservation.ParseDate("01/03/2024", time.UTC)
	assert.ErrorIs(t, err, reservation.ErrInvalidDate)

	_, err = reservation.ParseDate("  ", time.UTC)
	assert.ErrorIs(t, err, reservation.ErrInvalidDate)

	assert.Empty(t, reservation.FormatDate(time.Time{}))
}
