package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablebook/internal/domain"
	"tablebook/internal/service/booking"
)

func TestSnapshotLines(t *testing.T) {
	t.Parallel()

	menus := map[int64]domain.Menu{
		10: {ID: 10, Name: "Pad Thai", PriceCents: 150},
		11: {ID: 11, Name: "Tom Yum", PriceCents: 300},
	}

	t.Run("totals from price snapshots", func(t *testing.T) {
		t.Parallel()

		lines, total, err := booking.SnapshotLines([]booking.CreateItem{
			{MenuID: 10, Quantity: 2},
			{MenuID: 11, Quantity: 1},
		}, menus)

		require.NoError(t, err)
		require.Len(t, lines, 2)

		assert.Equal(t, 600, total)
		assert.Equal(t, 300, lines[0].SubtotalCents)
		assert.Equal(t, "Pad Thai", lines[0].MenuName)
		assert.Equal(t, 150, lines[0].PriceCents)
		assert.Equal(t, 300, lines[1].SubtotalCents)
	})

	t.Run("empty order totals zero", func(t *testing.T) {
		t.Parallel()

		lines, total, err := booking.SnapshotLines(nil, menus)
		require.NoError(t, err)
		assert.Empty(t, lines)
		assert.Zero(t, total)
	})

	t.Run("unknown menu fails the whole order", func(t *testing.T) {
		t.Parallel()

		_, _, err := booking.SnapshotLines([]booking.CreateItem{
			{MenuID: 10, Quantity: 1},
			{MenuID: 99, Quantity: 1},
		}, menus)

		assert.ErrorIs(t, err, booking.ErrMenuNotFound)
	})
}
