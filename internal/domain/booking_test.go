package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablebook/internal/domain"
)

func TestBookingConfirm(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("plain booking confirms once", func(t *testing.T) {
		t.Parallel()

		var b domain.Booking
		require.NoError(t, b.Confirm(now))
		require.NotNil(t, b.ConfirmedAt)
		assert.True(t, b.IsConfirmed())
		assert.True(t, b.IsActive())

		err := b.Confirm(now.Add(time.Minute))
		assert.ErrorIs(t, err, domain.ErrAlreadyConfirmed)
		assert.Equal(t, now, *b.ConfirmedAt)
	})

	t.Run("cancelled booking cannot confirm", func(t *testing.T) {
		t.Parallel()

		var b domain.Booking
		require.NoError(t, b.Cancel(now))

		err := b.Confirm(now.Add(time.Minute))
		assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
		assert.Nil(t, b.ConfirmedAt)
	})
}

func TestBookingCancel(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("cancel is final", func(t *testing.T) {
		t.Parallel()

		var b domain.Booking
		require.NoError(t, b.Cancel(now))
		assert.False(t, b.IsActive())

		err := b.Cancel(now.Add(time.Minute))
		assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
		assert.Equal(t, now, *b.CancelledAt)
	})

	t.Run("cancel revokes confirmation", func(t *testing.T) {
		t.Parallel()

		var b domain.Booking
		require.NoError(t, b.Confirm(now))
		require.NoError(t, b.Cancel(now.Add(time.Hour)))

		// a confirmed booking is necessarily active
		assert.False(t, b.IsConfirmed())
		assert.False(t, b.IsActive())
	})
}
