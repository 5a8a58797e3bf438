package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablebook/internal/domain"
)

func TestSlotGridSlots(t *testing.T) {
	t.Parallel()

	grid := domain.SlotGrid{OpenHour: 9, CloseHour: 21, StepMinutes: 30}
	slots := grid.Slots()

	require.Len(t, slots, 24)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "09:30", slots[1])
	assert.Equal(t, "20:30", slots[len(slots)-1])
}

func TestSlotGridValid(t *testing.T) {
	t.Parallel()

	grid := domain.SlotGrid{OpenHour: 9, CloseHour: 21, StepMinutes: 30}

	assert.True(t, grid.Valid("09:00"))
	assert.True(t, grid.Valid("20:30"))

	assert.False(t, grid.Valid("21:00"), "closing hour is not bookable")
	assert.False(t, grid.Valid("08:30"), "before opening")
	assert.False(t, grid.Valid("18:15"), "off the step")
	assert.False(t, grid.Valid("18h30"))
	assert.False(t, grid.Valid(""))
}

func TestSlotGridSlotAt(t *testing.T) {
	t.Parallel()

	grid := domain.SlotGrid{OpenHour: 9, CloseHour: 21, StepMinutes: 30}

	at := func(h, m int) time.Time {
		return time.Date(2025, 6, 1, h, m, 0, 0, time.UTC)
	}

	assert.Equal(t, "12:00", grid.SlotAt(at(12, 14)))
	assert.Equal(t, "12:30", grid.SlotAt(at(12, 59)))
	assert.Equal(t, "09:00", grid.SlotAt(at(7, 45)), "clamps to opening")
	assert.Equal(t, "20:30", grid.SlotAt(at(22, 5)), "clamps to last slot")
}

func TestWithinServingWindow(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)

	assert.False(t, domain.WithinServingWindow(start, start.Add(-time.Second)))
	assert.True(t, domain.WithinServingWindow(start, start))
	assert.True(t, domain.WithinServingWindow(start, start.Add(59*time.Minute)))
	assert.False(t, domain.WithinServingWindow(start, start.Add(time.Hour)), "window is half open")
}

func TestSlotStart(t *testing.T) {
	t.Parallel()

	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	got, err := domain.SlotStart(date, "18:30", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC), got)

	_, err = domain.SlotStart(date, "half past six", time.UTC)
	assert.Error(t, err)
}
