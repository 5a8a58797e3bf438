package availability_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablebook/internal/domain"
	"tablebook/internal/service/availability"
)

func entry(tableID int64, capacity int, slot string) domain.LedgerEntry {
	return domain.LedgerEntry{
		OccupancyEntry: domain.OccupancyEntry{
			TableID: tableID,
			Slot:    slot,
		},
		TableCapacity: capacity,
	}
}

func TestGroupByTime(t *testing.T) {
	t.Parallel()

	entries := []domain.LedgerEntry{
		entry(3, 4, "18:00"),
		entry(1, 2, "18:00"),
		entry(5, 4, "19:30"),
	}

	got := availability.GroupByTime(entries)

	require.Len(t, got, 2)
	assert.Equal(t, []int64{1, 3}, got["18:00"].TableIDs)
	assert.Equal(t, map[int]int{2: 1, 4: 1}, got["18:00"].BySeats)
	assert.Equal(t, []int64{5}, got["19:30"].TableIDs)
}

func TestFilterAvailable(t *testing.T) {
	t.Parallel()

	grid := domain.SlotGrid{OpenHour: 9, CloseHour: 21, StepMinutes: 30}
	booked := availability.GroupByTime([]domain.LedgerEntry{
		entry(3, 4, "18:00"),
	})

	times := availability.FilterAvailable(grid.Slots(), booked, 3)

	// a claim blocks exactly its own slot, adjacent slots stay open
	assert.NotContains(t, times, "18:00")
	assert.Contains(t, times, "17:30")
	assert.Contains(t, times, "18:30")

	other := availability.FilterAvailable(grid.Slots(), booked, 4)
	assert.Contains(t, other, "18:00", "another table is unaffected")
}

// A cancelled booking deletes its ledger row, so the same slot must be
// offered again on the next read.
func TestFilterAvailableAfterCancel(t *testing.T) {
	t.Parallel()

	grid := domain.SlotGrid{OpenHour: 9, CloseHour: 21, StepMinutes: 30}
	ledger := []domain.LedgerEntry{
		entry(3, 4, "18:00"),
		entry(3, 4, "19:00"),
	}

	before := availability.FilterAvailable(grid.Slots(), availability.GroupByTime(ledger), 3)
	require.NotContains(t, before, "18:00")

	// cancel frees the 18:00 claim
	freed := availability.GroupByTime(ledger[1:])

	after := availability.FilterAvailable(grid.Slots(), freed, 3)
	assert.Contains(t, after, "18:00")
	assert.NotContains(t, after, "19:00", "the other claim still holds")
}

func TestFilterOpen(t *testing.T) {
	t.Parallel()

	grid := domain.SlotGrid{OpenHour: 18, CloseHour: 19, StepMinutes: 30}
	booked := availability.GroupByTime([]domain.LedgerEntry{
		entry(1, 2, "18:00"),
		entry(2, 4, "18:00"),
		entry(1, 2, "18:30"),
	})

	times := availability.FilterOpen(grid.Slots(), booked, 2)

	assert.NotContains(t, times, "18:00", "all tables claimed")
	assert.Contains(t, times, "18:30", "one table still free")
}

func TestFloorStatuses(t *testing.T) {
	t.Parallel()

	loc := time.UTC
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 1, 18, 45, 0, 0, time.UTC)

	tables := []domain.Table{
		{ID: 1, Name: "T1", Capacity: 2},
		{ID: 2, Name: "T2", Capacity: 4},
		{ID: 3, Name: "T3", Capacity: 4},
		{ID: 4, Name: "T4", Capacity: 6},
	}

	entries := []domain.LedgerEntry{
		// confirmed booking at 18:30: within the window at 18:45
		{
			OccupancyEntry: domain.OccupancyEntry{TableID: 1, OwnerKind: domain.OwnerBooking, Date: day, Slot: "18:30"},
			Confirmed:      true,
			Guest:          "Ada Lovelace",
		},
		// confirmed booking at 17:00: window over by 18:45
		{
			OccupancyEntry: domain.OccupancyEntry{TableID: 2, OwnerKind: domain.OwnerBooking, Date: day, Slot: "17:00"},
			Confirmed:      true,
		},
		// unconfirmed booking never holds the floor
		{
			OccupancyEntry: domain.OccupancyEntry{TableID: 3, OwnerKind: domain.OwnerBooking, Date: day, Slot: "18:30"},
		},
		// pending walk-in sale
		{
			OccupancyEntry: domain.OccupancyEntry{TableID: 4, OwnerKind: domain.OwnerSale, Date: day, Slot: "18:30"},
			SaleStatus:     domain.SalePending,
		},
	}

	got := availability.FloorStatuses(tables, entries, now, loc)
	require.Len(t, got, 4)

	byID := make(map[int64]domain.FloorTable)
	for _, ft := range got {
		byID[ft.ID] = ft
	}

	assert.Equal(t, domain.TableOccupied, byID[1].Status)
	assert.Equal(t, "Ada Lovelace", byID[1].Guest)
	assert.Equal(t, "18:30", byID[1].Slot)

	assert.Equal(t, domain.TableAvailable, byID[2].Status)
	assert.Equal(t, domain.TableAvailable, byID[3].Status)
	assert.Equal(t, domain.TableOccupied, byID[4].Status)
}
