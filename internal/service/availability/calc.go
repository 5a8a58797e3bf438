package availability

import (
	"sort"
	"time"

	"tablebook/internal/domain"
)

// SlotOccupancy summarizes one slot time: how many claims per table
// capacity (for coarse display) and the exact occupied table IDs (for
// precise filtering).
type SlotOccupancy struct {
	BySeats  map[int]int `json:"by_seats"`
	TableIDs []int64     `json:"table_ids"`
}

// GroupByTime folds active ledger entries into a per-slot occupancy
// summary. Entries are already filtered to active owners upstream.
func GroupByTime(entries []domain.LedgerEntry) map[string]SlotOccupancy {
	out := make(map[string]SlotOccupancy)
	for _, e := range entries {
		occ, ok := out[e.Slot]
		if !ok {
			occ = SlotOccupancy{BySeats: make(map[int]int)}
		}

		occ.BySeats[e.TableCapacity]++
		occ.TableIDs = append(occ.TableIDs, e.TableID)
		out[e.Slot] = occ
	}

	for slot, occ := range out {
		sort.Slice(occ.TableIDs, func(i, j int) bool { return occ.TableIDs[i] < occ.TableIDs[j] })
		out[slot] = occ
	}

	return out
}

// FilterAvailable returns the grid slots at which the given table is not
// claimed. An entry at slot T blocks exactly T, nothing around it: seating
// length is defined by the grid granularity, not by a window.
func FilterAvailable(grid []string, booked map[string]SlotOccupancy, tableID int64) []string {
	out := make([]string, 0, len(grid))
	for _, slot := range grid {
		occ, ok := booked[slot]
		if !ok {
			out = append(out, slot)
			continue
		}

		taken := false
		for _, id := range occ.TableIDs {
			if id == tableID {
				taken = true
				break
			}
		}
		if !taken {
			out = append(out, slot)
		}
	}

	return out
}

// FilterOpen returns the grid slots at which at least one of tableCount
// tables is still free.
func FilterOpen(grid []string, booked map[string]SlotOccupancy, tableCount int) []string {
	out := make([]string, 0, len(grid))
	for _, slot := range grid {
		if len(booked[slot].TableIDs) < tableCount {
			out = append(out, slot)
		}
	}

	return out
}

// FloorStatuses derives the live status of every table from today's ledger
// entries. This intentionally uses the one-hour serving window, not the
// slot grid: it answers "is someone sitting there right now", which is a
// different question from slot conflicts.
//
// A table shows occupied when a confirmed booking's window covers now, or
// when a pending walk-in sale or draft order claims it.
func FloorStatuses(
	tables []domain.Table,
	entries []domain.LedgerEntry,
	now time.Time,
	loc *time.Location,
) []domain.FloorTable {
	type claim struct {
		guest string
		slot  string
	}

	claims := make(map[int64]claim)
	for _, e := range entries {
		switch e.OwnerKind {
		case domain.OwnerBooking:
			if !e.Confirmed {
				continue
			}
			start, err := domain.SlotStart(e.Date, e.Slot, loc)
			if err != nil {
				continue
			}
			if domain.WithinServingWindow(start, now) {
				claims[e.TableID] = claim{guest: e.Guest, slot: e.Slot}
			}
		case domain.OwnerSale:
			if e.SaleStatus == domain.SalePending {
				claims[e.TableID] = claim{slot: e.Slot}
			}
		case domain.OwnerPendingOrder:
			// A draft order means staff is serving the table right now.
			claims[e.TableID] = claim{slot: e.Slot}
		}
	}

	out := make([]domain.FloorTable, 0, len(tables))
	for _, t := range tables {
		ft := domain.FloorTable{Table: t, Status: domain.TableAvailable}
		if c, ok := claims[t.ID]; ok {
			ft.Status = domain.TableOccupied
			ft.Guest = c.guest
			ft.Slot = c.slot
		}
		out = append(out, ft)
	}

	return out
}
