package domain

import (
	"fmt"
	"time"
)

// SlotLayout is the wire format for slot times ("18:30").
const SlotLayout = "15:04"

// SlotGrid is the static grid of bookable times: every StepMinutes from
// OpenHour up to (not including) CloseHour. The grid is configuration, not
// data.
type SlotGrid struct {
	OpenHour    int
	CloseHour   int
	StepMinutes int
}

// Slots returns every slot time of the grid in order.
func (g SlotGrid) Slots() []string {
	var out []string
	for h := g.OpenHour; h < g.CloseHour; h++ {
		for m := 0; m < 60; m += g.StepMinutes {
			out = append(out, fmt.Sprintf("%02d:%02d", h, m))
		}
	}

	return out
}

// Valid reports whether slot parses as HH:MM and lands on the grid.
func (g SlotGrid) Valid(slot string) bool {
	t, err := time.Parse(SlotLayout, slot)
	if err != nil {
		return false
	}

	h, m := t.Hour(), t.Minute()
	if h < g.OpenHour || h >= g.CloseHour {
		return false
	}

	return m%g.StepMinutes == 0
}

// SlotAt maps a wall-clock moment onto the grid slot covering it, flooring
// the minutes to the step. Moments outside opening hours clamp to the first
// or last slot, so a walk-in sale rung up late still lands on the grid.
func (g SlotGrid) SlotAt(t time.Time) string {
	h, m := t.Hour(), t.Minute()-t.Minute()%g.StepMinutes

	switch {
	case h < g.OpenHour:
		h, m = g.OpenHour, 0
	case h >= g.CloseHour:
		h, m = g.CloseHour-1, 60-g.StepMinutes
	}

	return fmt.Sprintf("%02d:%02d", h, m)
}

// SlotStart combines a calendar date and a slot time into the moment the
// seating starts, in the restaurant's location.
func SlotStart(date time.Time, slot string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(SlotLayout, slot)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse slot %q: %w", slot, err)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// ServingWindow is how long a booked table is considered physically held
// for the live floor display. This is a different time model from the slot
// grid: the grid blocks the exact slot only, the window answers "is someone
// sitting there right now".
const ServingWindow = time.Hour

// WithinServingWindow reports whether now falls inside [start, start+1h).
func WithinServingWindow(start, now time.Time) bool {
	return !now.Before(start) && now.Sub(start) < ServingWindow
}
