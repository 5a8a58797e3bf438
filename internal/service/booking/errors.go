package booking

import "errors"

var (
	ErrNotFound         = errors.New("booking not found")
	ErrTableNotFound    = errors.New("table not found")
	ErrMenuNotFound     = errors.New("menu item not found")
	ErrDateInPast       = errors.New("booking date is in the past")
	ErrBadSlot          = errors.New("time is not on the booking grid")
	ErrBadQuantity      = errors.New("quantity must be at least 1")
	ErrSlotTaken        = errors.New("table already booked for this slot")
	ErrAlreadyConfirmed = errors.New("booking already confirmed")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
	ErrNotOwner         = errors.New("booking belongs to another customer")
)
