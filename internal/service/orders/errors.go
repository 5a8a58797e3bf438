package orders

import "errors"

var (
	// ErrNotFound is returned when the sale or pending order does not exist.
	ErrNotFound = errors.New("order not found")

	// ErrTableNotFound is returned when the referenced table does not exist.
	ErrTableNotFound = errors.New("table not found")

	// ErrMenuNotFound is returned when a line item references a menu that
	// does not exist.
	ErrMenuNotFound = errors.New("menu item not found")

	// ErrBadQuantity is returned when a line item quantity is zero or
	// negative.
	ErrBadQuantity = errors.New("quantity must be positive")

	// ErrNoItems is returned when an order carries no line items.
	ErrNoItems = errors.New("order has no items")

	// ErrTableBusy is returned when the table already has an occupancy entry
	// for the current slot.
	ErrTableBusy = errors.New("table is busy")

	// ErrNotPending is returned when completing or cancelling a sale that is
	// no longer pending.
	ErrNotPending = errors.New("sale is not pending")

	// ErrDraftClosed is returned when mutating a pending order that was
	// already finalized.
	ErrDraftClosed = errors.New("pending order already finalized")
)
