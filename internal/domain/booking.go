package domain

import (
	"errors"
	"time"
)

var (
	ErrAlreadyConfirmed = errors.New("booking already confirmed")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
)

type Booking struct {
	ID          int64
	UserID      *int64
	Firstname   string
	Lastname    string
	Address     string
	PhoneNumber string
	TotalCents  int
	ConfirmedAt *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time
}

// BookingWithDetails joins a booking to its ledger entry and line items.
type BookingWithDetails struct {
	Booking
	TableID   int64
	TableName string
	Date      time.Time
	Slot      string
	Items     []LineItem
}

func (b *Booking) FullName() string {
	return b.Firstname + " " + b.Lastname
}

// IsActive reports whether the booking has not been cancelled.
func (b *Booking) IsActive() bool {
	return b.CancelledAt == nil
}

// IsConfirmed reports whether the booking was approved by an operator and
// is still active. Cancellation revokes confirmation.
func (b *Booking) IsConfirmed() bool {
	return b.ConfirmedAt != nil && b.CancelledAt == nil
}

// Confirm moves the booking to the confirmed state. Confirming a cancelled
// or already-confirmed booking fails without mutating the booking.
func (b *Booking) Confirm(now time.Time) error {
	if b.CancelledAt != nil {
		return ErrAlreadyCancelled
	}
	if b.ConfirmedAt != nil {
		return ErrAlreadyConfirmed
	}

	at := now.UTC()
	b.ConfirmedAt = &at

	return nil
}

// Cancel moves the booking to the cancelled state, from either pending or
// confirmed. Cancelled is terminal.
func (b *Booking) Cancel(now time.Time) error {
	if b.CancelledAt != nil {
		return ErrAlreadyCancelled
	}

	at := now.UTC()
	b.CancelledAt = &at

	return nil
}
