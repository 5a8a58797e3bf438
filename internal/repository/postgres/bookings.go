package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tablebook/internal/domain"
	"tablebook/internal/repository"
)

type BookingRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *BookingRepo) With(db DB) *BookingRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *BookingRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Create inserts a booking row and returns its ID.
func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) (int64, error) {
	const op = "postgres.BookingRepo.Create"

	db := r.handle()

	var id int64
	err := db.QueryRow(ctx,
		`INSERT INTO bookings(user_id, firstname, lastname, address, phone_number, total_cents)
       	 VALUES ($1, $2, $3, $4, $5, $6)
     	 RETURNING id, created_at`,
		b.UserID, b.Firstname, b.Lastname, b.Address, b.PhoneNumber, b.TotalCents,
	).Scan(&id, &b.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	b.ID = id

	return id, nil
}

// InsertItems writes the booking's snapshotted line items.
func (r *BookingRepo) InsertItems(ctx context.Context, bookingID int64, items []domain.LineItem) error {
	const op = "postgres.BookingRepo.InsertItems"

	if err := insertLineItems(ctx, r.handle(), domain.OwnerBooking, bookingID, items); err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

// Get retrieves a booking by its ID. Soft-deleted bookings are invisible.
//
// Returns:
//   - error: repository.ErrNotFound if the booking does not exist.
func (r *BookingRepo) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	const op = "postgres.BookingRepo.Get"

	db := r.handle()

	var b domain.Booking
	err := db.QueryRow(ctx,
		`SELECT id, user_id, firstname, lastname, address, phone_number,
            	total_cents, confirmed_at, cancelled_at, created_at
       	 FROM bookings
      	 WHERE id = $1 AND deleted_at IS NULL`,
		id,
	).Scan(
		&b.ID,
		&b.UserID,
		&b.Firstname,
		&b.Lastname,
		&b.Address,
		&b.PhoneNumber,
		&b.TotalCents,
		&b.ConfirmedAt,
		&b.CancelledAt,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &b, nil
}

// SetConfirmed stamps confirmed_at on a booking.
func (r *BookingRepo) SetConfirmed(ctx context.Context, id int64, at time.Time) error {
	const op = "postgres.BookingRepo.SetConfirmed"

	return r.setTimestamp(ctx, op, `UPDATE bookings SET confirmed_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
}

// SetCancelled stamps cancelled_at on a booking.
func (r *BookingRepo) SetCancelled(ctx context.Context, id int64, at time.Time) error {
	const op = "postgres.BookingRepo.SetCancelled"

	return r.setTimestamp(ctx, op, `UPDATE bookings SET cancelled_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
}

// SoftDelete hides a booking while retaining the row for audit history.
func (r *BookingRepo) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	const op = "postgres.BookingRepo.SoftDelete"

	return r.setTimestamp(ctx, op, `UPDATE bookings SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
}

func (r *BookingRepo) setTimestamp(ctx context.Context, op, sql string, id int64, at time.Time) error {
	db := r.handle()

	tag, err := db.Exec(ctx, sql, id, at)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// DateCompare selects which side of today a list query covers.
type DateCompare string

const (
	DateOn     DateCompare = "="
	DateAfter  DateCompare = ">"
	DateBefore DateCompare = "<"
)

// ListByDate returns bookings whose ledger entry compares to the given
// date, with table and line items joined, ordered by date and slot time.
func (r *BookingRepo) ListByDate(
	ctx context.Context,
	cmp DateCompare,
	date time.Time,
) ([]domain.BookingWithDetails, error) {
	const op = "postgres.BookingRepo.ListByDate"

	order := "ot.date, ot.slot_time"
	if cmp == DateBefore {
		order = "ot.date DESC, ot.slot_time DESC"
	}

	sql := fmt.Sprintf(
		`SELECT b.id, b.user_id, b.firstname, b.lastname, b.address, b.phone_number,
            	b.total_cents, b.confirmed_at, b.cancelled_at, b.created_at,
            	ot.table_id, t.name, ot.date, ot.slot_time
       	 FROM bookings b
       	 JOIN occupied_tables ot
            ON ot.owner_kind = 'booking' AND ot.owner_id = b.id
       	 JOIN tables t ON t.id = ot.table_id
      	 WHERE b.deleted_at IS NULL AND ot.date %s $1
      	 ORDER BY %s`,
		cmp, order,
	)

	return r.list(ctx, op, sql, date)
}

// ListByUser returns a customer's own bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID int64) ([]domain.BookingWithDetails, error) {
	const op = "postgres.BookingRepo.ListByUser"

	return r.list(ctx, op,
		`SELECT b.id, b.user_id, b.firstname, b.lastname, b.address, b.phone_number,
            	b.total_cents, b.confirmed_at, b.cancelled_at, b.created_at,
            	ot.table_id, t.name, ot.date, ot.slot_time
       	 FROM bookings b
       	 JOIN occupied_tables ot
            ON ot.owner_kind = 'booking' AND ot.owner_id = b.id
       	 JOIN tables t ON t.id = ot.table_id
      	 WHERE b.deleted_at IS NULL AND b.user_id = $1
      	 ORDER BY b.created_at DESC`,
		userID,
	)
}

func (r *BookingRepo) list(ctx context.Context, op, sql string, arg any) ([]domain.BookingWithDetails, error) {
	db := r.handle()

	rows, err := db.Query(ctx, sql, arg)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.BookingWithDetails
	var ids []int64
	for rows.Next() {
		var b domain.BookingWithDetails
		if err := rows.Scan(
			&b.ID,
			&b.UserID,
			&b.Firstname,
			&b.Lastname,
			&b.Address,
			&b.PhoneNumber,
			&b.TotalCents,
			&b.ConfirmedAt,
			&b.CancelledAt,
			&b.CreatedAt,
			&b.TableID,
			&b.TableName,
			&b.Date,
			&b.Slot,
		); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		out = append(out, b)
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	items, err := lineItemsByOwner(ctx, db, domain.OwnerBooking, ids)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	for i := range out {
		out[i].Items = items[out[i].ID]
	}

	return out, nil
}
