package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tablebook/internal/domain"
)

type OccupancyRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *OccupancyRepo) With(db DB) *OccupancyRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *OccupancyRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// CreateEntry claims a table for an owner at a date and slot time.
//
// Returns:
//   - int64: the entry ID when successful.
//   - error: repository.ErrSlotTaken if another owner already claims the
//     same (table, date, time).
//   - error: repository.ErrForeignKey if the table does not exist.
func (r *OccupancyRepo) CreateEntry(
	ctx context.Context,
	tableID int64,
	kind domain.OwnerKind,
	ownerID int64,
	date time.Time,
	slot string,
) (int64, error) {
	const op = "postgres.OccupancyRepo.CreateEntry"

	db := r.handle()

	var id int64
	err := db.QueryRow(ctx,
		`INSERT INTO occupied_tables(table_id, owner_kind, owner_id, date, slot_time)
       	 VALUES ($1, $2, $3, $4, $5)
     	 RETURNING id`,
		tableID, kind, ownerID, date, slot,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

// GetByOwner retrieves the ledger entry tied to a given owner.
//
// Returns:
//   - error: repository.ErrNotFound if the owner holds no entry.
func (r *OccupancyRepo) GetByOwner(
	ctx context.Context,
	kind domain.OwnerKind,
	ownerID int64,
) (*domain.OccupancyEntry, error) {
	const op = "postgres.OccupancyRepo.GetByOwner"

	db := r.handle()

	var e domain.OccupancyEntry
	err := db.QueryRow(ctx,
		`SELECT id, table_id, owner_kind, owner_id, date, slot_time
       	 FROM occupied_tables
      	 WHERE owner_kind = $1 AND owner_id = $2`,
		kind, ownerID,
	).Scan(&e.ID, &e.TableID, &e.OwnerKind, &e.OwnerID, &e.Date, &e.Slot)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &e, nil
}

// DeleteByOwner frees the entry tied to a given owner. Deleting an owner
// with no entry is a no-op.
func (r *OccupancyRepo) DeleteByOwner(
	ctx context.Context,
	kind domain.OwnerKind,
	ownerID int64,
) error {
	const op = "postgres.OccupancyRepo.DeleteByOwner"

	db := r.handle()

	_, err := db.Exec(ctx,
		`DELETE FROM occupied_tables
      	 WHERE owner_kind = $1 AND owner_id = $2`,
		kind, ownerID,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

// EntriesForDate returns every active entry on a date, joined to its table
// and owner. Entries owned by cancelled bookings or cancelled sales are
// excluded: a freed slot must not block the grid.
func (r *OccupancyRepo) EntriesForDate(ctx context.Context, date time.Time) ([]domain.LedgerEntry, error) {
	const op = "postgres.OccupancyRepo.EntriesForDate"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT ot.id, ot.table_id, ot.owner_kind, ot.owner_id, ot.date, ot.slot_time,
           	 	t.name, t.capacity,
           	 	b.confirmed_at IS NOT NULL,
           	 	COALESCE(b.firstname || ' ' || b.lastname, ''),
           	 	COALESCE(s.status, '')
     	 FROM occupied_tables ot
     	 JOIN tables t ON t.id = ot.table_id
     	 LEFT JOIN bookings b
            ON ot.owner_kind = 'booking' AND b.id = ot.owner_id
     	 LEFT JOIN sales s
            ON ot.owner_kind = 'sale' AND s.id = ot.owner_id
      	 WHERE ot.date = $1
        	AND (ot.owner_kind <> 'booking' OR (b.cancelled_at IS NULL AND b.deleted_at IS NULL))
        	AND (ot.owner_kind <> 'sale' OR s.status <> 'cancelled')
      	 ORDER BY ot.slot_time, ot.table_id`,
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(
			&e.ID,
			&e.TableID,
			&e.OwnerKind,
			&e.OwnerID,
			&e.Date,
			&e.Slot,
			&e.TableName,
			&e.TableCapacity,
			&e.Confirmed,
			&e.Guest,
			&e.SaleStatus,
		); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}
