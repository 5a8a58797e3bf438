package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"tablebook/internal/domain"
	"tablebook/internal/repository"
)

type PendingOrderRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *PendingOrderRepo) With(db DB) *PendingOrderRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *PendingOrderRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// ActiveForTable returns the active draft order for a table, if any.
//
// Returns:
//   - error: repository.ErrNotFound if the table has no active draft.
func (r *PendingOrderRepo) ActiveForTable(ctx context.Context, tableID int64) (*domain.PendingOrder, error) {
	const op = "postgres.PendingOrderRepo.ActiveForTable"

	db := r.handle()

	var po domain.PendingOrder
	err := db.QueryRow(ctx,
		`SELECT id, table_id, user_id, total_cents, status, created_at
       	 FROM pending_orders
      	 WHERE table_id = $1 AND status = 'active'`,
		tableID,
	).Scan(&po.ID, &po.TableID, &po.UserID, &po.TotalCents, &po.Status, &po.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &po, nil
}

func (r *PendingOrderRepo) Create(ctx context.Context, po *domain.PendingOrder) (int64, error) {
	const op = "postgres.PendingOrderRepo.Create"

	db := r.handle()

	var id int64
	err := db.QueryRow(ctx,
		`INSERT INTO pending_orders(table_id, user_id, total_cents, status)
       	 VALUES ($1, $2, $3, $4)
     	 RETURNING id, created_at`,
		po.TableID, po.UserID, po.TotalCents, po.Status,
	).Scan(&id, &po.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	po.ID = id

	return id, nil
}

func (r *PendingOrderRepo) SetTotal(ctx context.Context, id int64, totalCents int) error {
	const op = "postgres.PendingOrderRepo.SetTotal"

	return r.exec(ctx, op, `UPDATE pending_orders SET total_cents = $2 WHERE id = $1`, id, totalCents)
}

func (r *PendingOrderRepo) SetStatus(ctx context.Context, id int64, status domain.PendingOrderStatus) error {
	const op = "postgres.PendingOrderRepo.SetStatus"

	return r.exec(ctx, op, `UPDATE pending_orders SET status = $2 WHERE id = $1`, id, status)
}

// Get retrieves a pending order by its ID.
func (r *PendingOrderRepo) Get(ctx context.Context, id int64) (*domain.PendingOrder, error) {
	const op = "postgres.PendingOrderRepo.Get"

	db := r.handle()

	var po domain.PendingOrder
	err := db.QueryRow(ctx,
		`SELECT id, table_id, user_id, total_cents, status, created_at
       	 FROM pending_orders WHERE id = $1`,
		id,
	).Scan(&po.ID, &po.TableID, &po.UserID, &po.TotalCents, &po.Status, &po.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &po, nil
}

// ReplaceItems swaps the draft's line items for a new set.
func (r *PendingOrderRepo) ReplaceItems(ctx context.Context, id int64, items []domain.LineItem) error {
	const op = "postgres.PendingOrderRepo.ReplaceItems"

	db := r.handle()

	if err := deleteLineItems(ctx, db, domain.OwnerPendingOrder, id); err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if err := insertLineItems(ctx, db, domain.OwnerPendingOrder, id, items); err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

// Items loads the draft's line items.
func (r *PendingOrderRepo) Items(ctx context.Context, id int64) ([]domain.LineItem, error) {
	const op = "postgres.PendingOrderRepo.Items"

	byOwner, err := lineItemsByOwner(ctx, r.handle(), domain.OwnerPendingOrder, []int64{id})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return byOwner[id], nil
}

// Delete removes the draft and its line items.
func (r *PendingOrderRepo) Delete(ctx context.Context, id int64) error {
	const op = "postgres.PendingOrderRepo.Delete"

	db := r.handle()

	if err := deleteLineItems(ctx, db, domain.OwnerPendingOrder, id); err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return r.exec(ctx, op, `DELETE FROM pending_orders WHERE id = $1`, id)
}

// ListActive returns every active draft with its table name and items,
// newest first.
func (r *PendingOrderRepo) ListActive(ctx context.Context) ([]domain.PendingOrderWithItems, error) {
	const op = "postgres.PendingOrderRepo.ListActive"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT po.id, po.table_id, po.user_id, po.total_cents, po.status, po.created_at, t.name
       	 FROM pending_orders po
       	 JOIN tables t ON t.id = po.table_id
      	 WHERE po.status = 'active'
      	 ORDER BY po.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.PendingOrderWithItems
	var ids []int64
	for rows.Next() {
		var po domain.PendingOrderWithItems
		if err := rows.Scan(&po.ID, &po.TableID, &po.UserID, &po.TotalCents, &po.Status, &po.CreatedAt, &po.TableName); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		out = append(out, po)
		ids = append(ids, po.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	items, err := lineItemsByOwner(ctx, db, domain.OwnerPendingOrder, ids)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	for i := range out {
		out[i].Items = items[out[i].ID]
	}

	return out, nil
}

func (r *PendingOrderRepo) exec(ctx context.Context, op, sql string, args ...any) error {
	db := r.handle()

	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}
