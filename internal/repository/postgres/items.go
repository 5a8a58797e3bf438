package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tablebook/internal/domain"
)

// insertLineItems writes the snapshotted line items of one owner in a
// single batch.
func insertLineItems(
	ctx context.Context,
	db DB,
	kind domain.OwnerKind,
	ownerID int64,
	items []domain.LineItem,
) error {
	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(
			`INSERT INTO items(owner_kind, owner_id, menu_id, quantity, price_cents_at_order, subtotal_cents)
         	 VALUES ($1, $2, $3, $4, $5, $6)`,
			kind, ownerID, it.MenuID, it.Quantity, it.PriceCents, it.SubtotalCents,
		)
	}

	return db.SendBatch(ctx, batch).Close()
}

// lineItemsByOwner loads the line items of a set of owners of one kind,
// keyed by owner ID.
func lineItemsByOwner(
	ctx context.Context,
	db DB,
	kind domain.OwnerKind,
	ownerIDs []int64,
) (map[int64][]domain.LineItem, error) {
	out := make(map[int64][]domain.LineItem, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}

	rows, err := db.Query(ctx,
		`SELECT i.owner_id, i.id, i.menu_id, m.name, i.quantity, i.price_cents_at_order, i.subtotal_cents
       	 FROM items i
       	 JOIN menus m ON m.id = i.menu_id
      	 WHERE i.owner_kind = $1 AND i.owner_id = ANY($2)
      	 ORDER BY i.id`,
		kind, ownerIDs,
	)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	for rows.Next() {
		var ownerID int64
		var it domain.LineItem
		if err := rows.Scan(&ownerID, &it.ID, &it.MenuID, &it.MenuName, &it.Quantity, &it.PriceCents, &it.SubtotalCents); err != nil {
			return nil, err
		}

		out[ownerID] = append(out[ownerID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// deleteLineItems removes every line item of one owner.
func deleteLineItems(ctx context.Context, db DB, kind domain.OwnerKind, ownerID int64) error {
	_, err := db.Exec(ctx,
		`DELETE FROM items WHERE owner_kind = $1 AND owner_id = $2`,
		kind, ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete line items: %w", err)
	}

	return nil
}
