package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"tablebook/internal/domain"
	"tablebook/internal/repository"
)

type MenuRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *MenuRepo) With(db DB) *MenuRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *MenuRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Catalog returns every category with its menu items.
func (r *MenuRepo) Catalog(ctx context.Context) ([]domain.MenuCategoryWithItems, error) {
	const op = "postgres.MenuRepo.Catalog"

	db := r.handle()

	rows, err := db.Query(ctx, `SELECT id, name FROM menu_categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var cats []domain.MenuCategoryWithItems
	idx := make(map[int64]int)
	for rows.Next() {
		var c domain.MenuCategoryWithItems
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		idx[c.ID] = len(cats)
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	mrows, err := db.Query(ctx,
		`SELECT id, category_id, name, price_cents, created_at
       	 FROM menus
       	 ORDER BY category_id, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer mrows.Close()

	for mrows.Next() {
		var m domain.Menu
		if err := mrows.Scan(&m.ID, &m.CategoryID, &m.Name, &m.PriceCents, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		if i, ok := idx[m.CategoryID]; ok {
			cats[i].Menus = append(cats[i].Menus, m)
		}
	}
	if err := mrows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return cats, nil
}

// ByIDs returns the menu rows for the given IDs, keyed by ID. Missing IDs
// are simply absent from the map; callers decide whether that is an error.
func (r *MenuRepo) ByIDs(ctx context.Context, ids []int64) (map[int64]domain.Menu, error) {
	const op = "postgres.MenuRepo.ByIDs"

	out := make(map[int64]domain.Menu, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, category_id, name, price_cents, created_at
       	 FROM menus WHERE id = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	for rows.Next() {
		var m domain.Menu
		if err := rows.Scan(&m.ID, &m.CategoryID, &m.Name, &m.PriceCents, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		out[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// CreateCategory inserts a menu category.
//
// Returns:
//   - error: repository.ErrConflict if the name is already used.
func (r *MenuRepo) CreateCategory(ctx context.Context, name string) (int64, error) {
	const op = "postgres.MenuRepo.CreateCategory"

	db := r.handle()

	var id int64
	err := db.QueryRow(ctx,
		`INSERT INTO menu_categories(name) VALUES ($1) RETURNING id`,
		name,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

func (r *MenuRepo) UpdateCategory(ctx context.Context, id int64, name string) error {
	const op = "postgres.MenuRepo.UpdateCategory"

	return r.exec(ctx, op, `UPDATE menu_categories SET name = $2 WHERE id = $1`, id, name)
}

// DeleteCategory removes a category.
//
// Returns:
//   - error: repository.ErrForeignKey if menu items still reference it.
func (r *MenuRepo) DeleteCategory(ctx context.Context, id int64) error {
	const op = "postgres.MenuRepo.DeleteCategory"

	return r.exec(ctx, op, `DELETE FROM menu_categories WHERE id = $1`, id)
}

func (r *MenuRepo) CreateMenu(ctx context.Context, m *domain.Menu) (int64, error) {
	const op = "postgres.MenuRepo.CreateMenu"

	db := r.handle()

	var id int64
	err := db.QueryRow(ctx,
		`INSERT INTO menus(category_id, name, price_cents)
       	 VALUES ($1, $2, $3)
     	 RETURNING id, created_at`,
		m.CategoryID, m.Name, m.PriceCents,
	).Scan(&id, &m.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	m.ID = id

	return id, nil
}

func (r *MenuRepo) UpdateMenu(ctx context.Context, id int64, name string, priceCents int) error {
	const op = "postgres.MenuRepo.UpdateMenu"

	return r.exec(ctx, op, `UPDATE menus SET name = $2, price_cents = $3 WHERE id = $1`, id, name, priceCents)
}

// DeleteMenu removes a menu item.
//
// Returns:
//   - error: repository.ErrForeignKey if historical line items reference it.
func (r *MenuRepo) DeleteMenu(ctx context.Context, id int64) error {
	const op = "postgres.MenuRepo.DeleteMenu"

	return r.exec(ctx, op, `DELETE FROM menus WHERE id = $1`, id)
}

func (r *MenuRepo) exec(ctx context.Context, op, sql string, args ...any) error {
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
