package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"tablebook/internal/domain"
)

type TableRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *TableRepo) With(db DB) *TableRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *TableRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// List returns every physical table, in floor order.
func (r *TableRepo) List(ctx context.Context) ([]domain.Table, error) {
	const op = "postgres.TableRepo.List"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, name, capacity
       	 FROM tables
       	 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Table
	for rows.Next() {
		var t domain.Table
		if err := rows.Scan(&t.ID, &t.Name, &t.Capacity); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// Get retrieves a table by its ID.
//
// Returns:
//   - *domain.Table: the table when found.
//   - error: repository.ErrNotFound if the table does not exist.
func (r *TableRepo) Get(ctx context.Context, id int64) (*domain.Table, error) {
	const op = "postgres.TableRepo.Get"

	db := r.handle()

	var t domain.Table
	err := db.QueryRow(ctx,
		`SELECT id, name, capacity
       	 FROM tables WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.Name, &t.Capacity)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &t, nil
}
