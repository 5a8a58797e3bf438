package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"tablebook/internal/domain"
	"tablebook/internal/repository"
)

type SaleRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *SaleRepo) With(db DB) *SaleRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *SaleRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Create inserts a sale row and returns its ID.
func (r *SaleRepo) Create(ctx context.Context, s *domain.Sale) (int64, error) {
	const op = "postgres.SaleRepo.Create"

	db := r.handle()

	var id int64
	err := db.QueryRow(ctx,
		`INSERT INTO sales(user_id, total_cents, status)
       	 VALUES ($1, $2, $3)
     	 RETURNING id, created_at`,
		s.UserID, s.TotalCents, s.Status,
	).Scan(&id, &s.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	s.ID = id

	return id, nil
}

// InsertItems writes the sale's snapshotted line items.
func (r *SaleRepo) InsertItems(ctx context.Context, saleID int64, items []domain.LineItem) error {
	const op = "postgres.SaleRepo.InsertItems"

	if err := insertLineItems(ctx, r.handle(), domain.OwnerSale, saleID, items); err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

// Get retrieves a sale by its ID.
//
// Returns:
//   - error: repository.ErrNotFound if the sale does not exist.
func (r *SaleRepo) Get(ctx context.Context, id int64) (*domain.Sale, error) {
	const op = "postgres.SaleRepo.Get"

	db := r.handle()

	var s domain.Sale
	err := db.QueryRow(ctx,
		`SELECT id, user_id, total_cents, status, created_at
       	 FROM sales WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.UserID, &s.TotalCents, &s.Status, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &s, nil
}

// SetStatus updates the sale's status.
func (r *SaleRepo) SetStatus(ctx context.Context, id int64, status domain.SaleStatus) error {
	const op = "postgres.SaleRepo.SetStatus"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE sales SET status = $2 WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}
