package menu

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tablebook/internal/domain"
	"tablebook/internal/repository"
	postgresrepo "tablebook/internal/repository/postgres"
	redisrepo "tablebook/internal/repository/redis"
)

type Config struct {
	// CacheTTL bounds how stale the public catalog may get. The cache is
	// also invalidated on every write, so this is a safety net.
	CacheTTL time.Duration
}

// Service serves the menu catalog and its admin-side management.
type Service struct {
	store *postgresrepo.Store
	cache *redisrepo.Cache
	cfg   Config
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}

	return &Service{store: store, cache: cache, cfg: cfg}
}

// Catalog returns every category with its menu items, cached.
func (s *Service) Catalog(ctx context.Context) ([]domain.MenuCategoryWithItems, error) {
	const op = "menu.Service.Catalog"

	cats, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyMenuCatalog(), s.cfg.CacheTTL,
		func(ctx context.Context) ([]domain.MenuCategoryWithItems, error) {
			return s.store.Menus().Catalog(ctx)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return cats, nil
}

func (s *Service) CreateCategory(ctx context.Context, name string) (*domain.MenuCategory, error) {
	const op = "menu.Service.CreateCategory"

	id, err := s.store.Menus().CreateCategory(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%s:%w", op, ErrNameTaken)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	s.invalidate(ctx)

	return &domain.MenuCategory{ID: id, Name: name}, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, name string) error {
	const op = "menu.Service.UpdateCategory"

	if err := s.store.Menus().UpdateCategory(ctx, id, name); err != nil {
		return fmt.Errorf("%s:%w", op, s.translate(err))
	}

	s.invalidate(ctx)

	return nil
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	const op = "menu.Service.DeleteCategory"

	if err := s.store.Menus().DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return fmt.Errorf("%s:%w", op, ErrCategoryInUse)
		}
		return fmt.Errorf("%s:%w", op, s.translate(err))
	}

	s.invalidate(ctx)

	return nil
}

type MenuParams struct {
	CategoryID int64
	Name       string
	PriceCents int
}

func (s *Service) CreateMenu(ctx context.Context, p MenuParams) (*domain.Menu, error) {
	const op = "menu.Service.CreateMenu"

	m := &domain.Menu{
		CategoryID: p.CategoryID,
		Name:       p.Name,
		PriceCents: p.PriceCents,
	}

	if _, err := s.store.Menus().CreateMenu(ctx, m); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, fmt.Errorf("%s:%w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	s.invalidate(ctx)

	return m, nil
}

func (s *Service) UpdateMenu(ctx context.Context, id int64, name string, priceCents int) error {
	const op = "menu.Service.UpdateMenu"

	if err := s.store.Menus().UpdateMenu(ctx, id, name, priceCents); err != nil {
		return fmt.Errorf("%s:%w", op, s.translate(err))
	}

	s.invalidate(ctx)

	return nil
}

func (s *Service) DeleteMenu(ctx context.Context, id int64) error {
	const op = "menu.Service.DeleteMenu"

	if err := s.store.Menus().DeleteMenu(ctx, id); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return fmt.Errorf("%s:%w", op, ErrMenuInUse)
		}
		return fmt.Errorf("%s:%w", op, s.translate(err))
	}

	s.invalidate(ctx)

	return nil
}

func (s *Service) translate(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) invalidate(ctx context.Context) {
	// Cache invalidation is best effort. A stale catalog expires with the TTL.
	_ = s.cache.InvalidateMenu(ctx)
}
