package availability

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
	OpenHour    int
	CloseHour   int
	StepMinutes int
	CacheTTL    time.Duration
	Location    *time.Location
}

type Service struct {
	store *postgresrepo.Store
	cache *redisrepo.Cache
	cfg   Config
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.OpenHour <= 0 {
		cfg.OpenHour = 9
	}

	if cfg.CloseHour <= 0 || cfg.CloseHour <= cfg.OpenHour {
		cfg.CloseHour = 21
	}

	if cfg.StepMinutes <= 0 {
		cfg.StepMinutes = 30
	}

	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 15 * time.Second
	}

	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	return &Service{
		store: store,
		cache: cache,
		cfg:   cfg,
	}
}

// Grid returns the static slot grid the service operates on.
func (s *Service) Grid() domain.SlotGrid {
	return domain.SlotGrid{
		OpenHour:    s.cfg.OpenHour,
		CloseHour:   s.cfg.CloseHour,
		StepMinutes: s.cfg.StepMinutes,
	}
}

// Today returns the current calendar date in the restaurant's timezone,
// normalized to UTC midnight the way dates are stored.
func (s *Service) Today() time.Time {
	now := time.Now().In(s.cfg.Location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// BookedTimes returns the per-slot occupancy summary for a date, utilizing
// a short-lived cache keyed by the date.
func (s *Service) BookedTimes(ctx context.Context, date time.Time) (map[string]SlotOccupancy, error) {
	const op = "service.availability.BookedTimes"

	key := redisrepo.KeyBookedTimes(date.Format(time.DateOnly))

	booked, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.CacheTTL,
		func(ctx context.Context) (map[string]SlotOccupancy, error) {
			entries, err := s.store.Occupancy().EntriesForDate(ctx, date)
			if err != nil {
				return nil, err
			}

			return GroupByTime(entries), nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return booked, nil
}

// AvailableTimes returns the free slots on a date. With tableID > 0 a slot
// is free iff that exact table is unclaimed at that exact time; with
// tableID == 0 a slot is free iff any table is unclaimed.
//
// Returns:
//   - error: availability.ErrTableNotFound if tableID does not resolve.
func (s *Service) AvailableTimes(ctx context.Context, date time.Time, tableID int64) ([]string, error) {
	const op = "service.availability.AvailableTimes"

	booked, err := s.BookedTimes(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	grid := s.Grid().Slots()

	if tableID > 0 {
		if _, err := s.store.Tables().Get(ctx, tableID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%s: %w", op, ErrTableNotFound)
			}

			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return FilterAvailable(grid, booked, tableID), nil
	}

	tables, err := s.store.Tables().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return FilterOpen(grid, booked, len(tables)), nil
}

// FloorStatus derives the live status of every table at the given moment.
// Unlike the slot grid, a table counts as occupied for one hour from its
// booked time.
func (s *Service) FloorStatus(ctx context.Context, now time.Time) ([]domain.FloorTable, error) {
	const op = "service.availability.FloorStatus"

	now = now.In(s.cfg.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	tables, err := s.store.Tables().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entries, err := s.store.Occupancy().EntriesForDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return FloorStatuses(tables, entries, now, s.cfg.Location), nil
}
