package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tablebook/internal/domain"
	"tablebook/internal/repository"
	postgresrepo "tablebook/internal/repository/postgres"
	redisrepo "tablebook/internal/repository/redis"
	"tablebook/internal/uow"
)

type Config struct {
	Grid     domain.SlotGrid
	Location *time.Location
}

type Service struct {
	store  *postgresrepo.Store
	cache  *redisrepo.Cache
	pubsub *redisrepo.AvailabilityPubSub
	uow    *uow.UoW
	cfg    Config
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisrepo.AvailabilityPubSub,
	cfg Config,
) *Service {
	if cfg.Grid.OpenHour <= 0 {
		cfg.Grid = domain.SlotGrid{OpenHour: 9, CloseHour: 21, StepMinutes: 30}
	}

	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	return &Service{
		store:  store,
		cache:  cache,
		pubsub: pubsub,
		uow:    uow.NewUoW(store),
		cfg:    cfg,
	}
}

type CreateItem struct {
	MenuID   int64
	Quantity int
}

type CreateParams struct {
	UserID      *int64
	TableID     int64
	Date        time.Time
	Slot        string
	Firstname   string
	Lastname    string
	Address     string
	PhoneNumber string
	Items       []CreateItem
}

// Create validates the request and writes the booking, its occupancy entry
// and its line items as one transaction. A partial write is never
// observable: any failure rolls the whole booking back.
//
// Returns:
//   - error: booking.ErrDateInPast, booking.ErrBadSlot, booking.ErrBadQuantity
//     on invalid input.
//   - error: booking.ErrTableNotFound / booking.ErrMenuNotFound when a
//     referenced row does not exist.
//   - error: booking.ErrSlotTaken when another active claim holds the same
//     (table, date, time).
func (s *Service) Create(ctx context.Context, p CreateParams) (*domain.BookingWithDetails, error) {
	const op = "service.booking.Create"

	now := time.Now().In(s.cfg.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(p.Date.Year(), p.Date.Month(), p.Date.Day(), 0, 0, 0, 0, time.UTC)

	if day.Before(today) {
		return nil, fmt.Errorf("%s: %w", op, ErrDateInPast)
	}

	if !s.cfg.Grid.Valid(p.Slot) {
		return nil, fmt.Errorf("%s: %w", op, ErrBadSlot)
	}

	for _, it := range p.Items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%s: %w", op, ErrBadQuantity)
		}
	}

	var out *domain.BookingWithDetails

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		table, err := s.store.Tables().With(tx).Get(ctx, p.TableID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrTableNotFound)
			}

			return fmt.Errorf("%s: %w", op, err)
		}

		items, total, err := s.snapshotItems(ctx, tx, p.Items)
		if err != nil {
			return err
		}

		b := domain.Booking{
			UserID:      p.UserID,
			Firstname:   p.Firstname,
			Lastname:    p.Lastname,
			Address:     p.Address,
			PhoneNumber: p.PhoneNumber,
			TotalCents:  total,
		}

		id, err := s.store.Bookings().With(tx).Create(ctx, &b)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if _, err := s.store.Occupancy().
			With(tx).
			CreateEntry(ctx, p.TableID, domain.OwnerBooking, id, day, p.Slot); err != nil {
			if errors.Is(err, repository.ErrSlotTaken) {
				return fmt.Errorf("%s: %w", op, ErrSlotTaken)
			}

			if errors.Is(err, repository.ErrForeignKey) {
				return fmt.Errorf("%s: %w", op, ErrTableNotFound)
			}

			return fmt.Errorf("%s: %w", op, err)
		}

		if err := s.store.Bookings().With(tx).InsertItems(ctx, id, items); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		out = &domain.BookingWithDetails{
			Booking:   b,
			TableID:   table.ID,
			TableName: table.Name,
			Date:      day,
			Slot:      p.Slot,
			Items:     items,
		}

		dateKey := day.Format(time.DateOnly)
		after(func(ctx context.Context) {
			_ = s.cache.InvalidateDate(ctx, dateKey)
			_ = s.pubsub.PublishDateChanged(ctx, dateKey)
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Confirm marks a pending booking as approved by an operator.
//
// Returns:
//   - error: booking.ErrNotFound if the booking does not exist.
//   - error: booking.ErrAlreadyCancelled / booking.ErrAlreadyConfirmed on a
//     lifecycle violation; the booking is left untouched.
func (s *Service) Confirm(ctx context.Context, id int64) (*domain.Booking, error) {
	const op = "service.booking.Confirm"

	var out *domain.Booking

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		b, err := s.store.Bookings().With(tx).Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrNotFound)
			}

			return fmt.Errorf("%s: %w", op, err)
		}

		if err := b.Confirm(time.Now()); err != nil {
			return fmt.Errorf("%s: %w", op, liftDomainErr(err))
		}

		if err := s.store.Bookings().With(tx).SetConfirmed(ctx, id, *b.ConfirmedAt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		out = b

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Actor identifies who asks for a mutation. Admins may cancel any booking;
// customers only their own.
type Actor struct {
	UserID int64
	Admin  bool
}

// Cancel marks a booking cancelled and frees its occupancy entry, making
// the slot bookable again.
//
// Returns:
//   - error: booking.ErrNotFound if the booking does not exist.
//   - error: booking.ErrNotOwner if a customer cancels someone else's booking.
//   - error: booking.ErrAlreadyCancelled if it was cancelled before.
func (s *Service) Cancel(ctx context.Context, id int64, actor Actor) (*domain.Booking, error) {
	const op = "service.booking.Cancel"

	var out *domain.Booking

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		b, err := s.store.Bookings().With(tx).Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrNotFound)
			}

			return fmt.Errorf("%s: %w", op, err)
		}

		if !actor.Admin && (b.UserID == nil || *b.UserID != actor.UserID) {
			return fmt.Errorf("%s: %w", op, ErrNotOwner)
		}

		if err := b.Cancel(time.Now()); err != nil {
			return fmt.Errorf("%s: %w", op, liftDomainErr(err))
		}

		if err := s.store.Bookings().With(tx).SetCancelled(ctx, id, *b.CancelledAt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		entry, err := s.store.Occupancy().With(tx).GetByOwner(ctx, domain.OwnerBooking, id)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, err)
		}

		if err := s.store.Occupancy().With(tx).DeleteByOwner(ctx, domain.OwnerBooking, id); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		out = b

		if entry != nil {
			dateKey := entry.Date.Format(time.DateOnly)
			after(func(ctx context.Context) {
				_ = s.cache.InvalidateDate(ctx, dateKey)
				_ = s.pubsub.PublishDateChanged(ctx, dateKey)
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ListToday returns today's bookings in slot order.
func (s *Service) ListToday(ctx context.Context) ([]domain.BookingWithDetails, error) {
	return s.listByDate(ctx, postgresrepo.DateOn)
}

// ListUpcoming returns bookings after today.
func (s *Service) ListUpcoming(ctx context.Context) ([]domain.BookingWithDetails, error) {
	return s.listByDate(ctx, postgresrepo.DateAfter)
}

// ListPast returns bookings before today, newest first.
func (s *Service) ListPast(ctx context.Context) ([]domain.BookingWithDetails, error) {
	return s.listByDate(ctx, postgresrepo.DateBefore)
}

// ListForUser returns the customer's own bookings.
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]domain.BookingWithDetails, error) {
	const op = "service.booking.ListForUser"

	out, err := s.store.Bookings().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (s *Service) listByDate(ctx context.Context, cmp postgresrepo.DateCompare) ([]domain.BookingWithDetails, error) {
	const op = "service.booking.listByDate"

	now := time.Now().In(s.cfg.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	out, err := s.store.Bookings().ListByDate(ctx, cmp, today)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// snapshotItems resolves menu IDs to current prices and freezes them into
// line items.
func (s *Service) snapshotItems(
	ctx context.Context,
	tx postgresrepo.DB,
	items []CreateItem,
) ([]domain.LineItem, int, error) {
	const op = "service.booking.snapshotItems"

	if len(items) == 0 {
		return nil, 0, nil
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.MenuID)
	}

	menus, err := s.store.Menus().With(tx).ByIDs(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	out, total, err := SnapshotLines(items, menus)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return out, total, nil
}

// SnapshotLines converts requested items into price-frozen line items and
// their total. Every referenced menu must be present in menus.
func SnapshotLines(items []CreateItem, menus map[int64]domain.Menu) ([]domain.LineItem, int, error) {
	var out []domain.LineItem
	total := 0

	for _, it := range items {
		m, ok := menus[it.MenuID]
		if !ok {
			return nil, 0, ErrMenuNotFound
		}

		sub := m.PriceCents * it.Quantity
		out = append(out, domain.LineItem{
			MenuID:        m.ID,
			MenuName:      m.Name,
			Quantity:      it.Quantity,
			PriceCents:    m.PriceCents,
			SubtotalCents: sub,
		})
		total += sub
	}

	return out, total, nil
}

func liftDomainErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrAlreadyConfirmed):
		return ErrAlreadyConfirmed
	case errors.Is(err, domain.ErrAlreadyCancelled):
		return ErrAlreadyCancelled
	default:
		return err
	}
}
