package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tablebook/internal/domain"
	"tablebook/internal/mq"
	"tablebook/internal/repository"
	postgresrepo "tablebook/internal/repository/postgres"
	redisrepo "tablebook/internal/repository/redis"
	"tablebook/internal/uow"
)

type Config struct {
	Grid     domain.SlotGrid
	Location *time.Location
}

// Service handles walk-in sales and per-table draft orders. Both claim the
// table in the occupancy ledger for the slot covering the moment of sale, so
// the floor display and the availability calculator see them the same way
// they see bookings.
type Service struct {
	store   *postgresrepo.Store
	cache   *redisrepo.Cache
	pubsub  *redisrepo.AvailabilityPubSub
	kitchen *mq.Client
	uow     *uow.UoW
	cfg     Config
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisrepo.AvailabilityPubSub,
	kitchen *mq.Client,
	cfg Config,
) *Service {
	if cfg.Grid.OpenHour <= 0 {
		cfg.Grid = domain.SlotGrid{OpenHour: 9, CloseHour: 21, StepMinutes: 30}
	}

	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	return &Service{
		store:   store,
		cache:   cache,
		pubsub:  pubsub,
		kitchen: kitchen,
		uow:     uow.NewUoW(store),
		cfg:     cfg,
	}
}

type Item struct {
	MenuID   int64
	Quantity int
}

type CreateSaleParams struct {
	UserID  int64
	TableID int64
	Items   []Item
}

// kitchenEvent is the message published to the kitchen exchange whenever an
// order changes state.
type kitchenEvent struct {
	OrderID    int64             `json:"order_id"`
	TableID    int64             `json:"table_id"`
	TotalCents int               `json:"total_cents"`
	Items      []domain.LineItem `json:"items,omitempty"`
	Ts         time.Time         `json:"ts"`
}

// CreateSale rings up a walk-in order: it snapshots the menu prices into
// line items, opens a pending sale and claims the table for the slot
// covering now. The claim keeps a second walk-in off the same table.
func (s *Service) CreateSale(ctx context.Context, p CreateSaleParams) (*domain.SaleWithItems, error) {
	const op = "orders.Service.CreateSale"

	for _, it := range p.Items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%s:%w", op, ErrBadQuantity)
		}
	}

	if len(p.Items) == 0 {
		return nil, fmt.Errorf("%s:%w", op, ErrNoItems)
	}

	now := time.Now().In(s.cfg.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	slot := s.cfg.Grid.SlotAt(now)

	var out *domain.SaleWithItems

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if _, err := s.store.Tables().With(tx).Get(ctx, p.TableID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrTableNotFound
			}
			return err
		}

		lines, total, err := s.snapshotItems(ctx, tx, p.Items)
		if err != nil {
			return err
		}

		sale := &domain.Sale{
			UserID:     p.UserID,
			TotalCents: total,
			Status:     domain.SalePending,
		}

		if _, err := s.store.Sales().With(tx).Create(ctx, sale); err != nil {
			return err
		}

		_, err = s.store.Occupancy().With(tx).CreateEntry(ctx, p.TableID, domain.OwnerSale, sale.ID, today, slot)
		if err != nil {
			if errors.Is(err, repository.ErrSlotTaken) {
				return ErrTableBusy
			}
			return err
		}

		if err := s.store.Sales().With(tx).InsertItems(ctx, sale.ID, lines); err != nil {
			return err
		}

		out = &domain.SaleWithItems{Sale: *sale, TableID: p.TableID, Items: lines}

		after(func(ctx context.Context) {
			s.notifyDate(ctx, today)
			s.publishKitchen(ctx, "kitchen.order.created", kitchenEvent{
				OrderID:    sale.ID,
				TableID:    p.TableID,
				TotalCents: total,
				Items:      lines,
				Ts:         time.Now().UTC(),
			})
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// CompleteSale marks a pending sale as paid and frees the table.
func (s *Service) CompleteSale(ctx context.Context, id int64) (*domain.Sale, error) {
	return s.closeSale(ctx, "orders.Service.CompleteSale", id, domain.SaleCompleted, "kitchen.order.completed")
}

// CancelSale voids a pending sale and frees the table.
func (s *Service) CancelSale(ctx context.Context, id int64) (*domain.Sale, error) {
	return s.closeSale(ctx, "orders.Service.CancelSale", id, domain.SaleCancelled, "kitchen.order.cancelled")
}

func (s *Service) closeSale(
	ctx context.Context,
	op string,
	id int64,
	status domain.SaleStatus,
	routingKey string,
) (*domain.Sale, error) {
	var out *domain.Sale

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		sale, err := s.store.Sales().With(tx).Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}

		if sale.Status != domain.SalePending {
			return ErrNotPending
		}

		if err := s.store.Sales().With(tx).SetStatus(ctx, id, status); err != nil {
			return err
		}

		sale.Status = status

		entry, err := s.store.Occupancy().With(tx).GetByOwner(ctx, domain.OwnerSale, id)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		if err := s.store.Occupancy().With(tx).DeleteByOwner(ctx, domain.OwnerSale, id); err != nil {
			return err
		}

		out = sale

		var tableID int64
		date := time.Time{}
		if entry != nil {
			tableID, date = entry.TableID, entry.Date
		}

		after(func(ctx context.Context) {
			if !date.IsZero() {
				s.notifyDate(ctx, date)
			}
			s.publishKitchen(ctx, routingKey, kitchenEvent{
				OrderID: id,
				TableID: tableID,
				Ts:      time.Now().UTC(),
			})
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

type SavePendingParams struct {
	UserID  int64
	TableID int64
	Items   []Item
}

// SavePending upserts the draft order for a table. The first save claims the
// table in the ledger; later saves just replace the line items. Waiters hit
// this every time they add a dish, so it has to be cheap and idempotent.
func (s *Service) SavePending(ctx context.Context, p SavePendingParams) (*domain.PendingOrderWithItems, error) {
	const op = "orders.Service.SavePending"

	for _, it := range p.Items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%s:%w", op, ErrBadQuantity)
		}
	}

	if len(p.Items) == 0 {
		return nil, fmt.Errorf("%s:%w", op, ErrNoItems)
	}

	now := time.Now().In(s.cfg.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	slot := s.cfg.Grid.SlotAt(now)

	var out *domain.PendingOrderWithItems

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if _, err := s.store.Tables().With(tx).Get(ctx, p.TableID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrTableNotFound
			}
			return err
		}

		lines, total, err := s.snapshotItems(ctx, tx, p.Items)
		if err != nil {
			return err
		}

		po, err := s.store.PendingOrders().With(tx).ActiveForTable(ctx, p.TableID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			po = &domain.PendingOrder{
				TableID:    p.TableID,
				UserID:     p.UserID,
				TotalCents: total,
				Status:     domain.PendingOrderActive,
			}

			if _, err := s.store.PendingOrders().With(tx).Create(ctx, po); err != nil {
				return err
			}

			_, err = s.store.Occupancy().With(tx).CreateEntry(ctx, p.TableID, domain.OwnerPendingOrder, po.ID, today, slot)
			if err != nil {
				if errors.Is(err, repository.ErrSlotTaken) {
					return ErrTableBusy
				}
				return err
			}
		case err != nil:
			return err
		default:
			if err := s.store.PendingOrders().With(tx).SetTotal(ctx, po.ID, total); err != nil {
				return err
			}

			po.TotalCents = total
		}

		if err := s.store.PendingOrders().With(tx).ReplaceItems(ctx, po.ID, lines); err != nil {
			return err
		}

		out = &domain.PendingOrderWithItems{PendingOrder: *po, Items: lines}

		after(func(ctx context.Context) { s.notifyDate(ctx, today) })

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// FinalizePending turns a draft into a pending sale: the line items move to
// the sale, the draft closes, and the ledger claim switches owner so the
// table stays held without a gap.
func (s *Service) FinalizePending(ctx context.Context, id int64) (*domain.SaleWithItems, error) {
	const op = "orders.Service.FinalizePending"

	var out *domain.SaleWithItems

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		po, err := s.store.PendingOrders().With(tx).Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}

		if po.Status != domain.PendingOrderActive {
			return ErrDraftClosed
		}

		lines, err := s.store.PendingOrders().With(tx).Items(ctx, id)
		if err != nil {
			return err
		}

		if len(lines) == 0 {
			return ErrNoItems
		}

		sale := &domain.Sale{
			UserID:     po.UserID,
			TotalCents: po.TotalCents,
			Status:     domain.SalePending,
		}

		if _, err := s.store.Sales().With(tx).Create(ctx, sale); err != nil {
			return err
		}

		if err := s.store.Sales().With(tx).InsertItems(ctx, sale.ID, lines); err != nil {
			return err
		}

		entry, err := s.store.Occupancy().With(tx).GetByOwner(ctx, domain.OwnerPendingOrder, id)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		if err := s.store.Occupancy().With(tx).DeleteByOwner(ctx, domain.OwnerPendingOrder, id); err != nil {
			return err
		}

		now := time.Now().In(s.cfg.Location)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		slot := s.cfg.Grid.SlotAt(now)
		if entry != nil {
			today, slot = entry.Date, entry.Slot
		}

		_, err = s.store.Occupancy().With(tx).CreateEntry(ctx, po.TableID, domain.OwnerSale, sale.ID, today, slot)
		if err != nil {
			if errors.Is(err, repository.ErrSlotTaken) {
				return ErrTableBusy
			}
			return err
		}

		if err := s.store.PendingOrders().With(tx).SetStatus(ctx, id, domain.PendingOrderCompleted); err != nil {
			return err
		}

		out = &domain.SaleWithItems{Sale: *sale, TableID: po.TableID, Items: lines}

		tableID := po.TableID
		total := po.TotalCents

		after(func(ctx context.Context) {
			s.notifyDate(ctx, today)
			s.publishKitchen(ctx, "kitchen.order.created", kitchenEvent{
				OrderID:    sale.ID,
				TableID:    tableID,
				TotalCents: total,
				Items:      lines,
				Ts:         time.Now().UTC(),
			})
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// DestroyPending discards a draft order and frees the table.
func (s *Service) DestroyPending(ctx context.Context, id int64) error {
	const op = "orders.Service.DestroyPending"

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		po, err := s.store.PendingOrders().With(tx).Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}

		if po.Status != domain.PendingOrderActive {
			return ErrDraftClosed
		}

		entry, err := s.store.Occupancy().With(tx).GetByOwner(ctx, domain.OwnerPendingOrder, id)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		if err := s.store.Occupancy().With(tx).DeleteByOwner(ctx, domain.OwnerPendingOrder, id); err != nil {
			return err
		}

		if err := s.store.PendingOrders().With(tx).Delete(ctx, id); err != nil {
			return err
		}

		if entry != nil {
			date := entry.Date
			after(func(ctx context.Context) { s.notifyDate(ctx, date) })
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// ListPending returns every active draft with its table name and items.
func (s *Service) ListPending(ctx context.Context) ([]domain.PendingOrderWithItems, error) {
	const op = "orders.Service.ListPending"

	out, err := s.store.PendingOrders().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (s *Service) snapshotItems(
	ctx context.Context,
	tx postgresrepo.DB,
	items []Item,
) ([]domain.LineItem, int, error) {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.MenuID)
	}

	menus, err := s.store.Menus().With(tx).ByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	lines := make([]domain.LineItem, 0, len(items))
	total := 0
	for _, it := range items {
		m, ok := menus[it.MenuID]
		if !ok {
			return nil, 0, ErrMenuNotFound
		}

		sub := m.PriceCents * it.Quantity
		total += sub
		lines = append(lines, domain.LineItem{
			MenuID:        m.ID,
			MenuName:      m.Name,
			Quantity:      it.Quantity,
			PriceCents:    m.PriceCents,
			SubtotalCents: sub,
		})
	}

	return lines, total, nil
}

func (s *Service) notifyDate(ctx context.Context, date time.Time) {
	key := date.Format(time.DateOnly)
	_ = s.cache.InvalidateDate(ctx, key)
	_ = s.pubsub.PublishDateChanged(ctx, key)
}

func (s *Service) publishKitchen(ctx context.Context, key string, ev kitchenEvent) {
	if s.kitchen == nil {
		return
	}

	_ = s.kitchen.PublishJSON(ctx, key, ev)
}
