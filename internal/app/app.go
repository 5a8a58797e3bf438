package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"tablebook/internal/config"
	"tablebook/internal/domain"
	"tablebook/internal/mq"
	"tablebook/internal/postgres"
	"tablebook/internal/redis"
	postgresrepo "tablebook/internal/repository/postgres"
	redisrepo "tablebook/internal/repository/redis"
	"tablebook/internal/service"
	"tablebook/internal/service/auth"
	"tablebook/internal/service/availability"
	"tablebook/internal/service/booking"
	"tablebook/internal/service/orders"
	httpgin "tablebook/internal/transport/http/gin"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	pubsub     *redisrepo.AvailabilityPubSub
	cache      *redisrepo.Cache
	kitchen    *mq.Client
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Initialize dependencies
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.Name,
		cfg.Postgres.SSLMode,
	)

	pgxPool, err := postgres.New(context.Background(), postgres.Config{DSN: dsn})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	rdb, err := redis.New(context.Background(), redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	kitchen, err := mq.Dial(mq.Config{URL: cfg.AMQP.URL, Exchange: cfg.AMQP.Exchange})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize amqp: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Restaurant.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurant timezone: %w", err)
	}

	// Initialize repositories
	store := postgresrepo.NewStore(pgxPool)
	cache := redisrepo.New(rdb)
	pubsub := redisrepo.NewAvailabilityPubSub(rdb)
	limiter := redisrepo.NewSlidingWindowLimiter(rdb, "rl", 10, 1*time.Minute)
	idempotencyStore := redisrepo.NewIdempotencyStore(rdb, 2*time.Hour)

	grid := bookingGrid(cfg.Restaurant)

	// Initialize services
	services := service.NewServices(store, cache, pubsub, kitchen, service.Config{
		Auth: auth.Config{
			Secret:    cfg.Auth.JWTSecret,
			AccessTTL: cfg.Auth.AccessTTL,
		},
		Availability: availability.Config{
			OpenHour:    cfg.Restaurant.OpenHour,
			CloseHour:   cfg.Restaurant.CloseHour,
			StepMinutes: cfg.Restaurant.SlotMinutes,
			Location:    loc,
		},
		Booking: booking.Config{Grid: grid, Location: loc},
		Orders:  orders.Config{Grid: grid, Location: loc},
	})

	// Initialize Gin router
	router := httpgin.NewRouter(services, idempotencyStore, limiter, logger)

	return &App{
		cfg:    cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
		pubsub:  pubsub,
		cache:   cache,
		kitchen: kitchen,
	}, nil
}

func bookingGrid(cfg config.RestaurantConfig) domain.SlotGrid {
	return domain.SlotGrid{
		OpenHour:    cfg.OpenHour,
		CloseHour:   cfg.CloseHour,
		StepMinutes: cfg.SlotMinutes,
	}
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Ledger changes made by other instances arrive over pub/sub. Drop the
	// cached availability for the changed date so the next read recomputes.
	g.Go(func() error {
		err := a.pubsub.Subscribe(gCtx, func(ctx context.Context, date string) {
			if err := a.cache.InvalidateDate(ctx, date); err != nil {
				a.logger.Warn("availability invalidation failed", "date", date, "err", err)
			}
		})
		if err != nil && gCtx.Err() == nil {
			return fmt.Errorf("availability subscription: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		a.kitchen.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
