package service

import (
	"tablebook/internal/mq"
	postgres "tablebook/internal/repository/postgres"
	redis "tablebook/internal/repository/redis"
	"tablebook/internal/service/auth"
	"tablebook/internal/service/availability"
	"tablebook/internal/service/booking"
	"tablebook/internal/service/menu"
	"tablebook/internal/service/orders"
)

type Services struct {
	Auth         *auth.Service
	Availability *availability.Service
	Booking      *booking.Service
	Menu         *menu.Service
	Orders       *orders.Service
}

type Config struct {
	Auth         auth.Config
	Availability availability.Config
	Booking      booking.Config
	Menu         menu.Config
	Orders       orders.Config
}

func NewServices(
	store *postgres.Store,
	cache *redis.Cache,
	pubsub *redis.AvailabilityPubSub,
	kitchen *mq.Client,
	cfg Config,
) *Services {
	return &Services{
		Auth:         auth.New(store, cfg.Auth),
		Availability: availability.New(store, cache, cfg.Availability),
		Booking:      booking.New(store, cache, pubsub, cfg.Booking),
		Menu:         menu.New(store, cache, cfg.Menu),
		Orders:       orders.New(store, cache, pubsub, kitchen, cfg.Orders),
	}
}
