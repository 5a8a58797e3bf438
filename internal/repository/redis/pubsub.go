package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// AvailabilityPubSub fans out "availability changed for this date"
// notifications so floor displays can refresh without polling.
type AvailabilityPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewAvailabilityPubSub(rdb *redis.Client) *AvailabilityPubSub {
	return &AvailabilityPubSub{
		rdb:     rdb,
		channel: ChannelAvailabilityChanged(),
	}
}

type dateChangedMsg struct {
	Type   string `json:"type"`
	Date   string `json:"date"`
	TsUnix int64  `json:"ts_unix"`
}

func (p *AvailabilityPubSub) PublishDateChanged(ctx context.Context, date string) error {
	msg := dateChangedMsg{
		Type:   "availability_changed",
		Date:   date,
		TsUnix: time.Now().Unix(),
	}

	b, _ := json.Marshal(msg)

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

func (p *AvailabilityPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, date string)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var ev dateChangedMsg
			if err := json.Unmarshal([]byte(m.Payload), &ev); err == nil && ev.Date != "" {
				handler(ctx, ev.Date)
			}
		}
	}
}
