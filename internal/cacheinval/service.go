// Package cacheinval drops cached order views when an external process
// (payment webhook, admin panel) changes an order's status. The API itself
// never mutates orders, so this consumer is the only path that has to know a
// cached view went stale before its TTL.
package cacheinval

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/hijauloka/orderview/internal/kafka"
	"github.com/hijauloka/orderview/internal/orders"
	"github.com/hijauloka/orderview/internal/redisx"
)

type Service struct {
	Redis       *redis.Client
	ServiceName string
}

// HandleStatusChanged dipasang sebagai handler consumer.
func (s *Service) HandleStatusChanged(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderStatusChanged {
		return nil // ignore
	}

	// dedup via Redis (pakai event_id)
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	exists, _ := redisx.Exists(ctx, s.Redis, dkey)
	if exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	p, err := kafkax.UnwrapPayload[orders.StatusChangedPayload](env.Payload)
	if err != nil {
		return err
	}

	key := fmt.Sprintf(redisx.KeyOrderView, p.OrderCode)
	if err := s.Redis.Del(ctx, key).Err(); err != nil {
		return err
	}
	slog.Info("order view invalidated",
		slog.String("order_code", p.OrderCode),
		slog.String("old_status", string(p.OldStatus)),
		slog.String("new_status", string(p.NewStatus)),
	)
	return nil
}
