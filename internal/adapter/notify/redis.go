package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"quickfactor-backend/internal/domain/event"
)

const channelPrefix = "events:"

// RedisDispatcher publishes lifecycle events to redis pub/sub channels,
// one channel per event kind. Delivery is best-effort: failures are
// logged and dropped, never returned to the caller.
type RedisDispatcher struct{ rdb *redis.Client }

func NewRedisDispatcher(rdb *redis.Client) *RedisDispatcher { return &RedisDispatcher{rdb: rdb} }

func (d *RedisDispatcher) Dispatch(ctx context.Context, events ...event.Event) {
	// detach from the request context so a finished request cannot
	// cancel delivery mid-batch
	pubCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for _, ev := range events {
		body, err := json.Marshal(ev)
		if err != nil {
			log.Printf("notify: marshal %s: %v", ev.Kind, err)
			continue
		}
		if err := d.rdb.Publish(pubCtx, channelPrefix+string(ev.Kind), body).Err(); err != nil {
			log.Printf("notify: publish %s: %v", ev.Kind, err)
		}
	}
}

// LogDispatcher writes events to the process log. Selected with
// EVENTS_SINK=log for local runs without pub/sub consumers.
type LogDispatcher struct{}

func (LogDispatcher) Dispatch(_ context.Context, events ...event.Event) {
	for _, ev := range events {
		log.Printf("event %s: %v", ev.Kind, ev.Payload)
	}
}
