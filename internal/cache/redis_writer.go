// Package cache mirrors refresh output into Redis so sibling services
// can read the schedule without hitting this service's HTTP surface.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"team-schedule-service/internal/domain/events"
)

const (
	// EventsTTL covers a full refresh day plus slack; keys roll daily.
	EventsTTL = 24 * time.Hour
	// EventTTL for individual event entries.
	EventTTL = 24 * time.Hour
)

// RedisWriter handles writing schedule data to Redis.
type RedisWriter struct {
	client *redis.Client
}

// NewRedisWriter creates a new Redis writer.
func NewRedisWriter(client *redis.Client) *RedisWriter {
	return &RedisWriter{client: client}
}

// WriteEvents stores the full event list under a per-date key and each
// event under its own key.
func (w *RedisWriter) WriteEvents(ctx context.Context, date string, evs []events.Event) error {
	if w == nil || w.client == nil {
		return nil
	}

	key := fmt.Sprintf("schedule:events:%s", date)
	data, err := json.Marshal(evs)
	if err != nil {
		return fmt.Errorf("marshaling events: %w", err)
	}

	pipe := w.client.Pipeline()
	pipe.Set(ctx, key, data, EventsTTL)
	for _, ev := range evs {
		evData, marshalErr := json.Marshal(ev)
		if marshalErr != nil {
			return fmt.Errorf("marshaling event %s: %w", ev.ID, marshalErr)
		}
		pipe.Set(ctx, fmt.Sprintf("schedule:event:%s", ev.ID), evData, EventTTL)
	}

	_, err = pipe.Exec(ctx)
	return err
}

// ReadEvents retrieves the event list for a date.
func (w *RedisWriter) ReadEvents(ctx context.Context, date string) ([]events.Event, error) {
	key := fmt.Sprintf("schedule:events:%s", date)

	data, err := w.client.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var evs []events.Event
	if err := json.Unmarshal([]byte(data), &evs); err != nil {
		return nil, fmt.Errorf("unmarshaling events: %w", err)
	}
	return evs, nil
}
