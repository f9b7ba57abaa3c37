// Package events announces committed changes to bid chains so that caches
// keyed on bid ownership can drop stale entries.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	model "offer-bidding/internal/models"

	"github.com/go-redis/redis/v8"
)

const DefaultChannel = "bid_events"

type Publisher interface {
	Publish(ctx context.Context, event model.BidEvent) error
}

// RedisPublisher publishes events as JSON on a pub/sub channel
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, event model.BidEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event for bid %s: %w", event.Type, event.BidID, err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s event for bid %s: %w", event.Type, event.BidID, err)
	}
	return nil
}

func (p *RedisPublisher) Channel() string { return p.channel }

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, model.BidEvent) error { return nil }

// Recorder keeps published events in memory
type Recorder struct {
	mu     sync.Mutex
	events []model.BidEvent
}

func (r *Recorder) Publish(_ context.Context, event model.BidEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of everything recorded so far
func (r *Recorder) Events() []model.BidEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.BidEvent(nil), r.events...)
}
