package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AlHudnitskii/walletledger/internal/domain"
)

// Publisher broadcasts outbox events on a Redis channel. Consumers
// subscribe to the channel; delivery is fire-and-forget, the outbox
// row remains the durable record.
type Publisher struct {
	client  *redis.Client
	channel string
}

// NewPublisher creates a new Publisher on the given channel.
func NewPublisher(client *redis.Client, channel string) *Publisher {
	return &Publisher{
		client:  client,
		channel: channel,
	}
}

// eventEnvelope is the wire form of a published event.
type eventEnvelope struct {
	ID            string         `json:"id"`
	AggregateID   string         `json:"aggregate_id"`
	AggregateType string         `json:"aggregate_type"`
	EventType     string         `json:"event_type"`
	Payload       map[string]any `json:"payload"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Publish serializes the event and publishes it on the channel.
func (p *Publisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	envelope, err := json.Marshal(eventEnvelope{
		ID:            event.ID,
		AggregateID:   event.AggregateID,
		AggregateType: event.AggregateType,
		EventType:     event.EventType,
		Payload:       event.Payload,
		CreatedAt:     event.CreatedAt,
	})
	if err != nil {
		return err
	}

	return p.client.Publish(ctx, p.channel, envelope).Err()
}
