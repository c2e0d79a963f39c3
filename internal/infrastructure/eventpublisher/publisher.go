package eventpublisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/AlHudnitskii/walletledger/internal/domain"
	"github.com/AlHudnitskii/walletledger/internal/infrastructure/logging"
	"github.com/AlHudnitskii/walletledger/internal/infrastructure/metrics"
	"github.com/AlHudnitskii/walletledger/internal/usecase"
)

// EventPublisher drains the outbox: it polls for pending events,
// publishes them and marks the outcome. Events that keep failing are
// parked as failed after maxRetries attempts so one poison event cannot
// stall the stream.
type EventPublisher struct {
	outboxRepo usecase.OutboxRepository
	publisher  Publisher
	logger     *slog.Logger
	metrics    *metrics.Metrics
	batchSize  int
	interval   time.Duration
	maxRetries int32
	retention  time.Duration
	lastPrune  time.Time
}

// pruneEvery bounds how often published events are deleted, independent
// of the polling interval.
const pruneEvery = time.Hour

// Publisher defines the interface for publishing events to external systems.
type Publisher interface {
	Publish(ctx context.Context, event *domain.OutboxEvent) error
}

// Config for EventPublisher.
type Config struct {
	OutboxRepo usecase.OutboxRepository
	Publisher  Publisher
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	BatchSize  int           // Number of events to fetch per batch
	Interval   time.Duration // Polling interval
	MaxRetries int32         // Failures before an event parks as failed
	Retention  time.Duration // Published events older than this are deleted; 0 keeps them forever
}

// NewEventPublisher creates a new EventPublisher.
func NewEventPublisher(cfg Config) *EventPublisher {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.Interval == 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 5
	}

	return &EventPublisher{
		outboxRepo: cfg.OutboxRepo,
		publisher:  cfg.Publisher,
		logger:     logging.WithComponent(cfg.Logger, "outbox-publisher"),
		metrics:    cfg.Metrics,
		batchSize:  cfg.BatchSize,
		interval:   cfg.Interval,
		maxRetries: cfg.MaxRetries,
		retention:  cfg.Retention,
	}
}

// Start begins the publishing loop. It processes one batch immediately,
// then on every tick, and runs until the context is cancelled.
func (ep *EventPublisher) Start(ctx context.Context) error {
	ep.logger.Info("event publisher started",
		slog.Int("batch_size", ep.batchSize),
		slog.Duration("interval", ep.interval))

	ticker := time.NewTicker(ep.interval)
	defer ticker.Stop()

	if err := ep.processEvents(ctx); err != nil {
		ep.logger.Error("error processing events on start", slog.String("error", err.Error()))
	}
	ep.maybePrune(ctx)

	for {
		select {
		case <-ctx.Done():
			ep.logger.Info("event publisher shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := ep.processEvents(ctx); err != nil {
				ep.logger.Error("error processing events", slog.String("error", err.Error()))
			}
			ep.maybePrune(ctx)
		}
	}
}

// processEvents fetches and publishes one batch of pending events.
func (ep *EventPublisher) processEvents(ctx context.Context) error {
	events, err := ep.outboxRepo.GetPending(ctx, ep.batchSize)
	if err != nil {
		return err
	}

	if ep.metrics != nil {
		ep.metrics.OutboxPending.Set(float64(len(events)))
	}

	if len(events) == 0 {
		return nil
	}

	ep.logger.Debug("processing events", slog.Int("count", len(events)))

	for _, event := range events {
		if err := ep.publishEvent(ctx, event); err != nil {
			ep.logger.Error("failed to publish event",
				slog.String("event_id", event.ID),
				slog.String("event_type", event.EventType),
				slog.Int("retry_count", int(event.RetryCount)),
				slog.String("error", err.Error()))

			if ep.metrics != nil {
				ep.metrics.OutboxPublishErrors.Inc()
			}
			if err := ep.outboxRepo.MarkFailed(ctx, event.ID, ep.maxRetries); err != nil {
				ep.logger.Error("failed to record publish failure",
					slog.String("event_id", event.ID),
					slog.String("error", err.Error()))
			}
			continue
		}

		if ep.metrics != nil {
			ep.metrics.OutboxPublished.Inc()
		}
		if err := ep.outboxRepo.MarkPublished(ctx, event.ID, time.Now()); err != nil {
			// Do not retry the publish: marking failed here would
			// re-deliver an already published event.
			ep.logger.Error("failed to mark event as published",
				slog.String("event_id", event.ID),
				slog.String("error", err.Error()))
		}
	}

	return nil
}

// maybePrune deletes published events older than the retention window.
// Prunes run at most once per pruneEvery.
func (ep *EventPublisher) maybePrune(ctx context.Context) {
	if ep.retention <= 0 {
		return
	}
	if time.Since(ep.lastPrune) < pruneEvery {
		return
	}
	ep.lastPrune = time.Now()

	cutoff := time.Now().Add(-ep.retention)
	if err := ep.outboxRepo.DeletePublished(ctx, cutoff); err != nil {
		ep.logger.Error("failed to prune published events", slog.String("error", err.Error()))
		return
	}
	ep.logger.Debug("pruned published events", slog.Time("before", cutoff))
}

func (ep *EventPublisher) publishEvent(ctx context.Context, event *domain.OutboxEvent) error {
	if err := ep.publisher.Publish(ctx, event); err != nil {
		return err
	}

	ep.logger.Info("event published",
		slog.String("event_id", event.ID),
		slog.String("event_type", event.EventType),
		slog.String("aggregate_type", event.AggregateType),
		slog.String("aggregate_id", event.AggregateID))

	return nil
}

// LogPublisher writes events to the log instead of a broker. It is the
// fallback when the server runs without Redis.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logging.WithComponent(logger, "log-publisher")}
}

// Publish logs the event.
func (p *LogPublisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	p.logger.Info("event published",
		slog.String("event_id", event.ID),
		slog.String("event_type", event.EventType),
		slog.String("aggregate_type", event.AggregateType),
		slog.String("aggregate_id", event.AggregateID),
		slog.String("payload", string(payload)))

	return nil
}
