// Package events publishes user lifecycle events to a Redis stream.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/userapi/userapi/internal/metrics"
)

const (
	// StreamKey is the Redis stream for user events.
	StreamKey = "stream:user_events"

	// MaxStreamLen is the approximate max length of the stream.
	MaxStreamLen = 100000

	// PublishTimeout is the max time to wait for Redis publish.
	PublishTimeout = 100 * time.Millisecond
)

// Event types.
const (
	TypeUserCreated = "user.created"
	TypeUserUpdated = "user.updated"
	TypeUserDeleted = "user.deleted"
)

// UserEventPayload is the compact event format written to the stream.
type UserEventPayload struct {
	Type       string `json:"type"` // one of the Type* constants
	UserID     string `json:"uid"`
	OccurredAt int64  `json:"t"` // Unix milliseconds
}

// NewUserEvent builds a payload for the given type and user.
func NewUserEvent(eventType, userID string, at time.Time) UserEventPayload {
	return UserEventPayload{
		Type:       eventType,
		UserID:     userID,
		OccurredAt: at.UnixMilli(),
	}
}

// StreamAdder is the subset of the Redis client used for publishing.
// *redis.Client satisfies it.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// Publisher enqueues user events to a Redis stream.
type Publisher struct {
	redis   StreamAdder
	logger  *slog.Logger
	metrics metrics.Recorder
	wg      sync.WaitGroup
}

// NewPublisher creates a new user event publisher.
func NewPublisher(client StreamAdder, logger *slog.Logger, recorder metrics.Recorder) *Publisher {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Publisher{
		redis:   client,
		logger:  logger.With("component", "events.publisher"),
		metrics: recorder,
	}
}

// Publish adds an event to the stream synchronously.
func (p *Publisher) Publish(ctx context.Context, event UserEventPayload) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("marshal event: %w", err)
	}

	result, err := p.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		MaxLen: MaxStreamLen,
		Approx: true,
		ID:     "*",
		Values: map[string]interface{}{
			"payload": string(data),
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("xadd: %w", err)
	}

	return result, nil
}

// PublishAsync publishes without blocking the caller.
// Errors are logged and counted but not returned.
func (p *Publisher) PublishAsync(event UserEventPayload) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), PublishTimeout)
		defer cancel()

		streamID, err := p.Publish(ctx, event)
		if err != nil {
			p.logger.Warn("failed to publish user event",
				"type", event.Type,
				"user_id", event.UserID,
				"error", err,
			)
			p.metrics.IncEventPublished("dropped")
			return
		}

		p.logger.Debug("user event published",
			"type", event.Type,
			"user_id", event.UserID,
			"stream_id", streamID,
		)
		p.metrics.IncEventPublished("success")
	}()
}

// Close waits for in-flight publishes or until ctx is done.
func (p *Publisher) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for pending events: %w", ctx.Err())
	}
}

// NoopPublisher discards events. Used when Redis is not configured.
type NoopPublisher struct{}

// PublishAsync is a no-op.
func (NoopPublisher) PublishAsync(UserEventPayload) {}
