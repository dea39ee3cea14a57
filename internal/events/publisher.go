package events

import (
	"context"
	"encoding/json"
	"fmt"

	"feedbackhub/internal/cache"
	"feedbackhub/internal/model"
)

// Channel is the Redis pub/sub channel carrying feedback events.
const Channel = "feedback.events"

// TypeFeedbackUpdate is the event type emitted when a feedback entry is created.
const TypeFeedbackUpdate = "FEEDBACK_UPDATE"

// Envelope is the wire format for published events.
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Publisher emits domain events to zero or more subscribers. Publication is a
// side effect of a successful insert: a failed publish must never roll back or
// fail the write that produced it.
type Publisher interface {
	FeedbackCreated(ctx context.Context, feedback *model.Feedback) error
}

type redisPublisher struct {
	cache *cache.Client
}

// NewRedisPublisher creates a Redis pub/sub backed publisher.
func NewRedisPublisher(cache *cache.Client) Publisher {
	return &redisPublisher{cache: cache}
}

// FeedbackCreated publishes a FEEDBACK_UPDATE event carrying the new entry.
func (p *redisPublisher) FeedbackCreated(ctx context.Context, feedback *model.Feedback) error {
	payload, err := json.Marshal(Envelope{
		Type: TypeFeedbackUpdate,
		Data: feedback,
	})
	if err != nil {
		return fmt.Errorf("marshal feedback event: %w", err)
	}
	return p.cache.Publish(ctx, Channel, payload)
}
