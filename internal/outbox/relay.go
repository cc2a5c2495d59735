// Package outbox drains the ride_outbox table to the broker. Events are
// recorded in the same transaction as the ride save and published here,
// after commit, so a rating seed is never emitted for a ride that was
// rolled back.
package outbox

import (
	"context"
	"log"
	"time"

	"ridehail/internal/repository"
)

// Publisher is the broker-facing side of the relay.
type Publisher interface {
	Publish(routingKey, messageID string, body []byte) error
}

// Relay polls for unpublished outbox rows and hands them to the broker.
// A Nudge after commit makes delivery prompt without coupling the request
// path to broker availability.
type Relay struct {
	repo      repository.OutboxRepository
	publisher Publisher
	interval  time.Duration
	batchSize int
	nudge     chan struct{}
}

// NewRelay creates a relay that polls every interval.
func NewRelay(repo repository.OutboxRepository, publisher Publisher, interval time.Duration) *Relay {
	return &Relay{
		repo:      repo,
		publisher: publisher,
		interval:  interval,
		batchSize: 100,
		nudge:     make(chan struct{}, 1),
	}
}

// Nudge asks the relay to drain soon. Safe to call from request handlers;
// never blocks.
func (r *Relay) Nudge() {
	select {
	case r.nudge <- struct{}{}:
	default:
	}
}

// Run drains the outbox until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-r.nudge:
		}
		r.drain(ctx)
	}
}

// drain publishes pending messages oldest first. A publish failure stops
// the pass; the row stays unpublished and the next tick retries it.
func (r *Relay) drain(ctx context.Context) {
	for {
		messages, err := r.repo.ListUnpublished(ctx, r.batchSize)
		if err != nil {
			log.Printf("outbox: list unpublished: %v", err)
			return
		}
		if len(messages) == 0 {
			return
		}

		for _, msg := range messages {
			if err := r.publisher.Publish(msg.RoutingKey, msg.MessageID, msg.Payload); err != nil {
				log.Printf("outbox: publish message %s: %v", msg.MessageID, err)
				return
			}
			if err := r.repo.MarkPublished(ctx, msg.ID); err != nil {
				// The message went out but the mark failed; the next pass
				// republishes and the consumer's upsert absorbs it.
				log.Printf("outbox: mark published %d: %v", msg.ID, err)
				return
			}
		}

		if len(messages) < r.batchSize {
			return
		}
	}
}
