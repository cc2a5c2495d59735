package repository

import (
	"context"
	"time"
)

// OutboxMessage is an event recorded in the same transaction as the state
// change that produced it. The relay publishes it after commit, so an
// event is never sent for a ride that was not durably persisted.
type OutboxMessage struct {
	ID         int64
	MessageID  string
	RoutingKey string
	Payload    []byte
	CreatedAt  time.Time
}

// OutboxRepository defines the persistence operations for the outbox.
type OutboxRepository interface {
	// ListUnpublished retrieves up to limit unpublished messages, oldest
	// first.
	ListUnpublished(ctx context.Context, limit int) ([]*OutboxMessage, error)

	// MarkPublished records that a message was handed to the broker.
	MarkPublished(ctx context.Context, id int64) error
}
