package postgres

import (
	"context"
	"database/sql"

	"ridehail/internal/repository"
)

// OutboxRepository is a PostgreSQL implementation of repository.OutboxRepository.
type OutboxRepository struct {
	db *sql.DB
}

// NewOutboxRepository creates a new PostgreSQL outbox repository.
func NewOutboxRepository(db *sql.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

// ListUnpublished retrieves up to limit unpublished messages, oldest first.
// Two relay instances may pick up the same row; delivery is at-least-once
// and the consumer deduplicates, so that is acceptable.
func (r *OutboxRepository) ListUnpublished(ctx context.Context, limit int) ([]*repository.OutboxMessage, error) {
	query := `
		SELECT id, message_id, routing_key, payload, created_at
		FROM ride_outbox
		WHERE published_at IS NULL
		ORDER BY id
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*repository.OutboxMessage
	for rows.Next() {
		var msg repository.OutboxMessage
		if err := rows.Scan(&msg.ID, &msg.MessageID, &msg.RoutingKey, &msg.Payload, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, &msg)
	}
	return messages, rows.Err()
}

// MarkPublished records that a message was handed to the broker.
func (r *OutboxRepository) MarkPublished(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE ride_outbox SET published_at = NOW() WHERE id = $1`, id)
	return err
}
