package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// RatingConsumer seeds skeleton rating rows from ride events. Delivery is
// at-least-once; the upsert keyed by (driver, user, ride) makes redelivery
// a no-op.
type RatingConsumer struct {
	ratingRepo repository.RatingRepository
}

// NewRatingConsumer creates a new RatingConsumer.
func NewRatingConsumer(ratingRepo repository.RatingRepository) *RatingConsumer {
	return &RatingConsumer{ratingRepo: ratingRepo}
}

// HandleMessage processes one rating-seed payload. A payload that cannot
// be parsed is an error so the broker adapter can drop it as poison.
func (c *RatingConsumer) HandleMessage(ctx context.Context, body []byte) error {
	var event domain.RatingSeedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("rating seed: unmarshal: %w", err)
	}

	if event.SchemaVersion != domain.RatingSeedSchemaVersion {
		return fmt.Errorf("rating seed: unsupported schema version %d", event.SchemaVersion)
	}

	rating := &domain.Rating{
		DriverID: event.DriverID,
		UserID:   event.PassengerID,
		RideID:   event.RideID,
	}
	if err := c.ratingRepo.Upsert(ctx, rating); err != nil {
		return fmt.Errorf("rating seed: upsert: %w", err)
	}

	log.Printf("seeded rating %d for ride %d", rating.ID, event.RideID)
	return nil
}

// HandleDelivery adapts HandleMessage to the broker consumer signature.
func (c *RatingConsumer) HandleDelivery(ctx context.Context, d amqp.Delivery) error {
	return c.HandleMessage(ctx, d.Body)
}
