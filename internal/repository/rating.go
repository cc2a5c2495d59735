package repository

import (
	"context"

	"ridehail/internal/domain"
)

// RatingRepository defines the persistence operations for ratings.
type RatingRepository interface {
	// Create persists a new rating.
	Create(ctx context.Context, rating *domain.Rating) error

	// Upsert seeds a skeleton rating keyed by (driver_id, user_id,
	// ride_id). Redelivered events must not produce duplicate rows.
	Upsert(ctx context.Context, rating *domain.Rating) error

	// GetByID retrieves a rating by ID.
	GetByID(ctx context.Context, id int64) (*domain.Rating, error)

	// List retrieves a page of ratings.
	List(ctx context.Context, page PageQuery) (Page[*domain.Rating], error)

	// Update overwrites the score fields and comment of a rating.
	Update(ctx context.Context, rating *domain.Rating) error

	// Delete removes a rating.
	Delete(ctx context.Context, id int64) error
}
