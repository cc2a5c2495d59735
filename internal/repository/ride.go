package repository

import (
	"context"

	"ridehail/internal/domain"
)

// RideRepository defines the persistence operations for rides.
type RideRepository interface {
	// CreateWithOutbox persists a new ride and an outbox message in one
	// transaction. makeMessage runs after the ride ID is assigned so the
	// payload can reference it; the message is published by the relay
	// only after the transaction commits.
	CreateWithOutbox(ctx context.Context, ride *domain.Ride, makeMessage func(*domain.Ride) (*OutboxMessage, error)) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id int64) (*domain.Ride, error)

	// List retrieves a page of rides matching the filter. Nil filter
	// fields do not constrain the result set.
	List(ctx context.Context, filter RideFilter, page PageQuery) (Page[*domain.Ride], error)

	// Update overwrites the mutable fields of an existing ride.
	Update(ctx context.Context, ride *domain.Ride) error

	// UpdateStatus overwrites only the status of an existing ride.
	UpdateStatus(ctx context.Context, id int64, status domain.RideStatus) error

	// Delete hard-deletes a ride.
	Delete(ctx context.Context, id int64) error
}
