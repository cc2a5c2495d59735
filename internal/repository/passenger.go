package repository

import (
	"context"

	"ridehail/internal/domain"
)

// PassengerRepository defines the persistence operations for passengers.
// Deletes are soft: deleted rows are excluded from reads and uniqueness
// checks.
type PassengerRepository interface {
	// Create persists a new passenger.
	Create(ctx context.Context, passenger *domain.Passenger) error

	// GetByID retrieves a non-deleted passenger by ID.
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)

	// List retrieves a page of non-deleted passengers.
	List(ctx context.Context, page PageQuery) (Page[*domain.Passenger], error)

	// Update overwrites the mutable fields of a passenger.
	Update(ctx context.Context, passenger *domain.Passenger) error

	// SoftDelete marks a passenger deleted without removing the row.
	SoftDelete(ctx context.Context, id int64) error

	// EmailExists reports whether another passenger (id != excludeID)
	// already has the given email.
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)

	// PhoneNumberExists reports whether another passenger (id != excludeID)
	// already has the given phone number.
	PhoneNumberExists(ctx context.Context, phoneNumber string, excludeID int64) (bool, error)
}
