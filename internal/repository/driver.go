package repository

import (
	"context"

	"ridehail/internal/domain"
)

// DriverRepository defines the persistence operations for drivers and
// their cars.
type DriverRepository interface {
	// Create persists a new driver with its cars in one transaction.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver with its cars.
	GetByID(ctx context.Context, id int64) (*domain.Driver, error)

	// List retrieves a page of drivers with their cars.
	List(ctx context.Context, page PageQuery) (Page[*domain.Driver], error)

	// Update overwrites a driver and replaces its cars in one transaction.
	Update(ctx context.Context, driver *domain.Driver) error

	// Delete removes a driver and cascades to its cars.
	Delete(ctx context.Context, id int64) error

	// PhoneNumberExists reports whether another driver (id != excludeID)
	// already has the given phone number.
	PhoneNumberExists(ctx context.Context, phoneNumber string, excludeID int64) (bool, error)

	// CarNumberExists reports whether a car with the given number exists
	// on a driver other than excludeDriverID.
	CarNumberExists(ctx context.Context, number string, excludeDriverID int64) (bool, error)
}
