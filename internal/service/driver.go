package service

import (
	"context"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// DriverService handles driver operations including the uniqueness checks
// on phone numbers and car numbers.
type DriverService struct {
	driverRepo repository.DriverRepository
}

// NewDriverService creates a new DriverService.
func NewDriverService(driverRepo repository.DriverRepository) *DriverService {
	return &DriverService{driverRepo: driverRepo}
}

// Create validates uniqueness and persists a driver with its cars.
// Checks run first-fail-wins: duplicate car numbers within the request
// itself fail before any store lookup, then the phone number, then each
// car number against the store.
func (s *DriverService) Create(ctx context.Context, driver *domain.Driver) (*domain.Driver, error) {
	if err := s.checkUnique(ctx, driver, 0); err != nil {
		return nil, err
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// Update validates uniqueness excluding the driver itself, then
// overwrites the driver and replaces its cars.
func (s *DriverService) Update(ctx context.Context, id int64, driver *domain.Driver) (*domain.Driver, error) {
	driver.ID = id

	if _, err := s.driverRepo.GetByID(ctx, id); err != nil {
		return nil, mapNotFound(err, "Driver", id)
	}

	if err := s.checkUnique(ctx, driver, id); err != nil {
		return nil, err
	}

	if err := s.driverRepo.Update(ctx, driver); err != nil {
		return nil, mapNotFound(err, "Driver", id)
	}
	return driver, nil
}

// GetByID retrieves a driver with its cars.
func (s *DriverService) GetByID(ctx context.Context, id int64) (*domain.Driver, error) {
	driver, err := s.driverRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "Driver", id)
	}
	return driver, nil
}

// List retrieves a page of drivers.
func (s *DriverService) List(ctx context.Context, page repository.PageQuery) (repository.Page[*domain.Driver], error) {
	return s.driverRepo.List(ctx, page)
}

// Delete removes a driver and its cars.
func (s *DriverService) Delete(ctx context.Context, id int64) error {
	if err := s.driverRepo.Delete(ctx, id); err != nil {
		return mapNotFound(err, "Driver", id)
	}
	return nil
}

// checkUnique enforces the uniqueness invariants for a driver request.
// excludeID is 0 on create so no record is excluded; on update it is the
// driver's own id so an unchanged phone or car number does not falsely
// collide (idNot exclusion).
func (s *DriverService) checkUnique(ctx context.Context, driver *domain.Driver, excludeID int64) error {
	// Within-request duplicates fail before any database check.
	seen := make(map[string]struct{}, len(driver.Cars))
	for _, car := range driver.Cars {
		if _, dup := seen[car.Number]; dup {
			return domain.NewDuplicateError("Duplicate car number found: %s", car.Number)
		}
		seen[car.Number] = struct{}{}
	}

	exists, err := s.driverRepo.PhoneNumberExists(ctx, driver.PhoneNumber, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.NewDuplicateError("Driver with phone number %s already exists", driver.PhoneNumber)
	}

	for _, car := range driver.Cars {
		exists, err := s.driverRepo.CarNumberExists(ctx, car.Number, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return domain.NewDuplicateError("Car with number %s already exists", car.Number)
		}
	}

	return nil
}
