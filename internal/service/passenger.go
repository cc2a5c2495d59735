package service

import (
	"context"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// PassengerService handles passenger operations including the uniqueness
// checks on email and phone number.
type PassengerService struct {
	passengerRepo repository.PassengerRepository
}

// NewPassengerService creates a new PassengerService.
func NewPassengerService(passengerRepo repository.PassengerRepository) *PassengerService {
	return &PassengerService{passengerRepo: passengerRepo}
}

// Create validates uniqueness and persists a passenger. Email is checked
// before phone number; the first failing check wins.
func (s *PassengerService) Create(ctx context.Context, passenger *domain.Passenger) (*domain.Passenger, error) {
	if err := s.checkUnique(ctx, passenger, 0); err != nil {
		return nil, err
	}

	if err := s.passengerRepo.Create(ctx, passenger); err != nil {
		return nil, err
	}
	return passenger, nil
}

// Update validates uniqueness excluding the passenger itself, then
// overwrites the mutable fields.
func (s *PassengerService) Update(ctx context.Context, id int64, passenger *domain.Passenger) (*domain.Passenger, error) {
	passenger.ID = id

	if _, err := s.passengerRepo.GetByID(ctx, id); err != nil {
		return nil, mapNotFound(err, "Passenger", id)
	}

	if err := s.checkUnique(ctx, passenger, id); err != nil {
		return nil, err
	}

	if err := s.passengerRepo.Update(ctx, passenger); err != nil {
		return nil, mapNotFound(err, "Passenger", id)
	}
	return passenger, nil
}

// GetByID retrieves a non-deleted passenger.
func (s *PassengerService) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	passenger, err := s.passengerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "Passenger", id)
	}
	return passenger, nil
}

// List retrieves a page of non-deleted passengers.
func (s *PassengerService) List(ctx context.Context, page repository.PageQuery) (repository.Page[*domain.Passenger], error) {
	return s.passengerRepo.List(ctx, page)
}

// Delete soft-deletes a passenger.
func (s *PassengerService) Delete(ctx context.Context, id int64) error {
	if err := s.passengerRepo.SoftDelete(ctx, id); err != nil {
		return mapNotFound(err, "Passenger", id)
	}
	return nil
}

// checkUnique enforces the uniqueness invariants for a passenger request
// with idNot exclusion (excludeID = 0 on create).
func (s *PassengerService) checkUnique(ctx context.Context, passenger *domain.Passenger, excludeID int64) error {
	exists, err := s.passengerRepo.EmailExists(ctx, passenger.Email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.NewDuplicateError("Passenger with email %s already exists", passenger.Email)
	}

	exists, err = s.passengerRepo.PhoneNumberExists(ctx, passenger.PhoneNumber, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.NewDuplicateError("Passenger with phone number %s already exists", passenger.PhoneNumber)
	}

	return nil
}
