package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"ridehail/internal/client"
	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// DriverResolver validates driver ids against the driver service.
type DriverResolver interface {
	ResolveDriver(ctx context.Context, id int64) (*client.DriverInfo, error)
}

// PassengerResolver validates passenger ids against the passenger service.
type PassengerResolver interface {
	ResolvePassenger(ctx context.Context, id int64) (*client.PassengerInfo, error)
}

// OutboxNudger asks the outbox relay to drain soon.
type OutboxNudger interface {
	Nudge()
}

// rideCreatedRoutingKey is the routing key rating seeds are published
// under; the rating.seed queue is bound to it.
const rideCreatedRoutingKey = "ride.created"

// RideService handles the ride lifecycle: foreign-entity validation,
// status transitions, persistence and rating-seed publication.
type RideService struct {
	rideRepo          repository.RideRepository
	driverResolver    DriverResolver
	passengerResolver PassengerResolver
	relay             OutboxNudger
}

// NewRideService creates a new RideService. relay may be nil.
func NewRideService(
	rideRepo repository.RideRepository,
	driverResolver DriverResolver,
	passengerResolver PassengerResolver,
	relay OutboxNudger,
) *RideService {
	return &RideService{
		rideRepo:          rideRepo,
		driverResolver:    driverResolver,
		passengerResolver: passengerResolver,
		relay:             relay,
	}
}

// RideRequest contains the client-supplied fields for creating or fully
// updating a ride. Status is deliberately absent: a new ride always
// starts CREATED and PUT never touches status.
type RideRequest struct {
	DriverID           int64
	PassengerID        int64
	PickupAddress      string
	DestinationAddress string
	Price              float64
}

// Create validates the foreign entities, persists the ride in CREATED
// state with a server-assigned order time, and records a rating-seed
// event in the same transaction. The event reaches the broker via the
// outbox relay after commit; the caller is not blocked on delivery.
func (s *RideService) Create(ctx context.Context, req RideRequest) (*domain.Ride, error) {
	if err := s.validateForeign(ctx, req.DriverID, req.PassengerID); err != nil {
		return nil, err
	}

	ride := &domain.Ride{
		DriverID:           req.DriverID,
		PassengerID:        req.PassengerID,
		PickupAddress:      req.PickupAddress,
		DestinationAddress: req.DestinationAddress,
		Status:             domain.RideStatusCreated,
		Price:              req.Price,
		OrderTime:          time.Now(),
	}

	err := s.rideRepo.CreateWithOutbox(ctx, ride, func(saved *domain.Ride) (*repository.OutboxMessage, error) {
		event := domain.RatingSeedEvent{
			SchemaVersion: domain.RatingSeedSchemaVersion,
			MessageID:     uuid.New().String(),
			DriverID:      saved.DriverID,
			PassengerID:   saved.PassengerID,
			RideID:        saved.ID,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, err
		}
		return &repository.OutboxMessage{
			MessageID:  event.MessageID,
			RoutingKey: rideCreatedRoutingKey,
			Payload:    payload,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if s.relay != nil {
		s.relay.Nudge()
	}

	return ride, nil
}

// Update re-validates the foreign entities and overwrites the mutable
// fields of the ride. Status and order time are immutable via this path;
// status changes go through UpdateStatus only.
func (s *RideService) Update(ctx context.Context, id int64, req RideRequest) (*domain.Ride, error) {
	ride, err := s.rideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "Ride", id)
	}

	if err := s.validateForeign(ctx, req.DriverID, req.PassengerID); err != nil {
		return nil, err
	}

	ride.DriverID = req.DriverID
	ride.PassengerID = req.PassengerID
	ride.PickupAddress = req.PickupAddress
	ride.DestinationAddress = req.DestinationAddress
	ride.Price = req.Price

	if err := s.rideRepo.Update(ctx, ride); err != nil {
		return nil, mapNotFound(err, "Ride", id)
	}

	return ride, nil
}

// UpdateStatus parses the status string against the enum and overwrites
// only the ride's status. Existence is checked before the status value,
// so a missing ride answers NotFound even when the status is also bad.
func (s *RideService) UpdateStatus(ctx context.Context, id int64, statusString string) (*domain.Ride, error) {
	if _, err := s.rideRepo.GetByID(ctx, id); err != nil {
		return nil, mapNotFound(err, "Ride", id)
	}

	status, err := domain.ParseRideStatus(statusString)
	if err != nil {
		return nil, err
	}

	if err := s.rideRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, mapNotFound(err, "Ride", id)
	}

	ride, err := s.rideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "Ride", id)
	}
	return ride, nil
}

// GetByID retrieves a ride.
func (s *RideService) GetByID(ctx context.Context, id int64) (*domain.Ride, error) {
	ride, err := s.rideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "Ride", id)
	}
	return ride, nil
}

// List retrieves a page of rides. Unset filter fields do not constrain
// the result set.
func (s *RideService) List(ctx context.Context, filter repository.RideFilter, page repository.PageQuery) (repository.Page[*domain.Ride], error) {
	return s.rideRepo.List(ctx, filter, page)
}

// Delete hard-deletes a ride.
func (s *RideService) Delete(ctx context.Context, id int64) error {
	if err := s.rideRepo.Delete(ctx, id); err != nil {
		return mapNotFound(err, "Ride", id)
	}
	return nil
}

// validateForeign checks both foreign references. The calls are
// independent; the driver lookup runs first and its failure wins.
func (s *RideService) validateForeign(ctx context.Context, driverID, passengerID int64) error {
	if _, err := s.driverResolver.ResolveDriver(ctx, driverID); err != nil {
		return err
	}
	if _, err := s.passengerResolver.ResolvePassenger(ctx, passengerID); err != nil {
		return err
	}
	return nil
}

// mapNotFound translates the repository sentinel into the client-facing
// NotFound error for the entity.
func mapNotFound(err error, entity string, id int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewNotFoundError(entity, id)
	}
	return err
}
