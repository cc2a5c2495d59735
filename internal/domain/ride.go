package domain

import (
	"strings"
	"time"
)

// RideStatus represents the current status of a ride.
type RideStatus string

const (
	RideStatusCreated              RideStatus = "CREATED"
	RideStatusAccepted             RideStatus = "ACCEPTED"
	RideStatusEnRouteToPassenger   RideStatus = "EN_ROUTE_TO_PASSENGER"
	RideStatusEnRouteToDestination RideStatus = "EN_ROUTE_TO_DESTINATION"
	RideStatusCompleted            RideStatus = "COMPLETED"
	RideStatusCanceled             RideStatus = "CANCELED"
)

// ParseRideStatus parses a status string case-insensitively.
// Unknown values fail with InvalidStatusError rather than defaulting.
func ParseRideStatus(s string) (RideStatus, error) {
	switch status := RideStatus(strings.ToUpper(s)); status {
	case RideStatusCreated, RideStatusAccepted,
		RideStatusEnRouteToPassenger, RideStatusEnRouteToDestination,
		RideStatusCompleted, RideStatusCanceled:
		return status, nil
	default:
		return "", &InvalidStatusError{Value: s}
	}
}

// Ride represents a single trip linking a driver and a passenger.
// DriverID and PassengerID reference entities owned by other services;
// they are validated on create/update but not enforced by a join.
type Ride struct {
	ID                 int64
	DriverID           int64
	PassengerID        int64
	PickupAddress      string
	DestinationAddress string
	Status             RideStatus
	Price              float64
	OrderTime          time.Time
}
