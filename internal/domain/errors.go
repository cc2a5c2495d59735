package domain

import (
	"errors"
	"fmt"
)

// ErrUpstreamUnavailable is returned when an owning service cannot be
// reached or answers with an unexpected status. Distinct from NotFoundError:
// "service reachable but entity missing" must not be collapsed into it.
var ErrUpstreamUnavailable = errors.New("upstream service unavailable")

// NotFoundError is returned when an entity does not exist.
// Its message is part of the client-facing contract.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id = %d not found", e.Entity, e.ID)
}

// NewNotFoundError creates a NotFoundError for the given entity and id.
func NewNotFoundError(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// DuplicateError is returned when a uniqueness invariant (phone, email,
// car number) would be violated by a create or update.
type DuplicateError struct {
	Message string
}

func (e *DuplicateError) Error() string {
	return e.Message
}

// NewDuplicateError creates a DuplicateError with a formatted message.
func NewDuplicateError(format string, args ...any) *DuplicateError {
	return &DuplicateError{Message: fmt.Sprintf(format, args...)}
}

// InvalidStatusError is returned when a status string does not match any
// member of the ride status enum.
type InvalidStatusError struct {
	Value string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf(
		"%s is not a valid status. Status must be: CREATED or ACCEPTED or COMPLETED or CANCELED or EN_ROUTE_TO_DESTINATION or EN_ROUTE_TO_PASSENGER",
		e.Value,
	)
}
