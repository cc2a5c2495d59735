package domain

// Passenger represents a passenger in the system. Passengers are
// soft-deleted: Deleted rows stay in the store but are excluded from
// reads and uniqueness checks.
type Passenger struct {
	ID          int64
	Name        string
	Email       string
	PhoneNumber string
	Deleted     bool
}
