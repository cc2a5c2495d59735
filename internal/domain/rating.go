package domain

// Rating represents a rating record for a completed ride. A skeleton row
// is seeded from a ride event with the score fields empty; scores and
// comment are filled in later via a separate update call.
type Rating struct {
	ID              int64
	DriverID        int64
	UserID          int64
	RideID          int64
	DriverRating    *int32
	PassengerRating *int32
	Comment         *string
}
