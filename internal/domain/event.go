package domain

// RatingSeedEvent is the message published to the ride events topic when
// a ride is created. The Rating service consumes it and seeds a skeleton
// rating row. SchemaVersion guards future payload changes.
type RatingSeedEvent struct {
	SchemaVersion int    `json:"schemaVersion"`
	MessageID     string `json:"messageId"`
	DriverID      int64  `json:"driverId"`
	PassengerID   int64  `json:"passengerId"`
	RideID        int64  `json:"rideId"`
}

// RatingSeedSchemaVersion is the current rating seed payload version.
const RatingSeedSchemaVersion = 1
