package domain

// Driver represents a driver in the system.
type Driver struct {
	ID          int64
	Name        string
	PhoneNumber string
	Cars        []Car
}

// Car represents a car owned by a driver. Number is unique across all
// cars, enforced at the application layer.
type Car struct {
	ID       int64
	DriverID int64
	Number   string
	Model    string
	Color    string
}
