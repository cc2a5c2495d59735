package repository

// PageQuery describes pagination and sorting for list queries.
type PageQuery struct {
	Page     int    // zero-based page index
	Size     int    // page size
	SortBy   string // column to sort by; empty means the repository default
	SortDesc bool
}

// Page holds one page of results together with paging metadata.
type Page[T any] struct {
	Items      []T
	Page       int
	Size       int
	TotalItems int64
}

// TotalPages computes the number of pages for the recorded total.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	pages := p.TotalItems / int64(p.Size)
	if p.TotalItems%int64(p.Size) != 0 {
		pages++
	}
	return int(pages)
}

// RideFilter holds optional criteria for listing rides. Nil fields do not
// constrain the result set.
type RideFilter struct {
	DriverID           *int64
	PassengerID        *int64
	PickupAddress      *string // case-insensitive substring
	DestinationAddress *string // case-insensitive substring
	Status             *string
	MinPrice           *float64
	MaxPrice           *float64
}
