package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	db *sql.DB
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{db: db}
}

// rideSortColumns maps client sort fields to columns. Anything else falls
// back to the default ordering.
var rideSortColumns = map[string]string{
	"id":                 "id",
	"driverId":           "driver_id",
	"passengerId":        "passenger_id",
	"pickupAddress":      "pickup_address",
	"destinationAddress": "destination_address",
	"status":             "status",
	"price":              "price",
	"orderTime":          "order_time",
}

// CreateWithOutbox persists a ride and its outbox message in one transaction.
func (r *RideRepository) CreateWithOutbox(ctx context.Context, ride *domain.Ride, makeMessage func(*domain.Ride) (*repository.OutboxMessage, error)) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := createRide(ctx, tx, ride); err != nil {
		return err
	}

	msg, err := makeMessage(ride)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO ride_outbox (message_id, routing_key, payload, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	if _, err := tx.ExecContext(ctx, query, msg.MessageID, msg.RoutingKey, msg.Payload); err != nil {
		return err
	}

	return tx.Commit()
}

func createRide(ctx context.Context, q Querier, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (driver_id, passenger_id, pickup_address, destination_address, status, price, order_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return q.QueryRowContext(ctx, query,
		ride.DriverID,
		ride.PassengerID,
		ride.PickupAddress,
		ride.DestinationAddress,
		ride.Status,
		ride.Price,
		ride.OrderTime,
	).Scan(&ride.ID)
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id int64) (*domain.Ride, error) {
	query := `
		SELECT id, driver_id, passenger_id, pickup_address, destination_address, status, price, order_time
		FROM rides WHERE id = $1
	`

	var ride domain.Ride
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ride.ID,
		&ride.DriverID,
		&ride.PassengerID,
		&ride.PickupAddress,
		&ride.DestinationAddress,
		&ride.Status,
		&ride.Price,
		&ride.OrderTime,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &ride, nil
}

// buildRideFilter composes WHERE clauses from the set filter fields.
// Unset fields contribute nothing, so an empty filter matches every row.
func buildRideFilter(filter repository.RideFilter) (string, []any) {
	var clauses []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.DriverID != nil {
		clauses = append(clauses, "driver_id = "+arg(*filter.DriverID))
	}
	if filter.PassengerID != nil {
		clauses = append(clauses, "passenger_id = "+arg(*filter.PassengerID))
	}
	if filter.PickupAddress != nil {
		clauses = append(clauses, "pickup_address ILIKE "+arg("%"+*filter.PickupAddress+"%"))
	}
	if filter.DestinationAddress != nil {
		clauses = append(clauses, "destination_address ILIKE "+arg("%"+*filter.DestinationAddress+"%"))
	}
	if filter.Status != nil {
		clauses = append(clauses, "status = "+arg(*filter.Status))
	}
	if filter.MinPrice != nil {
		clauses = append(clauses, "price >= "+arg(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		clauses = append(clauses, "price <= "+arg(*filter.MaxPrice))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// List retrieves a page of rides matching the filter.
func (r *RideRepository) List(ctx context.Context, filter repository.RideFilter, page repository.PageQuery) (repository.Page[*domain.Ride], error) {
	result := repository.Page[*domain.Ride]{Page: page.Page, Size: page.Size}

	where, args := buildRideFilter(filter)

	countQuery := "SELECT COUNT(*) FROM rides" + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&result.TotalItems); err != nil {
		return result, err
	}

	orderBy := "id"
	if col, ok := rideSortColumns[page.SortBy]; ok {
		orderBy = col
	}
	direction := "ASC"
	if page.SortDesc {
		direction = "DESC"
	}

	query := fmt.Sprintf(
		"SELECT id, driver_id, passenger_id, pickup_address, destination_address, status, price, order_time FROM rides%s ORDER BY %s %s LIMIT %d OFFSET %d",
		where, orderBy, direction, page.Size, page.Page*page.Size,
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return result, err
	}
	defer rows.Close()

	for rows.Next() {
		var ride domain.Ride
		if err := rows.Scan(
			&ride.ID,
			&ride.DriverID,
			&ride.PassengerID,
			&ride.PickupAddress,
			&ride.DestinationAddress,
			&ride.Status,
			&ride.Price,
			&ride.OrderTime,
		); err != nil {
			return result, err
		}
		result.Items = append(result.Items, &ride)
	}
	return result, rows.Err()
}

// Update overwrites the mutable fields of a ride. Status and order_time
// are untouched by this path.
func (r *RideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	query := `
		UPDATE rides
		SET driver_id = $1, passenger_id = $2, pickup_address = $3, destination_address = $4, price = $5
		WHERE id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		ride.DriverID,
		ride.PassengerID,
		ride.PickupAddress,
		ride.DestinationAddress,
		ride.Price,
		ride.ID,
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(result)
}

// UpdateStatus overwrites only the status of a ride.
func (r *RideRepository) UpdateStatus(ctx context.Context, id int64, status domain.RideStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE rides SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return requireRowsAffected(result)
}

// Delete hard-deletes a ride.
func (r *RideRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rides WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRowsAffected(result)
}

func requireRowsAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
