package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// PassengerRepository is a PostgreSQL implementation of
// repository.PassengerRepository. Passengers are soft-deleted.
type PassengerRepository struct {
	db *sql.DB
}

// NewPassengerRepository creates a new PostgreSQL passenger repository.
func NewPassengerRepository(db *sql.DB) *PassengerRepository {
	return &PassengerRepository{db: db}
}

// Create persists a new passenger.
func (r *PassengerRepository) Create(ctx context.Context, passenger *domain.Passenger) error {
	query := `INSERT INTO passengers (name, email, phone_number, deleted) VALUES ($1, $2, $3, FALSE) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		passenger.Name, passenger.Email, passenger.PhoneNumber,
	).Scan(&passenger.ID)
}

// GetByID retrieves a non-deleted passenger by ID.
func (r *PassengerRepository) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	var passenger domain.Passenger
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone_number FROM passengers WHERE id = $1 AND deleted = FALSE`, id,
	).Scan(&passenger.ID, &passenger.Name, &passenger.Email, &passenger.PhoneNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &passenger, nil
}

// List retrieves a page of non-deleted passengers.
func (r *PassengerRepository) List(ctx context.Context, page repository.PageQuery) (repository.Page[*domain.Passenger], error) {
	result := repository.Page[*domain.Passenger]{Page: page.Page, Size: page.Size}

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM passengers WHERE deleted = FALSE`).Scan(&result.TotalItems); err != nil {
		return result, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, phone_number FROM passengers WHERE deleted = FALSE ORDER BY id LIMIT $1 OFFSET $2`,
		page.Size, page.Page*page.Size,
	)
	if err != nil {
		return result, err
	}
	defer rows.Close()

	for rows.Next() {
		var passenger domain.Passenger
		if err := rows.Scan(&passenger.ID, &passenger.Name, &passenger.Email, &passenger.PhoneNumber); err != nil {
			return result, err
		}
		result.Items = append(result.Items, &passenger)
	}
	return result, rows.Err()
}

// Update overwrites the mutable fields of a passenger.
func (r *PassengerRepository) Update(ctx context.Context, passenger *domain.Passenger) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE passengers SET name = $1, email = $2, phone_number = $3 WHERE id = $4 AND deleted = FALSE`,
		passenger.Name, passenger.Email, passenger.PhoneNumber, passenger.ID,
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(result)
}

// SoftDelete marks a passenger deleted without removing the row.
func (r *PassengerRepository) SoftDelete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE passengers SET deleted = TRUE WHERE id = $1 AND deleted = FALSE`, id,
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(result)
}

// EmailExists reports whether another non-deleted passenger has the email.
func (r *PassengerRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	return existsExcluding(ctx, r.db, "passengers", "email", "id", " AND deleted = FALSE", email, excludeID)
}

// PhoneNumberExists reports whether another non-deleted passenger has the phone number.
func (r *PassengerRepository) PhoneNumberExists(ctx context.Context, phoneNumber string, excludeID int64) (bool, error) {
	return existsExcluding(ctx, r.db, "passengers", "phone_number", "id", " AND deleted = FALSE", phoneNumber, excludeID)
}
