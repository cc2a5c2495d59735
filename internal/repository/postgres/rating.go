package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// RatingRepository is a PostgreSQL implementation of repository.RatingRepository.
type RatingRepository struct {
	db *sql.DB
}

// NewRatingRepository creates a new PostgreSQL rating repository.
func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Create persists a new rating.
func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	query := `
		INSERT INTO ratings (driver_id, user_id, ride_id, driver_rating, passenger_rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		rating.DriverID,
		rating.UserID,
		rating.RideID,
		nullInt32(rating.DriverRating),
		nullInt32(rating.PassengerRating),
		nullString(rating.Comment),
	).Scan(&rating.ID)
}

// Upsert seeds a skeleton rating keyed by (driver_id, user_id, ride_id).
// Redelivered events hit the conflict path and leave the existing row
// untouched, so at-least-once delivery never produces duplicates.
func (r *RatingRepository) Upsert(ctx context.Context, rating *domain.Rating) error {
	query := `
		INSERT INTO ratings (driver_id, user_id, ride_id, driver_rating, passenger_rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (driver_id, user_id, ride_id) DO UPDATE SET ride_id = ratings.ride_id
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		rating.DriverID,
		rating.UserID,
		rating.RideID,
		nullInt32(rating.DriverRating),
		nullInt32(rating.PassengerRating),
		nullString(rating.Comment),
	).Scan(&rating.ID)
}

// GetByID retrieves a rating by ID.
func (r *RatingRepository) GetByID(ctx context.Context, id int64) (*domain.Rating, error) {
	query := `
		SELECT id, driver_id, user_id, ride_id, driver_rating, passenger_rating, comment
		FROM ratings WHERE id = $1
	`

	var rating domain.Rating
	var driverRating, passengerRating sql.NullInt32
	var comment sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rating.ID,
		&rating.DriverID,
		&rating.UserID,
		&rating.RideID,
		&driverRating,
		&passengerRating,
		&comment,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if driverRating.Valid {
		rating.DriverRating = &driverRating.Int32
	}
	if passengerRating.Valid {
		rating.PassengerRating = &passengerRating.Int32
	}
	if comment.Valid {
		rating.Comment = &comment.String
	}

	return &rating, nil
}

// List retrieves a page of ratings.
func (r *RatingRepository) List(ctx context.Context, page repository.PageQuery) (repository.Page[*domain.Rating], error) {
	result := repository.Page[*domain.Rating]{Page: page.Page, Size: page.Size}

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ratings`).Scan(&result.TotalItems); err != nil {
		return result, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, driver_id, user_id, ride_id, driver_rating, passenger_rating, comment FROM ratings ORDER BY id LIMIT $1 OFFSET $2`,
		page.Size, page.Page*page.Size,
	)
	if err != nil {
		return result, err
	}
	defer rows.Close()

	for rows.Next() {
		var rating domain.Rating
		var driverRating, passengerRating sql.NullInt32
		var comment sql.NullString
		if err := rows.Scan(
			&rating.ID,
			&rating.DriverID,
			&rating.UserID,
			&rating.RideID,
			&driverRating,
			&passengerRating,
			&comment,
		); err != nil {
			return result, err
		}
		if driverRating.Valid {
			rating.DriverRating = &driverRating.Int32
		}
		if passengerRating.Valid {
			rating.PassengerRating = &passengerRating.Int32
		}
		if comment.Valid {
			rating.Comment = &comment.String
		}
		result.Items = append(result.Items, &rating)
	}
	return result, rows.Err()
}

// Update overwrites the score fields and comment of a rating.
func (r *RatingRepository) Update(ctx context.Context, rating *domain.Rating) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE ratings SET driver_rating = $1, passenger_rating = $2, comment = $3 WHERE id = $4`,
		nullInt32(rating.DriverRating),
		nullInt32(rating.PassengerRating),
		nullString(rating.Comment),
		rating.ID,
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(result)
}

// Delete removes a rating.
func (r *RatingRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM ratings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRowsAffected(result)
}

func nullInt32(v *int32) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
