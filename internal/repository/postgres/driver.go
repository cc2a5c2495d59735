package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	db *sql.DB
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

// Create persists a driver and its cars in one transaction.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO drivers (name, phone_number) VALUES ($1, $2) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, driver.Name, driver.PhoneNumber).Scan(&driver.ID); err != nil {
		return err
	}

	if err := insertCars(ctx, tx, driver.ID, driver.Cars); err != nil {
		return err
	}

	return tx.Commit()
}

func insertCars(ctx context.Context, tx *sql.Tx, driverID int64, cars []domain.Car) error {
	query := `INSERT INTO cars (driver_id, number, model, color) VALUES ($1, $2, $3, $4) RETURNING id`
	for i := range cars {
		cars[i].DriverID = driverID
		if err := tx.QueryRowContext(ctx, query, driverID, cars[i].Number, cars[i].Model, cars[i].Color).Scan(&cars[i].ID); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves a driver with its cars.
func (r *DriverRepository) GetByID(ctx context.Context, id int64) (*domain.Driver, error) {
	var driver domain.Driver
	err := r.db.QueryRowContext(ctx, `SELECT id, name, phone_number FROM drivers WHERE id = $1`, id).
		Scan(&driver.ID, &driver.Name, &driver.PhoneNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	cars, err := r.carsByDriverIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	driver.Cars = cars[id]

	return &driver, nil
}

// List retrieves a page of drivers with their cars.
func (r *DriverRepository) List(ctx context.Context, page repository.PageQuery) (repository.Page[*domain.Driver], error) {
	result := repository.Page[*domain.Driver]{Page: page.Page, Size: page.Size}

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM drivers`).Scan(&result.TotalItems); err != nil {
		return result, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, phone_number FROM drivers ORDER BY id LIMIT $1 OFFSET $2`,
		page.Size, page.Page*page.Size,
	)
	if err != nil {
		return result, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var driver domain.Driver
		if err := rows.Scan(&driver.ID, &driver.Name, &driver.PhoneNumber); err != nil {
			return result, err
		}
		ids = append(ids, driver.ID)
		result.Items = append(result.Items, &driver)
	}
	if err := rows.Err(); err != nil {
		return result, err
	}

	cars, err := r.carsByDriverIDs(ctx, ids)
	if err != nil {
		return result, err
	}
	for _, driver := range result.Items {
		driver.Cars = cars[driver.ID]
	}

	return result, nil
}

func (r *DriverRepository) carsByDriverIDs(ctx context.Context, driverIDs []int64) (map[int64][]domain.Car, error) {
	byDriver := make(map[int64][]domain.Car)
	if len(driverIDs) == 0 {
		return byDriver, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, driver_id, number, model, color FROM cars WHERE driver_id = ANY($1) ORDER BY id`,
		int64Array(driverIDs),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var car domain.Car
		if err := rows.Scan(&car.ID, &car.DriverID, &car.Number, &car.Model, &car.Color); err != nil {
			return nil, err
		}
		byDriver[car.DriverID] = append(byDriver[car.DriverID], car)
	}
	return byDriver, rows.Err()
}

// Update overwrites a driver and replaces its cars in one transaction.
func (r *DriverRepository) Update(ctx context.Context, driver *domain.Driver) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE drivers SET name = $1, phone_number = $2 WHERE id = $3`,
		driver.Name, driver.PhoneNumber, driver.ID,
	)
	if err != nil {
		return err
	}
	if err := requireRowsAffected(result); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cars WHERE driver_id = $1`, driver.ID); err != nil {
		return err
	}
	if err := insertCars(ctx, tx, driver.ID, driver.Cars); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a driver and cascades to its cars.
func (r *DriverRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cars WHERE driver_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if err := requireRowsAffected(result); err != nil {
		return err
	}

	return tx.Commit()
}

// PhoneNumberExists reports whether another driver already has the phone number.
func (r *DriverRepository) PhoneNumberExists(ctx context.Context, phoneNumber string, excludeID int64) (bool, error) {
	return existsExcluding(ctx, r.db, "drivers", "phone_number", "id", "", phoneNumber, excludeID)
}

// CarNumberExists reports whether a car with the number exists on another driver.
func (r *DriverRepository) CarNumberExists(ctx context.Context, number string, excludeDriverID int64) (bool, error) {
	return existsExcluding(ctx, r.db, "cars", "number", "driver_id", "", number, excludeDriverID)
}
