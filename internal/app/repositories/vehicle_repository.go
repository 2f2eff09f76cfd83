package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roadwise/roadwise/internal/app/models"
	"github.com/roadwise/roadwise/internal/app/models/dto"
	"github.com/roadwise/roadwise/internal/pkg/apperrors"
	"github.com/roadwise/roadwise/internal/pkg/dberrors"
)

const vehicleColumns = "id, organization_id, registration, make, model, year, category_id, transmission, is_active, created_at, updated_at"

// VehicleRepository handles database operations for vehicles and licence
// categories
type VehicleRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *pgxpool.Pool) *VehicleRepository {
	return &VehicleRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanVehicle(row pgx.Row) (*models.Vehicle, error) {
	var v models.Vehicle
	err := row.Scan(
		&v.ID,
		&v.OrganizationID,
		&v.Registration,
		&v.Make,
		&v.Model,
		&v.Year,
		&v.CategoryID,
		&v.Transmission,
		&v.IsActive,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create creates a new vehicle
func (r *VehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	query := `
		INSERT INTO vehicles (organization_id, registration, make, model, year, category_id, transmission, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		vehicle.OrganizationID, vehicle.Registration, vehicle.Make, vehicle.Model,
		vehicle.Year, vehicle.CategoryID, vehicle.Transmission, vehicle.IsActive,
	).Scan(&vehicle.ID, &vehicle.CreatedAt, &vehicle.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "vehicles_org_registration_key") {
			return apperrors.ErrVehicleAlreadyExists
		}
		return fmt.Errorf("error creating vehicle: %w", err)
	}

	return nil
}

// GetByID retrieves a vehicle by ID
func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("error retrieving vehicle: %w", err)
	}

	return vehicle, nil
}

// List retrieves the vehicles of an organization matching the filter
func (r *VehicleRepository) List(ctx context.Context, orgID int64, filter dto.VehicleFilter) ([]*models.Vehicle, error) {
	conditions := squirrel.And{squirrel.Eq{"organization_id": orgID}}
	if filter.CategoryID > 0 {
		conditions = append(conditions, squirrel.Eq{"category_id": filter.CategoryID})
	}
	if filter.Transmission != "" {
		conditions = append(conditions, squirrel.Eq{"transmission": filter.Transmission})
	}
	if filter.ActiveOnly {
		conditions = append(conditions, squirrel.Eq{"is_active": true})
	}

	sql, args, err := r.sb.Select(vehicleColumns).
		From("vehicles").
		Where(conditions).
		OrderBy("registration").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build vehicle list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return vehicles, nil
}

// Update updates an existing vehicle
func (r *VehicleRepository) Update(ctx context.Context, vehicle *models.Vehicle) error {
	query := `
		UPDATE vehicles
		SET registration = $1, make = $2, model = $3, year = $4,
		    category_id = $5, transmission = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8
	`

	cmdTag, err := r.db.Exec(ctx, query,
		vehicle.Registration, vehicle.Make, vehicle.Model, vehicle.Year,
		vehicle.CategoryID, vehicle.Transmission, vehicle.IsActive, vehicle.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "vehicles_org_registration_key") {
			return apperrors.ErrVehicleAlreadyExists
		}
		return fmt.Errorf("error updating vehicle: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrVehicleNotFound
	}

	return nil
}

// HasScheduledLessons checks whether the vehicle is referenced by lessons
// that have not happened yet.
func (r *VehicleRepository) HasScheduledLessons(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM lessons WHERE vehicle_id = $1 AND status = $2)`,
		id, models.LessonScheduled).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking vehicle lessons: %w", err)
	}
	return exists, nil
}

// Delete deletes a vehicle by ID
func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrVehicleHasLessons
		}
		return fmt.Errorf("error deleting vehicle: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrVehicleNotFound
	}

	return nil
}

// CountActive returns the number of active vehicles in an organization
func (r *VehicleRepository) CountActive(ctx context.Context, orgID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM vehicles WHERE organization_id = $1 AND is_active = TRUE`,
		orgID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting vehicles: %w", err)
	}
	return count, nil
}

// GetAllCategories retrieves all licence categories
func (r *VehicleRepository) GetAllCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, code, name, description FROM categories ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// GetCategoryByID retrieves a licence category by ID
func (r *VehicleRepository) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	err := r.db.QueryRow(ctx, `
		SELECT id, code, name, description FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Code, &c.Name, &c.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("error retrieving category: %w", err)
	}

	return &c, nil
}
