package services

import (
	"context"
	"strings"

	"github.com/roadwise/roadwise/internal/app/models"
	"github.com/roadwise/roadwise/internal/app/models/dto"
	"github.com/roadwise/roadwise/internal/app/repositories"
	"github.com/roadwise/roadwise/internal/pkg/apperrors"
	"github.com/roadwise/roadwise/internal/pkg/logger"
)

// VehicleService defines the interface for vehicle fleet operations
type VehicleService interface {
	CreateVehicle(ctx context.Context, orgID int64, req dto.CreateVehicleRequest) (*models.Vehicle, error)
	GetVehicle(ctx context.Context, orgID, id int64) (*models.Vehicle, error)
	ListVehicles(ctx context.Context, orgID int64, filter dto.VehicleFilter) ([]*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, orgID, id int64, req dto.UpdateVehicleRequest) (*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, orgID, id int64) error
	GetAllCategories(ctx context.Context) ([]*models.Category, error)
}

// vehicleServiceImpl implements the VehicleService interface
type vehicleServiceImpl struct {
	vehicleRepo *repositories.VehicleRepository
}

// NewVehicleService creates a new vehicle service instance
func NewVehicleService(vehicleRepo *repositories.VehicleRepository) VehicleService {
	return &vehicleServiceImpl{vehicleRepo: vehicleRepo}
}

// CreateVehicle registers a vehicle in the organization's fleet
func (s *vehicleServiceImpl) CreateVehicle(ctx context.Context, orgID int64, req dto.CreateVehicleRequest) (*models.Vehicle, error) {
	if !isValidTransmission(req.Transmission) {
		return nil, apperrors.ErrInvalidTransmission
	}
	if _, err := s.vehicleRepo.GetCategoryByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	vehicle := &models.Vehicle{
		OrganizationID: orgID,
		Registration:   normalizeRegistration(req.Registration),
		Make:           strings.TrimSpace(req.Make),
		Model:          strings.TrimSpace(req.Model),
		Year:           req.Year,
		CategoryID:     req.CategoryID,
		Transmission:   req.Transmission,
		IsActive:       true,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	logger.Info().Int64("vehicleID", vehicle.ID).Str("registration", vehicle.Registration).Msg("Vehicle registered")
	return vehicle, nil
}

// GetVehicle retrieves a vehicle, scoped to the caller's organization
func (s *vehicleServiceImpl) GetVehicle(ctx context.Context, orgID, id int64) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle.OrganizationID != orgID {
		return nil, apperrors.ErrVehicleNotFound
	}
	return vehicle, nil
}

// ListVehicles retrieves the organization's vehicles matching the filter
func (s *vehicleServiceImpl) ListVehicles(ctx context.Context, orgID int64, filter dto.VehicleFilter) ([]*models.Vehicle, error) {
	return s.vehicleRepo.List(ctx, orgID, filter)
}

// UpdateVehicle updates vehicle data. Omitting isActive leaves the in-service
// state untouched.
func (s *vehicleServiceImpl) UpdateVehicle(ctx context.Context, orgID, id int64, req dto.UpdateVehicleRequest) (*models.Vehicle, error) {
	vehicle, err := s.GetVehicle(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if !isValidTransmission(req.Transmission) {
		return nil, apperrors.ErrInvalidTransmission
	}
	if _, err := s.vehicleRepo.GetCategoryByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	vehicle.Registration = normalizeRegistration(req.Registration)
	vehicle.Make = strings.TrimSpace(req.Make)
	vehicle.Model = strings.TrimSpace(req.Model)
	vehicle.Year = req.Year
	vehicle.CategoryID = req.CategoryID
	vehicle.Transmission = req.Transmission
	if req.IsActive != nil {
		vehicle.IsActive = *req.IsActive
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	return vehicle, nil
}

// DeleteVehicle removes a vehicle. Vehicles with scheduled lessons are
// refused so planned lessons never point at a missing car.
func (s *vehicleServiceImpl) DeleteVehicle(ctx context.Context, orgID, id int64) error {
	if _, err := s.GetVehicle(ctx, orgID, id); err != nil {
		return err
	}

	hasLessons, err := s.vehicleRepo.HasScheduledLessons(ctx, id)
	if err != nil {
		return err
	}
	if hasLessons {
		return apperrors.ErrVehicleHasLessons
	}

	return s.vehicleRepo.Delete(ctx, id)
}

// GetAllCategories retrieves all licence categories
func (s *vehicleServiceImpl) GetAllCategories(ctx context.Context) ([]*models.Category, error) {
	return s.vehicleRepo.GetAllCategories(ctx)
}

func isValidTransmission(t models.TransmissionType) bool {
	return t == models.TransmissionManual || t == models.TransmissionAutomatic
}

// normalizeRegistration strips spacing and upper-cases a plate so the
// per-organization uniqueness check is not fooled by formatting.
func normalizeRegistration(reg string) string {
	return strings.ToUpper(strings.Join(strings.Fields(reg), ""))
}
