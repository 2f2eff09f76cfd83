package dto

import "github.com/roadwise/roadwise/internal/app/models"

// CreateVehicleRequest represents a request to register a vehicle
type CreateVehicleRequest struct {
	Registration string                  `json:"registration" binding:"required"`
	Make         string                  `json:"make" binding:"required"`
	Model        string                  `json:"model" binding:"required"`
	Year         int                     `json:"year" binding:"required,min=1980"`
	CategoryID   int64                   `json:"categoryId" binding:"required,min=1"`
	Transmission models.TransmissionType `json:"transmission" binding:"required"`
}

// UpdateVehicleRequest represents an update of vehicle data
type UpdateVehicleRequest struct {
	Registration string                  `json:"registration" binding:"required"`
	Make         string                  `json:"make" binding:"required"`
	Model        string                  `json:"model" binding:"required"`
	Year         int                     `json:"year" binding:"required,min=1980"`
	CategoryID   int64                   `json:"categoryId" binding:"required,min=1"`
	Transmission models.TransmissionType `json:"transmission" binding:"required"`
	IsActive     *bool                   `json:"isActive,omitempty"`
}

// VehicleFilter holds the optional list filters parsed from query parameters
type VehicleFilter struct {
	CategoryID   int64
	Transmission models.TransmissionType
	ActiveOnly   bool
}
