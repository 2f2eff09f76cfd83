package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roadwise/roadwise/internal/app/models"
	"github.com/roadwise/roadwise/internal/app/models/dto"
	"github.com/roadwise/roadwise/internal/app/services"
	"github.com/roadwise/roadwise/internal/middleware"
)

// VehicleController handles vehicle fleet operations
type VehicleController struct {
	vehicleService services.VehicleService
}

// NewVehicleController creates a new VehicleController
func NewVehicleController(vehicleService services.VehicleService) *VehicleController {
	return &VehicleController{vehicleService: vehicleService}
}

// CreateVehicle registers a vehicle
// @Summary Register a vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateVehicleRequest true "Vehicle information"
// @Success 201 {object} dto.APIResponse{data=models.Vehicle} "Vehicle registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Registration already exists"
// @Router /vehicles [post]
func (c *VehicleController) CreateVehicle(ctx *gin.Context) {
	var req dto.CreateVehicleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid vehicle data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	vehicle, err := c.vehicleService.CreateVehicle(ctx, middleware.CurrentOrgID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: vehicle, Timestamp: time.Now()})
}

// GetVehicle retrieves a vehicle by ID
// @Summary Get vehicle details
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Vehicle} "Vehicle retrieved"
// @Failure 404 {object} dto.ErrorResponse "Vehicle not found"
// @Router /vehicles/{id} [get]
func (c *VehicleController) GetVehicle(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	vehicle, err := c.vehicleService.GetVehicle(ctx, middleware.CurrentOrgID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: vehicle, Timestamp: time.Now()})
}

// ListVehicles retrieves the organization's vehicles
// @Summary List vehicles
// @Description Lists vehicles filtered by category, transmission and active state
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param categoryId query int false "Licence category filter"
// @Param transmission query string false "Transmission filter (MANUAL, AUTOMATIC)"
// @Param activeOnly query bool false "Only vehicles in service"
// @Success 200 {object} dto.APIResponse{data=[]models.Vehicle} "Vehicles retrieved"
// @Router /vehicles [get]
func (c *VehicleController) ListVehicles(ctx *gin.Context) {
	var filter dto.VehicleFilter
	if v := ctx.Query("categoryId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			badQueryParam(ctx, "categoryId")
			return
		}
		filter.CategoryID = id
	}
	filter.Transmission = models.TransmissionType(ctx.Query("transmission"))
	filter.ActiveOnly, _ = strconv.ParseBool(ctx.DefaultQuery("activeOnly", "false"))

	vehicles, err := c.vehicleService.ListVehicles(ctx, middleware.CurrentOrgID(ctx), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: vehicles, Timestamp: time.Now()})
}

// UpdateVehicle updates vehicle data
// @Summary Update a vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID" Format(int64) minimum(1)
// @Param request body dto.UpdateVehicleRequest true "Vehicle data"
// @Success 200 {object} dto.APIResponse{data=models.Vehicle} "Vehicle updated"
// @Failure 404 {object} dto.ErrorResponse "Vehicle not found"
// @Failure 409 {object} dto.ErrorResponse "Registration already exists"
// @Router /vehicles/{id} [put]
func (c *VehicleController) UpdateVehicle(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateVehicleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid vehicle data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	vehicle, err := c.vehicleService.UpdateVehicle(ctx, middleware.CurrentOrgID(ctx), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: vehicle, Timestamp: time.Now()})
}

// DeleteVehicle removes a vehicle
// @Summary Delete a vehicle
// @Description Vehicles with scheduled lessons cannot be deleted
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Vehicle deleted"
// @Failure 404 {object} dto.ErrorResponse "Vehicle not found"
// @Failure 409 {object} dto.ErrorResponse "Vehicle has scheduled lessons"
// @Router /vehicles/{id} [delete]
func (c *VehicleController) DeleteVehicle(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.vehicleService.DeleteVehicle(ctx, middleware.CurrentOrgID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Vehicle deleted"}, Timestamp: time.Now()})
}

// GetAllCategories retrieves all licence categories
// @Summary List licence categories
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Category} "Categories retrieved"
// @Router /categories [get]
func (c *VehicleController) GetAllCategories(ctx *gin.Context) {
	categories, err := c.vehicleService.GetAllCategories(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: categories, Timestamp: time.Now()})
}
