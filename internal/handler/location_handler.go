package handler

import (
	"net/http"

	"warehouse-service/internal/model"
	"warehouse-service/pkg/database"
	"warehouse-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// LocationRequest defines the structure for location creation/update requests
type LocationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListLocations handles retrieving warehouse locations
func ListLocations(c echo.Context) error {
	log := logger.FromContext(c)

	page, limit, offset := paginationParams(c)
	query := database.GetDB().Model(&model.WarehouseLocation{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("Failed to count locations", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve locations"})
	}

	var locations []model.WarehouseLocation
	if err := query.Limit(limit).Offset(offset).Order("name").Find(&locations).Error; err != nil {
		log.Error("Failed to list locations", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve locations"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"locations":  locations,
		"pagination": newPagination(page, limit, total),
	})
}

// GetLocation handles retrieving a single location by ID
func GetLocation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}

	var location model.WarehouseLocation
	if result := database.GetDB().First(&location, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
	}
	return c.JSON(http.StatusOK, location)
}

// CreateLocation handles creating a new warehouse location
func CreateLocation(c echo.Context) error {
	log := logger.FromContext(c)

	var req LocationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	var count int64
	database.GetDB().Model(&model.WarehouseLocation{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "location with this name already exists"})
	}

	location := model.WarehouseLocation{Name: req.Name, Description: req.Description}
	if err := database.GetDB().Create(&location).Error; err != nil {
		log.Error("Failed to create location", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create location"})
	}

	log.Info("Location created", zap.Uint("location_id", location.ID), zap.String("name", location.Name))
	return c.JSON(http.StatusCreated, location)
}

// UpdateLocation handles updating an existing location
func UpdateLocation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}

	var req LocationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var location model.WarehouseLocation
	if result := database.GetDB().First(&location, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
	}

	if req.Name != "" {
		location.Name = req.Name
	}
	location.Description = req.Description

	if err := database.GetDB().Save(&location).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update location"})
	}
	return c.JSON(http.StatusOK, location)
}

// DeleteLocation handles deleting a location
func DeleteLocation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
	}

	result := database.GetDB().Delete(&model.WarehouseLocation{}, id)
	if result.Error != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete location"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "location deleted successfully"})
}
