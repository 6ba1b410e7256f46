package handler

import (
	"net/http"

	"warehouse-service/internal/model"
	"warehouse-service/pkg/database"
	"warehouse-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListCategories handles retrieving all categories
func ListCategories(c echo.Context) error {
	log := logger.FromContext(c)

	page, limit, offset := paginationParams(c)
	query := database.GetDB().Model(&model.Category{})
	if search := c.QueryParam("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("Failed to count categories", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve categories"})
	}

	var categories []model.Category
	if err := query.Limit(limit).Offset(offset).Order("name").Find(&categories).Error; err != nil {
		log.Error("Failed to list categories", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve categories"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"categories": categories,
		"pagination": newPagination(page, limit, total),
	})
}

// GetCategory handles retrieving a single category by ID
func GetCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	var category model.Category
	if result := database.GetDB().First(&category, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
	}
	return c.JSON(http.StatusOK, category)
}

// CreateCategory handles creating a new category
func CreateCategory(c echo.Context) error {
	log := logger.FromContext(c)

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	var count int64
	database.GetDB().Model(&model.Category{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "category with this name already exists"})
	}

	category := model.Category{Name: req.Name, Description: req.Description}
	if err := database.GetDB().Create(&category).Error; err != nil {
		log.Error("Failed to create category", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create category"})
	}

	log.Info("Category created", zap.Uint("category_id", category.ID), zap.String("name", category.Name))
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles updating an existing category
func UpdateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var category model.Category
	if result := database.GetDB().First(&category, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	category.Description = req.Description

	if err := database.GetDB().Save(&category).Error; err != nil {
		log.Error("Failed to update category", zap.Uint("category_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update category"})
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles deleting a category
func DeleteCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	result := database.GetDB().Delete(&model.Category{}, id)
	if result.Error != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete category"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "category deleted successfully"})
}
