package handler

import (
	"net/http"

	"warehouse-service/internal/model"
	"warehouse-service/pkg/database"
	"warehouse-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SupplierRequest defines the structure for supplier creation/update requests
type SupplierRequest struct {
	Name        string `json:"name"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

// ListSuppliers handles retrieving suppliers with pagination
func ListSuppliers(c echo.Context) error {
	log := logger.FromContext(c)

	page, limit, offset := paginationParams(c)
	query := database.GetDB().Model(&model.Supplier{})
	if search := c.QueryParam("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("Failed to count suppliers", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve suppliers"})
	}

	var suppliers []model.Supplier
	if err := query.Limit(limit).Offset(offset).Order("name").Find(&suppliers).Error; err != nil {
		log.Error("Failed to list suppliers", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve suppliers"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"suppliers":  suppliers,
		"pagination": newPagination(page, limit, total),
	})
}

// GetSupplier handles retrieving a single supplier by ID
func GetSupplier(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid supplier id"})
	}

	var supplier model.Supplier
	if result := database.GetDB().First(&supplier, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "supplier not found"})
	}
	return c.JSON(http.StatusOK, supplier)
}

// CreateSupplier handles creating a new supplier
func CreateSupplier(c echo.Context) error {
	log := logger.FromContext(c)

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	supplier := model.Supplier{
		Name:        req.Name,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
	}
	if err := database.GetDB().Create(&supplier).Error; err != nil {
		log.Error("Failed to create supplier", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create supplier"})
	}

	log.Info("Supplier created", zap.Uint("supplier_id", supplier.ID), zap.String("name", supplier.Name))
	return c.JSON(http.StatusCreated, supplier)
}

// UpdateSupplier handles updating an existing supplier
func UpdateSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid supplier id"})
	}

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var supplier model.Supplier
	if result := database.GetDB().First(&supplier, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "supplier not found"})
	}

	if req.Name != "" {
		supplier.Name = req.Name
	}
	supplier.ContactName = req.ContactName
	supplier.Email = req.Email
	supplier.Phone = req.Phone
	supplier.Address = req.Address

	if err := database.GetDB().Save(&supplier).Error; err != nil {
		log.Error("Failed to update supplier", zap.Uint("supplier_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update supplier"})
	}
	return c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier handles deleting a supplier
func DeleteSupplier(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid supplier id"})
	}

	result := database.GetDB().Delete(&model.Supplier{}, id)
	if result.Error != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete supplier"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "supplier not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "supplier deleted successfully"})
}
