package handler

import (
	"net/http"

	"warehouse-service/internal/model"
	"warehouse-service/pkg/database"
	"warehouse-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CustomerRequest defines the structure for customer creation/update requests
type CustomerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// ListCustomers handles retrieving customers with pagination
func ListCustomers(c echo.Context) error {
	log := logger.FromContext(c)

	page, limit, offset := paginationParams(c)
	query := database.GetDB().Model(&model.Customer{})
	if search := c.QueryParam("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("Failed to count customers", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve customers"})
	}

	var customers []model.Customer
	if err := query.Limit(limit).Offset(offset).Order("last_name, first_name").Find(&customers).Error; err != nil {
		log.Error("Failed to list customers", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve customers"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"customers":  customers,
		"pagination": newPagination(page, limit, total),
	})
}

// GetCustomer handles retrieving a single customer by ID
func GetCustomer(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}

	var customer model.Customer
	if result := database.GetDB().First(&customer, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}
	return c.JSON(http.StatusOK, customer)
}

// CreateCustomer handles creating a new customer
func CreateCustomer(c echo.Context) error {
	log := logger.FromContext(c)

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.FirstName == "" || req.LastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first and last name are required"})
	}

	customer := model.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	}
	if err := database.GetDB().Create(&customer).Error; err != nil {
		log.Error("Failed to create customer", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create customer"})
	}

	log.Info("Customer created", zap.Uint("customer_id", customer.ID))
	return c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer handles updating an existing customer
func UpdateCustomer(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var customer model.Customer
	if result := database.GetDB().First(&customer, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}

	if req.FirstName != "" {
		customer.FirstName = req.FirstName
	}
	if req.LastName != "" {
		customer.LastName = req.LastName
	}
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Address = req.Address

	if err := database.GetDB().Save(&customer).Error; err != nil {
		log.Error("Failed to update customer", zap.Uint("customer_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update customer"})
	}
	return c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles deleting a customer
func DeleteCustomer(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}

	result := database.GetDB().Delete(&model.Customer{}, id)
	if result.Error != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete customer"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "customer deleted successfully"})
}
