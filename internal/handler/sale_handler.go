package handler

import (
	"net/http"
	"strconv"

	"warehouse-service/internal/model"
	"warehouse-service/internal/stock"
	"warehouse-service/pkg/database"
	"warehouse-service/pkg/logger"
	"warehouse-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SaleRequest defines the structure for sale creation/update requests.
// The client-sent total is ignored; the reconciler computes it from the
// line items.
type SaleRequest struct {
	CustomerID *uint                 `json:"customerId"`
	UserID     uint                  `json:"userId"`
	SaleItems  []stock.SaleItemInput `json:"saleItems"`
}

// ListSales handles retrieving sales with pagination and filtering
func ListSales(c echo.Context) error {
	log := logger.FromContext(c)

	page, limit, offset := paginationParams(c)
	query := database.GetDB().Model(&model.Sale{})

	if search := c.QueryParam("search"); search != "" {
		query = query.Where("sale_number LIKE ?", "%"+search+"%")
	}
	if customerID := c.QueryParam("customerId"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("Failed to count sales", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve sales"})
	}

	var sales []model.Sale
	err := query.Preload("Customer").Preload("User").
		Preload("SaleItems").Preload("SaleItems.Product").
		Limit(limit).Offset(offset).
		Order("sale_date DESC").
		Find(&sales).Error
	if err != nil {
		log.Error("Failed to list sales", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve sales"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"sales":      sales,
		"pagination": newPagination(page, limit, total),
	})
}

// GetSale handles retrieving a single sale by ID
func GetSale(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid sale id"})
	}

	var sale model.Sale
	result := database.GetDB().
		Preload("Customer").Preload("User").
		Preload("SaleItems").Preload("SaleItems.Product").
		First(&sale, id)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "sale not found"})
	}
	return c.JSON(http.StatusOK, sale)
}

// CreateSale handles creating a sale and deducting stock atomically
func CreateSale(c echo.Context) error {
	log := logger.FromContext(c)

	var req SaleRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	sale, err := stock.CreateSale(database.GetDB(), stock.SaleInput{
		CustomerID: req.CustomerID,
		UserID:     req.UserID,
		Items:      req.SaleItems,
	})
	if err != nil {
		return writeDomainError(c, log, err)
	}

	prometheus.RecordSaleOperation("create")
	log.Info("Sale created",
		zap.Uint("sale_id", sale.ID),
		zap.String("sale_number", sale.SaleNumber),
		zap.Float64("total_amount", sale.TotalAmount))
	return c.JSON(http.StatusCreated, sale)
}

// UpdateSale handles replacing a sale's line items with full stock reconciliation
func UpdateSale(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid sale id"})
	}

	var req SaleRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	sale, err := stock.UpdateSale(database.GetDB(), id, stock.SaleInput{
		CustomerID: req.CustomerID,
		UserID:     req.UserID,
		Items:      req.SaleItems,
	})
	if err != nil {
		return writeDomainError(c, log, err)
	}

	prometheus.RecordSaleOperation("update")
	log.Info("Sale updated",
		zap.Uint("sale_id", sale.ID),
		zap.String("sale_number", sale.SaleNumber),
		zap.Float64("total_amount", sale.TotalAmount))
	return c.JSON(http.StatusOK, sale)
}

// DeleteSale handles deleting a sale after restoring its stock effect
func DeleteSale(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid sale id"})
	}

	if err := stock.DeleteSale(database.GetDB(), id); err != nil {
		return writeDomainError(c, log, err)
	}

	prometheus.RecordSaleOperation("delete")
	log.Info("Sale deleted", zap.Uint("sale_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "sale deleted successfully"})
}

// SalesReportSummary handles the sales summary report
func SalesReportSummary(c echo.Context) error {
	log := logger.FromContext(c)

	start, end := parseDateRange(c)
	var customerID *uint
	if raw := c.QueryParam("customerId"); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 32); err == nil {
			id := uint(parsed)
			customerID = &id
		}
	}

	summary, err := stock.SalesReport(database.GetDB(), start, end, customerID)
	if err != nil {
		log.Error("Failed to build sales report", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build report"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"totalSales":      summary.TotalSales,
		"totalAmount":     summary.TotalAmount,
		"salesByCustomer": summary.SalesByCustomer,
		"dateRange": echo.Map{
			"startDate": c.QueryParam("startDate"),
			"endDate":   c.QueryParam("endDate"),
		},
	})
}
