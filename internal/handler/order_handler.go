package handler

import (
	"fmt"
	"net/http"
	"time"

	"warehouse-service/internal/model"
	"warehouse-service/internal/stock"
	"warehouse-service/pkg/database"
	"warehouse-service/pkg/logger"
	"warehouse-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderItemRequest is one requested purchase-order line
type OrderItemRequest struct {
	ProductID uint    `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// OrderRequest defines the structure for order creation requests
type OrderRequest struct {
	SupplierID uint               `json:"supplierId"`
	UserID     uint               `json:"userId"`
	Status     string             `json:"status"`
	OrderItems []OrderItemRequest `json:"orderItems"`
}

// ListOrders handles retrieving purchase orders with pagination and filtering
func ListOrders(c echo.Context) error {
	log := logger.FromContext(c)

	page, limit, offset := paginationParams(c)
	query := database.GetDB().Model(&model.Order{})

	if search := c.QueryParam("search"); search != "" {
		query = query.Where("order_number LIKE ?", "%"+search+"%")
	}
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if supplierID := c.QueryParam("supplierId"); supplierID != "" {
		query = query.Where("supplier_id = ?", supplierID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("Failed to count orders", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve orders"})
	}

	var orders []model.Order
	err := query.Preload("Supplier").Preload("User").
		Preload("OrderItems").Preload("OrderItems.Product").
		Limit(limit).Offset(offset).
		Order("order_date DESC").
		Find(&orders).Error
	if err != nil {
		log.Error("Failed to list orders", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve orders"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"orders":     orders,
		"pagination": newPagination(page, limit, total),
	})
}

// GetOrder handles retrieving a single order by ID
func GetOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	var order model.Order
	result := database.GetDB().
		Preload("Supplier").Preload("User").
		Preload("OrderItems").Preload("OrderItems.Product").
		First(&order, id)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
	}
	return c.JSON(http.StatusOK, order)
}

// CreateOrder handles creating a new purchase order. Creation never
// moves stock; only the later status transition to COMPLETED does.
func CreateOrder(c echo.Context) error {
	log := logger.FromContext(c)

	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if len(req.OrderItems) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "an order requires at least one item"})
	}
	for _, item := range req.OrderItems {
		if item.Quantity <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "item quantity must be a positive integer"})
		}
		if item.UnitPrice < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "item unit price must not be negative"})
		}
	}

	status := model.OrderPending
	if req.Status != "" {
		status = model.OrderStatus(req.Status)
		if !status.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be PENDING, COMPLETED or CANCELLED"})
		}
	}

	db := database.GetDB()
	var count int64
	db.Model(&model.Supplier{}).Where("id = ?", req.SupplierID).Count(&count)
	if count == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "supplier not found"})
	}
	db.Model(&model.User{}).Where("id = ?", req.UserID).Count(&count)
	if count == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	var totalAmount float64
	for _, item := range req.OrderItems {
		db.Model(&model.Product{}).Where("id = ?", item.ProductID).Count(&count)
		if count == 0 {
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": fmt.Sprintf("product %d not found", item.ProductID),
			})
		}
		totalAmount += item.UnitPrice * float64(item.Quantity)
	}

	order := model.Order{
		OrderNumber: fmt.Sprintf("PO%d", time.Now().UnixMilli()),
		SupplierID:  req.SupplierID,
		UserID:      req.UserID,
		Status:      status,
		TotalAmount: totalAmount,
	}
	for _, item := range req.OrderItems {
		order.OrderItems = append(order.OrderItems, model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	if err := db.Create(&order).Error; err != nil {
		log.Error("Failed to create order", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order"})
	}

	prometheus.RecordOrderOperation("create")
	log.Info("Order created",
		zap.Uint("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.Float64("total_amount", order.TotalAmount))
	return c.JSON(http.StatusCreated, order)
}

// UpdateOrder handles order status changes. A transition to COMPLETED
// receives every line item into stock exactly once.
func UpdateOrder(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status is required"})
	}

	order, err := stock.UpdateOrderStatus(database.GetDB(), id, model.OrderStatus(req.Status))
	if err != nil {
		return writeDomainError(c, log, err)
	}

	prometheus.RecordOrderOperation("status_change")
	log.Info("Order status updated",
		zap.Uint("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("status", string(order.Status)))
	return c.JSON(http.StatusOK, order)
}

// DeleteOrder handles deleting a purchase order and its line items
func DeleteOrder(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Order{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &stock.NotFoundError{Entity: "order", ID: id}
		}
		return tx.Where("order_id = ?", id).Delete(&model.OrderItem{}).Error
	})
	if err != nil {
		return writeDomainError(c, log, err)
	}

	prometheus.RecordOrderOperation("delete")
	log.Info("Order deleted", zap.Uint("order_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "order deleted successfully"})
}

// OrderReportSummary handles the purchase-order summary report
func OrderReportSummary(c echo.Context) error {
	log := logger.FromContext(c)

	start, end := parseDateRange(c)
	status := model.OrderStatus(c.QueryParam("status"))
	summary, err := stock.OrderReport(database.GetDB(), start, end, status)
	if err != nil {
		log.Error("Failed to build order report", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build report"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"totalOrders":    summary.TotalOrders,
		"ordersByStatus": summary.OrdersByStatus,
		"totalAmount":    summary.TotalAmount,
		"dateRange": echo.Map{
			"startDate": c.QueryParam("startDate"),
			"endDate":   c.QueryParam("endDate"),
		},
	})
}
