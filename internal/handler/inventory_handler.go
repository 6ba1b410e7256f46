package handler

import (
	"net/http"

	"warehouse-service/internal/model"
	"warehouse-service/pkg/database"
	"warehouse-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// InventoryRequest defines the structure for inventory creation/update requests
type InventoryRequest struct {
	ProductID     uint  `json:"productId"`
	Quantity      *int  `json:"quantity"`
	LocationID    *uint `json:"locationId"`
	MinStockLevel *int  `json:"minStockLevel"`
	MaxStockLevel *int  `json:"maxStockLevel"`
}

// ListInventory handles retrieving inventory rows with pagination and filtering
func ListInventory(c echo.Context) error {
	log := logger.FromContext(c)

	page, limit, offset := paginationParams(c)
	query := database.GetDB().Model(&model.Inventory{})

	if locationID := c.QueryParam("warehouseLocationId"); locationID != "" {
		query = query.Where("location_id = ?", locationID)
	}
	if c.QueryParam("lowStock") == "true" {
		query = query.Where("quantity <= min_stock_level")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("Failed to count inventory", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve inventory"})
	}

	var inventory []model.Inventory
	err := query.Preload("Product").Preload("Product.Category").Preload("Location").
		Limit(limit).Offset(offset).
		Order("updated_at DESC").
		Find(&inventory).Error
	if err != nil {
		log.Error("Failed to list inventory", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve inventory"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"inventory":  inventory,
		"pagination": newPagination(page, limit, total),
	})
}

// GetInventory handles retrieving one inventory row with its recent transactions
func GetInventory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid inventory id"})
	}

	var inventory model.Inventory
	result := database.GetDB().
		Preload("Product").Preload("Product.Category").Preload("Location").
		First(&inventory, id)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "inventory not found"})
	}

	var transactions []model.InventoryTransaction
	database.GetDB().
		Where("inventory_id = ?", inventory.ID).
		Order("created_at DESC").
		Limit(20).
		Find(&transactions)

	return c.JSON(http.StatusOK, echo.Map{
		"inventory":    inventory,
		"transactions": transactions,
	})
}

// CreateInventory handles creating the inventory row for a product
func CreateInventory(c echo.Context) error {
	log := logger.FromContext(c)

	var req InventoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if req.ProductID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "productId is required"})
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must not be negative"})
	}
	if req.MinStockLevel != nil && *req.MinStockLevel < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "minStockLevel must not be negative"})
	}

	db := database.GetDB()
	var count int64
	db.Model(&model.Product{}).Where("id = ?", req.ProductID).Count(&count)
	if count == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	// One inventory row per product
	db.Model(&model.Inventory{}).Where("product_id = ?", req.ProductID).Count(&count)
	if count > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "inventory for this product already exists"})
	}

	inventory := model.Inventory{
		ProductID:     req.ProductID,
		LocationID:    req.LocationID,
		MaxStockLevel: req.MaxStockLevel,
	}
	if req.Quantity != nil {
		inventory.Quantity = *req.Quantity
	}
	if req.MinStockLevel != nil {
		inventory.MinStockLevel = *req.MinStockLevel
	}

	if err := db.Create(&inventory).Error; err != nil {
		log.Error("Failed to create inventory", zap.Uint("product_id", req.ProductID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create inventory"})
	}

	log.Info("Inventory created",
		zap.Uint("inventory_id", inventory.ID),
		zap.Uint("product_id", inventory.ProductID),
		zap.Int("quantity", inventory.Quantity))
	return c.JSON(http.StatusCreated, inventory)
}

// UpdateInventory handles updating inventory levels and location.
// Direct quantity edits bypass the ledger; they are meant for initial
// corrections only, stock movements belong to the transactions endpoint.
func UpdateInventory(c echo.Context) error {
	log := logger.FromContext(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid inventory id"})
	}

	var req InventoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var inventory model.Inventory
	if result := database.GetDB().First(&inventory, id); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "inventory not found"})
	}

	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must not be negative"})
		}
		inventory.Quantity = *req.Quantity
	}
	if req.MinStockLevel != nil {
		if *req.MinStockLevel < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "minStockLevel must not be negative"})
		}
		inventory.MinStockLevel = *req.MinStockLevel
	}
	inventory.LocationID = req.LocationID
	inventory.MaxStockLevel = req.MaxStockLevel

	if err := database.GetDB().Save(&inventory).Error; err != nil {
		log.Error("Failed to update inventory", zap.Uint("inventory_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update inventory"})
	}
	return c.JSON(http.StatusOK, inventory)
}

// DeleteInventory handles deleting an inventory row
func DeleteInventory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid inventory id"})
	}

	result := database.GetDB().Delete(&model.Inventory{}, id)
	if result.Error != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete inventory"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "inventory not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "inventory deleted successfully"})
}

// LowStockItems handles retrieving inventory at or below its minimum level
func LowStockItems(c echo.Context) error {
	log := logger.FromContext(c)

	var items []model.Inventory
	err := database.GetDB().
		Where("quantity <= min_stock_level").
		Preload("Product").Preload("Location").
		Order("quantity ASC").
		Find(&items).Error
	if err != nil {
		log.Error("Failed to list low-stock items", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve low-stock items"})
	}

	return c.JSON(http.StatusOK, echo.Map{"lowStockItems": items})
}
