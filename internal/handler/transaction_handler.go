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

// TransactionRequest defines the structure for recording a stock transaction
type TransactionRequest struct {
	InventoryID uint   `json:"inventoryId"`
	Type        string `json:"type"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
}

// ListTransactions handles retrieving ledger rows with pagination and filtering
func ListTransactions(c echo.Context) error {
	log := logger.FromContext(c)

	page, limit, offset := paginationParams(c)
	query := database.GetDB().Model(&model.InventoryTransaction{})

	if txnType := c.QueryParam("type"); txnType != "" {
		query = query.Where("type = ?", txnType)
	}
	if inventoryID := c.QueryParam("inventoryId"); inventoryID != "" {
		query = query.Where("inventory_id = ?", inventoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("Failed to count transactions", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve transactions"})
	}

	var transactions []model.InventoryTransaction
	err := query.Preload("Inventory").Preload("Inventory.Product").
		Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&transactions).Error
	if err != nil {
		log.Error("Failed to list transactions", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve transactions"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"transactions": transactions,
		"pagination":   newPagination(page, limit, total),
	})
}

// GetTransaction handles retrieving a single ledger row by ID
func GetTransaction(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid transaction id"})
	}

	var txn model.InventoryTransaction
	result := database.GetDB().
		Preload("Inventory").Preload("Inventory.Product").
		First(&txn, id)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "transaction not found"})
	}
	return c.JSON(http.StatusOK, txn)
}

// TransactionsByInventory handles retrieving the ledger of one inventory row
func TransactionsByInventory(c echo.Context) error {
	log := logger.FromContext(c)

	inventoryID, err := strconv.ParseUint(c.Param("inventoryId"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid inventory id"})
	}

	page, limit, offset := paginationParams(c)
	query := database.GetDB().Model(&model.InventoryTransaction{}).
		Where("inventory_id = ?", uint(inventoryID))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("Failed to count transactions", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve transactions"})
	}

	var transactions []model.InventoryTransaction
	err = query.Limit(limit).Offset(offset).Order("created_at DESC").Find(&transactions).Error
	if err != nil {
		log.Error("Failed to list transactions", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve transactions"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"transactions": transactions,
		"pagination":   newPagination(page, limit, total),
	})
}

// CreateTransaction records one stock-affecting event through the ledger
func CreateTransaction(c echo.Context) error {
	log := logger.FromContext(c)

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	txn, err := stock.ApplyTransaction(database.GetDB(), stock.TransactionInput{
		InventoryID: req.InventoryID,
		Type:        model.TransactionType(req.Type),
		Quantity:    req.Quantity,
		Description: req.Description,
	})
	if err != nil {
		return writeDomainError(c, log, err)
	}

	prometheus.RecordStockTransaction(string(txn.Type))
	log.Info("Inventory transaction recorded",
		zap.Uint("transaction_id", txn.ID),
		zap.Uint("inventory_id", txn.InventoryID),
		zap.String("type", string(txn.Type)),
		zap.Int("quantity", txn.Quantity))
	return c.JSON(http.StatusCreated, txn)
}

// TransactionReportSummary handles the ledger summary report
func TransactionReportSummary(c echo.Context) error {
	log := logger.FromContext(c)

	start, end := parseDateRange(c)
	summary, err := stock.TransactionReport(database.GetDB(), start, end)
	if err != nil {
		log.Error("Failed to build transaction report", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build report"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"totalTransactions":  summary.TotalTransactions,
		"transactionsByType": summary.TransactionsByType,
		"dateRange": echo.Map{
			"startDate": c.QueryParam("startDate"),
			"endDate":   c.QueryParam("endDate"),
		},
	})
}
