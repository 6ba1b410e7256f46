package stock

import (
	"time"

	"warehouse-service/internal/model"

	"gorm.io/gorm"
)

// TransactionTypeSummary is one ledger grouping row
type TransactionTypeSummary struct {
	Type          model.TransactionType `json:"type"`
	Count         int64                 `json:"count"`
	TotalQuantity int64                 `json:"totalQuantity"`
}

// TransactionSummary aggregates the ledger over an optional date range
type TransactionSummary struct {
	TotalTransactions  int64                    `json:"totalTransactions"`
	TransactionsByType []TransactionTypeSummary `json:"transactionsByType"`
}

// OrderStatusSummary is one order grouping row
type OrderStatusSummary struct {
	Status      model.OrderStatus `json:"status"`
	Count       int64             `json:"count"`
	TotalAmount float64           `json:"totalAmount"`
}

// OrderSummary aggregates purchase orders over an optional date range
type OrderSummary struct {
	TotalOrders    int64                `json:"totalOrders"`
	OrdersByStatus []OrderStatusSummary `json:"ordersByStatus"`
	TotalAmount    float64              `json:"totalAmount"`
}

// CustomerSalesSummary is one sales grouping row
type CustomerSalesSummary struct {
	CustomerID  *uint   `json:"customerId"`
	Count       int64   `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
}

// SalesSummary aggregates sales over an optional date range
type SalesSummary struct {
	TotalSales      int64                  `json:"totalSales"`
	TotalAmount     float64                `json:"totalAmount"`
	SalesByCustomer []CustomerSalesSummary `json:"salesByCustomer"`
}

func dateRange(q *gorm.DB, column string, start, end *time.Time) *gorm.DB {
	if start != nil && end != nil {
		return q.Where(column+" BETWEEN ? AND ?", *start, *end)
	}
	return q
}

// TransactionReport groups the ledger by transaction type with counts
// and summed quantities
func TransactionReport(db *gorm.DB, start, end *time.Time) (*TransactionSummary, error) {
	summary := &TransactionSummary{}

	q := dateRange(db.Model(&model.InventoryTransaction{}), "created_at", start, end)
	if err := q.Count(&summary.TotalTransactions).Error; err != nil {
		return nil, err
	}

	q = dateRange(db.Model(&model.InventoryTransaction{}), "created_at", start, end)
	err := q.Select("type, count(*) as count, coalesce(sum(quantity), 0) as total_quantity").
		Group("type").
		Order("type").
		Scan(&summary.TransactionsByType).Error
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// OrderReport groups purchase orders by status with counts and summed
// totals, optionally narrowed to one status
func OrderReport(db *gorm.DB, start, end *time.Time, status model.OrderStatus) (*OrderSummary, error) {
	summary := &OrderSummary{}

	base := func() *gorm.DB {
		q := dateRange(db.Model(&model.Order{}), "order_date", start, end)
		if status != "" {
			q = q.Where("status = ?", status)
		}
		return q
	}

	if err := base().Count(&summary.TotalOrders).Error; err != nil {
		return nil, err
	}

	err := base().Select("status, count(*) as count, coalesce(sum(total_amount), 0) as total_amount").
		Group("status").
		Order("status").
		Scan(&summary.OrdersByStatus).Error
	if err != nil {
		return nil, err
	}

	for _, row := range summary.OrdersByStatus {
		summary.TotalAmount += row.TotalAmount
	}
	return summary, nil
}

// SalesReport sums sale totals and groups them by customer
func SalesReport(db *gorm.DB, start, end *time.Time, customerID *uint) (*SalesSummary, error) {
	summary := &SalesSummary{}

	base := func() *gorm.DB {
		q := dateRange(db.Model(&model.Sale{}), "sale_date", start, end)
		if customerID != nil {
			q = q.Where("customer_id = ?", *customerID)
		}
		return q
	}

	if err := base().Count(&summary.TotalSales).Error; err != nil {
		return nil, err
	}

	var total struct {
		Total float64
	}
	if err := base().Select("coalesce(sum(total_amount), 0) as total").Scan(&total).Error; err != nil {
		return nil, err
	}
	summary.TotalAmount = total.Total

	err := base().Select("customer_id, count(*) as count, coalesce(sum(total_amount), 0) as total_amount").
		Group("customer_id").
		Scan(&summary.SalesByCustomer).Error
	if err != nil {
		return nil, err
	}
	return summary, nil
}
