package stock

import (
	"fmt"
	"testing"
	"time"

	"warehouse-service/internal/model"

	"gorm.io/gorm"
)

func seedTransaction(t *testing.T, db *gorm.DB, inventoryID uint, kind model.TransactionType, quantity int, createdAt time.Time) {
	t.Helper()
	txn := &model.InventoryTransaction{
		InventoryID: inventoryID,
		Type:        kind,
		Quantity:    quantity,
	}
	if err := db.Create(txn).Error; err != nil {
		t.Fatalf("failed to seed transaction: %v", err)
	}
	if err := db.Model(txn).Update("created_at", createdAt).Error; err != nil {
		t.Fatalf("failed to backdate transaction: %v", err)
	}
}

func TestTransactionReportGroupsByType(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "SKU-1", "Widget")
	inv := seedInventory(t, db, product.ID, 0, 0)

	now := time.Now()
	seedTransaction(t, db, inv.ID, model.TransactionReceive, 10, now)
	seedTransaction(t, db, inv.ID, model.TransactionReceive, 5, now)
	seedTransaction(t, db, inv.ID, model.TransactionSell, 3, now)
	seedTransaction(t, db, inv.ID, model.TransactionAdjust, 2, now)

	summary, err := TransactionReport(db, nil, nil)
	if err != nil {
		t.Fatalf("TransactionReport failed: %v", err)
	}

	if summary.TotalTransactions != 4 {
		t.Errorf("expected 4 transactions, got %d", summary.TotalTransactions)
	}

	byType := map[model.TransactionType]TransactionTypeSummary{}
	for _, row := range summary.TransactionsByType {
		byType[row.Type] = row
	}
	if row := byType[model.TransactionReceive]; row.Count != 2 || row.TotalQuantity != 15 {
		t.Errorf("unexpected RECEIVE grouping: %+v", row)
	}
	if row := byType[model.TransactionSell]; row.Count != 1 || row.TotalQuantity != 3 {
		t.Errorf("unexpected SELL grouping: %+v", row)
	}
	if row := byType[model.TransactionAdjust]; row.Count != 1 || row.TotalQuantity != 2 {
		t.Errorf("unexpected ADJUST grouping: %+v", row)
	}
}

func TestTransactionReportDateRange(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "SKU-1", "Widget")
	inv := seedInventory(t, db, product.ID, 0, 0)

	old := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	seedTransaction(t, db, inv.ID, model.TransactionReceive, 10, old)
	seedTransaction(t, db, inv.ID, model.TransactionSell, 4, recent)

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)
	summary, err := TransactionReport(db, &start, &end)
	if err != nil {
		t.Fatalf("TransactionReport failed: %v", err)
	}

	if summary.TotalTransactions != 1 {
		t.Errorf("expected 1 transaction in range, got %d", summary.TotalTransactions)
	}
	if len(summary.TransactionsByType) != 1 || summary.TransactionsByType[0].Type != model.TransactionSell {
		t.Errorf("unexpected groupings: %+v", summary.TransactionsByType)
	}
}

func TestTransactionReportEmpty(t *testing.T) {
	db := newTestDB(t)

	summary, err := TransactionReport(db, nil, nil)
	if err != nil {
		t.Fatalf("TransactionReport failed: %v", err)
	}
	if summary.TotalTransactions != 0 {
		t.Errorf("expected 0 transactions, got %d", summary.TotalTransactions)
	}
	if len(summary.TransactionsByType) != 0 {
		t.Errorf("expected no groupings, got %+v", summary.TransactionsByType)
	}
}

func seedOrderAt(t *testing.T, db *gorm.DB, supplierID, userID uint, status model.OrderStatus, total float64, orderDate time.Time) *model.Order {
	t.Helper()
	order := &model.Order{
		OrderNumber: fmt.Sprintf("PO%d", time.Now().UnixNano()),
		SupplierID:  supplierID,
		UserID:      userID,
		Status:      status,
		TotalAmount: total,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}
	if err := db.Model(order).Update("order_date", orderDate).Error; err != nil {
		t.Fatalf("failed to backdate order: %v", err)
	}
	return order
}

func TestOrderReportGroupsByStatus(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	supplier := seedSupplier(t, db)

	now := time.Now()
	seedOrderAt(t, db, supplier.ID, user.ID, model.OrderPending, 100, now)
	seedOrderAt(t, db, supplier.ID, user.ID, model.OrderPending, 50, now)
	seedOrderAt(t, db, supplier.ID, user.ID, model.OrderCompleted, 200, now)

	summary, err := OrderReport(db, nil, nil, "")
	if err != nil {
		t.Fatalf("OrderReport failed: %v", err)
	}

	if summary.TotalOrders != 3 {
		t.Errorf("expected 3 orders, got %d", summary.TotalOrders)
	}
	if summary.TotalAmount != 350 {
		t.Errorf("expected total 350, got %v", summary.TotalAmount)
	}

	byStatus := map[model.OrderStatus]OrderStatusSummary{}
	for _, row := range summary.OrdersByStatus {
		byStatus[row.Status] = row
	}
	if row := byStatus[model.OrderPending]; row.Count != 2 || row.TotalAmount != 150 {
		t.Errorf("unexpected PENDING grouping: %+v", row)
	}
	if row := byStatus[model.OrderCompleted]; row.Count != 1 || row.TotalAmount != 200 {
		t.Errorf("unexpected COMPLETED grouping: %+v", row)
	}
}

func TestOrderReportStatusFilter(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	supplier := seedSupplier(t, db)

	now := time.Now()
	seedOrderAt(t, db, supplier.ID, user.ID, model.OrderPending, 100, now)
	seedOrderAt(t, db, supplier.ID, user.ID, model.OrderCompleted, 200, now)

	summary, err := OrderReport(db, nil, nil, model.OrderCompleted)
	if err != nil {
		t.Fatalf("OrderReport failed: %v", err)
	}

	if summary.TotalOrders != 1 {
		t.Errorf("expected 1 order, got %d", summary.TotalOrders)
	}
	if summary.TotalAmount != 200 {
		t.Errorf("expected total 200, got %v", summary.TotalAmount)
	}
	if len(summary.OrdersByStatus) != 1 || summary.OrdersByStatus[0].Status != model.OrderCompleted {
		t.Errorf("unexpected groupings: %+v", summary.OrdersByStatus)
	}
}

func seedSaleAt(t *testing.T, db *gorm.DB, customerID *uint, userID uint, total float64, saleDate time.Time) *model.Sale {
	t.Helper()
	sale := &model.Sale{
		SaleNumber:  fmt.Sprintf("SO%d", time.Now().UnixNano()),
		CustomerID:  customerID,
		UserID:      userID,
		TotalAmount: total,
	}
	if err := db.Create(sale).Error; err != nil {
		t.Fatalf("failed to seed sale: %v", err)
	}
	if err := db.Model(sale).Update("sale_date", saleDate).Error; err != nil {
		t.Fatalf("failed to backdate sale: %v", err)
	}
	return sale
}

func TestSalesReportGroupsByCustomer(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	customer := seedCustomer(t, db)

	now := time.Now()
	seedSaleAt(t, db, &customer.ID, user.ID, 300, now)
	seedSaleAt(t, db, &customer.ID, user.ID, 150, now)
	seedSaleAt(t, db, nil, user.ID, 75, now)

	summary, err := SalesReport(db, nil, nil, nil)
	if err != nil {
		t.Fatalf("SalesReport failed: %v", err)
	}

	if summary.TotalSales != 3 {
		t.Errorf("expected 3 sales, got %d", summary.TotalSales)
	}
	if summary.TotalAmount != 525 {
		t.Errorf("expected total 525, got %v", summary.TotalAmount)
	}

	var walkIn, known *CustomerSalesSummary
	for i := range summary.SalesByCustomer {
		row := &summary.SalesByCustomer[i]
		if row.CustomerID == nil {
			walkIn = row
		} else if *row.CustomerID == customer.ID {
			known = row
		}
	}
	if known == nil || known.Count != 2 || known.TotalAmount != 450 {
		t.Errorf("unexpected customer grouping: %+v", known)
	}
	if walkIn == nil || walkIn.Count != 1 || walkIn.TotalAmount != 75 {
		t.Errorf("unexpected walk-in grouping: %+v", walkIn)
	}
}

func TestSalesReportCustomerFilter(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	customer := seedCustomer(t, db)
	other := seedCustomer(t, db)

	now := time.Now()
	seedSaleAt(t, db, &customer.ID, user.ID, 300, now)
	seedSaleAt(t, db, &other.ID, user.ID, 100, now)

	summary, err := SalesReport(db, nil, nil, &customer.ID)
	if err != nil {
		t.Fatalf("SalesReport failed: %v", err)
	}

	if summary.TotalSales != 1 {
		t.Errorf("expected 1 sale, got %d", summary.TotalSales)
	}
	if summary.TotalAmount != 300 {
		t.Errorf("expected total 300, got %v", summary.TotalAmount)
	}
}

func TestSalesReportDateRange(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)

	seedSaleAt(t, db, nil, user.ID, 100, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	seedSaleAt(t, db, nil, user.ID, 200, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC))

	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC)
	summary, err := SalesReport(db, &start, &end, nil)
	if err != nil {
		t.Fatalf("SalesReport failed: %v", err)
	}

	if summary.TotalSales != 1 {
		t.Errorf("expected 1 sale in range, got %d", summary.TotalSales)
	}
	if summary.TotalAmount != 200 {
		t.Errorf("expected total 200, got %v", summary.TotalAmount)
	}
}
