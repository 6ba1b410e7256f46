package stock

import (
	"testing"

	"warehouse-service/internal/model"
	"warehouse-service/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database. A single connection
// is enforced so every session sees the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	user := &model.User{
		Username: "admin",
		Password: "hashed",
		Email:    "admin@example.com",
		Role:     model.RoleAdmin,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedSupplier(t *testing.T, db *gorm.DB) *model.Supplier {
	t.Helper()
	supplier := &model.Supplier{Name: "Acme Wholesale"}
	if err := db.Create(supplier).Error; err != nil {
		t.Fatalf("failed to seed supplier: %v", err)
	}
	return supplier
}

func seedCustomer(t *testing.T, db *gorm.DB) *model.Customer {
	t.Helper()
	customer := &model.Customer{FirstName: "Jane", LastName: "Doe"}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	return customer
}

func seedProduct(t *testing.T, db *gorm.DB, sku, name string) *model.Product {
	t.Helper()
	product := &model.Product{SKU: sku, Name: name, UnitPrice: 100}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to seed product %s: %v", sku, err)
	}
	return product
}

func seedInventory(t *testing.T, db *gorm.DB, productID uint, quantity, minStock int) *model.Inventory {
	t.Helper()
	inv := &model.Inventory{ProductID: productID, Quantity: quantity, MinStockLevel: minStock}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to seed inventory for product %d: %v", productID, err)
	}
	return inv
}

func inventoryQuantity(t *testing.T, db *gorm.DB, inventoryID uint) int {
	t.Helper()
	var inv model.Inventory
	if err := db.First(&inv, inventoryID).Error; err != nil {
		t.Fatalf("failed to reload inventory %d: %v", inventoryID, err)
	}
	return inv.Quantity
}

func transactionCount(t *testing.T, db *gorm.DB, inventoryID uint) int64 {
	t.Helper()
	var count int64
	err := db.Model(&model.InventoryTransaction{}).
		Where("inventory_id = ?", inventoryID).
		Count(&count).Error
	if err != nil {
		t.Fatalf("failed to count transactions: %v", err)
	}
	return count
}

// ledgerNet computes the signed net of all ledger rows for an inventory
// row, which must always match its current quantity.
func ledgerNet(t *testing.T, db *gorm.DB, inventoryID uint) int {
	t.Helper()
	var txns []model.InventoryTransaction
	if err := db.Where("inventory_id = ?", inventoryID).Find(&txns).Error; err != nil {
		t.Fatalf("failed to load transactions: %v", err)
	}
	net := 0
	for _, txn := range txns {
		net += txn.Type.Delta(txn.Quantity)
	}
	return net
}
