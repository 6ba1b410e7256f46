package stock

import (
	"errors"

	"warehouse-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate applies a FOR UPDATE row lock on dialects that support
// it. SQLite (used by the tests) serializes writers on its own and has
// no FOR UPDATE grammar.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// TransactionInput describes one stock-affecting event to record
type TransactionInput struct {
	InventoryID uint
	Type        model.TransactionType
	Quantity    int
	Description string
}

// ApplyTransaction atomically updates the inventory quantity and appends
// the matching ledger row. The inventory row is locked for the duration
// of the check-then-write so concurrent deductions cannot both pass the
// sufficiency check.
func ApplyTransaction(db *gorm.DB, in TransactionInput) (*model.InventoryTransaction, error) {
	if !in.Type.Valid() {
		return nil, &ValidationError{Message: "transaction type must be RECEIVE, SELL or ADJUST"}
	}
	if in.Quantity <= 0 {
		return nil, &ValidationError{Message: "quantity must be a positive integer"}
	}

	var txn *model.InventoryTransaction
	err := db.Transaction(func(tx *gorm.DB) error {
		var inv model.Inventory
		if err := lockForUpdate(tx).First(&inv, in.InventoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "inventory", ID: in.InventoryID}
			}
			return err
		}

		recorded, err := record(tx, &inv, in.Type, in.Quantity, in.Description)
		if err != nil {
			return err
		}
		txn = recorded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// record applies one transaction against an inventory row the caller has
// already locked inside tx. Both writes belong to the caller's
// transaction, so they commit or roll back together.
func record(tx *gorm.DB, inv *model.Inventory, kind model.TransactionType, quantity int, description string) (*model.InventoryTransaction, error) {
	delta := kind.Delta(quantity)
	if inv.Quantity+delta < 0 {
		return nil, insufficientStock(tx, inv, quantity)
	}

	inv.Quantity += delta
	if err := tx.Model(inv).Update("quantity", inv.Quantity).Error; err != nil {
		return nil, err
	}

	txn := &model.InventoryTransaction{
		InventoryID: inv.ID,
		Type:        kind,
		Quantity:    quantity,
		Description: description,
	}
	if err := tx.Create(txn).Error; err != nil {
		return nil, err
	}
	return txn, nil
}

func insufficientStock(tx *gorm.DB, inv *model.Inventory, requested int) error {
	var product model.Product
	name := ""
	if err := tx.Select("name").First(&product, inv.ProductID).Error; err == nil {
		name = product.Name
	}
	return &InsufficientStockError{
		ProductID:   inv.ProductID,
		ProductName: name,
		Available:   inv.Quantity,
		Requested:   requested,
	}
}

// lockInventoryByProduct loads and locks the inventory row for a product.
// When createIfMissing is set a fresh row with zero quantity is created,
// which is how receipts materialize inventory for never-stocked products.
// Returns nil without error when the row is absent and creation was not
// requested.
func lockInventoryByProduct(tx *gorm.DB, productID uint, createIfMissing bool) (*model.Inventory, error) {
	var inv model.Inventory
	err := lockForUpdate(tx).Where("product_id = ?", productID).First(&inv).Error
	if err == nil {
		return &inv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if !createIfMissing {
		return nil, nil
	}

	inv = model.Inventory{ProductID: productID, Quantity: 0, MinStockLevel: 0}
	if err := tx.Create(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}
