package stock

import (
	"errors"
	"testing"

	"warehouse-service/internal/model"
)

func TestCreateSaleDeductsStock(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	customer := seedCustomer(t, db)
	product := seedProduct(t, db, "SKU-1", "Widget")
	inv := seedInventory(t, db, product.ID, 7, 0)

	sale, err := CreateSale(db, SaleInput{
		CustomerID: &customer.ID,
		UserID:     user.ID,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: 3, UnitPrice: 100},
		},
	})
	if err != nil {
		t.Fatalf("CreateSale failed: %v", err)
	}

	if got := inventoryQuantity(t, db, inv.ID); got != 4 {
		t.Errorf("expected quantity 4, got %d", got)
	}
	// totalAmount is computed server-side from the line items
	if sale.TotalAmount != 300 {
		t.Errorf("expected total 300, got %v", sale.TotalAmount)
	}
	if sale.SaleNumber == "" {
		t.Error("expected a generated sale number")
	}

	var items []model.SaleItem
	db.Where("sale_id = ?", sale.ID).Find(&items)
	if len(items) != 1 || items[0].Quantity != 3 {
		t.Errorf("unexpected sale items: %+v", items)
	}

	var sells int64
	db.Model(&model.InventoryTransaction{}).Where("type = ?", model.TransactionSell).Count(&sells)
	if sells != 1 {
		t.Errorf("expected 1 SELL ledger row, got %d", sells)
	}
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	product := seedProduct(t, db, "SKU-1", "Widget")
	inv := seedInventory(t, db, product.ID, 4, 0)

	_, err := CreateSale(db, SaleInput{
		UserID: user.ID,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: 10, UnitPrice: 100},
		},
	})

	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if insufficient.Available != 4 || insufficient.Requested != 10 {
		t.Errorf("unexpected error detail: %+v", insufficient)
	}

	// The entire create is rejected: no sale rows, inventory unchanged
	var saleCount int64
	db.Model(&model.Sale{}).Count(&saleCount)
	if saleCount != 0 {
		t.Errorf("expected no sale rows, got %d", saleCount)
	}
	if got := inventoryQuantity(t, db, inv.ID); got != 4 {
		t.Errorf("expected quantity 4, got %d", got)
	}
}

func TestCreateSaleFailureOnLastLineRollsBackAll(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	p1 := seedProduct(t, db, "SKU-1", "Widget")
	p2 := seedProduct(t, db, "SKU-2", "Gadget")
	p3 := seedProduct(t, db, "SKU-3", "Gizmo")
	inv1 := seedInventory(t, db, p1.ID, 10, 0)
	inv2 := seedInventory(t, db, p2.ID, 10, 0)
	inv3 := seedInventory(t, db, p3.ID, 1, 0)

	_, err := CreateSale(db, SaleInput{
		UserID: user.ID,
		Items: []SaleItemInput{
			{ProductID: p1.ID, Quantity: 2, UnitPrice: 10},
			{ProductID: p2.ID, Quantity: 2, UnitPrice: 10},
			{ProductID: p3.ID, Quantity: 5, UnitPrice: 10},
		},
	})

	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}

	for _, tc := range []struct {
		id   uint
		want int
	}{{inv1.ID, 10}, {inv2.ID, 10}, {inv3.ID, 1}} {
		if got := inventoryQuantity(t, db, tc.id); got != tc.want {
			t.Errorf("inventory %d: expected quantity %d, got %d", tc.id, tc.want, got)
		}
	}

	var itemCount int64
	db.Model(&model.SaleItem{}).Count(&itemCount)
	if itemCount != 0 {
		t.Errorf("expected no sale items after rollback, got %d", itemCount)
	}
	var txnCount int64
	db.Model(&model.InventoryTransaction{}).Count(&txnCount)
	if txnCount != 0 {
		t.Errorf("expected no ledger rows after rollback, got %d", txnCount)
	}
}

func TestCreateSaleMissingInventory(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	product := seedProduct(t, db, "SKU-1", "Widget")

	_, err := CreateSale(db, SaleInput{
		UserID: user.ID,
		Items: []SaleItemInput{
			{ProductID: product.ID, Quantity: 1, UnitPrice: 100},
		},
	})

	var invalidState *InvalidStateError
	if !errors.As(err, &invalidState) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
}

func TestCreateSaleUnknownParties(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	product := seedProduct(t, db, "SKU-1", "Widget")
	seedInventory(t, db, product.ID, 5, 0)

	items := []SaleItemInput{{ProductID: product.ID, Quantity: 1, UnitPrice: 100}}

	_, err := CreateSale(db, SaleInput{UserID: 999, Items: items})
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError for unknown user, got %v", err)
	}

	missingCustomer := uint(999)
	_, err = CreateSale(db, SaleInput{UserID: user.ID, CustomerID: &missingCustomer, Items: items})
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError for unknown customer, got %v", err)
	}
}

func TestCreateSaleValidation(t *testing.T) {
	db := newTestDB(t)

	_, err := CreateSale(db, SaleInput{UserID: 1})
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for empty items, got %v", err)
	}

	_, err = CreateSale(db, SaleInput{
		UserID: 1,
		Items:  []SaleItemInput{{ProductID: 1, Quantity: 0, UnitPrice: 10}},
	})
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for zero quantity, got %v", err)
	}
}

func TestUpdateSaleReversesAndReapplies(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	product := seedProduct(t, db, "SKU-1", "Widget")
	inv := seedInventory(t, db, product.ID, 7, 0)

	sale, err := CreateSale(db, SaleInput{
		UserID: user.ID,
		Items:  []SaleItemInput{{ProductID: product.ID, Quantity: 3, UnitPrice: 100}},
	})
	if err != nil {
		t.Fatalf("CreateSale failed: %v", err)
	}

	// Reverse to 7, re-validate 5 <= 7, deduct to 2
	updated, err := UpdateSale(db, sale.ID, SaleInput{
		UserID: user.ID,
		Items:  []SaleItemInput{{ProductID: product.ID, Quantity: 5, UnitPrice: 100}},
	})
	if err != nil {
		t.Fatalf("UpdateSale failed: %v", err)
	}

	if got := inventoryQuantity(t, db, inv.ID); got != 2 {
		t.Errorf("expected quantity 2, got %d", got)
	}
	if updated.TotalAmount != 500 {
		t.Errorf("expected total 500, got %v", updated.TotalAmount)
	}

	var items []model.SaleItem
	db.Where("sale_id = ?", sale.ID).Find(&items)
	if len(items) != 1 || items[0].Quantity != 5 {
		t.Errorf("unexpected sale items after update: %+v", items)
	}

	// History is append-only: SELL 3, ADJUST 3 (reversal), SELL 5
	if got := transactionCount(t, db, inv.ID); got != 3 {
		t.Errorf("expected 3 ledger rows, got %d", got)
	}
	if net := ledgerNet(t, db, inv.ID); net != -5 {
		t.Errorf("expected ledger net -5, got %d", net)
	}
}

func TestUpdateSaleInsufficientRollsBackReversal(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	product := seedProduct(t, db, "SKU-1", "Widget")
	inv := seedInventory(t, db, product.ID, 7, 0)

	sale, err := CreateSale(db, SaleInput{
		UserID: user.ID,
		Items:  []SaleItemInput{{ProductID: product.ID, Quantity: 3, UnitPrice: 100}},
	})
	if err != nil {
		t.Fatalf("CreateSale failed: %v", err)
	}

	// 20 > 7 even after reversal, so the whole update must fail
	_, err = UpdateSale(db, sale.ID, SaleInput{
		UserID: user.ID,
		Items:  []SaleItemInput{{ProductID: product.ID, Quantity: 20, UnitPrice: 100}},
	})
	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}

	// The reversal from the failed update must also have rolled back
	if got := inventoryQuantity(t, db, inv.ID); got != 4 {
		t.Errorf("expected quantity 4, got %d", got)
	}
	var items []model.SaleItem
	db.Where("sale_id = ?", sale.ID).Find(&items)
	if len(items) != 1 || items[0].Quantity != 3 {
		t.Errorf("expected original sale items intact, got %+v", items)
	}
	var reloaded model.Sale
	db.First(&reloaded, sale.ID)
	if reloaded.TotalAmount != 300 {
		t.Errorf("expected original total 300, got %v", reloaded.TotalAmount)
	}
}

func TestDeleteSaleRestoresStockAndKeepsLedger(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	product := seedProduct(t, db, "SKU-1", "Widget")
	inv := seedInventory(t, db, product.ID, 7, 0)

	sale, err := CreateSale(db, SaleInput{
		UserID: user.ID,
		Items:  []SaleItemInput{{ProductID: product.ID, Quantity: 3, UnitPrice: 100}},
	})
	if err != nil {
		t.Fatalf("CreateSale failed: %v", err)
	}

	if err := DeleteSale(db, sale.ID); err != nil {
		t.Fatalf("DeleteSale failed: %v", err)
	}

	if got := inventoryQuantity(t, db, inv.ID); got != 7 {
		t.Errorf("expected quantity restored to 7, got %d", got)
	}

	var saleCount, itemCount int64
	db.Model(&model.Sale{}).Count(&saleCount)
	db.Model(&model.SaleItem{}).Count(&itemCount)
	if saleCount != 0 || itemCount != 0 {
		t.Errorf("expected sale and items removed, got %d sales and %d items", saleCount, itemCount)
	}

	// The audit trail outlives the sale: SELL + reversal ADJUST
	if got := transactionCount(t, db, inv.ID); got != 2 {
		t.Errorf("expected 2 ledger rows to survive, got %d", got)
	}
	if net := ledgerNet(t, db, inv.ID); net != 0 {
		t.Errorf("expected ledger net 0, got %d", net)
	}
}

func TestDeleteSaleUnknown(t *testing.T) {
	db := newTestDB(t)

	err := DeleteSale(db, 42)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

// Update must be equivalent to delete-then-recreate from the pre-update
// state as far as inventory quantities are concerned.
func TestUpdateEquivalentToDeleteAndRecreate(t *testing.T) {
	// Path A: update in place
	dbA := newTestDB(t)
	userA := seedUser(t, dbA)
	productA := seedProduct(t, dbA, "SKU-1", "Widget")
	invA := seedInventory(t, dbA, productA.ID, 10, 0)
	saleA, err := CreateSale(dbA, SaleInput{
		UserID: userA.ID,
		Items:  []SaleItemInput{{ProductID: productA.ID, Quantity: 2, UnitPrice: 50}},
	})
	if err != nil {
		t.Fatalf("CreateSale failed: %v", err)
	}
	itemsA := []SaleItemInput{{ProductID: productA.ID, Quantity: 4, UnitPrice: 50}}
	if _, err := UpdateSale(dbA, saleA.ID, SaleInput{UserID: userA.ID, Items: itemsA}); err != nil {
		t.Fatalf("UpdateSale failed: %v", err)
	}

	// Path B: delete then create with the new items
	dbB := newTestDB(t)
	userB := seedUser(t, dbB)
	productB := seedProduct(t, dbB, "SKU-1", "Widget")
	invB := seedInventory(t, dbB, productB.ID, 10, 0)
	saleB, err := CreateSale(dbB, SaleInput{
		UserID: userB.ID,
		Items:  []SaleItemInput{{ProductID: productB.ID, Quantity: 2, UnitPrice: 50}},
	})
	if err != nil {
		t.Fatalf("CreateSale failed: %v", err)
	}
	if err := DeleteSale(dbB, saleB.ID); err != nil {
		t.Fatalf("DeleteSale failed: %v", err)
	}
	itemsB := []SaleItemInput{{ProductID: productB.ID, Quantity: 4, UnitPrice: 50}}
	if _, err := CreateSale(dbB, SaleInput{UserID: userB.ID, Items: itemsB}); err != nil {
		t.Fatalf("CreateSale failed: %v", err)
	}

	qtyA := inventoryQuantity(t, dbA, invA.ID)
	qtyB := inventoryQuantity(t, dbB, invB.ID)
	if qtyA != qtyB {
		t.Errorf("update path quantity %d differs from delete+create path %d", qtyA, qtyB)
	}
	if qtyA != 6 {
		t.Errorf("expected quantity 6 on both paths, got %d", qtyA)
	}
}
