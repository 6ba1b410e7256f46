package stock

import (
	"errors"
	"fmt"
	"time"

	"warehouse-service/internal/model"

	"gorm.io/gorm"
)

// SaleItemInput is one requested sale line
type SaleItemInput struct {
	ProductID uint    `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// SaleInput describes a sale to create or the new shape of a sale to
// update. TotalAmount is always computed server-side from the items.
type SaleInput struct {
	CustomerID *uint
	UserID     uint
	Items      []SaleItemInput
}

func validateSaleInput(in SaleInput) error {
	if len(in.Items) == 0 {
		return &ValidationError{Message: "a sale requires at least one item"}
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return &ValidationError{Message: "item quantity must be a positive integer"}
		}
		if item.UnitPrice < 0 {
			return &ValidationError{Message: "item unit price must not be negative"}
		}
	}
	return nil
}

func checkSaleParties(tx *gorm.DB, in SaleInput) error {
	var count int64
	if err := tx.Model(&model.User{}).Where("id = ?", in.UserID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &NotFoundError{Entity: "user", ID: in.UserID}
	}
	if in.CustomerID != nil {
		if err := tx.Model(&model.Customer{}).Where("id = ?", *in.CustomerID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return &NotFoundError{Entity: "customer", ID: *in.CustomerID}
		}
	}
	return nil
}

// sellItems locks each line's inventory row, verifies sufficiency and
// records the SELL transaction. Runs inside the caller's transaction, so
// a failed line rolls back every preceding one.
func sellItems(tx *gorm.DB, items []SaleItemInput, description string) error {
	for _, item := range items {
		var product model.Product
		if err := tx.First(&product, item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "product", ID: item.ProductID}
			}
			return err
		}

		inv, err := lockInventoryByProduct(tx, item.ProductID, false)
		if err != nil {
			return err
		}
		if inv == nil {
			return &InvalidStateError{
				Message: fmt.Sprintf("product %q has no inventory record", product.Name),
			}
		}

		if inv.Quantity < item.Quantity {
			return &InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   inv.Quantity,
				Requested:   item.Quantity,
			}
		}

		if _, err := record(tx, inv, model.TransactionSell, item.Quantity, description); err != nil {
			return err
		}
	}
	return nil
}

// reverseSaleItems restores the stock effect of a sale's current line
// items. The restoration is recorded as ADJUST ledger rows so the audit
// trail stays an exact account of every quantity change. Line items
// whose inventory row has disappeared are skipped.
func reverseSaleItems(tx *gorm.DB, sale *model.Sale) error {
	for _, item := range sale.SaleItems {
		inv, err := lockInventoryByProduct(tx, item.ProductID, false)
		if err != nil {
			return err
		}
		if inv == nil {
			continue
		}

		description := fmt.Sprintf("reversal of sale %s", sale.SaleNumber)
		if _, err := record(tx, inv, model.TransactionAdjust, item.Quantity, description); err != nil {
			return err
		}
	}
	return nil
}

func totalAmount(items []SaleItemInput) float64 {
	var total float64
	for _, item := range items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// CreateSale creates a sale with its line items and deducts stock for
// every line in one atomic unit. Any missing product, missing inventory
// row or insufficient quantity rejects the entire sale with nothing
// persisted.
func CreateSale(db *gorm.DB, in SaleInput) (*model.Sale, error) {
	if err := validateSaleInput(in); err != nil {
		return nil, err
	}

	var sale model.Sale
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := checkSaleParties(tx, in); err != nil {
			return err
		}

		saleNumber := fmt.Sprintf("SO%d", time.Now().UnixMilli())
		if err := sellItems(tx, in.Items, fmt.Sprintf("sold via sale %s", saleNumber)); err != nil {
			return err
		}

		sale = model.Sale{
			SaleNumber:  saleNumber,
			CustomerID:  in.CustomerID,
			UserID:      in.UserID,
			TotalAmount: totalAmount(in.Items),
		}
		for _, item := range in.Items {
			sale.SaleItems = append(sale.SaleItems, model.SaleItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			})
		}
		return tx.Create(&sale).Error
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// UpdateSale replaces a sale's line items. The previous items' stock
// effect is reversed first, the new items are validated against the
// restored quantities, then the new deductions are applied. The whole
// reverse+revalidate+reapply sequence is one transaction: a failure at
// any step leaves the original sale and stock untouched.
func UpdateSale(db *gorm.DB, saleID uint, in SaleInput) (*model.Sale, error) {
	if err := validateSaleInput(in); err != nil {
		return nil, err
	}

	var sale model.Sale
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("SaleItems").First(&sale, saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "sale", ID: saleID}
			}
			return err
		}

		if err := checkSaleParties(tx, in); err != nil {
			return err
		}

		if err := reverseSaleItems(tx, &sale); err != nil {
			return err
		}

		if err := tx.Where("sale_id = ?", sale.ID).Delete(&model.SaleItem{}).Error; err != nil {
			return err
		}

		if err := sellItems(tx, in.Items, fmt.Sprintf("update of sale %s", sale.SaleNumber)); err != nil {
			return err
		}

		newItems := make([]model.SaleItem, 0, len(in.Items))
		for _, item := range in.Items {
			newItems = append(newItems, model.SaleItem{
				SaleID:    sale.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			})
		}
		if err := tx.Create(&newItems).Error; err != nil {
			return err
		}

		sale.CustomerID = in.CustomerID
		sale.UserID = in.UserID
		sale.TotalAmount = totalAmount(in.Items)
		sale.SaleItems = newItems
		return tx.Model(&sale).Updates(map[string]interface{}{
			"customer_id":  in.CustomerID,
			"user_id":      in.UserID,
			"total_amount": sale.TotalAmount,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// DeleteSale removes a sale and its line items after restoring their
// stock effect. Ledger rows written by the sale are kept: the audit
// trail outlives the sale that caused it.
func DeleteSale(db *gorm.DB, saleID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var sale model.Sale
		if err := tx.Preload("SaleItems").First(&sale, saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "sale", ID: saleID}
			}
			return err
		}

		if err := reverseSaleItems(tx, &sale); err != nil {
			return err
		}

		if err := tx.Where("sale_id = ?", sale.ID).Delete(&model.SaleItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sale).Error
	})
}
