package stock

import (
	"errors"
	"fmt"

	"warehouse-service/internal/model"

	"gorm.io/gorm"
)

// UpdateOrderStatus changes a purchase order's status. Only the
// transition to COMPLETED from a non-COMPLETED state credits stock, so
// repeating the same completion call is a no-op for inventory. All line
// items are received inside one transaction: a failure on any line rolls
// back the whole status change.
func UpdateOrderStatus(db *gorm.DB, orderID uint, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, &ValidationError{Message: "status must be PENDING, COMPLETED or CANCELLED"}
	}

	var order model.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("OrderItems").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "order", ID: orderID}
			}
			return err
		}

		if status == model.OrderCompleted && order.Status != model.OrderCompleted {
			if err := receiveOrderItems(tx, &order); err != nil {
				return err
			}
		}

		order.Status = status
		return tx.Model(&order).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func receiveOrderItems(tx *gorm.DB, order *model.Order) error {
	for _, item := range order.OrderItems {
		// The product may have been deleted since the order was placed
		var count int64
		if err := tx.Model(&model.Product{}).Where("id = ?", item.ProductID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return &NotFoundError{Entity: "product", ID: item.ProductID}
		}

		inv, err := lockInventoryByProduct(tx, item.ProductID, true)
		if err != nil {
			return err
		}

		description := fmt.Sprintf("receipt from order %s", order.OrderNumber)
		if _, err := record(tx, inv, model.TransactionReceive, item.Quantity, description); err != nil {
			return err
		}
	}
	return nil
}
