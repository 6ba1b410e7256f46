package model

import (
	"time"
)

// OrderStatus is the lifecycle state of a purchase order
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Valid reports whether s is a known order status
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Order represents a purchase order placed with a supplier.
// The transition to COMPLETED is what credits stock.
type Order struct {
	ID          uint        `json:"id" gorm:"primarykey"`
	OrderNumber string      `json:"orderNumber" gorm:"type:varchar(50);unique;not null"`
	SupplierID  uint        `json:"supplierId" gorm:"not null"`
	Supplier    *Supplier   `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	UserID      uint        `json:"userId" gorm:"not null"`
	User        *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Status      OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	TotalAmount float64     `json:"totalAmount" gorm:"not null"`
	OrderDate   time.Time   `json:"orderDate" gorm:"autoCreateTime"`
	OrderItems  []OrderItem `json:"orderItems,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// OrderItem is one product line of a purchase order
type OrderItem struct {
	ID        uint     `json:"id" gorm:"primarykey"`
	OrderID   uint     `json:"orderId" gorm:"index;not null"`
	ProductID uint     `json:"productId" gorm:"not null"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int      `json:"quantity" gorm:"not null"`
	UnitPrice float64  `json:"unitPrice" gorm:"not null"`
}
