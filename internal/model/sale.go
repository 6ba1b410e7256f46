package model

import (
	"time"
)

// Sale represents one completed outbound sale. Creating, editing and
// deleting a sale are the triggers for stock depletion and restoration.
type Sale struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	SaleNumber  string     `json:"saleNumber" gorm:"type:varchar(50);unique;not null"`
	CustomerID  *uint      `json:"customerId"`
	Customer    *Customer  `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	UserID      uint       `json:"userId" gorm:"not null"`
	User        *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	TotalAmount float64    `json:"totalAmount" gorm:"not null"`
	SaleDate    time.Time  `json:"saleDate" gorm:"autoCreateTime"`
	SaleItems   []SaleItem `json:"saleItems,omitempty" gorm:"foreignKey:SaleID"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// SaleItem is one product line of a sale
type SaleItem struct {
	ID        uint     `json:"id" gorm:"primarykey"`
	SaleID    uint     `json:"saleId" gorm:"index;not null"`
	ProductID uint     `json:"productId" gorm:"not null"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int      `json:"quantity" gorm:"not null"`
	UnitPrice float64  `json:"unitPrice" gorm:"not null"`
}
