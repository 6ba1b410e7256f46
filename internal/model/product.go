package model

import (
	"time"
)

// Product represents the product master data
type Product struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	SKU         string     `json:"sku" gorm:"type:varchar(100);unique;not null"`
	Name        string     `json:"name" gorm:"type:varchar(255);not null"`
	Description string     `json:"description" gorm:"type:text"`
	UnitPrice   float64    `json:"unitPrice" gorm:"not null"`
	CategoryID  *uint      `json:"categoryId"`
	Category    *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Inventory   *Inventory `json:"inventory,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Category represents product categories
type Category struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null;unique"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
