package model

import (
	"time"
)

// TransactionType tags a stock-affecting event
type TransactionType string

const (
	TransactionReceive TransactionType = "RECEIVE"
	TransactionSell    TransactionType = "SELL"
	TransactionAdjust  TransactionType = "ADJUST"
)

// Valid reports whether t is a known transaction type
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionReceive, TransactionSell, TransactionAdjust:
		return true
	}
	return false
}

// Delta maps the unsigned transaction quantity to its signed stock effect
func (t TransactionType) Delta(quantity int) int {
	if t == TransactionSell {
		return -quantity
	}
	return quantity
}

// Inventory holds the current stock quantity for one product.
// quantity must always equal the net of all committed transactions
// applied since row creation and must never go negative.
type Inventory struct {
	ID            uint               `json:"id" gorm:"primarykey"`
	ProductID     uint               `json:"productId" gorm:"uniqueIndex;not null"`
	Product       *Product           `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity      int                `json:"quantity" gorm:"not null;default:0"`
	LocationID    *uint              `json:"locationId"`
	Location      *WarehouseLocation `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	MinStockLevel int                `json:"minStockLevel" gorm:"not null;default:0"`
	MaxStockLevel *int               `json:"maxStockLevel"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// InventoryTransaction is an immutable audit record of one stock-affecting
// event. Rows are only ever appended; reversals are recorded as new
// ADJUST rows rather than edits to history.
type InventoryTransaction struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	InventoryID uint            `json:"inventoryId" gorm:"index;not null"`
	Inventory   *Inventory      `json:"inventory,omitempty" gorm:"foreignKey:InventoryID"`
	Type        TransactionType `json:"type" gorm:"type:varchar(20);not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	Description string          `json:"description" gorm:"type:text"`
	CreatedAt   time.Time       `json:"createdAt"`
}
