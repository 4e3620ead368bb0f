package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockDirection enum constants
const (
	StockIn  = "IN"
	StockOut = "OUT"
)

// InventoryItem is a stocked material tracked per site store
type InventoryItem struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Code           string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Unit           string         `gorm:"type:varchar(20)" json:"unit"`
	QuantityOnHand int            `gorm:"type:int;default:0;not null" json:"quantity_on_hand"`
	ReorderLevel   int            `gorm:"type:int;default:0" json:"reorder_level"`
	ProjectID      *uuid.UUID     `gorm:"type:uuid;index" json:"project_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (i *InventoryItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// StockLog records stock changes strictly; written in the same transaction
// as the quantity update on the item row.
type StockLog struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ItemID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"item_id"`
	OrderID         *uuid.UUID `gorm:"type:uuid;index" json:"order_id"` // Nullable for manual adjustments
	Direction       string     `gorm:"type:varchar(10);not null" json:"direction"` // IN, OUT
	QuantityChanged int        `gorm:"type:int;not null" json:"quantity_changed"`
	QuantityAfter   int        `gorm:"type:int;not null" json:"quantity_after"`
	AdjustedBy      *uuid.UUID `gorm:"type:uuid" json:"adjusted_by"`
	Reason          string     `gorm:"type:text" json:"reason"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (l *StockLog) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
