package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryItem quantity is clamped to be non-negative on every deduction.
type InventoryItem struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name      string  `gorm:"not null" json:"name"`
	Quantity  float64 `gorm:"not null;default:0" json:"quantity"`
	Unit      string  `json:"unit"`
	Threshold float64 `gorm:"default:0" json:"threshold"`
	Price     float64 `gorm:"type:decimal(10,2);default:0" json:"price"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (InventoryItem) TableName() string {
	return "inventory"
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
