package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseDefinition is a purchasable bundle of redeemable treatment units.
type CourseDefinition struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name        string         `gorm:"not null" json:"name"`
	Price       float64        `gorm:"type:decimal(10,2);not null" json:"price"`
	TotalUnits  int            `gorm:"not null" json:"totalUnits"`
	Description string         `json:"description"`
	Consumables ConsumableList `gorm:"type:jsonb" json:"consumables"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (CourseDefinition) TableName() string {
	return "courses"
}

func (d *CourseDefinition) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}
