package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name        string         `gorm:"not null" json:"name"`
	Price       float64        `gorm:"type:decimal(10,2);not null" json:"price"`
	Duration    int            `json:"duration"` // in minutes
	Category    string         `gorm:"default:'General'" json:"category"`
	Consumables ConsumableList `gorm:"type:jsonb" json:"consumables"`
	ImageURL    string         `json:"imageUrl"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
