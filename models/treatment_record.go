package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TreatmentRecord is an immutable log entry. There is no update operation.
type TreatmentRecord struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	CustomerID    uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	TreatmentName string    `gorm:"not null" json:"treatmentName"`
	Details       string    `json:"details"`
	StaffName     string    `json:"staffName"`
	UnitsUsed     int       `json:"unitsUsed"`
	StaffFee      *float64  `gorm:"type:decimal(10,2)" json:"staffFee"`

	CreatedAt time.Time `json:"createdAt"`
}

func (r *TreatmentRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
