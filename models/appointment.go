package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment statuses. Any status may be set to any other via update;
// transitions are not validated.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no_show"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	ServiceID  uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`
	Date       string    `gorm:"not null" json:"date"` // YYYY-MM-DD
	Time       string    `gorm:"not null" json:"time"` // HH:MM
	Status     string    `gorm:"default:'scheduled'" json:"status"`
	StaffName  string    `json:"staffName"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
