package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseInstance is one customer's purchase of a course definition.
// Invariant, enforced at redemption time: 0 <= RemainingUnits <= TotalUnits
// and Active == (RemainingUnits > 0).
type CourseInstance struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	CourseID   uuid.UUID `gorm:"type:uuid;index;not null" json:"courseId"`
	CourseName string    `json:"courseName"`

	TotalUnits     int        `gorm:"not null" json:"totalUnits"`
	RemainingUnits int        `gorm:"not null" json:"remainingUnits"`
	PurchasedAt    time.Time  `json:"purchasedAt"`
	ExpiresAt      *time.Time `json:"expiresAt"`
	Active         bool       `json:"active"`
}

func (CourseInstance) TableName() string {
	return "customer_courses"
}

func (i *CourseInstance) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
