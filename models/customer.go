package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name          string     `gorm:"not null" json:"name"`
	Phone         string     `gorm:"not null" json:"phone"`
	Email         string     `json:"email"`
	BirthDate     *time.Time `json:"birthDate"`
	Notes         string     `json:"notes"`
	LineContactID string     `json:"lineContactId"`
	Address       string     `json:"address"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Recomputed from customer_courses / treatment_records on every refresh,
	// never persisted with the customer row.
	ActiveCourses []CourseInstance  `gorm:"-" json:"activeCourses"`
	History       []TreatmentRecord `gorm:"-" json:"history"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
