package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LineItemService = "service"
	LineItemCourse  = "course"
)

// TransactionItem is one checkout line. The whole list is serialized onto
// the transaction row as jsonb rather than a child table.
type TransactionItem struct {
	Kind      string    `json:"kind"` // service or course
	ItemID    uuid.UUID `json:"itemId"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unitPrice"`
	Quantity  int       `json:"quantity"`
}

type TransactionItems []TransactionItem

func (l TransactionItems) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(TransactionItems{})
	}
	return json.Marshal(l)
}

func (l *TransactionItems) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("unsupported source type for TransactionItems")
}

type Transaction struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	CustomerID    uuid.UUID        `gorm:"type:uuid;index;not null" json:"customerId"`
	TotalAmount   float64          `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	PaymentMethod string           `json:"paymentMethod"`
	Items         TransactionItems `gorm:"type:jsonb" json:"items"`

	CreatedAt time.Time `json:"createdAt"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
