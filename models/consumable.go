package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// ConsumableUsage declares how much of an inventory item one redeemed unit
// of a service or course consumes.
type ConsumableUsage struct {
	InventoryItemID uuid.UUID `json:"inventoryItemId"`
	Quantity        float64   `json:"quantity"`
}

// ConsumableList is stored as a jsonb column.
type ConsumableList []ConsumableUsage

func (l ConsumableList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(ConsumableList{})
	}
	return json.Marshal(l)
}

func (l *ConsumableList) Scan(value interface{}) error {
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
	return errors.New("unsupported source type for ConsumableList")
}
