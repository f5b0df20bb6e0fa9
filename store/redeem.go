package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinicpro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// redeemRetries bounds the compare-and-swap loop on the unit balance.
const redeemRetries = 3

// ErrRedeemContention is returned when the unit balance keeps changing under
// concurrent redemptions and the retries run out.
var ErrRedeemContention = errors.New("course instance is being redeemed concurrently, try again")

type RedeemInput struct {
	CustomerID       uuid.UUID
	CourseInstanceID uuid.UUID
	Units            int
	TreatmentName    string
	Details          string
	StaffName        string
	StaffFee         *float64
}

// RedeemCourse consumes units from a customer's course instance, logs a
// treatment record and deducts the course's declared consumables from
// inventory, all in one database transaction.
//
// Both the customer and the instance are resolved from the in-memory
// snapshot first; if either is absent the call is a silent no-op. The unit
// decrement is a conditional update on the previously observed balance, so
// two concurrent redemptions cannot both consume the same units. The
// remaining balance never goes below zero and the active flag always tracks
// remaining > 0. Expiry dates are not checked here.
func (s *Store) RedeemCourse(ctx context.Context, in RedeemInput) error {
	if _, ok := s.Customer(in.CustomerID); !ok {
		return nil
	}
	instance, ok := s.CourseInstance(in.CourseInstanceID)
	if !ok {
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		remaining := instance.RemainingUnits
		for attempt := 0; ; attempt++ {
			newRemaining := remaining - in.Units
			if newRemaining < 0 {
				newRemaining = 0
			}
			res := tx.Model(&models.CourseInstance{}).
				Where("id = ? AND remaining_units = ?", instance.ID, remaining).
				Updates(map[string]interface{}{
					"remaining_units": newRemaining,
					"active":          newRemaining > 0,
				})
			if res.Error != nil {
				return fmt.Errorf("update course instance: %w", res.Error)
			}
			if res.RowsAffected > 0 {
				break
			}
			if attempt >= redeemRetries {
				return ErrRedeemContention
			}

			// Lost the race, re-read the current balance and try again.
			var current models.CourseInstance
			if err := tx.First(&current, "id = ?", instance.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil
				}
				return err
			}
			remaining = current.RemainingUnits
		}

		record := models.TreatmentRecord{
			ID:            uuid.New(),
			CustomerID:    in.CustomerID,
			TreatmentName: in.TreatmentName,
			Details:       in.Details,
			StaffName:     in.StaffName,
			UnitsUsed:     in.Units,
			StaffFee:      in.StaffFee,
			CreatedAt:     time.Now(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("create treatment record: %w", err)
		}

		if def, ok := s.CourseDefinition(instance.CourseID); ok {
			for _, c := range def.Consumables {
				if err := deductInventory(tx, c.InventoryItemID, c.Quantity*float64(in.Units)); err != nil {
					return fmt.Errorf("deduct inventory %s: %w", c.InventoryItemID, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.refreshAfterWrite(ctx)
	return nil
}

// deductInventory subtracts amount from the item's quantity, clamping the
// result at zero. A consumable pointing at a missing item is skipped.
func deductInventory(tx *gorm.DB, itemID uuid.UUID, amount float64) error {
	res := tx.Model(&models.InventoryItem{}).
		Where("id = ? AND quantity >= ?", itemID, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Less on hand than requested, drain to zero.
		return tx.Model(&models.InventoryItem{}).
			Where("id = ?", itemID).
			Update("quantity", 0).Error
	}
	return nil
}
