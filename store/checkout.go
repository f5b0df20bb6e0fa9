package store

import (
	"context"
	"fmt"
	"time"

	"clinicpro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Checkout records a point-of-sale transaction and, for every course line,
// opens quantity new course instances with a full unit balance. The
// transaction row and the instances are written in one database transaction
// so a failure leaves neither behind.
func (s *Store) Checkout(ctx context.Context, customerID uuid.UUID, items []models.TransactionItem, paymentMethod string) (*models.Transaction, error) {
	var total float64
	for _, it := range items {
		total += it.UnitPrice * float64(it.Quantity)
	}

	trx := models.Transaction{
		ID:            uuid.New(),
		CustomerID:    customerID,
		TotalAmount:   total,
		PaymentMethod: paymentMethod,
		Items:         items,
		CreatedAt:     time.Now(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&trx).Error; err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}

		now := time.Now()
		for _, it := range items {
			if it.Kind != models.LineItemCourse {
				continue
			}
			def, ok := s.CourseDefinition(it.ItemID)
			if !ok {
				return fmt.Errorf("unknown course %s", it.ItemID)
			}
			for i := 0; i < it.Quantity; i++ {
				instance := models.CourseInstance{
					ID:             uuid.New(),
					CustomerID:     customerID,
					CourseID:       def.ID,
					CourseName:     def.Name,
					TotalUnits:     def.TotalUnits,
					RemainingUnits: def.TotalUnits,
					PurchasedAt:    now,
					Active:         true,
				}
				if err := tx.Create(&instance).Error; err != nil {
					return fmt.Errorf("create course instance: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.refreshAfterWrite(ctx)
	return &trx, nil
}
