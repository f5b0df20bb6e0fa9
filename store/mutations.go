package store

import (
	"context"
	"log"

	"clinicpro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// refreshAfterWrite re-fetches the whole snapshot once a mutation has been
// persisted. A failed refresh only goes stale, it does not undo the write.
func (s *Store) refreshAfterWrite(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		log.Printf("store: refresh after write: %v", err)
	}
}

func (s *Store) create(ctx context.Context, value interface{}) error {
	if err := s.db.WithContext(ctx).Create(value).Error; err != nil {
		return err
	}
	s.refreshAfterWrite(ctx)
	return nil
}

// update writes only the columns present in fields, leaving every other
// column of the row untouched.
func (s *Store) update(ctx context.Context, model interface{}, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	s.refreshAfterWrite(ctx)
	return nil
}

func (s *Store) delete(ctx context.Context, model interface{}, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	s.refreshAfterWrite(ctx)
	return nil
}

func (s *Store) CreateCustomer(ctx context.Context, c *models.Customer) error {
	return s.create(ctx, c)
}

func (s *Store) UpdateCustomer(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return s.update(ctx, &models.Customer{}, id, fields)
}

func (s *Store) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return s.delete(ctx, &models.Customer{}, id)
}

func (s *Store) CreateService(ctx context.Context, sv *models.Service) error {
	return s.create(ctx, sv)
}

func (s *Store) UpdateService(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return s.update(ctx, &models.Service{}, id, fields)
}

func (s *Store) DeleteService(ctx context.Context, id uuid.UUID) error {
	return s.delete(ctx, &models.Service{}, id)
}

func (s *Store) CreateCourse(ctx context.Context, d *models.CourseDefinition) error {
	return s.create(ctx, d)
}

func (s *Store) UpdateCourse(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return s.update(ctx, &models.CourseDefinition{}, id, fields)
}

func (s *Store) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	return s.delete(ctx, &models.CourseDefinition{}, id)
}

func (s *Store) CreateInventoryItem(ctx context.Context, it *models.InventoryItem) error {
	return s.create(ctx, it)
}

func (s *Store) UpdateInventoryItem(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return s.update(ctx, &models.InventoryItem{}, id, fields)
}

func (s *Store) DeleteInventoryItem(ctx context.Context, id uuid.UUID) error {
	return s.delete(ctx, &models.InventoryItem{}, id)
}

func (s *Store) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	return s.create(ctx, a)
}

func (s *Store) UpdateAppointment(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return s.update(ctx, &models.Appointment{}, id, fields)
}

func (s *Store) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return s.delete(ctx, &models.Appointment{}, id)
}

func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return s.delete(ctx, &models.Transaction{}, id)
}
