package store

import (
	"context"
	"testing"
	"time"

	"clinicpro-backend/models"

	"github.com/google/uuid"
)

// redeemFixture seeds a customer holding a 10-unit course with 5 units left,
// whose definition consumes 2 units of one inventory item per redeemed unit.
type redeemFixture struct {
	customer models.Customer
	item     models.InventoryItem
	course   models.CourseDefinition
	instance models.CourseInstance
}

func seedRedeem(t *testing.T, s *Store) redeemFixture {
	t.Helper()
	db := s.db

	f := redeemFixture{
		customer: models.Customer{Name: "Alice", Phone: "+66811111111"},
		item:     models.InventoryItem{Name: "Serum", Quantity: 10, Unit: "ml"},
	}
	if err := db.Create(&f.customer).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&f.item).Error; err != nil {
		t.Fatal(err)
	}

	f.course = models.CourseDefinition{
		Name: "Facial Course", Price: 5000, TotalUnits: 10,
		Consumables: models.ConsumableList{{InventoryItemID: f.item.ID, Quantity: 2}},
	}
	if err := db.Create(&f.course).Error; err != nil {
		t.Fatal(err)
	}

	f.instance = models.CourseInstance{
		CustomerID: f.customer.ID, CourseID: f.course.ID, CourseName: f.course.Name,
		TotalUnits: 10, RemainingUnits: 5, PurchasedAt: time.Now(), Active: true,
	}
	if err := db.Create(&f.instance).Error; err != nil {
		t.Fatal(err)
	}

	mustRefresh(t, s)
	return f
}

func TestRedeemConsumesUnitsAndLogsTreatment(t *testing.T) {
	s, db := newTestStore(t)
	f := seedRedeem(t, s)

	fee := 300.0
	err := s.RedeemCourse(context.Background(), RedeemInput{
		CustomerID:       f.customer.ID,
		CourseInstanceID: f.instance.ID,
		Units:            2,
		TreatmentName:    "Facial",
		Details:          "session 6 and 7",
		StaffName:        "May",
		StaffFee:         &fee,
	})
	if err != nil {
		t.Fatalf("RedeemCourse: %v", err)
	}

	instance, ok := s.CourseInstance(f.instance.ID)
	if !ok {
		t.Fatal("instance missing from snapshot")
	}
	if instance.RemainingUnits != 3 {
		t.Errorf("RemainingUnits = %d, want 3", instance.RemainingUnits)
	}
	if !instance.Active {
		t.Error("Active = false with units remaining")
	}

	var records []models.TreatmentRecord
	if err := db.Find(&records).Error; err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("treatment records = %d, want 1", len(records))
	}
	r := records[0]
	if r.CustomerID != f.customer.ID || r.TreatmentName != "Facial" || r.UnitsUsed != 2 || r.StaffName != "May" {
		t.Errorf("record = %+v", r)
	}
	if r.StaffFee == nil || *r.StaffFee != 300 {
		t.Errorf("StaffFee = %v, want 300", r.StaffFee)
	}

	item, _ := s.InventoryItem(f.item.ID)
	if item.Quantity != 6 { // 10 - 2 units * 2 per unit
		t.Errorf("inventory quantity = %v, want 6", item.Quantity)
	}
}

func TestRedeemClampsAtZeroAndDeactivates(t *testing.T) {
	s, _ := newTestStore(t)
	f := seedRedeem(t, s)

	// Ask for more than the 5 remaining units.
	err := s.RedeemCourse(context.Background(), RedeemInput{
		CustomerID:       f.customer.ID,
		CourseInstanceID: f.instance.ID,
		Units:            8,
		TreatmentName:    "Facial",
		StaffName:        "May",
	})
	if err != nil {
		t.Fatalf("RedeemCourse: %v", err)
	}

	instance, _ := s.CourseInstance(f.instance.ID)
	if instance.RemainingUnits != 0 {
		t.Errorf("RemainingUnits = %d, want clamped 0", instance.RemainingUnits)
	}
	if instance.Active {
		t.Error("Active = true with zero units remaining")
	}

	// 8 units * 2 per unit = 16 requested against 10 on hand: drained, not negative.
	item, _ := s.InventoryItem(f.item.ID)
	if item.Quantity != 0 {
		t.Errorf("inventory quantity = %v, want clamped 0", item.Quantity)
	}
}

func TestRedeemUnknownInstanceIsSilentNoOp(t *testing.T) {
	s, db := newTestStore(t)
	f := seedRedeem(t, s)

	err := s.RedeemCourse(context.Background(), RedeemInput{
		CustomerID:       f.customer.ID,
		CourseInstanceID: uuid.New(),
		Units:            1,
		TreatmentName:    "Facial",
	})
	if err != nil {
		t.Fatalf("RedeemCourse = %v, want silent nil", err)
	}

	var count int64
	if err := db.Model(&models.TreatmentRecord{}).Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("treatment records = %d after no-op, want 0", count)
	}

	instance, _ := s.CourseInstance(f.instance.ID)
	if instance.RemainingUnits != 5 {
		t.Errorf("RemainingUnits = %d, want untouched 5", instance.RemainingUnits)
	}
}

func TestRedeemUnknownCustomerIsSilentNoOp(t *testing.T) {
	s, db := newTestStore(t)
	f := seedRedeem(t, s)

	err := s.RedeemCourse(context.Background(), RedeemInput{
		CustomerID:       uuid.New(),
		CourseInstanceID: f.instance.ID,
		Units:            1,
		TreatmentName:    "Facial",
	})
	if err != nil {
		t.Fatalf("RedeemCourse = %v, want silent nil", err)
	}

	var count int64
	if err := db.Model(&models.TreatmentRecord{}).Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("treatment records = %d after no-op, want 0", count)
	}
}

func TestRedeemRetriesOnStaleBalance(t *testing.T) {
	s, db := newTestStore(t)
	f := seedRedeem(t, s)

	// Another session already consumed a unit; this store's snapshot still
	// says 5 remaining, so the first conditional update misses.
	err := db.Model(&models.CourseInstance{}).
		Where("id = ?", f.instance.ID).
		Update("remaining_units", 4).Error
	if err != nil {
		t.Fatal(err)
	}

	if err := s.RedeemCourse(context.Background(), RedeemInput{
		CustomerID:       f.customer.ID,
		CourseInstanceID: f.instance.ID,
		Units:            2,
		TreatmentName:    "Facial",
		StaffName:        "May",
	}); err != nil {
		t.Fatalf("RedeemCourse: %v", err)
	}

	instance, _ := s.CourseInstance(f.instance.ID)
	if instance.RemainingUnits != 2 { // 4 - 2, not 5 - 2
		t.Errorf("RemainingUnits = %d, want 2 from the re-read balance", instance.RemainingUnits)
	}
	if !instance.Active {
		t.Error("Active = false with units remaining")
	}
}
