package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"clinicpro-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// testDB opens a named in-memory database shared across the pool, so the
// concurrent refresh reads all see the same data.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	return db
}

func migrateAll(t *testing.T, db *gorm.DB) {
	t.Helper()
	err := db.AutoMigrate(
		&models.Customer{},
		&models.Service{},
		&models.CourseDefinition{},
		&models.InventoryItem{},
		&models.CourseInstance{},
		&models.TreatmentRecord{},
		&models.Transaction{},
		&models.Appointment{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	db := testDB(t)
	migrateAll(t, db)
	return New(db), db
}

func mustRefresh(t *testing.T, s *Store) {
	t.Helper()
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
}

func TestRefreshPopulatesAndOrders(t *testing.T) {
	s, db := newTestStore(t)

	for _, name := range []string{"Chalida", "Anong", "Busaba"} {
		c := models.Customer{Name: name, Phone: "+6680000000" + name[:1]}
		if err := db.Create(&c).Error; err != nil {
			t.Fatalf("create customer: %v", err)
		}
	}

	mustRefresh(t, s)

	snap := s.Snapshot()
	if len(snap.Customers) != 3 {
		t.Fatalf("customers = %d, want 3", len(snap.Customers))
	}
	got := []string{snap.Customers[0].Name, snap.Customers[1].Name, snap.Customers[2].Name}
	want := []string{"Anong", "Busaba", "Chalida"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("customers[%d].Name = %q, want %q", i, got[i], want[i])
		}
	}
	if s.SchemaMissing() {
		t.Error("SchemaMissing = true after successful refresh")
	}
}

func TestRefreshDenormalizesCustomerRelations(t *testing.T) {
	s, db := newTestStore(t)

	alice := models.Customer{Name: "Alice", Phone: "+66811111111"}
	bob := models.Customer{Name: "Bob", Phone: "+66822222222"}
	if err := db.Create(&alice).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&bob).Error; err != nil {
		t.Fatal(err)
	}

	active := models.CourseInstance{
		CustomerID: alice.ID, CourseID: uuid.New(), CourseName: "Facial Course",
		TotalUnits: 10, RemainingUnits: 4, PurchasedAt: time.Now(), Active: true,
	}
	spent := models.CourseInstance{
		CustomerID: alice.ID, CourseID: uuid.New(), CourseName: "Laser Course",
		TotalUnits: 5, RemainingUnits: 0, PurchasedAt: time.Now(), Active: false,
	}
	if err := db.Create(&active).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&spent).Error; err != nil {
		t.Fatal(err)
	}

	record := models.TreatmentRecord{
		CustomerID: alice.ID, TreatmentName: "Facial", StaffName: "May", UnitsUsed: 1,
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatal(err)
	}

	mustRefresh(t, s)

	got, ok := s.Customer(alice.ID)
	if !ok {
		t.Fatal("alice missing from snapshot")
	}
	if len(got.ActiveCourses) != 1 {
		t.Fatalf("ActiveCourses = %d, want 1 (only the active instance)", len(got.ActiveCourses))
	}
	if got.ActiveCourses[0].ID != active.ID {
		t.Errorf("ActiveCourses[0].ID = %s, want %s", got.ActiveCourses[0].ID, active.ID)
	}
	if len(got.History) != 1 || got.History[0].ID != record.ID {
		t.Errorf("History = %+v, want the one treatment record", got.History)
	}

	other, ok := s.Customer(bob.ID)
	if !ok {
		t.Fatal("bob missing from snapshot")
	}
	if len(other.ActiveCourses) != 0 || len(other.History) != 0 {
		t.Errorf("bob has relations %d/%d, want none", len(other.ActiveCourses), len(other.History))
	}
	// Empty relations serialize as arrays, never null.
	if other.ActiveCourses == nil || other.History == nil {
		t.Error("relations are nil, want empty slices")
	}
}

func TestRefreshFreshDatabaseReportsSchemaMissing(t *testing.T) {
	// No tables at all, as on a database that has never run scripts/schema.sql.
	// Which read fails first varies, so hammer it a few times.
	s := New(testDB(t))

	for i := 0; i < 25; i++ {
		if err := s.Refresh(context.Background()); err != ErrSchemaMissing {
			t.Fatalf("Refresh #%d = %v, want ErrSchemaMissing", i, err)
		}
		if !s.SchemaMissing() {
			t.Fatalf("SchemaMissing = false on refresh #%d", i)
		}
	}

	snap := s.Snapshot()
	if len(snap.Customers) != 0 || len(snap.Appointments) != 0 {
		t.Errorf("collections not empty: %d customers, %d appointments", len(snap.Customers), len(snap.Appointments))
	}
}

func TestRefreshAnyMissingTableReportsSchemaMissing(t *testing.T) {
	s, db := newTestStore(t)

	c := models.Customer{Name: "Alice", Phone: "+66811111111"}
	if err := db.Create(&c).Error; err != nil {
		t.Fatal(err)
	}
	mustRefresh(t, s)

	// Losing any table counts, not just the four exported ones.
	if err := db.Migrator().DropTable(&models.Appointment{}); err != nil {
		t.Fatal(err)
	}

	if err := s.Refresh(context.Background()); err != ErrSchemaMissing {
		t.Fatalf("Refresh = %v, want ErrSchemaMissing", err)
	}
	if !s.SchemaMissing() {
		t.Error("SchemaMissing = false after losing the appointments table")
	}
	if len(s.Snapshot().Customers) != 0 {
		t.Errorf("customers = %d, want cleared", len(s.Snapshot().Customers))
	}
}

func TestRefreshSchemaMissingClearsEverything(t *testing.T) {
	s, db := newTestStore(t)

	c := models.Customer{Name: "Alice", Phone: "+66811111111"}
	if err := db.Create(&c).Error; err != nil {
		t.Fatal(err)
	}
	sv := models.Service{Name: "Facial", Price: 1200}
	if err := db.Create(&sv).Error; err != nil {
		t.Fatal(err)
	}
	mustRefresh(t, s)

	if err := db.Migrator().DropTable(&models.Customer{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	err := s.Refresh(context.Background())
	if err != ErrSchemaMissing {
		t.Fatalf("Refresh = %v, want ErrSchemaMissing", err)
	}
	if !s.SchemaMissing() {
		t.Error("SchemaMissing = false after relation-missing refresh")
	}

	snap := s.Snapshot()
	if len(snap.Customers) != 0 || len(snap.Services) != 0 {
		t.Errorf("collections not cleared: %d customers, %d services", len(snap.Customers), len(snap.Services))
	}

	// Restoring the table recovers the flag on the next refresh.
	if err := db.AutoMigrate(&models.Customer{}); err != nil {
		t.Fatal(err)
	}
	mustRefresh(t, s)
	if s.SchemaMissing() {
		t.Error("SchemaMissing still set after successful refresh")
	}
	if len(s.Snapshot().Services) != 1 {
		t.Errorf("services = %d after recovery, want 1", len(s.Snapshot().Services))
	}
}

func TestRefreshOtherErrorKeepsPreviousSnapshot(t *testing.T) {
	s, db := newTestStore(t)

	c := models.Customer{Name: "Alice", Phone: "+66811111111"}
	if err := db.Create(&c).Error; err != nil {
		t.Fatal(err)
	}
	mustRefresh(t, s)

	// A connection-level failure is not the schema-missing condition and the
	// old snapshot survives.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatal(err)
	}

	if err := s.Refresh(context.Background()); err == nil {
		t.Fatal("Refresh = nil, want error")
	} else if err == ErrSchemaMissing {
		t.Fatal("Refresh = ErrSchemaMissing for a connection failure")
	}
	if s.SchemaMissing() {
		t.Error("SchemaMissing set by a connection failure")
	}
	if len(s.Snapshot().Customers) != 1 {
		t.Errorf("previous snapshot not kept: %d customers", len(s.Snapshot().Customers))
	}
}

func TestSparseUpdateLeavesOtherFieldsUntouched(t *testing.T) {
	s, db := newTestStore(t)

	birth := time.Date(1990, 5, 4, 0, 0, 0, 0, time.UTC)
	c := models.Customer{
		Name: "Alice", Phone: "+66811111111", Email: "alice@example.com",
		BirthDate: &birth, Notes: "allergic to latex", Address: "12 Sukhumvit Rd",
	}
	if err := db.Create(&c).Error; err != nil {
		t.Fatal(err)
	}
	mustRefresh(t, s)

	err := s.UpdateCustomer(context.Background(), c.ID, map[string]interface{}{
		"phone": "+66899999999",
	})
	if err != nil {
		t.Fatalf("UpdateCustomer: %v", err)
	}

	var row models.Customer
	if err := db.First(&row, "id = ?", c.ID).Error; err != nil {
		t.Fatal(err)
	}
	if row.Phone != "+66899999999" {
		t.Errorf("Phone = %q, want updated value", row.Phone)
	}
	if row.Name != "Alice" || row.Email != "alice@example.com" || row.Notes != "allergic to latex" || row.Address != "12 Sukhumvit Rd" {
		t.Errorf("other fields changed: %+v", row)
	}

	// The snapshot was re-fetched as part of the mutation.
	got, _ := s.Customer(c.ID)
	if got.Phone != "+66899999999" {
		t.Errorf("snapshot Phone = %q, want refreshed value", got.Phone)
	}
}

func TestUpdateMissingRowReturnsNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	mustRefresh(t, s)

	err := s.UpdateCustomer(context.Background(), uuid.New(), map[string]interface{}{"name": "nobody"})
	if err != gorm.ErrRecordNotFound {
		t.Fatalf("UpdateCustomer = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestDeleteRefreshesSnapshot(t *testing.T) {
	s, db := newTestStore(t)

	sv := models.Service{Name: "Facial", Price: 1200}
	if err := db.Create(&sv).Error; err != nil {
		t.Fatal(err)
	}
	mustRefresh(t, s)
	if len(s.Snapshot().Services) != 1 {
		t.Fatalf("services = %d, want 1", len(s.Snapshot().Services))
	}

	if err := s.DeleteService(context.Background(), sv.ID); err != nil {
		t.Fatalf("DeleteService: %v", err)
	}
	if len(s.Snapshot().Services) != 0 {
		t.Errorf("services = %d after delete, want 0", len(s.Snapshot().Services))
	}
}
