package store

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"clinicpro-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ErrSchemaMissing is returned by Refresh when one of the tables does not
// exist yet. The flag stays set until a later refresh succeeds, so the
// API can keep reporting a "setup required" state.
var ErrSchemaMissing = errors.New("database schema missing, run scripts/schema.sql")

// Snapshot is the complete in-memory copy of every collection as of the
// last refresh. Collections are always replaced wholesale, never patched.
type Snapshot struct {
	Customers        []models.Customer
	Services         []models.Service
	Courses          []models.CourseDefinition
	Inventory        []models.InventoryItem
	CustomerCourses  []models.CourseInstance
	TreatmentRecords []models.TreatmentRecord
	Transactions     []models.Transaction
	Appointments     []models.Appointment
}

// Store holds the last-fetched snapshot of the whole database and re-fetches
// it after every mutation. The mutex only guards the snapshot swap; mutation
// flows are not serialized against each other.
type Store struct {
	db *gorm.DB

	mu            sync.RWMutex
	snap          Snapshot
	schemaMissing bool
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Refresh reads all eight tables concurrently and swaps the snapshot in one
// piece. A relation-missing error on any table clears every collection and
// sets the schema-missing flag; any other error leaves the previous snapshot
// alone.
func (s *Store) Refresh(ctx context.Context) error {
	var next Snapshot

	g, gctx := errgroup.WithContext(ctx)
	read := func(dest interface{}, order string) func() error {
		return func() error {
			if err := s.db.WithContext(gctx).Order(order).Find(dest).Error; err != nil {
				if relationMissing(err) {
					return ErrSchemaMissing
				}
				return err
			}
			return nil
		}
	}

	g.Go(read(&next.Customers, "name"))
	g.Go(read(&next.Services, "name"))
	g.Go(read(&next.Courses, "name"))
	g.Go(read(&next.Inventory, "name"))
	g.Go(read(&next.CustomerCourses, "purchased_at desc"))
	g.Go(read(&next.TreatmentRecords, "created_at desc"))
	g.Go(read(&next.Transactions, "created_at desc"))
	g.Go(read(&next.Appointments, "date desc, time desc"))

	if err := g.Wait(); err != nil {
		// Wait hands back whichever read failed first; a sibling's raw
		// relation error can beat the mapped one, so check both.
		if errors.Is(err, ErrSchemaMissing) || relationMissing(err) {
			s.mu.Lock()
			s.snap = Snapshot{}
			s.schemaMissing = true
			s.mu.Unlock()
			log.Printf("store: refresh aborted, schema missing")
			return ErrSchemaMissing
		}
		log.Printf("store: refresh failed: %v", err)
		return err
	}

	attachCustomerRelations(&next)

	s.mu.Lock()
	s.snap = next
	s.schemaMissing = false
	s.mu.Unlock()
	return nil
}

// attachCustomerRelations nests each customer's active course instances and
// treatment history by filtering the full child sets on the customer id.
func attachCustomerRelations(snap *Snapshot) {
	for i := range snap.Customers {
		id := snap.Customers[i].ID
		// Non-nil even when empty, so the JSON shape is always an array.
		courses := []models.CourseInstance{}
		for _, ci := range snap.CustomerCourses {
			if ci.CustomerID == id && ci.Active {
				courses = append(courses, ci)
			}
		}
		history := []models.TreatmentRecord{}
		for _, tr := range snap.TreatmentRecords {
			if tr.CustomerID == id {
				history = append(history, tr)
			}
		}
		snap.Customers[i].ActiveCourses = courses
		snap.Customers[i].History = history
	}
}

// Snapshot returns the current snapshot. Collections are replaced wholesale
// on refresh and never mutated in place, so sharing the slice headers is
// safe for readers.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *Store) SchemaMissing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schemaMissing
}

// Lookups resolve against the in-memory snapshot by linear search; callers
// treat a miss as a no-op, not an error.

func (s *Store) Customer(id uuid.UUID) (models.Customer, bool) {
	for _, c := range s.Snapshot().Customers {
		if c.ID == id {
			return c, true
		}
	}
	return models.Customer{}, false
}

func (s *Store) Service(id uuid.UUID) (models.Service, bool) {
	for _, sv := range s.Snapshot().Services {
		if sv.ID == id {
			return sv, true
		}
	}
	return models.Service{}, false
}

func (s *Store) CourseDefinition(id uuid.UUID) (models.CourseDefinition, bool) {
	for _, d := range s.Snapshot().Courses {
		if d.ID == id {
			return d, true
		}
	}
	return models.CourseDefinition{}, false
}

func (s *Store) CourseInstance(id uuid.UUID) (models.CourseInstance, bool) {
	for _, ci := range s.Snapshot().CustomerCourses {
		if ci.ID == id {
			return ci, true
		}
	}
	return models.CourseInstance{}, false
}

func (s *Store) InventoryItem(id uuid.UUID) (models.InventoryItem, bool) {
	for _, it := range s.Snapshot().Inventory {
		if it.ID == id {
			return it, true
		}
	}
	return models.InventoryItem{}, false
}

// relationMissing reports whether err is the store's relation-not-found
// signal: Postgres undefined_table (42P01), or a driver message about a
// missing relation/table.
func relationMissing(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "42P01" {
		return true
	}
	msg := err.Error()
	if strings.Contains(msg, "does not exist") && strings.Contains(msg, "relation") {
		return true
	}
	return strings.Contains(msg, "no such table")
}
