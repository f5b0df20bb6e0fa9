package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ExportScript renders the current snapshot of the customers, inventory,
// services and courses collections as a SQL insert script suitable for
// re-import elsewhere. It reads only the in-memory snapshot, nothing is
// re-queried.
func (s *Store) ExportScript() string {
	snap := s.Snapshot()
	var b strings.Builder

	b.WriteString("-- clinicpro data export\n")
	b.WriteString("-- generated " + time.Now().Format(time.RFC3339) + "\n")

	b.WriteString("\n-- customers\n")
	for _, c := range snap.Customers {
		writeInsert(&b, "customers",
			[]string{"id", "name", "phone", "email", "birth_date", "notes", "line_contact_id", "address"},
			[]string{
				quote(c.ID.String()),
				quote(c.Name),
				quote(c.Phone),
				quote(c.Email),
				quoteTimePtr(c.BirthDate),
				quote(c.Notes),
				quote(c.LineContactID),
				quote(c.Address),
			})
	}

	b.WriteString("\n-- inventory\n")
	for _, it := range snap.Inventory {
		writeInsert(&b, "inventory",
			[]string{"id", "name", "quantity", "unit", "threshold", "price"},
			[]string{
				quote(it.ID.String()),
				quote(it.Name),
				number(it.Quantity),
				quote(it.Unit),
				number(it.Threshold),
				number(it.Price),
			})
	}

	b.WriteString("\n-- services\n")
	for _, sv := range snap.Services {
		writeInsert(&b, "services",
			[]string{"id", "name", "price", "duration", "category", "consumables", "image_url"},
			[]string{
				quote(sv.ID.String()),
				quote(sv.Name),
				number(sv.Price),
				strconv.Itoa(sv.Duration),
				quote(sv.Category),
				quoteJSON(sv.Consumables),
				quote(sv.ImageURL),
			})
	}

	b.WriteString("\n-- courses\n")
	for _, d := range snap.Courses {
		writeInsert(&b, "courses",
			[]string{"id", "name", "price", "total_units", "description", "consumables"},
			[]string{
				quote(d.ID.String()),
				quote(d.Name),
				number(d.Price),
				strconv.Itoa(d.TotalUnits),
				quote(d.Description),
				quoteJSON(d.Consumables),
			})
	}

	return b.String()
}

func writeInsert(b *strings.Builder, table string, columns, values []string) {
	fmt.Fprintf(b, "INSERT INTO %s (%s) VALUES (%s);\n",
		table, strings.Join(columns, ", "), strings.Join(values, ", "))
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quoteTimePtr(t *time.Time) string {
	if t == nil {
		return "NULL"
	}
	return quote(t.Format("2006-01-02"))
}

func quoteJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil || string(data) == "null" {
		return quote("[]")
	}
	return quote(string(data))
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
