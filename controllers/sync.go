// controllers/sync.go
package controllers

import (
	"errors"
	"net/http"

	"clinicpro-backend/store"
	"clinicpro-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetStatus reports whether the database schema has been set up and how much
// data the current snapshot holds
func GetStatus(c *gin.Context) {
	snap := Data.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"schemaMissing":    Data.SchemaMissing(),
		"customers":        len(snap.Customers),
		"services":         len(snap.Services),
		"courses":          len(snap.Courses),
		"inventory":        len(snap.Inventory),
		"customerCourses":  len(snap.CustomerCourses),
		"treatmentRecords": len(snap.TreatmentRecords),
		"transactions":     len(snap.Transactions),
		"appointments":     len(snap.Appointments),
	})
}

// RefreshSnapshot re-fetches every collection from the database
func RefreshSnapshot(c *gin.Context) {
	if err := Data.Refresh(c.Request.Context()); err != nil {
		if errors.Is(err, store.ErrSchemaMissing) {
			utils.RespondWithError(c, http.StatusServiceUnavailable, "Database setup required: "+err.Error())
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to refresh data")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Snapshot refreshed"})
}

// ExportData renders the customers, inventory, services and courses
// collections as a SQL insert script
func ExportData(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="clinicpro-export.sql"`)
	c.String(http.StatusOK, Data.ExportScript())
}
