package controllers

import (
	"net/http"
	"time"

	"clinicpro-backend/models"
	"clinicpro-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	TotalCustomers     int                    `json:"totalCustomers"`
	MonthlyRevenue     float64                `json:"monthlyRevenue"`
	TotalTransactions  int                    `json:"totalTransactions"`
	TodaysAppointments []models.Appointment   `json:"todaysAppointments"`
	LowStockItems      []models.InventoryItem `json:"lowStockItems"`
	RecentTreatments   []RecentTreatment      `json:"recentTreatments"`
}

type RecentTreatment struct {
	CustomerName  string `json:"customerName"`
	TreatmentName string `json:"treatmentName"`
	When          string `json:"when"` // e.g. "Today", "3 days ago"
}

// GetDashboardOverview summarizes the current snapshot for the landing screen
func GetDashboardOverview(c *gin.Context) {
	snap := Data.Snapshot()
	now := time.Now()

	overview := DashboardOverview{
		TotalCustomers:    len(snap.Customers),
		TotalTransactions: len(snap.Transactions),
	}

	firstOfMonth := utils.BeginningOfMonth(now)
	for _, trx := range snap.Transactions {
		if !trx.CreatedAt.Before(firstOfMonth) {
			overview.MonthlyRevenue += trx.TotalAmount
		}
	}

	today := now.Format("2006-01-02")
	for _, a := range snap.Appointments {
		if a.Date == today && a.Status == models.AppointmentScheduled {
			overview.TodaysAppointments = append(overview.TodaysAppointments, a)
		}
	}

	for _, it := range snap.Inventory {
		if it.Quantity <= it.Threshold {
			overview.LowStockItems = append(overview.LowStockItems, it)
		}
	}

	names := make(map[string]string, len(snap.Customers))
	for _, cust := range snap.Customers {
		names[cust.ID.String()] = cust.Name
	}

	// Treatment records are already newest-first in the snapshot
	for _, tr := range snap.TreatmentRecords {
		if len(overview.RecentTreatments) >= 5 {
			break
		}
		daysAgo := int(utils.BeginningOfDay(now).Sub(utils.BeginningOfDay(tr.CreatedAt)).Hours() / 24)
		var when string
		switch daysAgo {
		case 0:
			when = "Today"
		case 1:
			when = "Yesterday"
		default:
			when = tr.CreatedAt.Format("2006-01-02")
		}
		overview.RecentTreatments = append(overview.RecentTreatments, RecentTreatment{
			CustomerName:  names[tr.CustomerID.String()],
			TreatmentName: tr.TreatmentName,
			When:          when,
		})
	}

	c.JSON(http.StatusOK, overview)
}
