// controllers/appointment.go
package controllers

import (
	"errors"
	"net/http"

	"clinicpro-backend/models"
	"clinicpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateAppointmentInput defines the expected JSON structure for creating an appointment
type CreateAppointmentInput struct {
	CustomerID uuid.UUID `json:"customerId" binding:"required"`
	ServiceID  uuid.UUID `json:"serviceId" binding:"required"`
	Date       string    `json:"date" binding:"required"` // YYYY-MM-DD
	Time       string    `json:"time" binding:"required"` // HH:MM
	Status     string    `json:"status" binding:"omitempty,oneof=scheduled completed cancelled no_show"`
	StaffName  string    `json:"staffName"`
}

// UpdateAppointmentInput defines the expected JSON structure for updating an
// appointment. Status changes are not restricted to any transition order.
type UpdateAppointmentInput struct {
	CustomerID *uuid.UUID `json:"customerId"`
	ServiceID  *uuid.UUID `json:"serviceId"`
	Date       *string    `json:"date"`
	Time       *string    `json:"time"`
	Status     *string    `json:"status" binding:"omitempty,oneof=scheduled completed cancelled no_show"`
	StaffName  *string    `json:"staffName"`
}

// CreateAppointment creates a new appointment
func CreateAppointment(c *gin.Context) {
	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidateDate(input.Date) || !utils.ValidateTime(input.Time) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date or time format")
		return
	}

	if _, ok := Data.Customer(input.CustomerID); !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		return
	}
	if _, ok := Data.Service(input.ServiceID); !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Service not found")
		return
	}

	status := input.Status
	if status == "" {
		status = models.AppointmentScheduled
	}

	appointment := models.Appointment{
		ID:         uuid.New(),
		CustomerID: input.CustomerID,
		ServiceID:  input.ServiceID,
		Date:       input.Date,
		Time:       input.Time,
		Status:     status,
		StaffName:  input.StaffName,
	}

	if err := Data.CreateAppointment(c.Request.Context(), &appointment); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// GetAppointments returns all appointments from the current snapshot
func GetAppointments(c *gin.Context) {
	c.JSON(http.StatusOK, Data.Snapshot().Appointments)
}

// UpdateAppointment applies a sparse update to an existing appointment
func UpdateAppointment(c *gin.Context) {
	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	fields := map[string]interface{}{}
	if input.CustomerID != nil {
		fields["customer_id"] = *input.CustomerID
	}
	if input.ServiceID != nil {
		fields["service_id"] = *input.ServiceID
	}
	if input.Date != nil {
		if !utils.ValidateDate(*input.Date) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format")
			return
		}
		fields["date"] = *input.Date
	}
	if input.Time != nil {
		if !utils.ValidateTime(*input.Time) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid time format")
			return
		}
		fields["time"] = *input.Time
	}
	if input.Status != nil {
		fields["status"] = *input.Status
	}
	if input.StaffName != nil {
		fields["staff_name"] = *input.StaffName
	}

	if err := Data.UpdateAppointment(c.Request.Context(), appointmentUUID, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment updated successfully"})
}

// DeleteAppointment deletes an appointment
func DeleteAppointment(c *gin.Context) {
	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	if err := Data.DeleteAppointment(c.Request.Context(), appointmentUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete appointment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}
