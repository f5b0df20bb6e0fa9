// controllers/treatment.go
package controllers

import (
	"errors"
	"net/http"

	"clinicpro-backend/store"
	"clinicpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RedeemCourseInput defines the expected JSON structure for consuming course units
type RedeemCourseInput struct {
	CustomerID       uuid.UUID `json:"customerId" binding:"required"`
	CourseInstanceID uuid.UUID `json:"courseInstanceId" binding:"required"`
	Units            int       `json:"units" binding:"required,min=1"`
	TreatmentName    string    `json:"treatmentName" binding:"required"`
	Details          string    `json:"details"`
	StaffName        string    `json:"staffName"`
	StaffFee         *float64  `json:"staffFee" binding:"omitempty,min=0"`
}

// RedeemCourse consumes units from a customer's course instance and logs the
// treatment. An unknown customer or instance is a no-op, not an error.
func RedeemCourse(c *gin.Context) {
	var input RedeemCourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	err := Data.RedeemCourse(c.Request.Context(), store.RedeemInput{
		CustomerID:       input.CustomerID,
		CourseInstanceID: input.CourseInstanceID,
		Units:            input.Units,
		TreatmentName:    input.TreatmentName,
		Details:          input.Details,
		StaffName:        input.StaffName,
		StaffFee:         input.StaffFee,
	})
	if err != nil {
		if errors.Is(err, store.ErrRedeemContention) {
			utils.RespondWithError(c, http.StatusConflict, err.Error())
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to redeem course")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course redeemed successfully"})
}

// GetTreatments returns all treatment records from the current snapshot
func GetTreatments(c *gin.Context) {
	c.JSON(http.StatusOK, Data.Snapshot().TreatmentRecords)
}

// GetCustomerTreatments returns the treatment history of one customer
func GetCustomerTreatments(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	customer, ok := Data.Customer(customerUUID)
	if !ok {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, customer.History)
}
