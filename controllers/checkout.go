// controllers/checkout.go
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

// CheckoutItemInput is one line of a point-of-sale checkout
type CheckoutItemInput struct {
	Kind      string    `json:"kind" binding:"required,oneof=service course"`
	ItemID    uuid.UUID `json:"itemId" binding:"required"`
	UnitPrice float64   `json:"unitPrice" binding:"min=0"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CheckoutInput defines the expected JSON structure for processing a sale
type CheckoutInput struct {
	CustomerID    uuid.UUID           `json:"customerId" binding:"required"`
	Items         []CheckoutItemInput `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string              `json:"paymentMethod" binding:"required"`
}

// Checkout records a sale and opens course instances for course line items
func Checkout(c *gin.Context) {
	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if _, ok := Data.Customer(input.CustomerID); !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		return
	}

	items := make([]models.TransactionItem, 0, len(input.Items))
	for _, it := range input.Items {
		name := ""
		switch it.Kind {
		case models.LineItemService:
			service, ok := Data.Service(it.ItemID)
			if !ok {
				utils.RespondWithError(c, http.StatusBadRequest, "Service not found: "+it.ItemID.String())
				return
			}
			name = service.Name
		case models.LineItemCourse:
			course, ok := Data.CourseDefinition(it.ItemID)
			if !ok {
				utils.RespondWithError(c, http.StatusBadRequest, "Course not found: "+it.ItemID.String())
				return
			}
			name = course.Name
		}
		items = append(items, models.TransactionItem{
			Kind:      it.Kind,
			ItemID:    it.ItemID,
			Name:      name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}

	trx, err := Data.Checkout(c.Request.Context(), input.CustomerID, items, input.PaymentMethod)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to process sale")
		return
	}

	c.JSON(http.StatusCreated, trx)
}

// GetTransactions returns all transactions from the current snapshot
func GetTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, Data.Snapshot().Transactions)
}

// DeleteTransaction deletes a transaction
func DeleteTransaction(c *gin.Context) {
	trxUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid transaction ID format")
		return
	}

	if err := Data.DeleteTransaction(c.Request.Context(), trxUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Transaction not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete transaction")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
