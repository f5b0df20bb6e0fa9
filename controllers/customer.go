package controllers

import (
	"errors"
	"net/http"
	"time"

	"clinicpro-backend/models"
	"clinicpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name          string     `json:"name" binding:"required"`
	Phone         string     `json:"phone" binding:"required"`
	Email         *string    `json:"email"` // Pointer to allow null
	BirthDate     *time.Time `json:"birthDate"`
	Notes         string     `json:"notes"`
	LineContactID string     `json:"lineContactId"`
	Address       string     `json:"address"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer.
// Only the fields present in the request are written.
type UpdateCustomerInput struct {
	Name          *string    `json:"name"`
	Phone         *string    `json:"phone"`
	Email         *string    `json:"email"`
	BirthDate     *time.Time `json:"birthDate"`
	Notes         *string    `json:"notes"`
	LineContactID *string    `json:"lineContactId"`
	Address       *string    `json:"address"`
}

// CreateCustomer creates a new customer
func CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Check the loaded snapshot for a duplicate phone
	for _, existing := range Data.Snapshot().Customers {
		if existing.Phone == input.Phone {
			utils.RespondWithError(c, http.StatusConflict, "Customer with this phone number already exists")
			return
		}
	}

	customer := models.Customer{
		ID:            uuid.New(),
		Name:          input.Name,
		Phone:         input.Phone,
		BirthDate:     input.BirthDate,
		Notes:         input.Notes,
		LineContactID: input.LineContactID,
		Address:       input.Address,
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}

	if err := Data.CreateCustomer(c.Request.Context(), &customer); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers returns all customers from the current snapshot, including
// their active courses and treatment history
func GetCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, Data.Snapshot().Customers)
}

// GetCustomer returns a specific customer by ID
func GetCustomer(c *gin.Context) {
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

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer applies a sparse update to an existing customer
func UpdateCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		for _, existing := range Data.Snapshot().Customers {
			if existing.Phone == *input.Phone && existing.ID != customerUUID {
				utils.RespondWithError(c, http.StatusConflict, "Another customer with this phone number already exists")
				return
			}
		}
		fields["phone"] = *input.Phone
	}
	if input.Email != nil {
		fields["email"] = *input.Email
	}
	if input.BirthDate != nil {
		fields["birth_date"] = *input.BirthDate
	}
	if input.Notes != nil {
		fields["notes"] = *input.Notes
	}
	if input.LineContactID != nil {
		fields["line_contact_id"] = *input.LineContactID
	}
	if input.Address != nil {
		fields["address"] = *input.Address
	}

	if err := Data.UpdateCustomer(c.Request.Context(), customerUUID, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		}
		return
	}

	customer, _ := Data.Customer(customerUUID)
	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer deletes a customer
func DeleteCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	if err := Data.DeleteCustomer(c.Request.Context(), customerUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
