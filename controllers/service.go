// controllers/service.go
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

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name        string                 `json:"name" binding:"required"`
	Price       float64                `json:"price" binding:"required,min=0"`
	Duration    int                    `json:"duration" binding:"min=0"` // in minutes
	Category    string                 `json:"category"`
	Consumables models.ConsumableList  `json:"consumables"`
	ImageURL    string                 `json:"imageUrl"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name        *string                `json:"name"`
	Price       *float64               `json:"price" binding:"omitempty,min=0"`
	Duration    *int                   `json:"duration"`
	Category    *string                `json:"category"`
	Consumables *models.ConsumableList `json:"consumables"`
	ImageURL    *string                `json:"imageUrl"`
}

// CreateService creates a new service
func CreateService(c *gin.Context) {
	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service := models.Service{
		ID:          uuid.New(),
		Name:        input.Name,
		Price:       input.Price,
		Duration:    input.Duration,
		Category:    input.Category,
		Consumables: input.Consumables,
		ImageURL:    input.ImageURL,
	}

	if err := Data.CreateService(c.Request.Context(), &service); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices returns all services from the current snapshot
func GetServices(c *gin.Context) {
	c.JSON(http.StatusOK, Data.Snapshot().Services)
}

// GetService returns a specific service by ID
func GetService(c *gin.Context) {
	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	service, ok := Data.Service(serviceUUID)
	if !ok {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, service)
}

// UpdateService applies a sparse update to an existing service
func UpdateService(c *gin.Context) {
	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Price != nil {
		fields["price"] = *input.Price
	}
	if input.Duration != nil {
		fields["duration"] = *input.Duration
	}
	if input.Category != nil {
		fields["category"] = *input.Category
	}
	if input.Consumables != nil {
		fields["consumables"] = *input.Consumables
	}
	if input.ImageURL != nil {
		fields["image_url"] = *input.ImageURL
	}

	if err := Data.UpdateService(c.Request.Context(), serviceUUID, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		}
		return
	}

	service, _ := Data.Service(serviceUUID)
	c.JSON(http.StatusOK, service)
}

// DeleteService deletes a service
func DeleteService(c *gin.Context) {
	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	if err := Data.DeleteService(c.Request.Context(), serviceUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
