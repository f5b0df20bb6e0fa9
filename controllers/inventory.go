// controllers/inventory.go
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

// CreateInventoryItemInput defines the expected JSON structure for creating an inventory item
type CreateInventoryItemInput struct {
	Name      string  `json:"name" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"min=0"`
	Unit      string  `json:"unit"`
	Threshold float64 `json:"threshold" binding:"min=0"`
	Price     float64 `json:"price" binding:"min=0"`
}

// UpdateInventoryItemInput defines the expected JSON structure for updating an inventory item
type UpdateInventoryItemInput struct {
	Name      *string  `json:"name"`
	Quantity  *float64 `json:"quantity" binding:"omitempty,min=0"`
	Unit      *string  `json:"unit"`
	Threshold *float64 `json:"threshold" binding:"omitempty,min=0"`
	Price     *float64 `json:"price" binding:"omitempty,min=0"`
}

// CreateInventoryItem creates a new inventory item
func CreateInventoryItem(c *gin.Context) {
	var input CreateInventoryItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	item := models.InventoryItem{
		ID:        uuid.New(),
		Name:      input.Name,
		Quantity:  input.Quantity,
		Unit:      input.Unit,
		Threshold: input.Threshold,
		Price:     input.Price,
	}

	if err := Data.CreateInventoryItem(c.Request.Context(), &item); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create inventory item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// GetInventory returns all inventory items from the current snapshot
func GetInventory(c *gin.Context) {
	c.JSON(http.StatusOK, Data.Snapshot().Inventory)
}

// GetInventoryItem returns a specific inventory item by ID
func GetInventoryItem(c *gin.Context) {
	itemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	item, ok := Data.InventoryItem(itemUUID)
	if !ok {
		utils.RespondWithError(c, http.StatusNotFound, "Inventory item not found")
		return
	}

	c.JSON(http.StatusOK, item)
}

// UpdateInventoryItem applies a sparse update to an existing inventory item
func UpdateInventoryItem(c *gin.Context) {
	itemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	var input UpdateInventoryItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Quantity != nil {
		fields["quantity"] = *input.Quantity
	}
	if input.Unit != nil {
		fields["unit"] = *input.Unit
	}
	if input.Threshold != nil {
		fields["threshold"] = *input.Threshold
	}
	if input.Price != nil {
		fields["price"] = *input.Price
	}

	if err := Data.UpdateInventoryItem(c.Request.Context(), itemUUID, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Inventory item not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update inventory item")
		}
		return
	}

	item, _ := Data.InventoryItem(itemUUID)
	c.JSON(http.StatusOK, item)
}

// DeleteInventoryItem deletes an inventory item
func DeleteInventoryItem(c *gin.Context) {
	itemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	if err := Data.DeleteInventoryItem(c.Request.Context(), itemUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Inventory item not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete inventory item")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Inventory item deleted successfully"})
}
