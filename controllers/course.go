// controllers/course.go
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

// CreateCourseInput defines the expected JSON structure for creating a course definition
type CreateCourseInput struct {
	Name        string                `json:"name" binding:"required"`
	Price       float64               `json:"price" binding:"required,min=0"`
	TotalUnits  int                   `json:"totalUnits" binding:"required,min=1"`
	Description string                `json:"description"`
	Consumables models.ConsumableList `json:"consumables"`
}

// UpdateCourseInput defines the expected JSON structure for updating a course definition
type UpdateCourseInput struct {
	Name        *string                `json:"name"`
	Price       *float64               `json:"price" binding:"omitempty,min=0"`
	TotalUnits  *int                   `json:"totalUnits" binding:"omitempty,min=1"`
	Description *string                `json:"description"`
	Consumables *models.ConsumableList `json:"consumables"`
}

// CreateCourse creates a new course definition
func CreateCourse(c *gin.Context) {
	var input CreateCourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	course := models.CourseDefinition{
		ID:          uuid.New(),
		Name:        input.Name,
		Price:       input.Price,
		TotalUnits:  input.TotalUnits,
		Description: input.Description,
		Consumables: input.Consumables,
	}

	if err := Data.CreateCourse(c.Request.Context(), &course); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create course")
		return
	}

	c.JSON(http.StatusCreated, course)
}

// GetCourses returns all course definitions from the current snapshot
func GetCourses(c *gin.Context) {
	c.JSON(http.StatusOK, Data.Snapshot().Courses)
}

// GetCourse returns a specific course definition by ID
func GetCourse(c *gin.Context) {
	courseUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid course ID format")
		return
	}

	course, ok := Data.CourseDefinition(courseUUID)
	if !ok {
		utils.RespondWithError(c, http.StatusNotFound, "Course not found")
		return
	}

	c.JSON(http.StatusOK, course)
}

// UpdateCourse applies a sparse update to an existing course definition
func UpdateCourse(c *gin.Context) {
	courseUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid course ID format")
		return
	}

	var input UpdateCourseInput
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
	if input.TotalUnits != nil {
		fields["total_units"] = *input.TotalUnits
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Consumables != nil {
		fields["consumables"] = *input.Consumables
	}

	if err := Data.UpdateCourse(c.Request.Context(), courseUUID, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Course not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update course")
		}
		return
	}

	course, _ := Data.CourseDefinition(courseUUID)
	c.JSON(http.StatusOK, course)
}

// DeleteCourse deletes a course definition
func DeleteCourse(c *gin.Context) {
	courseUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid course ID format")
		return
	}

	if err := Data.DeleteCourse(c.Request.Context(), courseUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Course not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete course")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course deleted successfully"})
}
