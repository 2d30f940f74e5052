// controllers/service.go
package controllers

import (
	"errors"
	"net/http"
	"snapagenda-backend/config"
	"snapagenda-backend/models"
	"snapagenda-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,min=0"`
	Duration    int     `json:"duration" binding:"min=0"` // in minutes
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	Duration    *int     `json:"duration" binding:"omitempty,min=0"`
}

// CreateService creates a new service for the operator
func CreateService(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service := models.Service{
		UserID:      userUUID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Duration:    input.Duration,
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices retrieves all services for the operator
func GetServices(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var services []models.Service
	if err := config.DB.Where("user_id = ?", userUUID).Order("name").Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetService retrieves a specific service by ID
func GetService(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var service models.Service
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, serviceUUID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, service)
}

// UpdateService updates an existing service. Price changes do not touch
// ledger records created at booking time.
func UpdateService(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

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

	var service models.Service
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, serviceUUID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Price != nil {
		service.Price = *input.Price
	}
	if input.Duration != nil {
		service.Duration = *input.Duration
	}

	if err := config.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService removes a service
func DeleteService(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userUUID, serviceUUID).
		Delete(&models.Service{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
