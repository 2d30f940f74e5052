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

type CreateProfessionalInput struct {
	Name           string   `json:"name" binding:"required"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	Specialties    []string `json:"specialties"`
	CommissionRate *float64 `json:"commissionRate" binding:"omitempty,min=0,max=100"`
}

type UpdateProfessionalInput struct {
	Name           *string   `json:"name"`
	Phone          *string   `json:"phone"`
	Email          *string   `json:"email"`
	Specialties    *[]string `json:"specialties"`
	CommissionRate *float64  `json:"commissionRate" binding:"omitempty,min=0,max=100"`
}

// CreateProfessional creates a new professional for the operator
func CreateProfessional(c *gin.Context) {
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

	var input CreateProfessionalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	professional := models.Professional{
		UserID:         userUUID,
		Name:           input.Name,
		Phone:          input.Phone,
		Email:          input.Email,
		Specialties:    input.Specialties,
		CommissionRate: input.CommissionRate,
	}

	if err := config.DB.Create(&professional).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create professional")
		return
	}

	c.JSON(http.StatusCreated, professional)
}

// GetProfessionals retrieves all professionals for the operator
func GetProfessionals(c *gin.Context) {
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

	var professionals []models.Professional
	if err := config.DB.Where("user_id = ?", userUUID).Order("name").Find(&professionals).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve professionals")
		return
	}

	c.JSON(http.StatusOK, professionals)
}

// GetProfessional retrieves a specific professional by ID
func GetProfessional(c *gin.Context) {
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

	proUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid professional ID format")
		return
	}

	var professional models.Professional
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, proUUID).
		First(&professional).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Professional not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, professional)
}

// UpdateProfessional updates an existing professional
func UpdateProfessional(c *gin.Context) {
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

	proUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid professional ID format")
		return
	}

	var input UpdateProfessionalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var professional models.Professional
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, proUUID).
		First(&professional).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Professional not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		professional.Name = *input.Name
	}
	if input.Phone != nil {
		professional.Phone = *input.Phone
	}
	if input.Email != nil {
		professional.Email = *input.Email
	}
	if input.Specialties != nil {
		professional.Specialties = *input.Specialties
	}
	if input.CommissionRate != nil {
		professional.CommissionRate = input.CommissionRate
	}

	if err := config.DB.Save(&professional).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update professional")
		return
	}

	c.JSON(http.StatusOK, professional)
}

// DeleteProfessional removes a professional
func DeleteProfessional(c *gin.Context) {
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

	proUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid professional ID format")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userUUID, proUUID).
		Delete(&models.Professional{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete professional")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Professional not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Professional deleted successfully"})
}
