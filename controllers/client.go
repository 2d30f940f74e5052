package controllers

import (
	"errors"
	"net/http"
	"snapagenda-backend/config"
	"snapagenda-backend/models"
	"snapagenda-backend/utils"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	Name      string     `json:"name" binding:"required"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	Address   string     `json:"address"`
	BirthDate *time.Time `json:"birthDate"`
}

// QuickClientInput is the reduced form used by the quick-add flow
type QuickClientInput struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	Name      *string    `json:"name"`
	Phone     *string    `json:"phone"`
	Email     *string    `json:"email"`
	Address   *string    `json:"address"`
	BirthDate *time.Time `json:"birthDate"`
}

// CreateClient creates a new client for the operator
func CreateClient(c *gin.Context) {
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

	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	client := models.Client{
		UserID:    userUUID,
		Name:      input.Name,
		Phone:     input.Phone,
		Email:     input.Email,
		Address:   input.Address,
		BirthDate: input.BirthDate,
	}

	if err := config.DB.Create(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// QuickAddClient creates a client from name and phone only
func QuickAddClient(c *gin.Context) {
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

	var input QuickClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	client := models.Client{
		UserID: userUUID,
		Name:   input.Name,
		Phone:  input.Phone,
	}

	if err := config.DB.Create(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClients retrieves all clients for the operator
func GetClients(c *gin.Context) {
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

	var clients []models.Client
	if err := config.DB.Where("user_id = ?", userUUID).Order("name").Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	c.JSON(http.StatusOK, clients)
}

// GetClient retrieves a specific client by ID
func GetClient(c *gin.Context) {
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

	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var client models.Client
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, clientUUID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient updates an existing client
func UpdateClient(c *gin.Context) {
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

	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var client models.Client
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, clientUUID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		client.Phone = *input.Phone
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Address != nil {
		client.Address = *input.Address
	}
	if input.BirthDate != nil {
		client.BirthDate = input.BirthDate
	}

	if err := config.DB.Save(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient soft deletes a client
func DeleteClient(c *gin.Context) {
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

	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userUUID, clientUUID).
		Delete(&models.Client{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
