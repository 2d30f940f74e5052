package controllers

import (
	"errors"
	"net/http"
	"snapagenda-backend/config"
	"snapagenda-backend/models"
	"snapagenda-backend/utils"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const trialDays = 7

type RegisterInput struct {
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	Name         string `json:"name" binding:"required"`
	Password     string `json:"password" binding:"required,min=8"`
	SalonName    string `json:"salonName" binding:"required"`
	SalonAddress string `json:"salonAddress"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var input RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Check if email already exists
	var existingUser models.User
	result := config.DB.Where("email = ?", input.Email).First(&existingUser)

	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	trialEnd := time.Now().AddDate(0, 0, trialDays)
	newUser := models.User{
		Email:              input.Email,
		Phone:              input.Phone,
		Name:               input.Name,
		Password:           input.Password, // Hashed in BeforeCreate hook
		SalonName:          input.SalonName,
		SalonAddress:       input.SalonAddress,
		Settings:           models.DefaultBusinessSettings(),
		SubscriptionStatus: "trial",
		TrialEndsAt:        &trialEnd,
	}

	if err := config.DB.Create(&newUser).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := utils.GenerateToken(newUser.ID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user": gin.H{
			"id":        newUser.ID,
			"email":     newUser.Email,
			"name":      newUser.Name,
			"salonName": newUser.SalonName,
		},
	})
}

func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	email := strings.TrimSpace(input.Email)

	var user models.User
	result := config.DB.Where("email = ?", email).First(&user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"name":      user.Name,
			"salonName": user.SalonName,
		},
	})
}

func Me(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusInternalServerError, "User ID not found in context")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":           user.ID,
			"email":        user.Email,
			"name":         user.Name,
			"salonName":    user.SalonName,
			"subscription": user.SubscriptionStatus,
			"trialEndsAt":  user.TrialEndsAt,
		},
	})
}
