package controllers

import (
	"net/http"
	"snapagenda-backend/config"
	"snapagenda-backend/models"
	"snapagenda-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateProfileInput struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	SalonName    *string `json:"salonName"`
	SalonAddress *string `json:"salonAddress"`
	LogoURL      *string `json:"logoUrl"`
}

func GetProfile(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":         user.Name,
		"email":        user.Email,
		"phone":        user.Phone,
		"salonName":    user.SalonName,
		"salonAddress": user.SalonAddress,
		"logoUrl":      user.LogoURL,
		"settings":     user.Settings,
		"subscription": user.SubscriptionStatus,
		"trialEndsAt":  user.TrialEndsAt,
	})
}

func UpdateProfile(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		user.Phone = *input.Phone
	}
	if input.SalonName != nil {
		user.SalonName = *input.SalonName
	}
	if input.SalonAddress != nil {
		user.SalonAddress = *input.SalonAddress
	}
	if input.LogoURL != nil {
		user.LogoURL = *input.LogoURL
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// updateSettings loads the user, applies fn to a copy of the settings
// document and persists the whole document back.
func updateSettings(c *gin.Context, fn func(*models.BusinessSettings)) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	settings := user.Settings
	fn(&settings)

	if err := config.DB.Model(&user).Update("settings", settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated successfully", "settings": settings})
}

func UpdateBusinessHours(c *gin.Context) {
	var input struct {
		Hours map[string]models.DayHours `json:"hours" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	updateSettings(c, func(s *models.BusinessSettings) {
		s.Hours = input.Hours
	})
}

func UpdateBookingRules(c *gin.Context) {
	var input struct {
		CancellationWindow *int `json:"cancellationWindow" binding:"omitempty,min=0"`
		BufferTime         *int `json:"bufferTime" binding:"omitempty,min=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	updateSettings(c, func(s *models.BusinessSettings) {
		if input.CancellationWindow != nil {
			s.Rules.CancellationWindow = *input.CancellationWindow
		}
		if input.BufferTime != nil {
			s.Rules.BufferTime = *input.BufferTime
		}
	})
}

func UpdateOnlineBooking(c *gin.Context) {
	var input struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	updateSettings(c, func(s *models.BusinessSettings) {
		s.OnlineBooking.Active = *input.Active
	})
}

func UpdateNotificationTemplates(c *gin.Context) {
	var input struct {
		Confirmation *string `json:"confirmation"`
		Reminder     *string `json:"reminder"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	updateSettings(c, func(s *models.BusinessSettings) {
		if input.Confirmation != nil {
			s.Notifications.Confirmation = *input.Confirmation
		}
		if input.Reminder != nil {
			s.Notifications.Reminder = *input.Reminder
		}
	})
}
