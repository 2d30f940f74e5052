package controllers

import (
	"net/http"
	"snapagenda-backend/config"
	"snapagenda-backend/models"
	"snapagenda-backend/utils"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetDashboard aggregates the numbers shown on the landing screen:
// today's agenda, catalog counts, the current month's received income
// and clients with a birthday in the next seven days.
func GetDashboard(c *gin.Context) {
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

	now := time.Now()
	dayStart := utils.BeginningOfDay(now)
	dayEnd := utils.EndOfDay(now)

	var todays []models.Appointment
	if err := config.DB.Preload("Client").Preload("Professional").Preload("Service").
		Where("user_id = ? AND date BETWEEN ? AND ? AND status <> ?",
			userUUID, dayStart, dayEnd, models.AppointmentCancelled).
		Order("date ASC").
		Find(&todays).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	var clientCount, professionalCount, serviceCount int64
	config.DB.Model(&models.Client{}).Where("user_id = ?", userUUID).Count(&clientCount)
	config.DB.Model(&models.Professional{}).Where("user_id = ?", userUUID).Count(&professionalCount)
	config.DB.Model(&models.Service{}).Where("user_id = ?", userUUID).Count(&serviceCount)

	var monthIncome float64
	config.DB.Model(&models.FinancialTransaction{}).
		Where("user_id = ? AND type = ? AND status = ? AND date >= ?",
			userUUID, models.TransactionIncome, models.TransactionPaid, utils.BeginningOfMonth(now)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&monthIncome)

	var pendingIncome float64
	config.DB.Model(&models.FinancialTransaction{}).
		Where("user_id = ? AND type = ? AND status = ?",
			userUUID, models.TransactionIncome, models.TransactionPending).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&pendingIncome)

	var clients []models.Client
	if err := config.DB.Where("user_id = ? AND birth_date IS NOT NULL", userUUID).
		Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}
	birthdays := upcomingBirthdays(clients, now, 7)

	c.JSON(http.StatusOK, gin.H{
		"todayAppointments": todays,
		"counts": gin.H{
			"clients":       clientCount,
			"professionals": professionalCount,
			"services":      serviceCount,
		},
		"monthIncome":       monthIncome,
		"pendingIncome":     pendingIncome,
		"upcomingBirthdays": birthdays,
	})
}

// upcomingBirthdays returns clients whose birthday falls within the
// next days, comparing month and day only.
func upcomingBirthdays(clients []models.Client, now time.Time, days int) []models.Client {
	matched := []models.Client{}
	for _, client := range clients {
		if client.BirthDate == nil {
			continue
		}
		for offset := 0; offset <= days; offset++ {
			day := now.AddDate(0, 0, offset)
			if client.BirthDate.Month() == day.Month() && client.BirthDate.Day() == day.Day() {
				matched = append(matched, client)
				break
			}
		}
	}
	return matched
}
