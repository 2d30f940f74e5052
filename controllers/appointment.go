package controllers

import (
	"errors"
	"net/http"
	"snapagenda-backend/config"
	"snapagenda-backend/models"
	"snapagenda-backend/services"
	"snapagenda-backend/utils"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentInput struct {
	ClientID       uuid.UUID `json:"clientId" binding:"required"`
	ProfessionalID uuid.UUID `json:"professionalId" binding:"required"`
	ServiceID      uuid.UUID `json:"serviceId" binding:"required"`
	Date           time.Time `json:"date" binding:"required"`
}

type StatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending completed"`
}

func currentOwner(c *gin.Context) (*models.User, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return nil, false
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return nil, false
	}
	return &user, true
}

// GetAppointments lists appointments around a reference date. The view
// query parameter picks the range: day (default), week or month.
func GetAppointments(c *gin.Context) {
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

	refDate := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		refDate = parsed
	}

	var start, end time.Time
	switch c.DefaultQuery("view", "day") {
	case "week":
		weekday := int(refDate.Weekday())
		start = utils.BeginningOfDay(refDate.AddDate(0, 0, -weekday))
		end = utils.EndOfDay(start.AddDate(0, 0, 6))
	case "month":
		start = utils.BeginningOfMonth(refDate)
		end = utils.EndOfDay(start.AddDate(0, 1, -1))
	case "day":
		start = utils.BeginningOfDay(refDate)
		end = utils.EndOfDay(refDate)
	default:
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid view, expected day, week or month")
		return
	}

	var appointments []models.Appointment
	if err := config.DB.Preload("Client").Preload("Professional").Preload("Service").
		Where("user_id = ? AND date BETWEEN ? AND ?", userUUID, start, end).
		Order("date").
		Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// CreateAppointment books a pending appointment and its income record
func CreateAppointment(c *gin.Context) {
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

	var input AppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appt, err := schedulingSvc.Create(userUUID, services.AppointmentInput{
		ClientID:       input.ClientID,
		ProfessionalID: input.ProfessionalID,
		ServiceID:      input.ServiceID,
		Date:           input.Date,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Client, professional or service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		}
		return
	}

	c.JSON(http.StatusCreated, appt)
}

// UpdateAppointment overwrites the appointment's references and instant
func UpdateAppointment(c *gin.Context) {
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

	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input AppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appt, err := schedulingSvc.Update(userUUID, apptUUID, services.AppointmentInput{
		ClientID:       input.ClientID,
		ProfessionalID: input.ProfessionalID,
		ServiceID:      input.ServiceID,
		Date:           input.Date,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		}
		return
	}

	c.JSON(http.StatusOK, appt)
}

// ConfirmAppointment confirms the booking, settles its ledger records
// and notifies the client when a phone is on file
func ConfirmAppointment(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		return
	}

	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	appt, err := schedulingSvc.Confirm(owner, apptUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to confirm appointment")
		}
		return
	}

	c.JSON(http.StatusOK, appt)
}

// CancelAppointment cancels the booking together with its ledger records
func CancelAppointment(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		return
	}

	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	appt, err := schedulingSvc.Cancel(owner, apptUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel appointment")
		}
		return
	}

	c.JSON(http.StatusOK, appt)
}

// SendAppointmentReminder delivers a reminder notice; a client without a
// phone number is a user-visible failure
func SendAppointmentReminder(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		return
	}

	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	if err := schedulingSvc.SendReminder(owner, apptUUID); err != nil {
		switch {
		case errors.Is(err, services.ErrNoPhoneOnFile):
			utils.RespondWithError(c, http.StatusBadRequest, "Client has no phone number on file")
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send reminder")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminder sent"})
}

// SetAppointmentStatus handles the statuses without ledger side effects
func SetAppointmentStatus(c *gin.Context) {
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

	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := schedulingSvc.SetStatus(userUUID, apptUUID, input.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update status")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}
