package controllers

import (
	"errors"
	"net/http"
	"time"

	"snapagenda-backend/services"
	"snapagenda-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PublicBookingInput struct {
	ServiceID      uuid.UUID `json:"serviceId" binding:"required"`
	ProfessionalID uuid.UUID `json:"professionalId" binding:"required"`
	Date           string    `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string    `json:"time" binding:"required"` // HH:MM
	ClientName     string    `json:"clientName" binding:"required"`
	ClientPhone    string    `json:"clientPhone" binding:"required"`
}

func bookingOwnerID(c *gin.Context) (uuid.UUID, bool) {
	ownerUUID, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Booking page not found")
		return uuid.Nil, false
	}
	return ownerUUID, true
}

// GetBookingPage is the unauthenticated entry of the self-service flow.
// It exposes the salon identity plus the catalogs the wizard lists.
func GetBookingPage(c *gin.Context) {
	ownerUUID, ok := bookingOwnerID(c)
	if !ok {
		return
	}

	owner, svcList, pros, err := bookingSvc.LoadBusiness(ownerUUID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingDisabled):
			utils.RespondWithError(c, http.StatusForbidden, "Online booking is not available for this business")
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Booking page not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load booking page")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"salonName":     owner.SalonName,
		"salonAddress":  owner.SalonAddress,
		"logoUrl":       owner.LogoURL,
		"hours":         owner.Settings.Hours,
		"services":      svcList,
		"professionals": pros,
	})
}

// GetBookingSlots lists the open start times of a date.
func GetBookingSlots(c *gin.Context) {
	ownerUUID, ok := bookingOwnerID(c)
	if !ok {
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	owner, _, _, err := bookingSvc.LoadBusiness(ownerUUID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingDisabled):
			utils.RespondWithError(c, http.StatusForbidden, "Online booking is not available for this business")
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Booking page not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load booking page")
		}
		return
	}

	slots, err := bookingSvc.Slots(owner, date)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute available slots")
		return
	}
	if slots == nil {
		slots = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"date": date.Format("2006-01-02"), "slots": slots})
}

// SubmitBooking drives the whole wizard from a single payload and
// creates the pending appointment.
func SubmitBooking(c *gin.Context) {
	ownerUUID, ok := bookingOwnerID(c)
	if !ok {
		return
	}

	var input PublicBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	if !utils.ValidatePhone(utils.NormalizePhone(input.ClientPhone)) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	owner, _, _, err := bookingSvc.LoadBusiness(ownerUUID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingDisabled):
			utils.RespondWithError(c, http.StatusForbidden, "Online booking is not available for this business")
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Booking page not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load booking page")
		}
		return
	}

	session := services.NewBookingSession()
	steps := []error{
		session.SelectService(input.ServiceID),
		session.SelectProfessional(input.ProfessionalID),
		session.SelectSlot(date, input.Time),
	}
	for _, stepErr := range steps {
		if stepErr != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Incomplete booking selection")
			return
		}
	}

	appt, err := bookingSvc.Submit(owner, session, input.ClientName, input.ClientPhone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Selected service or professional is no longer available")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Appointment requested successfully",
		"appointmentId": appt.ID,
		"status":        appt.Status,
		"date":          appt.Date,
	})
}
