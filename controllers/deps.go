package controllers

import (
	"snapagenda-backend/services"

	"gorm.io/gorm"
)

var (
	schedulingSvc *services.SchedulingService
	ledgerSvc     *services.LedgerService
	bookingSvc    *services.BookingService
)

// Init wires the service layer. Must run after the database connection
// is established.
func Init(db *gorm.DB) {
	notifier := services.NewNotificationService(db)
	schedulingSvc = services.NewSchedulingService(db, notifier)
	ledgerSvc = services.NewLedgerService(db)
	bookingSvc = services.NewBookingService(db, schedulingSvc)
}
