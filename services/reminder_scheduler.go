package services

import (
	"log"
	"strings"
	"time"

	"snapagenda-backend/models"
	"snapagenda-backend/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReminderScheduler sends next-day appointment reminders for every
// operator once a day.
type ReminderScheduler struct {
	db       *gorm.DB
	notifier AppointmentNotifier
}

func NewReminderScheduler(db *gorm.DB, notifier AppointmentNotifier) *ReminderScheduler {
	return &ReminderScheduler{db: db, notifier: notifier}
}

func (rs *ReminderScheduler) Start() {
	c := cron.New()

	// Run daily at 9 AM
	c.AddFunc("0 9 * * *", rs.SendDailyReminders)

	c.Start()
	log.Println("Reminder scheduler started")
}

func (rs *ReminderScheduler) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	var owners []models.User
	if err := rs.db.Find(&owners).Error; err != nil {
		log.Printf("Failed to fetch operators: %v", err)
		return
	}

	for _, owner := range owners {
		rs.processOwner(owner)
	}

	log.Println("Daily reminder processing completed")
}

func (rs *ReminderScheduler) processOwner(owner models.User) {
	tomorrow := time.Now().AddDate(0, 0, 1)
	dayStart := utils.BeginningOfDay(tomorrow)
	dayEnd := utils.EndOfDay(tomorrow)

	var appts []models.Appointment
	err := rs.db.Preload("Client").Preload("Professional").Preload("Service").
		Where("user_id = ? AND status <> ? AND date BETWEEN ? AND ?",
			owner.ID, models.AppointmentCancelled, dayStart, dayEnd).
		Find(&appts).Error
	if err != nil {
		log.Printf("Operator %s: failed to fetch appointments: %v", owner.ID, err)
		return
	}

	for i := range appts {
		appt := &appts[i]
		if strings.TrimSpace(appt.Client.Phone) == "" {
			continue
		}
		if err := rs.notifier.NotifyReminder(&owner, appt); err != nil {
			log.Printf("Operator %s: reminder for appointment %s: %v", owner.ID, appt.ID, err)
		}
	}
}
