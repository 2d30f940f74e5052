package services

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"snapagenda-backend/models"
	"snapagenda-backend/utils"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

var ErrNoPhoneOnFile = errors.New("client has no phone on file")

// AppointmentNotifier delivers appointment notices to the client's
// messaging app. Implementations must treat delivery failure as
// non-fatal; only a missing phone number is an error.
type AppointmentNotifier interface {
	NotifyConfirmation(owner *models.User, appt *models.Appointment) error
	NotifyCancellation(owner *models.User, appt *models.Appointment) error
	NotifyReminder(owner *models.User, appt *models.Appointment) error
}

type NotificationService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &NotificationService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// RenderTemplate substitutes the {nome}, {servico}, {data} and {hora}
// placeholders of an operator-editable message template.
func RenderTemplate(tpl, clientName, serviceName string, date time.Time) string {
	msg := strings.ReplaceAll(tpl, "{nome}", clientName)
	msg = strings.ReplaceAll(msg, "{servico}", serviceName)
	msg = strings.ReplaceAll(msg, "{data}", date.Format("02/01/2006"))
	msg = strings.ReplaceAll(msg, "{hora}", date.Format("15:04"))
	return msg
}

// ComposeCancellation builds the fixed cancellation notice. Unlike
// confirmation and reminder, its body is not operator-editable.
func ComposeCancellation(clientName, serviceName string, date time.Time, salonName string) string {
	msg := "Olá " + clientName + "!\n\n" +
		"Infelizmente seu agendamento foi CANCELADO:\n" +
		"Data: " + date.Format("02/01/2006") + "\n" +
		"Horário: " + date.Format("15:04") + "\n" +
		"Serviço: " + serviceName + "\n\n" +
		"Entre em contato para reagendar."
	if salonName != "" {
		msg += "\n\n" + salonName
	}
	return msg
}

func (s *NotificationService) NotifyConfirmation(owner *models.User, appt *models.Appointment) error {
	tpl := owner.Settings.Notifications.Confirmation
	if tpl == "" {
		tpl = models.DefaultBusinessSettings().Notifications.Confirmation
	}
	msg := RenderTemplate(tpl, appt.Client.Name, appt.Service.Name, appt.Date)
	if owner.SalonName != "" {
		msg += "\n\n" + owner.SalonName
	}
	return s.send(owner, appt, "confirmation", msg)
}

func (s *NotificationService) NotifyCancellation(owner *models.User, appt *models.Appointment) error {
	msg := ComposeCancellation(appt.Client.Name, appt.Service.Name, appt.Date, owner.SalonName)
	return s.send(owner, appt, "cancellation", msg)
}

func (s *NotificationService) NotifyReminder(owner *models.User, appt *models.Appointment) error {
	tpl := owner.Settings.Notifications.Reminder
	if tpl == "" {
		tpl = models.DefaultBusinessSettings().Notifications.Reminder
	}
	msg := RenderTemplate(tpl, appt.Client.Name, appt.Service.Name, appt.Date)
	if owner.SalonName != "" {
		msg += "\n\n" + owner.SalonName
	}
	return s.send(owner, appt, "reminder", msg)
}

func (s *NotificationService) send(owner *models.User, appt *models.Appointment, kind, message string) error {
	if strings.TrimSpace(appt.Client.Phone) == "" {
		return ErrNoPhoneOnFile
	}

	phone := "+" + utils.NormalizePhone(appt.Client.Phone)

	channel := "sms"
	to := phone
	if os.Getenv("TWILIO_WHATSAPP_NUMBER") != "" {
		to = "whatsapp:" + phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	status := "sent"
	errorMsg := ""
	if _, err := s.client.Api.CreateMessage(params); err != nil {
		// Delivery is a hand-off; the triggering operation proceeds.
		log.Printf("Failed to send %s notice to %s: %v", kind, phone, err)
		status = "failed"
		errorMsg = err.Error()
	}

	entry := models.NotificationLog{
		UserID:        owner.ID,
		AppointmentID: &appt.ID,
		ClientID:      appt.ClientID,
		Kind:          kind,
		Message:       message,
		Channel:       channel,
		Status:        status,
		ErrorMessage:  errorMsg,
		SentAt:        time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log %s notice for appointment %s: %v", kind, appt.ID, err)
	}

	return nil
}
