package services

import (
	"errors"
	"testing"
	"time"

	"snapagenda-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func TestBookingSessionIsStrictlyLinear(t *testing.T) {
	session := NewBookingSession()

	if err := session.SelectProfessional(uuid.New()); !errors.Is(err, ErrStepIncomplete) {
		t.Errorf("professional before service err = %v, want ErrStepIncomplete", err)
	}
	if err := session.SelectSlot(time.Now(), "10:00"); !errors.Is(err, ErrStepIncomplete) {
		t.Errorf("slot before service err = %v, want ErrStepIncomplete", err)
	}

	if err := session.SelectService(uuid.New()); err != nil {
		t.Fatalf("SelectService: %v", err)
	}
	if session.Step != StepProfessional {
		t.Errorf("step = %q, want professional", session.Step)
	}
	if err := session.SelectProfessional(uuid.New()); err != nil {
		t.Fatalf("SelectProfessional: %v", err)
	}
	if err := session.SelectSlot(time.Now(), "10:00"); err != nil {
		t.Fatalf("SelectSlot: %v", err)
	}
	if session.Step != StepConfirm {
		t.Errorf("step = %q, want confirm", session.Step)
	}
}

func TestBookingSessionBackKeepsSelections(t *testing.T) {
	session := NewBookingSession()
	serviceID := uuid.New()
	proID := uuid.New()

	session.SelectService(serviceID)
	session.SelectProfessional(proID)
	session.SelectSlot(time.Now(), "10:00")

	session.Back()
	if session.Step != StepDate {
		t.Errorf("step after back = %q, want date", session.Step)
	}
	session.Back()
	session.Back()
	if session.Step != StepService {
		t.Errorf("step after backing out = %q, want service", session.Step)
	}
	if session.ServiceID != serviceID || session.ProfessionalID != proID || session.Time != "10:00" {
		t.Error("going back cleared earlier selections")
	}
}

func TestBookingSessionSingleUse(t *testing.T) {
	session := NewBookingSession()
	session.SelectService(uuid.New())
	session.Step = StepSuccess

	if err := session.SelectService(uuid.New()); !errors.Is(err, ErrSessionSpent) {
		t.Errorf("err = %v, want ErrSessionSpent", err)
	}
	if err := session.SelectSlot(time.Now(), "10:00"); !errors.Is(err, ErrSessionSpent) {
		t.Errorf("err = %v, want ErrSessionSpent", err)
	}
}

func TestLoadBusinessGatedOnOnlineBooking(t *testing.T) {
	db := newTestDB(t)
	owner := seedOwner(t, db)
	svc := NewBookingService(db, NewSchedulingService(db, &fakeNotifier{}))

	if _, _, _, err := svc.LoadBusiness(owner.ID); !errors.Is(err, ErrBookingDisabled) {
		t.Errorf("inactive gate err = %v, want ErrBookingDisabled", err)
	}

	owner.Settings.OnlineBooking.Active = true
	if err := db.Model(owner).Update("settings", owner.Settings).Error; err != nil {
		t.Fatalf("enable online booking: %v", err)
	}
	seedService(t, db, owner.ID, "Corte", 80, 60)
	seedProfessional(t, db, owner.ID, "Bruna", nil)

	loaded, services, pros, err := svc.LoadBusiness(owner.ID)
	if err != nil {
		t.Fatalf("LoadBusiness: %v", err)
	}
	if loaded.ID != owner.ID || len(services) != 1 || len(pros) != 1 {
		t.Errorf("loaded %d services and %d professionals", len(services), len(pros))
	}

	if _, _, _, err := svc.LoadBusiness(uuid.New()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("unknown owner err = %v, want ErrRecordNotFound", err)
	}
}

func TestBookingSlotsSubtractExistingAppointments(t *testing.T) {
	db := newTestDB(t)
	owner := seedOwner(t, db)
	client := seedClient(t, db, owner.ID, "Maria", "")
	pro := seedProfessional(t, db, owner.ID, "Bruna", nil)
	service := seedService(t, db, owner.ID, "Corte", 80, 60)
	scheduling := NewSchedulingService(db, &fakeNotifier{})
	svc := NewBookingService(db, scheduling)

	// A Monday, 09:00-18:00 under the default hours.
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	_, err := scheduling.Create(owner.ID, AppointmentInput{
		ClientID:       client.ID,
		ProfessionalID: pro.ID,
		ServiceID:      service.ID,
		Date:           time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	slots, err := svc.Slots(owner, date)
	if err != nil {
		t.Fatalf("Slots: %v", err)
	}
	for _, s := range slots {
		if s == "10:00" || s == "10:30" {
			t.Errorf("slot %s still offered over a booked hour", s)
		}
	}
	if len(slots) == 0 {
		t.Error("no slots at all on an open day")
	}
}

func TestSubmitReusesClientByPhone(t *testing.T) {
	db := newTestDB(t)
	owner := seedOwner(t, db)
	existing := seedClient(t, db, owner.ID, "Maria", "11999990000")
	pro := seedProfessional(t, db, owner.ID, "Bruna", nil)
	service := seedService(t, db, owner.ID, "Corte", 80, 60)
	scheduling := NewSchedulingService(db, &fakeNotifier{})
	svc := NewBookingService(db, scheduling)

	session := NewBookingSession()
	session.SelectService(service.ID)
	session.SelectProfessional(pro.ID)
	session.SelectSlot(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "10:00")

	appt, err := svc.Submit(owner, session, "Outro Nome", "11999990000")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if appt.ClientID != existing.ID {
		t.Errorf("client = %s, want the existing phone match %s", appt.ClientID, existing.ID)
	}
	if appt.Status != models.AppointmentPending {
		t.Errorf("status = %q, want pending", appt.Status)
	}
	if session.Step != StepSuccess {
		t.Errorf("step = %q after submit, want success", session.Step)
	}

	var count int64
	db.Model(&models.Client{}).Where("user_id = ?", owner.ID).Count(&count)
	if count != 1 {
		t.Errorf("client count = %d, want 1", count)
	}

	if _, err := svc.Submit(owner, session, "Outro Nome", "11999990000"); !errors.Is(err, ErrSessionSpent) {
		t.Errorf("second submit err = %v, want ErrSessionSpent", err)
	}
}

func TestSubmitQuickCreatesUnknownClient(t *testing.T) {
	db := newTestDB(t)
	owner := seedOwner(t, db)
	pro := seedProfessional(t, db, owner.ID, "Bruna", nil)
	service := seedService(t, db, owner.ID, "Corte", 80, 60)
	scheduling := NewSchedulingService(db, &fakeNotifier{})
	svc := NewBookingService(db, scheduling)

	session := NewBookingSession()
	session.SelectService(service.ID)
	session.SelectProfessional(pro.ID)
	session.SelectSlot(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "14:30")

	appt, err := svc.Submit(owner, session, "Julia", "11888880000")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	var client models.Client
	if err := db.First(&client, "id = ?", appt.ClientID).Error; err != nil {
		t.Fatalf("load created client: %v", err)
	}
	if client.Name != "Julia" || client.Phone != "11888880000" {
		t.Errorf("created client = %q/%q", client.Name, client.Phone)
	}
	if appt.Date.Hour() != 14 || appt.Date.Minute() != 30 {
		t.Errorf("appointment instant = %v, want 14:30", appt.Date)
	}

	// The standard ledger side effect applies to self-service bookings too.
	var entry models.FinancialTransaction
	if err := db.First(&entry, "appointment_id = ?", appt.ID).Error; err != nil {
		t.Fatalf("income transaction not created: %v", err)
	}
	if entry.Amount != 80 || entry.Status != models.TransactionPending {
		t.Errorf("entry = %.2f %s, want 80.00 pending", entry.Amount, entry.Status)
	}
}

func TestSubmitRequiresConfirmStepAndContact(t *testing.T) {
	db := newTestDB(t)
	owner := seedOwner(t, db)
	pro := seedProfessional(t, db, owner.ID, "Bruna", nil)
	service := seedService(t, db, owner.ID, "Corte", 80, 60)
	svc := NewBookingService(db, NewSchedulingService(db, &fakeNotifier{}))

	session := NewBookingSession()
	session.SelectService(service.ID)
	if _, err := svc.Submit(owner, session, "Julia", "11888880000"); !errors.Is(err, ErrStepIncomplete) {
		t.Errorf("early submit err = %v, want ErrStepIncomplete", err)
	}

	session.SelectProfessional(pro.ID)
	session.SelectSlot(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "10:00")
	if _, err := svc.Submit(owner, session, "  ", "11888880000"); !errors.Is(err, ErrStepIncomplete) {
		t.Errorf("blank name err = %v, want ErrStepIncomplete", err)
	}
	if _, err := svc.Submit(owner, session, "Julia", ""); !errors.Is(err, ErrStepIncomplete) {
		t.Errorf("blank phone err = %v, want ErrStepIncomplete", err)
	}
}
