package services

import (
	"testing"
	"time"

	"snapagenda-backend/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique shared-cache name so the pool's connections see one database.
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Professional{},
		&models.Service{},
		&models.Appointment{},
		&models.FinancialTransaction{},
		&models.NotificationLog{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func seedOwner(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	owner := models.User{
		Email:     uuid.NewString() + "@example.com",
		Password:  "secret123",
		Name:      "Ana",
		SalonName: "Studio Ana",
		Settings:  models.DefaultBusinessSettings(),
	}
	if err := db.Create(&owner).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	return &owner
}

func seedClient(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name, phone string) *models.Client {
	t.Helper()
	client := models.Client{UserID: ownerID, Name: name, Phone: phone}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return &client
}

func seedProfessional(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name string, rate *float64) *models.Professional {
	t.Helper()
	pro := models.Professional{UserID: ownerID, Name: name, CommissionRate: rate}
	if err := db.Create(&pro).Error; err != nil {
		t.Fatalf("seed professional: %v", err)
	}
	return &pro
}

func seedService(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name string, price float64, duration int) *models.Service {
	t.Helper()
	svc := models.Service{UserID: ownerID, Name: name, Price: price, Duration: duration}
	if err := db.Create(&svc).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	return &svc
}

func seedIncome(t *testing.T, db *gorm.DB, ownerID uuid.UUID, desc string, amount float64, date time.Time) *models.FinancialTransaction {
	t.Helper()
	entry := models.FinancialTransaction{
		UserID:      ownerID,
		Description: desc,
		Amount:      amount,
		Type:        models.TransactionIncome,
		Status:      models.TransactionPending,
		Date:        date,
	}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("seed income transaction: %v", err)
	}
	return &entry
}

// fakeNotifier records delivery attempts instead of calling out.
type fakeNotifier struct {
	confirmations int
	cancellations int
	reminders     int
	err           error
}

func (f *fakeNotifier) NotifyConfirmation(owner *models.User, appt *models.Appointment) error {
	f.confirmations++
	return f.err
}

func (f *fakeNotifier) NotifyCancellation(owner *models.User, appt *models.Appointment) error {
	f.cancellations++
	return f.err
}

func (f *fakeNotifier) NotifyReminder(owner *models.User, appt *models.Appointment) error {
	f.reminders++
	return f.err
}
