package db

import (
	"log"
	"time"

	"github.com/elitehands/elitehands-api/internal/config"
	"github.com/elitehands/elitehands-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.ServiceCategory{},
		&models.Service{},
		&models.Booking{},
		&models.BookingAssignment{},
		&models.Review{},
		&models.Notification{},
		&models.Message{},
		&models.LeaveRequest{},
		&models.OTP{},
		&models.SiteSettings{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Settings is a singleton row.
	db.Exec(`
        INSERT INTO site_settings (id, site_name)
        SELECT 1, 'EliteHands'
        WHERE NOT EXISTS (SELECT 1 FROM site_settings WHERE id = 1)
    `)

	return db
}
