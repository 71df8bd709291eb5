package database

import (
	"collegedate/config"
	"collegedate/internal/domain"
	"collegedate/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
		// Duplicate-key conflicts must surface as gorm.ErrDuplicatedKey; the
		// confirmation pipeline dispatches on it.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Profile{},
		&models.Wallet{},
		&models.Swipe{},
		&models.Transaction{},
		&models.Conversation{},
		&models.WithdrawalRequest{},
	)
}

// SeedAdmin ensures at least one operator profile exists.
func SeedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.Profile{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}
	db.Create(&models.Profile{
		Email:    "admin@collegedate.app",
		FullName: "Operator",
		Gender:   domain.GenderFemale,
		Role:     domain.RoleAdmin,
	})
}
