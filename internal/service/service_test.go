package service

import (
	"fmt"
	"io"
	"testing"

	"collegedate/internal/domain"
	"collegedate/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.Wallet{},
		&models.Swipe{},
		&models.Transaction{},
		&models.Conversation{},
		&models.WithdrawalRequest{},
	))
	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

var profileSeq int

func createProfile(t *testing.T, db *gorm.DB, gender string, quota int) *models.Profile {
	t.Helper()
	profileSeq++
	p := &models.Profile{
		Email:          fmt.Sprintf("%s-%d@test.local", t.Name(), profileSeq),
		FullName:       fmt.Sprintf("Profile %d", profileSeq),
		Gender:         gender,
		Role:           domain.RoleUser,
		FreeSwipeQuota: quota,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}
