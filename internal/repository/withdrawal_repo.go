package repository

import (
	"time"

	"collegedate/internal/models"

	"gorm.io/gorm"
)

type WithdrawalRepository struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

func (r *WithdrawalRepository) Create(w *models.WithdrawalRequest) error {
	return r.db.Create(w).Error
}

func (r *WithdrawalRepository) GetByID(id uint) (*models.WithdrawalRequest, error) {
	var w models.WithdrawalRequest
	err := r.db.First(&w, id).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WithdrawalRepository) ListByUser(userID uint, limit, offset int) ([]models.WithdrawalRequest, error) {
	var list []models.WithdrawalRequest
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *WithdrawalRepository) ListByStatus(status string, limit, offset int) ([]models.WithdrawalRequest, error) {
	q := r.db.Preload("User").Order("created_at DESC").Limit(limit).Offset(offset)
	if status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}
	var list []models.WithdrawalRequest
	err := q.Find(&list).Error
	return list, err
}

// Transition moves a request from one status to another, guarded by the
// current status. A concurrent transition of the same request leaves
// RowsAffected at zero for the loser, which is how double-approve and
// reject-after-approve get refused.
func (r *WithdrawalRepository) Transition(id uint, from, to string, processedAt *time.Time) (bool, error) {
	updates := map[string]interface{}{"status": to}
	if processedAt != nil {
		updates["processed_at"] = processedAt
	}
	res := r.db.Model(&models.WithdrawalRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
