package repository

import (
	"collegedate/internal/models"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts the transaction. The unique index on provider_ref makes this
// the serialization point between the two confirmation channels: the loser of
// the race gets gorm.ErrDuplicatedKey.
func (r *TransactionRepository) Create(t *models.Transaction) error {
	return r.db.Create(t).Error
}

func (r *TransactionRepository) GetByProviderRef(ref string) (*models.Transaction, error) {
	var t models.Transaction
	err := r.db.Where("provider_ref = ?", ref).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) ListByRecipient(recipientID uint, limit, offset int) ([]models.Transaction, error) {
	var list []models.Transaction
	err := r.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *TransactionRepository) ListRecent(limit, offset int) ([]models.Transaction, error) {
	var list []models.Transaction
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}
