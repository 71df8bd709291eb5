package repository

import (
	"errors"

	"collegedate/internal/models"

	"gorm.io/gorm"
)

var ErrInsufficientBalance = errors.New("insufficient wallet balance")

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) GetByUserID(userID uint) (*models.Wallet, error) {
	var w models.Wallet
	err := r.db.Where("user_id = ?", userID).First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WalletRepository) GetOrCreate(userID uint) (*models.Wallet, error) {
	w, err := r.GetByUserID(userID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	w = &models.Wallet{UserID: userID}
	if err := r.db.Create(w).Error; err != nil {
		// Lost a create race with a concurrent credit; the row exists now.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.GetByUserID(userID)
		}
		return nil, err
	}
	return w, nil
}

// Credit adds earnings in a single UPDATE so concurrent credits on the same
// wallet serialize at the database row. balance and total_earned move
// together, preserving balance = total_earned - total_withdrawn.
func (r *WalletRepository) Credit(userID uint, amount int64) error {
	if _, err := r.GetOrCreate(userID); err != nil {
		return err
	}
	return r.db.Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"balance":      gorm.Expr("balance + ?", amount),
			"total_earned": gorm.Expr("total_earned + ?", amount),
		}).Error
}

// Debit withdraws from the balance, guarded by the balance itself: the
// predicate re-checks funds inside the UPDATE, so the balance can never go
// negative regardless of concurrent credits or debits. Returns
// ErrInsufficientBalance when the guard does not hold at execution time.
func (r *WalletRepository) Debit(userID uint, amount int64) error {
	res := r.db.Model(&models.Wallet{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		Updates(map[string]interface{}{
			"balance":         gorm.Expr("balance - ?", amount),
			"total_withdrawn": gorm.Expr("total_withdrawn + ?", amount),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientBalance
	}
	return nil
}
