package models

import (
	"time"

	"gorm.io/gorm"
)

// WithdrawalRequest moves pending -> approved -> processed, or pending ->
// rejected. The ledger is debited once, at approval.
type WithdrawalRequest struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	Amount        int64          `gorm:"not null" json:"amount"`
	BankName      string         `gorm:"size:120;not null" json:"bank_name"`
	AccountNumber string         `gorm:"size:32;not null" json:"account_number"`
	AccountName   string         `gorm:"size:120;not null" json:"account_name"`
	Status        string         `gorm:"size:20;not null;index" json:"status"` // pending | approved | rejected | processed
	ProcessedAt   *time.Time     `json:"processed_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	User Profile `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (WithdrawalRequest) TableName() string {
	return "withdrawal_requests"
}
