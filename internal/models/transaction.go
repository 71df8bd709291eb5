package models

import (
	"time"
)

// Transaction is created exactly once per provider-confirmed charge. The
// unique index on provider_ref is what makes confirmation idempotent across
// the client-verify and webhook channels.
type Transaction struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	PayerID          uint      `gorm:"not null;index" json:"payer_id"`
	RecipientID      uint      `gorm:"not null;index" json:"recipient_id"`
	Amount           int64     `gorm:"not null" json:"amount"`
	PlatformFee      int64     `gorm:"not null" json:"platform_fee"`
	RecipientEarning int64     `gorm:"not null" json:"recipient_earning"`
	Type             string    `gorm:"size:30;not null;default:'swipe_payment'" json:"type"`
	Status           string    `gorm:"size:20;not null;index" json:"status"` // completed | failed
	ProviderRef      string    `gorm:"size:128;uniqueIndex;not null" json:"provider_ref"`
	ProviderChargeID string    `gorm:"size:64" json:"provider_charge_id"`
	CreatedAt        time.Time `json:"created_at"`

	Payer     Profile `gorm:"foreignKey:PayerID" json:"-"`
	Recipient Profile `gorm:"foreignKey:RecipientID" json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}
