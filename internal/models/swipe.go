package models

import (
	"time"
)

// Swipe is the append-only record of who swiped whom. Rows are never updated
// or deleted; paid swipes carry the transaction that settled them.
type Swipe struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SwiperID      uint      `gorm:"not null;index:idx_swipes_swiper" json:"swiper_id"`
	SwipedID      uint      `gorm:"not null;index" json:"swiped_id"`
	Direction     string    `gorm:"size:10;not null" json:"direction"` // left | right
	IsPaid        bool      `gorm:"not null;default:false" json:"is_paid"`
	TransactionID *uint     `gorm:"index" json:"transaction_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`

	Swiper Profile `gorm:"foreignKey:SwiperID" json:"-"`
	Swiped Profile `gorm:"foreignKey:SwipedID" json:"-"`
}

func (Swipe) TableName() string {
	return "swipes"
}
