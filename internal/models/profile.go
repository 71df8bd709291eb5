package models

import (
	"time"

	"collegedate/internal/domain"

	"gorm.io/gorm"
)

type Profile struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Email          string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FullName       string         `gorm:"size:120" json:"full_name"`
	Gender         string         `gorm:"size:10;not null;index" json:"gender"` // male | female
	Role           string         `gorm:"size:20;not null;default:'USER'" json:"role"`
	FreeSwipeQuota int            `gorm:"not null;default:0" json:"free_swipe_quota"`
	IsBlocked      bool           `gorm:"not null;default:false" json:"is_blocked"`
	University     string         `gorm:"size:120" json:"university"`
	Bio            string         `gorm:"type:text" json:"bio"`
	AvatarURL      string         `gorm:"size:512" json:"avatar_url"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Profile) TableName() string {
	return "profiles"
}

// QuotaBound reports whether right-swipes by this profile consume the free
// allowance before requiring payment. Only male profiles are quota-bound.
func (p *Profile) QuotaBound() bool { return p.Gender == domain.GenderMale }

func (p *Profile) IsAdmin() bool { return p.Role == domain.RoleAdmin }
