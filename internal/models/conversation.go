package models

import (
	"time"
)

// Conversation is the canonical channel for a matched pair. participant_1 is
// always the smaller id so the unique index holds one row per unordered pair.
type Conversation struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Participant1  uint       `gorm:"column:participant_1;not null;uniqueIndex:idx_conversations_pair,priority:1" json:"participant_1"`
	Participant2  uint       `gorm:"column:participant_2;not null;uniqueIndex:idx_conversations_pair,priority:2" json:"participant_2"`
	LastMessage   string     `gorm:"type:text" json:"last_message"`
	LastMessageAt *time.Time `json:"last_message_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Conversation) TableName() string {
	return "conversations"
}
