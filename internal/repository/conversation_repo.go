package repository

import (
	"collegedate/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// Ensure finds or creates the conversation for an unordered pair. The pair is
// canonicalized (participant_1 = min) and inserted with ON CONFLICT DO
// NOTHING against the pair's unique index, so concurrent calls for the same
// pair, in either argument order, converge on one row. The second return
// value reports whether this call created the row.
func (r *ConversationRepository) Ensure(userA, userB uint) (*models.Conversation, bool, error) {
	p1, p2 := userA, userB
	if p2 < p1 {
		p1, p2 = p2, p1
	}
	conv := &models.Conversation{Participant1: p1, Participant2: p2}
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "participant_1"}, {Name: "participant_2"}},
		DoNothing: true,
	}).Create(conv)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return conv, true, nil
	}
	var existing models.Conversation
	if err := r.db.Where("participant_1 = ? AND participant_2 = ?", p1, p2).First(&existing).Error; err != nil {
		return nil, false, err
	}
	return &existing, false, nil
}

func (r *ConversationRepository) GetByPair(userA, userB uint) (*models.Conversation, error) {
	p1, p2 := userA, userB
	if p2 < p1 {
		p1, p2 = p2, p1
	}
	var conv models.Conversation
	err := r.db.Where("participant_1 = ? AND participant_2 = ?", p1, p2).First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *ConversationRepository) ListByParticipant(userID uint, limit, offset int) ([]models.Conversation, error) {
	var list []models.Conversation
	err := r.db.Where("participant_1 = ? OR participant_2 = ?", userID, userID).
		Order("COALESCE(last_message_at, created_at) DESC").
		Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}
