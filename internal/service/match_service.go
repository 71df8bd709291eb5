package service

import (
	"context"
	"errors"

	"collegedate/internal/events"
	"collegedate/internal/models"
	"collegedate/internal/repository"

	"github.com/sirupsen/logrus"
)

var ErrSameParticipant = errors.New("conversation requires two distinct users")

// MatchService creates the canonical conversation for a matched pair.
type MatchService struct {
	conversationRepo *repository.ConversationRepository
	events           events.Publisher
	log              *logrus.Logger
}

func NewMatchService(conversationRepo *repository.ConversationRepository, pub events.Publisher, log *logrus.Logger) *MatchService {
	return &MatchService{conversationRepo: conversationRepo, events: pub, log: log}
}

// EnsureConversation is idempotent and safe under concurrent invocation for
// the same pair in either order: the pair's unique index arbitrates, and the
// created event fires only for the call that actually inserted the row.
func (s *MatchService) EnsureConversation(ctx context.Context, userA, userB uint) (*models.Conversation, error) {
	if userA == userB {
		return nil, ErrSameParticipant
	}
	conv, created, err := s.conversationRepo.Ensure(userA, userB)
	if err != nil {
		return nil, err
	}
	if created {
		s.publishCreated(ctx, conv)
	}
	return conv, nil
}

func (s *MatchService) publishCreated(ctx context.Context, conv *models.Conversation) {
	err := s.events.Publish(ctx, events.KeyConversationCreated, events.ConversationCreated{
		ConversationID: conv.ID,
		Participant1:   conv.Participant1,
		Participant2:   conv.Participant2,
	})
	if err != nil {
		s.log.WithError(err).WithField("conversation_id", conv.ID).Warn("conversation.created publish failed")
	}
}
