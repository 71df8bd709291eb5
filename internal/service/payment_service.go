package service

import (
	"context"
	"errors"
	"fmt"

	"collegedate/internal/domain"
	"collegedate/internal/events"
	"collegedate/internal/models"
	"collegedate/internal/repository"
	"collegedate/pkg/payment"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ConfirmResult string

const (
	ConfirmCreated          ConfirmResult = "CREATED"
	ConfirmAlreadyProcessed ConfirmResult = "ALREADY_PROCESSED"
	ConfirmRejected         ConfirmResult = "REJECTED"
)

var (
	ErrInvalidReference    = domain.ErrInvalidIntentRef
	ErrChargeNotSuccessful = errors.New("charge not successful")
	ErrAmountBelowPrice    = errors.New("confirmed amount below swipe price")
)

// ConfirmOutcome reports what a confirmation attempt did. TransactionID is
// set for CREATED and ALREADY_PROCESSED.
type ConfirmOutcome struct {
	Result        ConfirmResult
	TransactionID uint
}

// PaymentService turns a provider-confirmed charge into exactly one
// Transaction, one wallet credit, one paid swipe and one conversation. It is
// invoked from two racing channels (client verify and provider webhook); the
// unique index on provider_ref arbitrates.
type PaymentService struct {
	db       *gorm.DB
	provider payment.Provider
	events   events.Publisher
	log      *logrus.Logger
}

func NewPaymentService(db *gorm.DB, provider payment.Provider, pub events.Publisher, log *logrus.Logger) *PaymentService {
	return &PaymentService{db: db, provider: provider, events: pub, log: log}
}

// Confirm verifies the charge with the provider and applies its effects in
// one database transaction.
//
// Outcomes: CREATED on first successful processing; ALREADY_PROCESSED (with
// the existing transaction id) when another invocation won the race or a
// duplicate delivery arrives; REJECTED plus a permanent error for malformed
// references, unsuccessful charges and sub-price amounts. A transport error
// talking to the provider is returned as a plain error before any local state
// is touched, so the whole call is safe to retry.
//
// declaredAmount is what the caller claims was paid; it is only a fast-fail
// pre-check and never trusted — the provider's confirmed amount decides.
func (s *PaymentService) Confirm(ctx context.Context, providerRef, providerChargeID string, declaredAmount int64) (*ConfirmOutcome, error) {
	intent, err := domain.ParseIntentRef(providerRef)
	if err != nil {
		return &ConfirmOutcome{Result: ConfirmRejected}, err
	}
	if declaredAmount > 0 && declaredAmount < domain.SwipePrice {
		return &ConfirmOutcome{Result: ConfirmRejected}, ErrAmountBelowPrice
	}

	charge, err := s.provider.VerifyByReference(ctx, providerRef)
	if err != nil {
		if errors.Is(err, payment.ErrVerificationFailed) {
			return &ConfirmOutcome{Result: ConfirmRejected}, err
		}
		return nil, fmt.Errorf("provider verify: %w", err)
	}
	if charge.Status != payment.StatusSuccessful {
		return &ConfirmOutcome{Result: ConfirmRejected}, ErrChargeNotSuccessful
	}
	if charge.Amount < domain.SwipePrice {
		return &ConfirmOutcome{Result: ConfirmRejected}, ErrAmountBelowPrice
	}
	chargeID := charge.ProviderChargeID
	if chargeID == "" {
		chargeID = providerChargeID
	}

	txn := &models.Transaction{
		PayerID:          intent.SwiperID,
		RecipientID:      intent.SwipedID,
		Amount:           domain.SwipePrice,
		PlatformFee:      domain.PlatformFee,
		RecipientEarning: domain.RecipientEarning,
		Type:             domain.TransactionTypeSwipePayment,
		Status:           domain.TransactionCompleted,
		ProviderRef:      providerRef,
		ProviderChargeID: chargeID,
	}
	var conv *models.Conversation
	var convCreated bool
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := repository.NewTransactionRepository(tx).Create(txn); err != nil {
			return err
		}
		if err := repository.NewWalletRepository(tx).Credit(intent.SwipedID, domain.RecipientEarning); err != nil {
			return err
		}
		sw := &models.Swipe{
			SwiperID:      intent.SwiperID,
			SwipedID:      intent.SwipedID,
			Direction:     domain.DirectionRight,
			IsPaid:        true,
			TransactionID: &txn.ID,
		}
		if err := repository.NewSwipeRepository(tx).Create(sw); err != nil {
			return err
		}
		var err error
		conv, convCreated, err = repository.NewConversationRepository(tx).Ensure(intent.SwiperID, intent.SwipedID)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// The other channel already processed this charge.
			existing, lookupErr := repository.NewTransactionRepository(s.db).GetByProviderRef(providerRef)
			if lookupErr != nil {
				return nil, fmt.Errorf("lookup after conflict: %w", lookupErr)
			}
			return &ConfirmOutcome{Result: ConfirmAlreadyProcessed, TransactionID: existing.ID}, nil
		}
		return nil, fmt.Errorf("apply confirmation: %w", err)
	}

	s.publishConfirmed(ctx, txn)
	if convCreated {
		s.publishConversation(ctx, conv)
	}
	s.log.WithFields(logrus.Fields{
		"provider_ref":   providerRef,
		"transaction_id": txn.ID,
		"payer_id":       intent.SwiperID,
		"recipient_id":   intent.SwipedID,
	}).Info("payment confirmed")
	return &ConfirmOutcome{Result: ConfirmCreated, TransactionID: txn.ID}, nil
}

func (s *PaymentService) publishConfirmed(ctx context.Context, txn *models.Transaction) {
	err := s.events.Publish(ctx, events.KeyPaymentConfirmed, events.PaymentConfirmed{
		TransactionID: txn.ID,
		PayerID:       txn.PayerID,
		RecipientID:   txn.RecipientID,
		Amount:        txn.Amount,
		ProviderRef:   txn.ProviderRef,
	})
	if err != nil {
		s.log.WithError(err).WithField("transaction_id", txn.ID).Warn("payment.confirmed publish failed")
	}
}

func (s *PaymentService) publishConversation(ctx context.Context, conv *models.Conversation) {
	err := s.events.Publish(ctx, events.KeyConversationCreated, events.ConversationCreated{
		ConversationID: conv.ID,
		Participant1:   conv.Participant1,
		Participant2:   conv.Participant2,
	})
	if err != nil {
		s.log.WithError(err).WithField("conversation_id", conv.ID).Warn("conversation.created publish failed")
	}
}
