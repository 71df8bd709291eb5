package service

import (
	"context"
	"errors"
	"time"

	"collegedate/internal/domain"
	"collegedate/internal/events"
	"collegedate/internal/models"
	"collegedate/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrWithdrawalNotFound   = errors.New("withdrawal request not found")
	ErrInvalidTransition    = errors.New("invalid withdrawal state transition")
	ErrAmountExceedsBalance = errors.New("requested amount exceeds wallet balance")
	ErrNonPositiveAmount    = errors.New("amount must be positive")
)

// WithdrawalService runs the payout state machine: pending -> approved ->
// processed, or pending -> rejected. The ledger is debited exactly once, at
// approval, with the balance re-validated at that moment.
type WithdrawalService struct {
	db             *gorm.DB
	withdrawalRepo *repository.WithdrawalRepository
	walletRepo     *repository.WalletRepository
	events         events.Publisher
	log            *logrus.Logger
}

func NewWithdrawalService(
	db *gorm.DB,
	withdrawalRepo *repository.WithdrawalRepository,
	walletRepo *repository.WalletRepository,
	pub events.Publisher,
	log *logrus.Logger,
) *WithdrawalService {
	return &WithdrawalService{
		db:             db,
		withdrawalRepo: withdrawalRepo,
		walletRepo:     walletRepo,
		events:         pub,
		log:            log,
	}
}

// Request creates a pending withdrawal. The balance check here is advisory
// only — the balance may change before approval, which re-validates it.
func (s *WithdrawalService) Request(ctx context.Context, userID uint, amount int64, bankName, accountNumber, accountName string) (*models.WithdrawalRequest, error) {
	if amount <= 0 {
		return nil, ErrNonPositiveAmount
	}
	wallet, err := s.walletRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	if amount > wallet.Balance {
		return nil, ErrAmountExceedsBalance
	}
	w := &models.WithdrawalRequest{
		UserID:        userID,
		Amount:        amount,
		BankName:      bankName,
		AccountNumber: accountNumber,
		AccountName:   accountName,
		Status:        domain.WithdrawalPending,
	}
	if err := s.withdrawalRepo.Create(w); err != nil {
		return nil, err
	}
	return w, nil
}

// Approve moves pending -> approved and debits the ledger, atomically. The
// guarded status transition claims the request (refusing double approval) and
// the guarded debit re-checks funds; an insufficient balance rolls the claim
// back so the request stays pending for the operator to retry or reject.
func (s *WithdrawalService) Approve(ctx context.Context, id uint) (*models.WithdrawalRequest, error) {
	w, err := s.withdrawalRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWithdrawalNotFound
		}
		return nil, err
	}
	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		ok, err := repository.NewWithdrawalRepository(tx).Transition(id, domain.WithdrawalPending, domain.WithdrawalApproved, &now)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidTransition
		}
		return repository.NewWalletRepository(tx).Debit(w.UserID, w.Amount)
	})
	if err != nil {
		return nil, err
	}
	w.Status = domain.WithdrawalApproved
	w.ProcessedAt = &now
	s.publishApproved(ctx, w)
	s.log.WithFields(logrus.Fields{"withdrawal_id": w.ID, "user_id": w.UserID, "amount": w.Amount}).Info("withdrawal approved")
	return w, nil
}

// Reject is terminal and has no ledger effect.
func (s *WithdrawalService) Reject(ctx context.Context, id uint) (*models.WithdrawalRequest, error) {
	return s.transition(id, domain.WithdrawalPending, domain.WithdrawalRejected)
}

// Process records settlement confirmation for an approved request. The
// ledger was already adjusted at approval.
func (s *WithdrawalService) Process(ctx context.Context, id uint) (*models.WithdrawalRequest, error) {
	return s.transition(id, domain.WithdrawalApproved, domain.WithdrawalProcessed)
}

func (s *WithdrawalService) transition(id uint, from, to string) (*models.WithdrawalRequest, error) {
	ok, err := s.withdrawalRepo.Transition(id, from, to, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		if _, getErr := s.withdrawalRepo.GetByID(id); errors.Is(getErr, gorm.ErrRecordNotFound) {
			return nil, ErrWithdrawalNotFound
		}
		return nil, ErrInvalidTransition
	}
	return s.withdrawalRepo.GetByID(id)
}

func (s *WithdrawalService) publishApproved(ctx context.Context, w *models.WithdrawalRequest) {
	err := s.events.Publish(ctx, events.KeyWithdrawalApproved, events.WithdrawalApproved{
		WithdrawalID: w.ID,
		UserID:       w.UserID,
		Amount:       w.Amount,
	})
	if err != nil {
		s.log.WithError(err).WithField("withdrawal_id", w.ID).Warn("withdrawal.approved publish failed")
	}
}
