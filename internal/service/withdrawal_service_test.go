package service

import (
	"context"
	"testing"

	"collegedate/internal/domain"
	"collegedate/internal/events"
	"collegedate/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newWithdrawalService(db *gorm.DB) *WithdrawalService {
	return NewWithdrawalService(
		db,
		repository.NewWithdrawalRepository(db),
		repository.NewWalletRepository(db),
		events.NopPublisher{},
		newTestLogger(),
	)
}

func TestWithdrawalLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := newWithdrawalService(db)
	walletRepo := repository.NewWalletRepository(db)
	u := createProfile(t, db, domain.GenderFemale, 0)
	require.NoError(t, walletRepo.Credit(u.ID, 1000))

	ctx := context.Background()
	w, err := svc.Request(ctx, u.ID, 400, "GTBank", "0123456789", "Jane Doe")
	require.NoError(t, err)
	require.Equal(t, domain.WithdrawalPending, w.Status)

	// Requesting does not touch the ledger.
	wallet, err := walletRepo.GetByUserID(u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1000), wallet.Balance)

	w, err = svc.Approve(ctx, w.ID)
	require.NoError(t, err)
	require.Equal(t, domain.WithdrawalApproved, w.Status)
	require.NotNil(t, w.ProcessedAt)

	wallet, err = walletRepo.GetByUserID(u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(600), wallet.Balance)
	require.Equal(t, int64(400), wallet.TotalWithdrawn)

	w, err = svc.Process(ctx, w.ID)
	require.NoError(t, err)
	require.Equal(t, domain.WithdrawalProcessed, w.Status)

	// Settlement confirmation does not debit again.
	wallet, err = walletRepo.GetByUserID(u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(600), wallet.Balance)
}

func TestRequestValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newWithdrawalService(db)
	u := createProfile(t, db, domain.GenderFemale, 0)
	require.NoError(t, repository.NewWalletRepository(db).Credit(u.ID, 1000))

	ctx := context.Background()
	_, err := svc.Request(ctx, u.ID, 0, "GTBank", "0123456789", "Jane Doe")
	require.ErrorIs(t, err, ErrNonPositiveAmount)

	_, err = svc.Request(ctx, u.ID, 1500, "GTBank", "0123456789", "Jane Doe")
	require.ErrorIs(t, err, ErrAmountExceedsBalance)
}

func TestApproveRechecksBalance(t *testing.T) {
	db := newTestDB(t)
	svc := newWithdrawalService(db)
	walletRepo := repository.NewWalletRepository(db)
	u := createProfile(t, db, domain.GenderFemale, 0)
	require.NoError(t, walletRepo.Credit(u.ID, 1000))

	ctx := context.Background()
	// Both pass the advisory check against the same balance.
	first, err := svc.Request(ctx, u.ID, 800, "GTBank", "0123456789", "Jane Doe")
	require.NoError(t, err)
	second, err := svc.Request(ctx, u.ID, 800, "GTBank", "0123456789", "Jane Doe")
	require.NoError(t, err)

	_, err = svc.Approve(ctx, first.ID)
	require.NoError(t, err)

	_, err = svc.Approve(ctx, second.ID)
	require.ErrorIs(t, err, repository.ErrInsufficientBalance)

	// The failed approval rolled back; the request is still pending and the
	// ledger shows only the first debit.
	got, err := repository.NewWithdrawalRepository(db).GetByID(second.ID)
	require.NoError(t, err)
	require.Equal(t, domain.WithdrawalPending, got.Status)

	wallet, err := walletRepo.GetByUserID(u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(200), wallet.Balance)
	require.Equal(t, int64(800), wallet.TotalWithdrawn)
}

func TestInvalidTransitions(t *testing.T) {
	db := newTestDB(t)
	svc := newWithdrawalService(db)
	walletRepo := repository.NewWalletRepository(db)
	u := createProfile(t, db, domain.GenderFemale, 0)
	require.NoError(t, walletRepo.Credit(u.ID, 1000))

	ctx := context.Background()
	w, err := svc.Request(ctx, u.ID, 400, "GTBank", "0123456789", "Jane Doe")
	require.NoError(t, err)

	// Processing a pending request skips approval.
	_, err = svc.Process(ctx, w.ID)
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.Approve(ctx, w.ID)
	require.NoError(t, err)

	// Double approve must not debit twice.
	_, err = svc.Approve(ctx, w.ID)
	require.ErrorIs(t, err, ErrInvalidTransition)
	wallet, err := walletRepo.GetByUserID(u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(600), wallet.Balance)

	// Rejecting after approval is refused.
	_, err = svc.Reject(ctx, w.ID)
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.Approve(ctx, 99999)
	require.ErrorIs(t, err, ErrWithdrawalNotFound)
	_, err = svc.Reject(ctx, 99999)
	require.ErrorIs(t, err, ErrWithdrawalNotFound)
}

func TestRejectLeavesLedgerUntouched(t *testing.T) {
	db := newTestDB(t)
	svc := newWithdrawalService(db)
	walletRepo := repository.NewWalletRepository(db)
	u := createProfile(t, db, domain.GenderFemale, 0)
	require.NoError(t, walletRepo.Credit(u.ID, 1000))

	ctx := context.Background()
	w, err := svc.Request(ctx, u.ID, 400, "GTBank", "0123456789", "Jane Doe")
	require.NoError(t, err)

	w, err = svc.Reject(ctx, w.ID)
	require.NoError(t, err)
	require.Equal(t, domain.WithdrawalRejected, w.Status)

	wallet, err := walletRepo.GetByUserID(u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1000), wallet.Balance)
	require.Equal(t, int64(0), wallet.TotalWithdrawn)

	// Rejected is terminal.
	_, err = svc.Approve(ctx, w.ID)
	require.ErrorIs(t, err, ErrInvalidTransition)
}
