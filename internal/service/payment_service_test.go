package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"collegedate/internal/domain"
	"collegedate/internal/events"
	"collegedate/internal/models"
	"collegedate/internal/repository"
	"collegedate/pkg/payment"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPaymentService(db *gorm.DB, provider payment.Provider) *PaymentService {
	return NewPaymentService(db, provider, events.NopPublisher{}, newTestLogger())
}

func TestConfirmCreatesEverythingOnce(t *testing.T) {
	db := newTestDB(t)
	stub := payment.NewStubProvider()
	svc := newPaymentService(db, stub)
	payer := createProfile(t, db, domain.GenderMale, 0)
	recipient := createProfile(t, db, domain.GenderFemale, 0)

	ref := domain.MintIntentRef(payer.ID, recipient.ID, time.Now())
	stub.Complete(ref, domain.SwipePrice)

	out, err := svc.Confirm(context.Background(), ref, "", domain.SwipePrice)
	require.NoError(t, err)
	require.Equal(t, ConfirmCreated, out.Result)
	require.NotZero(t, out.TransactionID)

	txn, err := repository.NewTransactionRepository(db).GetByProviderRef(ref)
	require.NoError(t, err)
	require.Equal(t, payer.ID, txn.PayerID)
	require.Equal(t, recipient.ID, txn.RecipientID)
	require.Equal(t, domain.SwipePrice, txn.Amount)
	require.Equal(t, domain.PlatformFee, txn.PlatformFee)
	require.Equal(t, domain.RecipientEarning, txn.RecipientEarning)
	require.Equal(t, domain.TransactionCompleted, txn.Status)

	w, err := repository.NewWalletRepository(db).GetByUserID(recipient.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RecipientEarning, w.Balance)
	require.Equal(t, domain.RecipientEarning, w.TotalEarned)

	var swipes []models.Swipe
	require.NoError(t, db.Where("swiper_id = ?", payer.ID).Find(&swipes).Error)
	require.Len(t, swipes, 1)
	require.True(t, swipes[0].IsPaid)
	require.NotNil(t, swipes[0].TransactionID)
	require.Equal(t, txn.ID, *swipes[0].TransactionID)

	_, err = repository.NewConversationRepository(db).GetByPair(payer.ID, recipient.ID)
	require.NoError(t, err)

	// Duplicate delivery of the same reference changes nothing.
	again, err := svc.Confirm(context.Background(), ref, "", domain.SwipePrice)
	require.NoError(t, err)
	require.Equal(t, ConfirmAlreadyProcessed, again.Result)
	require.Equal(t, txn.ID, again.TransactionID)

	w, err = repository.NewWalletRepository(db).GetByUserID(recipient.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RecipientEarning, w.Balance)

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	require.Equal(t, int64(1), count)
	db.Model(&models.Swipe{}).Count(&count)
	require.Equal(t, int64(1), count)
	db.Model(&models.Conversation{}).Count(&count)
	require.Equal(t, int64(1), count)
}

func TestConfirmConcurrentChannels(t *testing.T) {
	db := newTestDB(t)
	stub := payment.NewStubProvider()
	svc := newPaymentService(db, stub)
	payer := createProfile(t, db, domain.GenderMale, 0)
	recipient := createProfile(t, db, domain.GenderFemale, 0)

	ref := domain.MintIntentRef(payer.ID, recipient.ID, time.Now())
	stub.Complete(ref, domain.SwipePrice)

	// Client verify and the webhook race over the same reference.
	var wg sync.WaitGroup
	results := make(chan ConfirmResult, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := svc.Confirm(context.Background(), ref, "", domain.SwipePrice)
			if err == nil {
				results <- out.Result
			}
		}()
	}
	wg.Wait()
	close(results)

	counts := map[ConfirmResult]int{}
	for r := range results {
		counts[r]++
	}
	require.Equal(t, 1, counts[ConfirmCreated])
	require.Equal(t, 1, counts[ConfirmAlreadyProcessed])

	w, err := repository.NewWalletRepository(db).GetByUserID(recipient.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RecipientEarning, w.Balance)

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	require.Equal(t, int64(1), count)
}

func TestConfirmMalformedReference(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService(db, payment.NewStubProvider())

	for _, ref := range []string{"", "garbage", "CD_1_1_1700000000000", "XX_1_2_1700000000000", "CD_0_2_1700000000000", "CD_a_b_c"} {
		out, err := svc.Confirm(context.Background(), ref, "", 0)
		require.ErrorIs(t, err, ErrInvalidReference, "ref %q", ref)
		require.Equal(t, ConfirmRejected, out.Result)
	}

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	require.Equal(t, int64(0), count)
}

func TestConfirmUnsuccessfulCharge(t *testing.T) {
	db := newTestDB(t)
	stub := payment.NewStubProvider()
	svc := newPaymentService(db, stub)
	payer := createProfile(t, db, domain.GenderMale, 0)
	recipient := createProfile(t, db, domain.GenderFemale, 0)

	ref := domain.MintIntentRef(payer.ID, recipient.ID, time.Now())
	stub.Fail(ref, domain.SwipePrice)

	out, err := svc.Confirm(context.Background(), ref, "", domain.SwipePrice)
	require.Error(t, err)
	require.Equal(t, ConfirmRejected, out.Result)

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	require.Equal(t, int64(0), count)
}

func TestConfirmAmountBelowPrice(t *testing.T) {
	db := newTestDB(t)
	stub := payment.NewStubProvider()
	svc := newPaymentService(db, stub)
	payer := createProfile(t, db, domain.GenderMale, 0)
	recipient := createProfile(t, db, domain.GenderFemale, 0)

	ref := domain.MintIntentRef(payer.ID, recipient.ID, time.Now())
	stub.Complete(ref, domain.SwipePrice-100)

	// Declared amount fast-fails before the provider round trip.
	out, err := svc.Confirm(context.Background(), ref, "", domain.SwipePrice-100)
	require.ErrorIs(t, err, ErrAmountBelowPrice)
	require.Equal(t, ConfirmRejected, out.Result)

	// The provider's confirmed amount is checked even when the caller
	// declares nothing.
	out, err = svc.Confirm(context.Background(), ref, "", 0)
	require.ErrorIs(t, err, ErrAmountBelowPrice)
	require.Equal(t, ConfirmRejected, out.Result)

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	require.Equal(t, int64(0), count)

	_, err = repository.NewWalletRepository(db).GetByUserID(recipient.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestConfirmUnknownReference(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService(db, payment.NewStubProvider())

	out, err := svc.Confirm(context.Background(), "CD_1_2_1700000000000", "", 0)
	require.ErrorIs(t, err, payment.ErrVerificationFailed)
	require.Equal(t, ConfirmRejected, out.Result)
}
