package payment

import (
	"context"
	"errors"
)

// StatusSuccessful is the provider's status for a settled charge.
const StatusSuccessful = "successful"

// ErrVerificationFailed means the provider answered but does not know the
// reference or refuses it. Permanent; callers must not retry.
var ErrVerificationFailed = errors.New("payment verification failed")

// Charge is the provider's view of a confirmed payment.
type Charge struct {
	ProviderChargeID string
	Reference        string
	Amount           int64
	Currency         string
	Status           string
}

// Provider verifies charges by the merchant reference. Transport errors are
// returned as plain errors and are safe to retry; a definite provider-side
// rejection is ErrVerificationFailed.
type Provider interface {
	VerifyByReference(ctx context.Context, txRef string) (*Charge, error)
}
