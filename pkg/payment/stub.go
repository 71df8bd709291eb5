package payment

import (
	"context"
	"fmt"
	"sync"
)

// StubProvider is an in-memory provider for development and tests. Seed
// charges with Complete before verifying them.
type StubProvider struct {
	mu      sync.Mutex
	charges map[string]*Charge
}

func NewStubProvider() *StubProvider {
	return &StubProvider{charges: make(map[string]*Charge)}
}

// Complete registers a successful charge for the reference.
func (s *StubProvider) Complete(txRef string, amount int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.charges[txRef] = &Charge{
		ProviderChargeID: fmt.Sprintf("stub-%d", len(s.charges)+1),
		Reference:        txRef,
		Amount:           amount,
		Currency:         "NGN",
		Status:           StatusSuccessful,
	}
}

// Fail registers a charge the provider reports as unsuccessful.
func (s *StubProvider) Fail(txRef string, amount int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.charges[txRef] = &Charge{
		Reference: txRef,
		Amount:    amount,
		Currency:  "NGN",
		Status:    "failed",
	}
}

func (s *StubProvider) VerifyByReference(ctx context.Context, txRef string) (*Charge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.charges[txRef]
	if !ok {
		return nil, fmt.Errorf("%w: unknown reference", ErrVerificationFailed)
	}
	cp := *c
	return &cp, nil
}
