package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifyByReferenceSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v3/transactions/verify_by_reference", r.URL.Path)
		require.Equal(t, "CD_1_2_1700000000000", r.URL.Query().Get("tx_ref"))
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","message":"Tx fetched","data":{"id":9001,"tx_ref":"CD_1_2_1700000000000","amount":500.0,"currency":"NGN","status":"successful"}}`))
	}))
	defer srv.Close()

	p := NewFlutterwaveProvider(srv.URL, "sk-test")
	charge, err := p.VerifyByReference(context.Background(), "CD_1_2_1700000000000")
	require.NoError(t, err)
	require.Equal(t, "9001", charge.ProviderChargeID)
	require.Equal(t, "CD_1_2_1700000000000", charge.Reference)
	require.Equal(t, int64(500), charge.Amount)
	require.Equal(t, "NGN", charge.Currency)
	require.Equal(t, StatusSuccessful, charge.Status)
}

func TestVerifyByReferenceNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":"error","message":"No transaction was found for this id"}`))
	}))
	defer srv.Close()

	p := NewFlutterwaveProvider(srv.URL, "sk-test")
	_, err := p.VerifyByReference(context.Background(), "CD_1_2_1700000000000")
	require.ErrorIs(t, err, ErrVerificationFailed)
}

func TestVerifyByReferenceServerErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewFlutterwaveProvider(srv.URL, "sk-test")
	_, err := p.VerifyByReference(context.Background(), "CD_1_2_1700000000000")
	require.Error(t, err)
	// A provider outage must not look like a failed charge.
	require.NotErrorIs(t, err, ErrVerificationFailed)
}
