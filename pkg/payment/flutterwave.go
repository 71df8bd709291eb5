package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"
)

// FlutterwaveProvider verifies charges via the v3 verify_by_reference API.
type FlutterwaveProvider struct {
	BaseURL   string
	SecretKey string
	client    *http.Client
}

func NewFlutterwaveProvider(baseURL, secretKey string) *FlutterwaveProvider {
	if baseURL == "" {
		baseURL = "https://api.flutterwave.com"
	}
	return &FlutterwaveProvider{
		BaseURL:   baseURL,
		SecretKey: secretKey,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type flutterwaveVerifyResp struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID       int64   `json:"id"`
		TxRef    string  `json:"tx_ref"`
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
		Status   string  `json:"status"`
	} `json:"data"`
}

func (p *FlutterwaveProvider) VerifyByReference(ctx context.Context, txRef string) (*Charge, error) {
	endpoint := fmt.Sprintf("%s/v3/transactions/verify_by_reference?tx_ref=%s", p.BaseURL, url.QueryEscape(txRef))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.SecretKey)
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flutterwave verify: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("flutterwave verify: status %d", resp.StatusCode)
	}
	var out flutterwaveVerifyResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("flutterwave verify: %w", err)
	}
	if out.Status != "success" {
		return nil, fmt.Errorf("%w: %s", ErrVerificationFailed, out.Message)
	}
	return &Charge{
		ProviderChargeID: fmt.Sprintf("%d", out.Data.ID),
		Reference:        out.Data.TxRef,
		Amount:           int64(math.Round(out.Data.Amount)),
		Currency:         out.Data.Currency,
		Status:           out.Data.Status,
	}, nil
}
