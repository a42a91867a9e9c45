package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	sandboxGatewayURL = "https://sandbox.sslcommerz.com/gwprocess/v4/api.php"
	liveGatewayURL    = "https://securepay.sslcommerz.com/gwprocess/v4/api.php"

	sandboxValidationURL = "https://sandbox.sslcommerz.com/validator/api/validationserverAPI.php"
	liveValidationURL    = "https://securepay.sslcommerz.com/validator/api/validationserverAPI.php"
)

// GatewayError is a rejection reported by the gateway itself, as opposed to
// a transport failure reaching it.
type GatewayError struct {
	Reason string
}

func (e *GatewayError) Error() string {
	return "payment gateway rejected initiation: " + e.Reason
}

// InitiationResult is the gateway's answer to a payment initiation.
type InitiationResult struct {
	Status         string `json:"status"`
	GatewayPageURL string `json:"GatewayPageURL"`
	FailedReason   string `json:"failedreason"`
	SessionKey     string `json:"sessionkey"`
}

// ValidationResult is the gateway's answer to a post-payment validation.
type ValidationResult struct {
	Status    string `json:"status"`
	TranID    string `json:"tran_id"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	RiskLevel string `json:"risk_level"`
}

// Valid reports whether the gateway confirmed the payment.
func (v *ValidationResult) Valid() bool {
	return v.Status == "VALID" || v.Status == "VALIDATED"
}

// Client posts initiation and validation calls to SSLCommerz.
type Client struct {
	gatewayURL    string
	validationURL string
	storeID       string
	storePassword string
	httpClient    *http.Client
}

// NewClient returns a gateway client pointed at the live or sandbox
// environment.
func NewClient(storeID, storePassword string, live bool) *Client {
	gatewayURL, validationURL := sandboxGatewayURL, sandboxValidationURL
	if live {
		gatewayURL, validationURL = liveGatewayURL, liveValidationURL
	}
	return &Client{
		gatewayURL:    gatewayURL,
		validationURL: validationURL,
		storeID:       storeID,
		storePassword: storePassword,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// NewClientWithURLs is used by tests to point the client at a local server.
func NewClientWithURLs(storeID, storePassword, gatewayURL, validationURL string) *Client {
	c := NewClient(storeID, storePassword, false)
	c.gatewayURL = gatewayURL
	c.validationURL = validationURL
	return c
}

// Initiate posts the form-encoded payment request and returns the hosted
// payment page URL. A non-SUCCESS gateway status is returned as a
// *GatewayError.
func (c *Client) Initiate(ctx context.Context, r *Request) (*InitiationResult, error) {
	body := r.Values().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build initiation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call payment gateway: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(raw))
	}

	var result InitiationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}

	if result.Status != "SUCCESS" {
		reason := result.FailedReason
		if reason == "" {
			reason = "no reason given"
		}
		return &result, &GatewayError{Reason: reason}
	}

	return &result, nil
}

// Validate asks the validator API whether the payment behind valID really
// settled. Called from the IPN handler before an order is confirmed.
func (c *Client) Validate(ctx context.Context, valID string) (*ValidationResult, error) {
	form := url.Values{}
	form.Set("store_id", c.storeID)
	form.Set("store_passwd", c.storePassword)
	form.Set("val_id", valID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.validationURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build validation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call validator: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read validator response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("validator returned status %d: %s", resp.StatusCode, string(raw))
	}

	var result ValidationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode validator response: %w", err)
	}

	return &result, nil
}
