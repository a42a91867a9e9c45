// Package mailer renders transactional email and hands it to the external
// relay endpoint. The relay owns SMTP transport, credentials and retries;
// this package's responsibility ends at delivering a fully-rendered
// message.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SMTPConfig is the admin-managed relay configuration, forwarded verbatim
// with each send request.
type SMTPConfig struct {
	Host       string `json:"host"`
	Port       int    `json:"port"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	FromEmail  string `json:"from_email"`
	FromName   string `json:"from_name"`
	AdminEmail string `json:"admin_email"`
}

// SendRequest is the relay endpoint's contract.
type SendRequest struct {
	To          string      `json:"to"`
	Subject     string      `json:"subject"`
	HTMLContent string      `json:"htmlContent"`
	TextContent string      `json:"textContent"`
	SMTPConfig  *SMTPConfig `json:"smtpConfig,omitempty"`
}

// RelayClient posts send requests to the email relay.
type RelayClient struct {
	relayURL   string
	httpClient *http.Client
}

func NewRelayClient(relayURL string) *RelayClient {
	return &RelayClient{
		relayURL: relayURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send posts the message to the relay. Failures are downstream errors; the
// caller decides whether they block anything (they never block order
// creation).
func (c *RelayClient) Send(ctx context.Context, req SendRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.relayURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("call email relay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email relay returned status %d: %s", resp.StatusCode, string(raw))
	}

	return nil
}
