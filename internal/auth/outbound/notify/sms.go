package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"
)

// ErrSMSGatewayURLRequired is returned when the gateway URL is missing.
var ErrSMSGatewayURLRequired = errors.New("notify: sms gateway url is required")

// SMS posts OTP messages to an HTTP SMS gateway.
type SMS struct {
	client   *http.Client
	url      string
	apiKey   string
	senderID string
}

type SMSConfig struct {
	// URL is the gateway send endpoint.
	URL string
	// APIKey authenticates against the gateway.
	APIKey string
	// SenderID is the sender name shown on the handset.
	SenderID string
	// Client overrides the default http.Client.
	Client *http.Client
}

func NewSMS(cfg SMSConfig) (*SMS, error) {
	if cfg.URL == "" {
		return nil, ErrSMSGatewayURLRequired
	}

	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}

	return &SMS{
		client:   client,
		url:      cfg.URL,
		apiKey:   cfg.APIKey,
		senderID: cfg.SenderID,
	}, nil
}

type smsPayload struct {
	To      string `json:"to"`
	From    string `json:"from,omitempty"`
	Message string `json:"message"`
}

func (s *SMS) Send(ctx context.Context, mobile, message string) error {
	body, err := json.Marshal(smsPayload{
		To:      formatMobile(mobile),
		From:    s.senderID,
		Message: message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notify: sms gateway responded %d", resp.StatusCode)
	}

	return nil
}

// formatMobile normalizes a mobile number to E.164. Bare 10-digit numbers get
// the default +91 country code.
func formatMobile(mobile string) string {
	var b strings.Builder
	for _, r := range mobile {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if len(digits) == 10 {
		return "+91" + digits
	}
	return "+" + digits
}
