// Package notifier delivers outbound email.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/committee-site/pkg/core/domain"
	"github.com/wadjakorntonsri/committee-site/pkg/ports"
)

const DefaultResendURL = "https://api.resend.com"

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("email service not configured")

// Resend sends email through the Resend HTTP API.
type Resend struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewResend(apiKey, baseURL string, httpClient *http.Client) *Resend {
	if baseURL == "" {
		baseURL = DefaultResendURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Resend{apiKey: apiKey, baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (r *Resend) Send(ctx context.Context, email domain.Email) error {
	if r.apiKey == "" {
		return ErrNotConfigured
	}
	body, err := json.Marshal(email)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("resend: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

// Log writes email to the logger instead of sending it. Used when no API key
// is configured in local development.
type Log struct {
	log *zap.Logger
}

func NewLog(log *zap.Logger) *Log { return &Log{log: log} }

func (l *Log) Send(_ context.Context, email domain.Email) error {
	l.log.Info("Email not sent (log notifier)",
		zap.String("from", email.From),
		zap.Strings("to", email.To),
		zap.String("subject", email.Subject),
	)
	return nil
}

var (
	_ ports.Notifier = (*Resend)(nil)
	_ ports.Notifier = (*Log)(nil)
)
