// Package http delivers run notifications to a webhook endpoint.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ayumu-labs/wishwatch/internal/domain"
	"github.com/ayumu-labs/wishwatch/internal/ports"
)

// WebhookNotifier implements ports.Notifier by POSTing a JSON payload
// of the shape {"text": ...} to a configured webhook URL.
type WebhookNotifier struct {
	client     ports.HTTPClient
	webhookURL string
	log        zerolog.Logger
}

// NewWebhookNotifier creates a notifier for the given webhook URL.
func NewWebhookNotifier(client ports.HTTPClient, webhookURL string, log zerolog.Logger) *WebhookNotifier {
	return &WebhookNotifier{client: client, webhookURL: webhookURL, log: log}
}

// Notify delivers text to the webhook. Any HTTP status >= 400 is a
// delivery failure.
func (n *WebhookNotifier) Notify(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("%w: encode payload: %v", domain.ErrNotify, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrNotify, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotify, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: status %d: %s", domain.ErrNotify, resp.StatusCode, string(body))
	}

	n.log.Debug().Int("bytes", len(payload)).Msg("notification delivered")
	return nil
}
