package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// HandoffAlert tells the sales team a visitor asked for a human.
type HandoffAlert struct {
	SessionID   string    `json:"session_id"`
	Page        string    `json:"page"`
	UserText    string    `json:"user_text"`
	FunnelStage string    `json:"funnel_stage"`
	ReadyToBuy  bool      `json:"ready_to_buy"`
	At          time.Time `json:"at"`
}

// Dispatcher delivers handoff alerts to a configured webhook. A missing URL
// disables delivery; a failed delivery is logged and never propagated to the
// chat path.
type Dispatcher struct {
	webhookURL string
	client     *http.Client
}

// NewDispatcher creates a dispatcher for the given webhook URL.
func NewDispatcher(webhookURL string) *Dispatcher {
	return &Dispatcher{
		webhookURL: webhookURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Enabled reports whether a webhook is configured.
func (d *Dispatcher) Enabled() bool {
	return d.webhookURL != ""
}

// Notify delivers the alert best-effort.
func (d *Dispatcher) Notify(ctx context.Context, alert HandoffAlert) {
	if !d.Enabled() {
		return
	}
	if alert.At.IsZero() {
		alert.At = time.Now()
	}
	if err := d.send(ctx, alert); err != nil {
		log.Printf("notify: webhook delivery for session %s: %v", alert.SessionID, err)
	}
}

func (d *Dispatcher) send(ctx context.Context, alert HandoffAlert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("marshaling alert: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
