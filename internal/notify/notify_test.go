package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNotifyDeliversAlert(t *testing.T) {
	var got HandoffAlert
	received := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = true
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("content type = %q", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL)
	d.Notify(context.Background(), HandoffAlert{
		SessionID:   "s1",
		Page:        "/nos-business",
		UserText:    "Je veux parler à un conseiller",
		FunnelStage: "consideration",
	})

	if !received {
		t.Fatal("webhook was not called")
	}
	if got.SessionID != "s1" || got.FunnelStage != "consideration" {
		t.Errorf("unexpected alert: %+v", got)
	}
	if got.At.IsZero() {
		t.Error("timestamp was not filled in")
	}
}

func TestNotifyDisabledWithoutURL(t *testing.T) {
	d := NewDispatcher("")
	if d.Enabled() {
		t.Error("dispatcher with empty URL must be disabled")
	}
	// Must be a no-op, not a panic or network error.
	d.Notify(context.Background(), HandoffAlert{SessionID: "s1"})
}

func TestNotifySwallowsServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	// Delivery failure is logged, never returned.
	NewDispatcher(srv.URL).Notify(context.Background(), HandoffAlert{SessionID: "s1"})
}
