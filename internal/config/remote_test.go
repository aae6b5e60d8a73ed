package config

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/tekkistudio/salesbot/internal/db"
)

func testOverrideStore(t *testing.T) *OverrideStore {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewOverrideStore(database)
}

func TestApplyOverrides(t *testing.T) {
	store := testOverrideStore(t)
	ctx := context.Background()

	if err := store.SetOverride(ctx, "welcome_message", "Bonjour depuis la base"); err != nil {
		t.Fatalf("setting override: %v", err)
	}
	if err := store.SetOverride(ctx, "initial_suggestions", `["Voir les business","Parler à un conseiller"]`); err != nil {
		t.Fatalf("setting override: %v", err)
	}

	cfg := DefaultConfig().Chatbot
	fileNumber := cfg.WhatsAppNumber
	if err := store.ApplyOverrides(ctx, &cfg); err != nil {
		t.Fatalf("applying overrides: %v", err)
	}

	if cfg.WelcomeMessage != "Bonjour depuis la base" {
		t.Errorf("welcome message not overridden: %q", cfg.WelcomeMessage)
	}
	if len(cfg.InitialSuggestions) != 2 || cfg.InitialSuggestions[0] != "Voir les business" {
		t.Errorf("initial suggestions not overridden: %v", cfg.InitialSuggestions)
	}
	if cfg.WhatsAppNumber != fileNumber {
		t.Errorf("whatsapp number changed without an override: %q", cfg.WhatsAppNumber)
	}
}

func TestSetOverrideUpserts(t *testing.T) {
	store := testOverrideStore(t)
	ctx := context.Background()

	for _, v := range []string{"first", "second"} {
		if err := store.SetOverride(ctx, "welcome_message", v); err != nil {
			t.Fatalf("setting override: %v", err)
		}
	}

	cfg := DefaultConfig().Chatbot
	if err := store.ApplyOverrides(ctx, &cfg); err != nil {
		t.Fatalf("applying overrides: %v", err)
	}
	if cfg.WelcomeMessage != "second" {
		t.Errorf("upsert kept stale value: %q", cfg.WelcomeMessage)
	}
}

func TestSetOverrideRejectsBadInput(t *testing.T) {
	store := testOverrideStore(t)
	ctx := context.Background()

	if err := store.SetOverride(ctx, "initial_suggestions", "not json"); err == nil {
		t.Error("expected error for a non-JSON list value")
	}
	if err := store.SetOverride(ctx, "no_such_key", "x"); err == nil {
		t.Error("expected error for an unknown key")
	}
}

func TestDeleteOverride(t *testing.T) {
	store := testOverrideStore(t)
	ctx := context.Background()

	if err := store.SetOverride(ctx, "whatsapp_number", "+221770000000"); err != nil {
		t.Fatalf("setting override: %v", err)
	}
	if err := store.DeleteOverride(ctx, "whatsapp_number"); err != nil {
		t.Fatalf("deleting override: %v", err)
	}
	if err := store.DeleteOverride(ctx, "whatsapp_number"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("deleting absent override: got %v, want sql.ErrNoRows", err)
	}
}
