package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("expected default provider %q, got %q", ProviderOpenAI, cfg.Provider)
	}
	if cfg.DataDir != "data" {
		t.Errorf("expected default data_dir %q, got %q", "data", cfg.DataDir)
	}
	if cfg.RemoteTimeoutSec != 10 {
		t.Errorf("expected default remote_timeout_seconds 10, got %d", cfg.RemoteTimeoutSec)
	}
	if cfg.Server.Port != 8090 {
		t.Errorf("expected default server.port 8090, got %d", cfg.Server.Port)
	}
	if cfg.Chatbot.WelcomeMessage == "" {
		t.Error("expected a default welcome message")
	}
	if len(cfg.Chatbot.InitialSuggestions) == 0 {
		t.Error("expected default initial suggestions")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.salesbot.yml")

	original := DefaultConfig()
	original.Provider = ProviderAnthropic
	original.Model = "claude-haiku-4-5-20251001"
	original.DataDir = "var/salesbot"
	original.Chatbot.WhatsAppNumber = "221771234567"
	original.Chatbot.HumanTriggerPhrases = []string{"parler à un humain"}

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.Provider != original.Provider {
		t.Errorf("provider: got %q, want %q", loaded.Provider, original.Provider)
	}
	if loaded.Model != original.Model {
		t.Errorf("model: got %q, want %q", loaded.Model, original.Model)
	}
	if loaded.DataDir != original.DataDir {
		t.Errorf("data_dir: got %q, want %q", loaded.DataDir, original.DataDir)
	}
	if loaded.Chatbot.WhatsAppNumber != original.Chatbot.WhatsAppNumber {
		t.Errorf("whatsapp_number: got %q, want %q", loaded.Chatbot.WhatsAppNumber, original.Chatbot.WhatsAppNumber)
	}
	if len(loaded.Chatbot.HumanTriggerPhrases) != 1 || loaded.Chatbot.HumanTriggerPhrases[0] != "parler à un humain" {
		t.Errorf("human_trigger_phrases: got %v", loaded.Chatbot.HumanTriggerPhrases)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("expected default provider, got %q", cfg.Provider)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Override provider via env var.
	os.Setenv("SALESBOT_PROVIDER", "ollama")
	defer os.Unsetenv("SALESBOT_PROVIDER")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Provider != ProviderOllama {
		t.Errorf("env override failed: got %q, want %q", loaded.Provider, ProviderOllama)
	}
}

func TestValidateValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty provider", func(c *Config) { c.Provider = "" }},
		{"unknown provider", func(c *Config) { c.Provider = "bard" }},
		{"empty model", func(c *Config) { c.Model = "" }},
		{"bad embedding provider", func(c *Config) { c.EmbeddingProvider = "bard" }},
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"zero timeout", func(c *Config) { c.RemoteTimeoutSec = 0 }},
		{"negative rpm", func(c *Config) { c.RateLimitRPM = -1 }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestAPIKeyEnvVar(t *testing.T) {
	if got := APIKeyEnvVar(ProviderOpenAI); got != "OPENAI_API_KEY" {
		t.Errorf("openai: got %q", got)
	}
	if got := APIKeyEnvVar(ProviderAnthropic); got != "ANTHROPIC_API_KEY" {
		t.Errorf("anthropic: got %q", got)
	}
	if got := APIKeyEnvVar(ProviderOllama); got != "" {
		t.Errorf("ollama should have no API key env var, got %q", got)
	}
}
