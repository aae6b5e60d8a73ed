package config

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/tekkistudio/salesbot/internal/db"
)

// Keys recognised in the chatbot_config table. String keys hold the raw
// value; list keys hold a JSON array of strings.
const (
	keyWelcomeMessage      = "welcome_message"
	keyInitialSuggestions  = "initial_suggestions"
	keyHumanTriggerPhrases = "human_trigger_phrases"
	keyWhatsAppNumber      = "whatsapp_number"
)

// OverrideStore reads and writes chatbot configuration overrides stored in
// the database. Values stored here take precedence over .salesbot.yml, so the
// widget copy can be adjusted without redeploying.
type OverrideStore struct {
	db *db.DB
}

// NewOverrideStore returns an override store backed by the given database.
func NewOverrideStore(database *db.DB) *OverrideStore {
	return &OverrideStore{db: database}
}

// ApplyOverrides loads stored overrides and applies them onto cfg. Missing
// keys leave the file-based values untouched.
func (s *OverrideStore) ApplyOverrides(ctx context.Context, cfg *ChatbotConfig) error {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM chatbot_config`)
	if err != nil {
		return fmt.Errorf("loading chatbot config overrides: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("scanning chatbot config row: %w", err)
		}
		switch key {
		case keyWelcomeMessage:
			cfg.WelcomeMessage = value
		case keyWhatsAppNumber:
			cfg.WhatsAppNumber = value
		case keyInitialSuggestions:
			list, err := decodeStringList(value)
			if err != nil {
				return fmt.Errorf("override %s: %w", key, err)
			}
			cfg.InitialSuggestions = list
		case keyHumanTriggerPhrases:
			list, err := decodeStringList(value)
			if err != nil {
				return fmt.Errorf("override %s: %w", key, err)
			}
			cfg.HumanTriggerPhrases = list
		}
	}
	return rows.Err()
}

// SetOverride stores one override value. List-valued keys expect a JSON
// array of strings.
func (s *OverrideStore) SetOverride(ctx context.Context, key, value string) error {
	switch key {
	case keyWelcomeMessage, keyWhatsAppNumber:
	case keyInitialSuggestions, keyHumanTriggerPhrases:
		if _, err := decodeStringList(value); err != nil {
			return fmt.Errorf("override %s: %w", key, err)
		}
	default:
		return fmt.Errorf("unknown chatbot config key %q", key)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chatbot_config (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = datetime('now')`,
		key, value)
	if err != nil {
		return fmt.Errorf("storing override %s: %w", key, err)
	}
	return nil
}

// DeleteOverride removes a stored override so the file-based value applies
// again.
func (s *OverrideStore) DeleteOverride(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM chatbot_config WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting override %s: %w", key, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func decodeStringList(value string) ([]string, error) {
	var list []string
	if err := json.Unmarshal([]byte(value), &list); err != nil {
		return nil, fmt.Errorf("expected a JSON array of strings: %w", err)
	}
	return list, nil
}
