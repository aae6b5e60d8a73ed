package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tekkistudio/salesbot/internal/db"
)

// Store persists fallback entries in the fallback_entries table.
type Store struct {
	db *db.DB
}

// NewStore creates a knowledge store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Load returns all fallback entries ordered by position. An empty result is
// not an error; the caller decides whether to fall back to the builtin map.
func (s *Store) Load(ctx context.Context) (*Base, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, description, keywords, price, roi_note
		FROM fallback_entries ORDER BY position, name`)
	if err != nil {
		return nil, fmt.Errorf("querying fallback entries: %w", err)
	}
	defer rows.Close()

	base := NewBase()
	for rows.Next() {
		var e Entry
		var keywordsJSON string
		if err := rows.Scan(&e.Name, &e.Description, &keywordsJSON, &e.Price, &e.ROINote); err != nil {
			return nil, fmt.Errorf("scanning fallback entry: %w", err)
		}
		if err := json.Unmarshal([]byte(keywordsJSON), &e.Keywords); err != nil {
			return nil, fmt.Errorf("parsing keywords for %s: %w", e.Name, err)
		}
		base.Put(e)
	}
	return base, rows.Err()
}

// SaveAll replaces the stored fallback entries with the given set, keeping
// their order as positions. Used by the seed importer.
func (s *Store) SaveAll(ctx context.Context, entries []Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM fallback_entries`); err != nil {
		return fmt.Errorf("clearing fallback entries: %w", err)
	}

	now := time.Now().UTC()
	for i, e := range entries {
		keywords, err := json.Marshal(dedupeKeywords(e.Keywords))
		if err != nil {
			return fmt.Errorf("marshalling keywords for %s: %w", e.Name, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO fallback_entries (name, description, keywords, price, roi_note, position, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.Name, e.Description, string(keywords), e.Price, e.ROINote, i, now,
		)
		if err != nil {
			return fmt.Errorf("inserting fallback entry %s: %w", e.Name, err)
		}
	}

	return tx.Commit()
}
