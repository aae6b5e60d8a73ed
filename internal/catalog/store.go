package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tekkistudio/salesbot/internal/db"
)

// Store provides read and seed access to the business listings table.
type Store struct {
	db *db.DB
}

// NewStore creates a catalog store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// ListAvailable returns all listings with status 'available', in insertion
// order. The order is stable so that classifier tie-breaks are deterministic.
func (s *Store) ListAvailable(ctx context.Context) ([]Business, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, slug, category, description, price, monthly_potential, roi_months, status, created_at, updated_at
		FROM businesses WHERE status = ? ORDER BY created_at, name`,
		string(StatusAvailable),
	)
	if err != nil {
		return nil, fmt.Errorf("querying businesses: %w", err)
	}
	defer rows.Close()

	var out []Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetBySlug returns a listing by its URL slug, or nil if absent.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*Business, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, slug, category, description, price, monthly_potential, roi_months, status, created_at, updated_at
		FROM businesses WHERE slug = ?`, slug)

	b, err := scanBusiness(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Upsert inserts or replaces a listing by slug. Used by the seed importer.
func (s *Store) Upsert(ctx context.Context, b Business) (Business, error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.Status == "" {
		b.Status = StatusAvailable
	}
	now := time.Now().UTC()

	existing, err := s.GetBySlug(ctx, b.Slug)
	if err != nil {
		return Business{}, fmt.Errorf("checking existing listing: %w", err)
	}
	if existing != nil {
		b.ID = existing.ID
		_, err = s.db.ExecContext(ctx, `
			UPDATE businesses
			SET name = ?, category = ?, description = ?, price = ?, monthly_potential = ?, roi_months = ?, status = ?, updated_at = ?
			WHERE id = ?`,
			b.Name, b.Category, b.Description, b.Price, b.MonthlyPotential, b.ROIMonths, string(b.Status), now, b.ID,
		)
		if err != nil {
			return Business{}, fmt.Errorf("updating listing %s: %w", b.Slug, err)
		}
		return b, nil
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO businesses (id, name, slug, category, description, price, monthly_potential, roi_months, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.Slug, b.Category, b.Description, b.Price, b.MonthlyPotential, b.ROIMonths, string(b.Status), now, now,
	)
	if err != nil {
		return Business{}, fmt.Errorf("inserting listing %s: %w", b.Slug, err)
	}
	return b, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBusiness(r rowScanner) (Business, error) {
	var b Business
	var status string
	err := r.Scan(&b.ID, &b.Name, &b.Slug, &b.Category, &b.Description,
		&b.Price, &b.MonthlyPotential, &b.ROIMonths, &status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return Business{}, err
	}
	b.Status = Status(status)
	return b, nil
}
