package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/credpanel/credpanel/internal/domain/model"
	"github.com/credpanel/credpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.PreferenceStore = (*PrefsRepo)(nil)

// PrefsRepo is the SQLite implementation of the PreferenceStore port.
// Preferences are a single row; Save replaces it wholesale.
type PrefsRepo struct {
	db *DB
}

// NewPrefsRepo creates a new PrefsRepo.
func NewPrefsRepo(db *DB) *PrefsRepo {
	return &PrefsRepo{db: db}
}

// Get returns the stored view preferences, or (nil, nil) when none have
// been saved yet.
func (r *PrefsRepo) Get(ctx context.Context) (*model.ViewPreferences, error) {
	const query = `SELECT page_size, order_by, updated_at FROM view_preferences WHERE id = 1`

	var prefs model.ViewPreferences
	var updatedAt string
	err := r.db.Reader.QueryRowContext(ctx, query).Scan(&prefs.PageSize, &prefs.OrderBy, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get view preferences: %w", err)
	}

	prefs.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &prefs, nil
}

// Save stores or replaces the view preferences.
func (r *PrefsRepo) Save(ctx context.Context, prefs model.ViewPreferences) error {
	if prefs.PageSize < 1 {
		return fmt.Errorf("save view preferences: page size must be positive, got %d", prefs.PageSize)
	}
	if prefs.OrderBy == "" {
		return fmt.Errorf("save view preferences: order_by is empty")
	}

	const query = `INSERT OR REPLACE INTO view_preferences (id, page_size, order_by, updated_at) VALUES (1, ?, ?, CURRENT_TIMESTAMP)`
	_, err := r.db.Writer.ExecContext(ctx, query, prefs.PageSize, prefs.OrderBy)
	if err != nil {
		return fmt.Errorf("save view preferences: %w", err)
	}
	return nil
}

// parseTime parses SQLite timestamp text in either CURRENT_TIMESTAMP or
// RFC3339 form.
func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
