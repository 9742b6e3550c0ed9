package driven

import (
	"context"

	"github.com/credpanel/credpanel/internal/domain/model"
)

// PreferenceStore defines the driven port for persisted console view
// preferences (default page size and sort order).
type PreferenceStore interface {
	// Get returns the stored preferences. Returns (nil, nil) when none have
	// been saved yet; callers fall back to configured defaults.
	Get(ctx context.Context) (*model.ViewPreferences, error)

	// Save stores or replaces the preferences.
	Save(ctx context.Context, prefs model.ViewPreferences) error
}
