package application

import (
	"context"

	"github.com/credpanel/credpanel/internal/domain/port/driven"
	"github.com/credpanel/credpanel/internal/queryparams"
)

// DefaultsProvider resolves the query-string defaults for list requests.
// Persisted view preferences win over the configured fallback; a missing or
// unreadable preference row falls back silently (preferences are a
// convenience, never a hard dependency).
type DefaultsProvider struct {
	prefs    driven.PreferenceStore
	fallback queryparams.Config
}

// NewDefaultsProvider creates a DefaultsProvider. prefs may be nil, in
// which case the fallback is always used.
func NewDefaultsProvider(prefs driven.PreferenceStore, fallback queryparams.Config) *DefaultsProvider {
	return &DefaultsProvider{prefs: prefs, fallback: fallback}
}

// Config returns the effective query defaults.
func (p *DefaultsProvider) Config(ctx context.Context) queryparams.Config {
	if p.prefs == nil {
		return p.fallback
	}

	prefs, err := p.prefs.Get(ctx)
	if err != nil || prefs == nil {
		return p.fallback
	}

	cfg := p.fallback
	if prefs.PageSize > 0 {
		cfg.DefaultPageSize = prefs.PageSize
	}
	if prefs.OrderBy != "" {
		cfg.DefaultOrderBy = prefs.OrderBy
	}
	return cfg
}
