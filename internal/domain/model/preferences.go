package model

import "time"

// ViewPreferences are the persisted console-side list defaults. They seed
// the query descriptor when the URL does not specify a field.
type ViewPreferences struct {
	PageSize  int
	OrderBy   string
	UpdatedAt time.Time
}
