// Package viewmodel defines the presentation structs consumed by the web
// views. Viewmodels are plain data: all derivation happens in the web
// adapter's converters.
package viewmodel

// CredentialRowViewModel is one row of the credential list table.
type CredentialRowViewModel struct {
	ID          string
	Name        string
	Kind        string
	Description string
	NotesHTML   string // sanitized markdown, safe to emit raw
	ModifiedAt  string
	Selected    bool
}

// PaginationViewModel contains pagination metadata for the list footer.
type PaginationViewModel struct {
	Page       int
	PageSize   int
	TotalCount int
	StartIndex int
	EndIndex   int
	HasPrev    bool
	HasNext    bool
	PrevURL    string
	NextURL    string
}

// ToolbarViewModel drives the list toolbar affordances.
type ToolbarViewModel struct {
	CanAdd        bool
	AllSelected   bool
	SelectedCount int
	Disabled      bool // either workflow busy
}

// ErrorModalViewModel drives the deletion error modal.
type ErrorModalViewModel struct {
	Open   bool
	Detail string
}

// CredentialListViewModel is the full page model for the credential list.
type CredentialListViewModel struct {
	Rows         []CredentialRowViewModel
	Count        int
	Pagination   PaginationViewModel
	Toolbar      ToolbarViewModel
	ContentError string // renders in place of the list when non-empty
	ErrorModal   ErrorModalViewModel
	CSRFToken    string
	ActionQuery  string // encoded non-default query string, "" when all defaults
}
