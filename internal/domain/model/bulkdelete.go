package model

// DeleteFailure records one credential the bulk delete could not remove.
type DeleteFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BulkDeleteResult enumerates which ids a bulk delete removed and which
// failed, so callers can refresh state precisely instead of collapsing the
// outcome to a single boolean. Deletions already applied server-side are
// never rolled back; a subsequent refetch shows the true controller state.
type BulkDeleteResult struct {
	Deleted []string        `json:"deleted"`
	Failed  []DeleteFailure `json:"failed"`
}

// OK reports whether every requested delete succeeded.
func (r BulkDeleteResult) OK() bool {
	return len(r.Failed) == 0
}
