package model

// Query is the pagination/sort descriptor for the credential list. It is
// the single source of truth for the current list position and is derived
// bidirectionally from the console URL query string.
type Query struct {
	Page     int
	PageSize int
	OrderBy  string
}

// Normalize clamps the descriptor to valid ranges, falling back to the
// supplied defaults where a field is out of range or empty.
func (q Query) Normalize(defaultPageSize int, defaultOrderBy string) Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	if q.OrderBy == "" {
		q.OrderBy = defaultOrderBy
	}
	return q
}
