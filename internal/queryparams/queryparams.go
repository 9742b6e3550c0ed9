// Package queryparams translates the console URL query string to and from
// the pagination/sort descriptor. Decoding fills unspecified fields from
// configured defaults; encoding omits fields equal to their default so URLs
// stay minimal. Decode-then-encode of a normalized descriptor is a no-op.
package queryparams

import (
	"net/url"
	"strconv"

	"github.com/credpanel/credpanel/internal/domain/model"
)

// Query string keys understood by the console and forwarded to the controller.
const (
	keyPage     = "page"
	keyPageSize = "page_size"
	keyOrderBy  = "order_by"
)

// Config carries the defaults used when a field is absent or invalid.
type Config struct {
	DefaultPageSize int
	DefaultOrderBy  string
}

// DefaultConfig returns the stock defaults: 20 rows per page, ordered by name.
func DefaultConfig() Config {
	return Config{DefaultPageSize: 20, DefaultOrderBy: "name"}
}

// Parse decodes a query descriptor from URL values. Missing, malformed, or
// out-of-range fields fall back to the config defaults; the result is
// always normalized (page >= 1, page_size > 0, order_by non-empty).
func Parse(cfg Config, values url.Values) model.Query {
	q := model.Query{
		Page:     1,
		PageSize: cfg.DefaultPageSize,
		OrderBy:  cfg.DefaultOrderBy,
	}

	if v := values.Get(keyPage); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			q.Page = n
		}
	}
	if v := values.Get(keyPageSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			q.PageSize = n
		}
	}
	if v := values.Get(keyOrderBy); v != "" {
		q.OrderBy = v
	}

	return q
}

// ParseString is Parse over a raw query string. Unparseable input yields
// the defaults, matching Parse's treatment of malformed fields.
func ParseString(cfg Config, rawQuery string) model.Query {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		values = url.Values{}
	}
	return Parse(cfg, values)
}

// EncodeNonDefault encodes the descriptor as a query string, omitting every
// field equal to its default. Page 1 is always a default regardless of
// config. Returns "" when nothing differs.
func EncodeNonDefault(cfg Config, q model.Query) string {
	values := url.Values{}

	if q.Page > 1 {
		values.Set(keyPage, strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 && q.PageSize != cfg.DefaultPageSize {
		values.Set(keyPageSize, strconv.Itoa(q.PageSize))
	}
	if q.OrderBy != "" && q.OrderBy != cfg.DefaultOrderBy {
		values.Set(keyOrderBy, q.OrderBy)
	}

	return values.Encode()
}

// Values encodes the descriptor fully, defaults included. Backend requests
// always carry all three fields so the controller never guesses.
func Values(q model.Query) url.Values {
	values := url.Values{}
	values.Set(keyPage, strconv.Itoa(q.Page))
	values.Set(keyPageSize, strconv.Itoa(q.PageSize))
	values.Set(keyOrderBy, q.OrderBy)
	return values
}

// Overrides names the descriptor fields Replace may change. Nil fields are
// left as-is.
type Overrides struct {
	Page     *int
	PageSize *int
	OrderBy  *string
}

// Replace returns a copy of q with the non-nil override fields applied.
// The input descriptor is never mutated.
func Replace(q model.Query, o Overrides) model.Query {
	if o.Page != nil {
		q.Page = *o.Page
	}
	if o.PageSize != nil {
		q.PageSize = *o.PageSize
	}
	if o.OrderBy != nil {
		q.OrderBy = *o.OrderBy
	}
	return q
}
