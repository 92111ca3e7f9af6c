package client

import (
	"net/url"
	"strconv"
	"strings"
)

// AllFilter is the UI-level sentinel meaning "do not filter".
const AllFilter = "all"

// PageQuery builds the page/limit query shared by every paginated list.
// Non-positive values are left to the server default.
func PageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

// AddFilter sets key=value unless value is empty or the "all" sentinel.
func AddFilter(q url.Values, key, value string) url.Values {
	if q == nil {
		q = url.Values{}
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || strings.EqualFold(trimmed, AllFilter) {
		return q
	}
	q.Set(key, trimmed)
	return q
}

// PathEscape escapes a single path segment such as an entity id.
func PathEscape(segment string) string {
	return url.PathEscape(segment)
}
