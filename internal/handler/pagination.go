package handler

import (
	"net/http"
	"strconv"
)

// Page sizes for the collection endpoints (admin user list, activity trail).
const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

type PageParams struct {
	Limit  int
	Offset int
}

// ParsePage reads ?limit= and ?offset= from the query string. Bad or
// out-of-range values fall back to the default page rather than erroring.
func ParsePage(r *http.Request) PageParams {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	if limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	return PageParams{Limit: limit, Offset: offset}
}
