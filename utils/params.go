package utils

import (
	"net/http"
	"strconv"
)

// ParsePagination reads page and limit query params and returns skip/limit.
// limit defaults to def and is capped at max.
func ParsePagination(r *http.Request, def, max int64) (skip, limit int64) {
	q := r.URL.Query()

	page, err := strconv.ParseInt(q.Get("page"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err = strconv.ParseInt(q.Get("limit"), 10, 64)
	if err != nil || limit < 1 {
		limit = def
	}
	if limit > max {
		limit = max
	}

	return (page - 1) * limit, limit
}
