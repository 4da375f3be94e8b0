// Package pathutil reads record IDs from request paths and collapses ID
// segments so metric labels stay bounded.
package pathutil

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses a positive int64 ID.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// PathID reads the {id} wildcard of a ServeMux pattern such as
// "GET /topics/{id}".
func PathID(r *http.Request) (int64, error) {
	return ParseID(r.PathValue("id"))
}
