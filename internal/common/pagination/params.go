package pagination

import (
	"net/http"
	"strconv"
	"strings"

	"newspaper-agency/internal/domain/entity"
)

// Params represents one page request.
type Params struct {
	Page  int // 1-based page number
	Limit int // Items per page, fixed per entity kind
}

// NewParams pairs a page number with the page size of a listing.
func NewParams(page, limit int) Params {
	return Params{Page: page, Limit: limit}
}

// ParsePage parses the "page" query value. A blank value means page 1.
// Anything that is not a positive integer is a validation failure on "page".
func ParsePage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, entity.NewValidationErrors("page", "must be a positive integer")
	}
	return page, nil
}

// ParseQueryParams reads the page number from the request query string.
// Only the page is client-controlled; limit is the listing's page size.
func ParseQueryParams(r *http.Request, limit int) (Params, error) {
	page, err := ParsePage(r.URL.Query().Get("page"))
	if err != nil {
		return Params{Page: 1, Limit: limit}, err
	}
	return Params{Page: page, Limit: limit}, nil
}
