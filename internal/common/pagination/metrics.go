package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts page requests.
	// Labels: kind (topic, newspaper, redactor), page_range (1-10, 11-50, ...)
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagination_requests_total",
			Help: "Total number of pagination requests",
		},
		[]string{"kind", "page_range"},
	)

	// EmptyPagesTotal counts pages requested past the end of a listing.
	EmptyPagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagination_empty_pages_total",
			Help: "Pages requested beyond the last record",
		},
		[]string{"kind"},
	)

	// ErrorsTotal counts pagination errors by type.
	// Labels: type (validation, store)
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagination_errors_total",
			Help: "Total number of pagination errors",
		},
		[]string{"type"},
	)
)

// RecordRequest records a page request for kind.
func RecordRequest(kind string, page int) {
	RequestsTotal.WithLabelValues(kind, getPageRangeBucket(page)).Inc()
}

// RecordEmptyPage records a request past the last page.
func RecordEmptyPage(kind string) {
	EmptyPagesTotal.WithLabelValues(kind).Inc()
}

// RecordError records an error metric.
// errorType should be one of: "validation", "store"
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

// getPageRangeBucket returns the page range bucket for a given page number.
func getPageRangeBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
