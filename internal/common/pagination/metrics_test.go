package pagination

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestGetPageRangeBucket(t *testing.T) {
	tests := map[int]string{1: "1-10", 10: "1-10", 11: "11-50", 75: "51-100", 101: "100+"}
	for page, want := range tests {
		if got := getPageRangeBucket(page); got != want {
			t.Errorf("getPageRangeBucket(%d) = %q, want %q", page, got, want)
		}
	}
}

func TestRecordRequest(t *testing.T) {
	c := RequestsTotal.WithLabelValues("topic", "11-50")
	before := testutil.ToFloat64(c)
	RecordRequest("topic", 12)
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("counter = %v, want %v", got, before+1)
	}

	e := EmptyPagesTotal.WithLabelValues("topic")
	before = testutil.ToFloat64(e)
	RecordEmptyPage("topic")
	if got := testutil.ToFloat64(e); got != before+1 {
		t.Errorf("empty pages = %v, want %v", got, before+1)
	}
}
