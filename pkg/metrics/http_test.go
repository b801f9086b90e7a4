package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestObserveRequestRecordsFamilies(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/admin/v1/analytics/overview", 200, 25*time.Millisecond)
	m.ObserveRequest("POST", "/api/admin/v1/disputes/{disputeID}/resolve", 422, 5*time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	found := map[string]bool{}
	for _, fam := range families {
		found[fam.GetName()] = true
	}
	if !found["http_requests_total"] {
		t.Fatalf("expected http_requests_total family, got %v", found)
	}
	if !found["http_request_duration_seconds"] {
		t.Fatalf("expected http_request_duration_seconds family, got %v", found)
	}
}

func TestObserveRequestNilSafe(t *testing.T) {
	var m *HTTPMetrics
	m.ObserveRequest("GET", "/health/live", 200, time.Millisecond)

	empty := NewHTTPMetrics(nil)
	empty.ObserveRequest("GET", "", 302, time.Millisecond)
}

func TestStatusLabelBuckets(t *testing.T) {
	cases := map[int]string{200: "2xx", 301: "3xx", 404: "4xx", 503: "5xx"}
	for status, want := range cases {
		if got := statusLabel(status); got != want {
			t.Fatalf("status %d: expected %s got %s", status, want, got)
		}
	}
}
