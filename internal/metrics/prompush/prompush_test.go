package prompush

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chrisdamba/foodvenues/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewBackend_RequiresURL(t *testing.T) {
	if _, err := NewBackend("job", ""); err == nil {
		t.Fatal("NewBackend expected error for empty gateway URL")
	}
}

func TestBackend_Counters(t *testing.T) {
	b, err := NewBackend("", "http://localhost:9091")
	if err != nil {
		t.Fatalf("NewBackend returned unexpected error: %v", err)
	}

	b.IncCounter(metrics.RowsTotal, 3, metrics.Labels{"kind": "processed"})
	b.IncCounter(metrics.RowsTotal, 2, metrics.Labels{"kind": "processed"})
	b.IncCounter(metrics.StepTotal, 1, metrics.Labels{"step": "price", "status": "success"})
	b.IncCounter("unknown_metric", 1, nil)
	b.ObserveHistogram(metrics.StepDurationSeconds, 0.5, metrics.Labels{"step": "price", "status": "success"})

	if got := testutil.ToFloat64(b.rowCounter.WithLabelValues("processed")); got != 5 {
		t.Errorf("rows processed = %v, want 5", got)
	}
	if got := testutil.ToFloat64(b.stepCounter.WithLabelValues("price", "success")); got != 1 {
		t.Errorf("step total = %v, want 1", got)
	}
	if b.jobName != "foodvenues" {
		t.Errorf("jobName = %s, want foodvenues", b.jobName)
	}
}

func TestBackend_Flush(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	b, err := NewBackend("clean", srv.URL)
	if err != nil {
		t.Fatalf("NewBackend returned unexpected error: %v", err)
	}
	b.IncCounter(metrics.RowsTotal, 1, metrics.Labels{"kind": "processed"})

	if err := b.Flush(); err != nil {
		t.Fatalf("Flush returned unexpected error: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Errorf("method = %s, want PUT", gotMethod)
	}
	if gotPath != "/metrics/job/clean" {
		t.Errorf("path = %s, want /metrics/job/clean", gotPath)
	}
}
