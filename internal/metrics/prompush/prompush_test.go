package prompush

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"csvclean/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// readCounterValue reads the current value of a Counter for assertions in tests.
func readCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()

	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("Counter.Write() error = %v", err)
	}
	if m.GetCounter() == nil {
		t.Fatalf("metric did not contain Counter value")
	}
	return m.GetCounter().GetValue()
}

// readSummaryCountSum reads sample count and sum from a SummaryVec for assertions in tests.
func readSummaryCountSum(t *testing.T, v *prometheus.SummaryVec, labels ...string) (uint64, float64) {
	t.Helper()

	m := &dto.Metric{}
	metric, ok := v.WithLabelValues(labels...).(prometheus.Metric)
	if !ok {
		t.Fatalf("SummaryVec.WithLabelValues(...) does not implement prometheus.Metric")
	}
	if err := metric.Write(m); err != nil {
		t.Fatalf("Summary.Write() error = %v", err)
	}
	if m.GetSummary() == nil {
		t.Fatalf("metric did not contain Summary value")
	}
	sum := m.GetSummary()
	return sum.GetSampleCount(), sum.GetSampleSum()
}

// TestNewBackend constructs backends with different inputs and validates
// field initialization, defaults, and basic metric usability.
func TestNewBackend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		jobName     string
		gatewayURL  string
		wantErr     bool
		wantJobName string
	}{
		{
			name:       "missing gateway URL returns error",
			jobName:    "clean-job",
			gatewayURL: "",
			wantErr:    true,
		},
		{
			name:        "empty job name uses default",
			jobName:     "",
			gatewayURL:  "http://pushgateway:9091",
			wantJobName: "csvclean",
		},
		{
			name:        "explicit job name is preserved",
			jobName:     "my-custom-job",
			gatewayURL:  "http://pushgateway:9091",
			wantJobName: "my-custom-job",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, err := NewBackend(tt.jobName, tt.gatewayURL)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewBackend(%q, %q) error = nil, want non-nil", tt.jobName, tt.gatewayURL)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBackend(%q, %q) error = %v", tt.jobName, tt.gatewayURL, err)
			}
			if b.jobName != tt.wantJobName {
				t.Fatalf("backend.jobName = %q, want %q", b.jobName, tt.wantJobName)
			}
			if b.gatewayURL != tt.gatewayURL {
				t.Fatalf("backend.gatewayURL = %q, want %q", b.gatewayURL, tt.gatewayURL)
			}

			// Label cardinality sanity: these calls should not panic.
			b.stepCounter.WithLabelValues("load", "ok").Add(1)
			b.stepDuration.WithLabelValues("dedup", "error").Observe(0.5)
			b.rowCounter.WithLabelValues("rows_in").Add(1)
			b.batchCounter.Add(1)
		})
	}
}

// TestIncCounter verifies that IncCounter routes updates to the correct
// Prometheus collectors and ignores unknown metric names.
func TestIncCounter(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("csvclean", "http://example.com")
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}

	b.IncCounter("csvclean_step_total", 3, metrics.Labels{"step": "dedup", "status": "ok"})
	b.IncCounter("csvclean_rows_total", 5, metrics.Labels{"kind": "duplicates_removed"})
	b.IncCounter("csvclean_batches_total", 2, metrics.Labels{})
	b.IncCounter("unknown_metric", 10, metrics.Labels{"foo": "bar"})

	if got := readCounterValue(t, b.stepCounter.WithLabelValues("dedup", "ok")); got != 3 {
		t.Fatalf("stepCounter value = %v, want 3", got)
	}
	if got := readCounterValue(t, b.rowCounter.WithLabelValues("duplicates_removed")); got != 5 {
		t.Fatalf("rowCounter value = %v, want 5", got)
	}
	if got := readCounterValue(t, b.batchCounter); got != 2 {
		t.Fatalf("batchCounter value = %v, want 2", got)
	}
	// A label combination that was never incremented stays at zero.
	if got := readCounterValue(t, b.stepCounter.WithLabelValues("x", "y")); got != 0 {
		t.Fatalf("stepCounter value = %v, want 0 (unchanged)", got)
	}
}

// TestIncCounterNilMetrics ensures that IncCounter is safe when underlying
// collectors are missing, and does not panic.
func TestIncCounterNilMetrics(t *testing.T) {
	t.Parallel()

	b := &Backend{} // zero-value backend with nil collectors

	b.IncCounter("csvclean_step_total", 1, metrics.Labels{"step": "s", "status": "ok"})
	b.IncCounter("csvclean_rows_total", 1, metrics.Labels{"kind": "rows_in"})
	b.IncCounter("csvclean_batches_total", 1, metrics.Labels{})
	b.IncCounter("unknown", 1, metrics.Labels{})
	b.ObserveHistogram("csvclean_step_duration_seconds", 1, metrics.Labels{"step": "s", "status": "ok"})
}

// TestObserveHistogram verifies that observations land on the summary for
// the step-duration metric and that other names are ignored.
func TestObserveHistogram(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("csvclean", "http://example.com")
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}

	b.ObserveHistogram("csvclean_step_duration_seconds", 1.5, metrics.Labels{"step": "load", "status": "ok"})
	b.ObserveHistogram("other_metric", 2.0, metrics.Labels{"step": "load", "status": "ok"})

	gotCount, gotSum := readSummaryCountSum(t, b.stepDuration, "load", "ok")
	if gotCount != 1 {
		t.Fatalf("summary sample count = %d, want 1", gotCount)
	}
	if gotSum != 1.5 {
		t.Fatalf("summary sample sum = %v, want 1.5", gotSum)
	}
}

// TestFlush verifies that Flush pushes the registry to the configured
// Pushgateway URL by sending an HTTP request to the gateway.
func TestFlush(t *testing.T) {
	t.Parallel()

	type pushRequestInfo struct {
		method  string
		path    string
		bodyLen int
	}

	reqCh := make(chan pushRequestInfo, 1)

	// Fake Pushgateway server that records the incoming request.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		body, _ := io.ReadAll(r.Body)

		reqCh <- pushRequestInfo{
			method:  r.Method,
			path:    r.URL.Path,
			bodyLen: len(body),
		}
		// Pushgateway typically returns 202 Accepted.
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	b, err := NewBackend("clean-job", server.URL)
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}

	// Add some data so the push body is non-empty.
	b.IncCounter("csvclean_step_total", 1, metrics.Labels{"step": "load", "status": "ok"})

	if err := b.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got pushRequestInfo
	select {
	case got = <-reqCh:
	default:
		t.Fatalf("Flush() did not result in any HTTP request to the Pushgateway")
	}
	if got.method == "" || got.path == "" {
		t.Fatalf("push request missing method/path: %+v", got)
	}
	if got.bodyLen == 0 {
		t.Fatalf("push request body length = 0, want > 0")
	}
}

// BenchmarkIncCounterStep measures the cost of incrementing the step counter
// through the Backend IncCounter abstraction.
func BenchmarkIncCounterStep(b *testing.B) {
	backend, err := NewBackend("csvclean", "http://example.com")
	if err != nil {
		b.Fatalf("NewBackend() error = %v", err)
	}

	labels := metrics.Labels{"step": "dedup", "status": "ok"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		backend.IncCounter("csvclean_step_total", 1, labels)
	}
}
