package metrics

import (
	"strings"
	"testing"
)

func TestRenderExposesCounters(t *testing.T) {
	IncQuerySubmitted()
	IncQueryCompleted()
	IncQueryFailed()

	out := Render()
	for _, name := range []string{"query_submitted_total", "query_completed_total", "query_failed_total"} {
		if !strings.Contains(out, "# TYPE "+name+" counter") {
			t.Fatalf("missing counter %s:\n%s", name, out)
		}
	}
}

func TestRenderExposesHistogram(t *testing.T) {
	ObserveBackendDurationMs(120)
	ObserveBackendDurationMs(4500)

	out := Render()
	if !strings.Contains(out, "# TYPE backend_duration_ms histogram") {
		t.Fatalf("missing histogram:\n%s", out)
	}
	if !strings.Contains(out, `backend_duration_ms_bucket{le="+Inf"}`) {
		t.Fatalf("missing +Inf bucket:\n%s", out)
	}
}

func TestObserveClampsNegative(t *testing.T) {
	// Must not panic or skew the sum below zero.
	ObserveBackendDurationMs(-5)
	if !strings.Contains(Render(), "backend_duration_ms_sum") {
		t.Fatalf("histogram sum missing")
	}
}
