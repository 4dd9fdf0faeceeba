package core

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestExpvarMetricsRecorder(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")
	if rec.Name() == "" {
		t.Fatalf("expected generated name")
	}
	ctx := context.Background()
	rec.Observe(ctx, "merge", true, 10*time.Millisecond)
	rec.Observe(ctx, "merge", true, 5*time.Millisecond)
	rec.Observe(ctx, "merge", false, time.Millisecond)
	rec.Observe(ctx, "", true, time.Millisecond) // ignored

	snap := rec.Snapshot()
	if snap.Results["merge"]["success"] != 2 || snap.Results["merge"]["error"] != 1 {
		t.Fatalf("unexpected result counters: %+v", snap.Results)
	}
	if snap.DurationsMS["merge"] < 15 {
		t.Fatalf("durations not accumulated: %+v", snap.DurationsMS)
	}
	if len(snap.Results) != 1 {
		t.Fatalf("empty stage should be ignored: %+v", snap.Results)
	}
}

func TestPrometheusMetricsRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusMetricsRecorder(reg)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	ctx := context.Background()
	rec.Observe(ctx, "filter", true, 2*time.Millisecond)
	rec.Observe(ctx, "filter", true, 2*time.Millisecond)
	rec.Observe(ctx, "filter", false, 2*time.Millisecond)

	success := testutil.ToFloat64(rec.results.WithLabelValues("filter", "success"))
	if success != 2 {
		t.Fatalf("expected 2 successes, got %v", success)
	}
	failure := testutil.ToFloat64(rec.results.WithLabelValues("filter", "error"))
	if failure != 1 {
		t.Fatalf("expected 1 error, got %v", failure)
	}

	// double registration on the same registry must fail
	if _, err := NewPrometheusMetricsRecorder(reg); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}
