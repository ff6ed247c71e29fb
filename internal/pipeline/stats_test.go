package pipeline

import (
	"testing"
	"time"
)

func TestConvertStatsSnapshotPercentiles(t *testing.T) {
	stats := NewConvertStats(time.Hour)
	for _, ms := range []int64{100, 200, 300, 400, 500} {
		stats.Record(time.Duration(ms) * time.Millisecond)
	}

	snap := stats.Snapshot()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinMs != 100 {
		t.Fatalf("expected min=100, got %d", snap.MinMs)
	}
	if snap.MaxMs != 500 {
		t.Fatalf("expected max=500, got %d", snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Ms)
	}
}

func TestConvertStatsPrunesExpiredSamples(t *testing.T) {
	stats := NewConvertStats(10 * time.Millisecond)
	stats.Record(100 * time.Millisecond)
	stats.RecordFailure()
	time.Sleep(25 * time.Millisecond)

	snap := stats.Snapshot()
	if snap.Count != 0 || snap.Failed != 0 {
		t.Fatalf("expected empty snapshot after prune, got %+v", snap)
	}

	stats.Record(200 * time.Millisecond)
	snap = stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1 for fresh sample, got %d", snap.Count)
	}
	if snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected min=max=200, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestConvertStatsCountsFailures(t *testing.T) {
	stats := NewConvertStats(time.Hour)
	stats.RecordFailure()
	stats.RecordFailure()

	snap := stats.Snapshot()
	if snap.Failed != 2 {
		t.Fatalf("expected failed=2, got %d", snap.Failed)
	}
	if snap.Count != 0 {
		t.Fatalf("expected no latency samples, got %d", snap.Count)
	}
}

func TestConvertStatsRecordClampsNegativeDuration(t *testing.T) {
	stats := NewConvertStats(time.Hour)
	stats.Record(-10 * time.Millisecond)
	snap := stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1, got %d", snap.Count)
	}
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}
