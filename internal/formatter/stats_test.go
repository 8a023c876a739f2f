package formatter

import (
	"testing"
	"time"
)

func TestRenderStatsSnapshotPercentiles(t *testing.T) {
	stats := NewRenderStats(time.Hour)
	stats.Record(100 * time.Microsecond)
	stats.Record(200 * time.Microsecond)
	stats.Record(300 * time.Microsecond)
	stats.Record(400 * time.Microsecond)
	stats.Record(500 * time.Microsecond)

	snap := stats.Snapshot()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinUs != 100 {
		t.Fatalf("expected min=100, got %d", snap.MinUs)
	}
	if snap.MaxUs != 500 {
		t.Fatalf("expected max=500, got %d", snap.MaxUs)
	}
	if snap.AvgUs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgUs)
	}
	if snap.P50Us != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Us)
	}
	if snap.P95Us != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Us)
	}
	if snap.P99Us != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Us)
	}
}

func TestRenderStatsPrunesExpiredSamples(t *testing.T) {
	stats := NewRenderStats(10 * time.Millisecond)
	stats.Record(100 * time.Microsecond)
	time.Sleep(25 * time.Millisecond)

	snap := stats.Snapshot()
	if snap.Count != 0 {
		t.Fatalf("expected count=0 after prune, got %d", snap.Count)
	}

	stats.Record(200 * time.Microsecond)
	snap = stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1 for fresh sample, got %d", snap.Count)
	}
	if snap.MinUs != 200 || snap.MaxUs != 200 {
		t.Fatalf("expected min=max=200, got min=%d max=%d", snap.MinUs, snap.MaxUs)
	}
}

func TestRenderStatsEmptySnapshot(t *testing.T) {
	stats := NewRenderStats(time.Hour)
	snap := stats.Snapshot()
	if snap.Count != 0 || snap.MinUs != 0 || snap.P99Us != 0 {
		t.Fatalf("expected zero snapshot, got %+v", snap)
	}
}

func TestRenderStatsRecordClampsNegativeDuration(t *testing.T) {
	stats := NewRenderStats(time.Hour)
	stats.Record(-5 * time.Microsecond)
	snap := stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1, got %d", snap.Count)
	}
	if snap.MinUs != 0 {
		t.Fatalf("expected negative duration clamped to 0, got %d", snap.MinUs)
	}
}
