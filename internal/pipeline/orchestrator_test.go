package pipeline

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/replyfmt/internal/config"
	"github.com/dgallion1/replyfmt/internal/formatter"
	"github.com/dgallion1/replyfmt/internal/schema"
)

func testConfig() config.Config {
	return config.Config{
		WorkerCount:  2,
		MaxQueueSize: 4,
		JobTTL:       time.Hour,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitForStatus(t *testing.T, job *Job, want ...JobStatus) JobStatus {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		snap := job.Snapshot()
		for _, s := range want {
			if snap.Status == s {
				return s
			}
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %v, status %q", want, snap.Status)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestWorker_ProcessFormatsAllItems(t *testing.T) {
	fmtr := formatter.New(formatter.Options{})
	stats := formatter.NewRenderStats(time.Hour)
	w := NewWorker(fmtr, stats, testLogger())

	job := NewJob("w-1", []Item{
		{ID: "a", Text: `{"score": 8}`},
		{ID: "b", Text: "## Dialogue\nGood."},
	})
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q", snap.Status)
	}
	if len(snap.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(snap.Results))
	}
	if snap.Results[0].Mode != formatter.ModeStructured {
		t.Errorf("expected structured mode for item a, got %q", snap.Results[0].Mode)
	}
	if snap.Results[1].Mode != formatter.ModeProse {
		t.Errorf("expected prose mode for item b, got %q", snap.Results[1].Mode)
	}
	if !strings.Contains(snap.Results[1].HTML, "Dialogue") {
		t.Errorf("rendered HTML missing content: %q", snap.Results[1].HTML)
	}
	if stats.Snapshot().Count != 2 {
		t.Errorf("expected 2 latency samples, got %d", stats.Snapshot().Count)
	}
}

func TestWorker_SchemaErrorYieldsPartial(t *testing.T) {
	fmtr := formatter.New(formatter.Options{})
	stats := formatter.NewRenderStats(time.Hour)
	w := NewWorker(fmtr, stats, testLogger())

	job := NewJob("w-2", []Item{
		{ID: "a", Text: `{"x": 1}`, SchemaErr: "schema is not valid JSON"},
	})
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusPartial {
		t.Fatalf("expected partial, got %q", snap.Status)
	}
	if snap.Results[0].Error == "" {
		t.Error("expected schema error recorded on the result")
	}
	// The item still renders despite the bad schema.
	if snap.Results[0].HTML == "" {
		t.Error("expected HTML despite schema error")
	}
}

func TestWorker_HonorsExplicitSchema(t *testing.T) {
	fmtr := formatter.New(formatter.Options{})
	stats := formatter.NewRenderStats(time.Hour)
	w := NewWorker(fmtr, stats, testLogger())

	sch, err := schema.Parse([]byte(`{"type": "object", "properties": {"kept": {"type": "string"}}}`))
	if err != nil {
		t.Fatalf("unexpected schema error: %v", err)
	}
	job := NewJob("w-3", []Item{
		{ID: "a", Text: `{"kept": "yes", "dropped": "no"}`, Schema: sch},
	})
	w.Process(context.Background(), job)

	html := job.Snapshot().Results[0].HTML
	if !strings.Contains(html, "Kept") || strings.Contains(html, "Dropped") {
		t.Errorf("schema not applied to batch item: %q", html)
	}
}

func TestWorker_CanceledContextLeavesPartial(t *testing.T) {
	fmtr := formatter.New(formatter.Options{})
	stats := formatter.NewRenderStats(time.Hour)
	w := NewWorker(fmtr, stats, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	job := NewJob("w-4", []Item{{ID: "a", Text: "text"}})
	w.Process(ctx, job)

	if job.Snapshot().Status != StatusPartial {
		t.Errorf("expected partial after cancellation, got %q", job.Snapshot().Status)
	}
}

func TestOrchestrator_EndToEnd(t *testing.T) {
	cfg := testConfig()
	fmtr := formatter.New(formatter.Options{})
	stats := formatter.NewRenderStats(time.Hour)
	o := NewOrchestrator(cfg, fmtr, stats, testLogger())

	o.Start(context.Background())
	defer o.Stop()

	job := NewJob(NewJobID(), []Item{
		{ID: "a", Text: `{"overall_score": 9}`},
		{ID: "b", Text: "plain prose"},
	})
	if err := o.Submit(job); err != nil {
		t.Fatalf("unexpected submit error: %v", err)
	}

	waitForStatus(t, job, StatusCompleted)

	got := o.GetJob(job.ID)
	if got == nil {
		t.Fatal("job not retrievable after completion")
	}
	if n := len(got.Snapshot().Results); n != 2 {
		t.Errorf("expected 2 results, got %d", n)
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	cfg := testConfig()
	cfg.MaxQueueSize = 1
	fmtr := formatter.New(formatter.Options{})
	stats := formatter.NewRenderStats(time.Hour)
	// Not started: nothing drains the queue.
	o := NewOrchestrator(cfg, fmtr, stats, testLogger())

	first := NewJob("q-1", nil)
	if err := o.Submit(first); err != nil {
		t.Fatalf("first submit should fit: %v", err)
	}
	second := NewJob("q-2", nil)
	if err := o.Submit(second); err == nil {
		t.Fatal("expected queue-full error")
	}
	if second.Snapshot().Status != StatusFailed {
		t.Errorf("expected rejected job marked failed, got %q", second.Snapshot().Status)
	}
	// Rejected jobs stay queryable so the client sees the failure.
	if o.GetJob("q-2") == nil {
		t.Error("rejected job not retrievable")
	}
}
