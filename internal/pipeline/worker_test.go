package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/convertwi/internal/config"
	"github.com/dgallion1/convertwi/internal/parser"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWorker_ProcessCompletes(t *testing.T) {
	stats := NewConvertStats(time.Hour)
	w := NewWorker(&parser.NativeConverter{}, testEntries, stats, discardLogger())

	job := NewJob("doc.html", []byte("<h1>T</h1><p>API and ID</p>"))
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q (errors %v)", snap.Status, snap.Progress.Errors)
	}
	if snap.Progress.Annotations != 2 {
		t.Errorf("expected 2 annotations, got %d", snap.Progress.Annotations)
	}
	if res := job.Result(); res == nil || !strings.Contains(res.HTML, "<abbr") {
		t.Errorf("expected annotated result, got %+v", res)
	}
	if stats.Snapshot().Count != 1 {
		t.Errorf("expected one latency sample, got %d", stats.Snapshot().Count)
	}
}

func TestWorker_ProcessFailures(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     string
		phase    string
	}{
		{"unsupported", "scan.pdf", "%PDF", "parsing"},
		{"bad docx", "doc.docx", "not a zip", "parsing"},
		{"no h1", "doc.html", "<p>API</p>", "annotating"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := NewConvertStats(time.Hour)
			w := NewWorker(&parser.NativeConverter{}, testEntries, stats, discardLogger())
			job := NewJob(tt.filename, []byte(tt.data))
			w.Process(context.Background(), job)

			snap := job.Snapshot()
			if snap.Status != StatusFailed {
				t.Fatalf("expected failed, got %q", snap.Status)
			}
			if snap.Phase != tt.phase {
				t.Errorf("expected phase %q, got %q", tt.phase, snap.Phase)
			}
			if len(snap.Progress.Errors) != 1 || !strings.HasPrefix(snap.Progress.Errors[0], tt.phase+": ") {
				t.Errorf("expected one %s error, got %v", tt.phase, snap.Progress.Errors)
			}
			if job.Result() != nil {
				t.Error("expected no result on failure")
			}
			if stats.Snapshot().Failed != 1 {
				t.Errorf("expected one failure recorded, got %d", stats.Snapshot().Failed)
			}
		})
	}
}

func TestOrchestrator_SubmitAndComplete(t *testing.T) {
	cfg := config.Config{WorkerCount: 2, MaxQueueSize: 4, JobTTL: time.Hour}
	orch := NewOrchestrator(cfg, &parser.NativeConverter{}, testEntries, NewConvertStats(time.Hour), discardLogger())
	orch.Start(context.Background())
	defer orch.Stop()

	job := NewJob("doc.md", []byte("# Title\n\nThe API.\n"))
	if err := orch.Submit(job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orch.GetJob(job.ID) != job {
		t.Fatal("expected submitted job to be retrievable")
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if s := job.Snapshot().Status; s == StatusCompleted || s == StatusFailed {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if s := job.Snapshot().Status; s != StatusCompleted {
		t.Fatalf("expected completed, got %q", s)
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	// Workers are never started, so the queue fills up.
	cfg := config.Config{WorkerCount: 1, MaxQueueSize: 1, JobTTL: time.Hour}
	orch := NewOrchestrator(cfg, &parser.NativeConverter{}, testEntries, NewConvertStats(time.Hour), discardLogger())

	if err := orch.Submit(NewJob("a.html", nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := NewJob("b.html", nil)
	err := orch.Submit(second)
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
	if second.Snapshot().Status != StatusFailed {
		t.Errorf("expected rejected job to be failed, got %q", second.Snapshot().Status)
	}
	if orch.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", orch.QueueDepth())
	}
}
