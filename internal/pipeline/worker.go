package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/convertwi/internal/acronym"
	"github.com/dgallion1/convertwi/internal/parser"
)

// Worker processes a single conversion job.
type Worker struct {
	docx    parser.DocxConverter
	entries []acronym.Entry
	stats   *ConvertStats
	log     *slog.Logger
}

func NewWorker(docx parser.DocxConverter, entries []acronym.Entry, stats *ConvertStats, log *slog.Logger) *Worker {
	return &Worker{
		docx:    docx,
		entries: entries,
		stats:   stats,
		log:     log,
	}
}

// Process converts and annotates the job's upload. The job ends completed
// with a result, or failed with its error recorded.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "filename", job.Filename)
	start := time.Now()

	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename, w.docx)
	if err != nil {
		w.fail(log, job, "parsing", err)
		return
	}

	doc, err := p.Parse(ctx, bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		w.fail(log, job, "parsing", err)
		return
	}

	job.SetStatus(StatusAnnotating, "annotating")
	res, err := AnnotateDocument(doc, job.Filename, w.entries)
	if err != nil {
		w.fail(log, job, "annotating", err)
		return
	}

	took := time.Since(start)
	if w.stats != nil {
		w.stats.Record(took)
	}
	job.Complete(res, took)
	log.Info("conversion complete", "annotations", job.Snapshot().Progress.Annotations, "duration_ms", took.Milliseconds())
}

func (w *Worker) fail(log *slog.Logger, job *Job, phase string, err error) {
	log.Error("conversion failed", "phase", phase, "error", err)
	if w.stats != nil {
		w.stats.RecordFailure()
	}
	job.AddError(fmt.Sprintf("%s: %s", phase, err))
	job.SetStatus(StatusFailed, phase)
}
