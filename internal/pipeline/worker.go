package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/dgallion1/replyfmt/internal/formatter"
)

// Worker formats the items of one batch job.
type Worker struct {
	fmtr  *formatter.Formatter
	stats *formatter.RenderStats
	log   *slog.Logger
}

func NewWorker(fmtr *formatter.Formatter, stats *formatter.RenderStats, log *slog.Logger) *Worker {
	return &Worker{fmtr: fmtr, stats: stats, log: log}
}

// Process renders every item in the job. Formatting itself cannot fail, so
// the only per-item errors are schema problems recorded at submit time; an
// item with a bad schema still renders with an inferred one.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID)
	job.SetStatus(StatusFormatting)

	hadErrors := false
	for _, item := range job.Items() {
		select {
		case <-ctx.Done():
			log.Warn("job interrupted by shutdown", "item", item.ID)
			job.SetStatus(StatusPartial)
			return
		default:
		}

		start := time.Now()
		var html string
		var mode formatter.Mode
		if item.Schema != nil {
			html, mode = w.fmtr.FormatStructured(item.Text, item.Schema)
		} else {
			html, mode = w.fmtr.Format(item.Text)
		}
		w.stats.Record(time.Since(start))

		res := ItemResult{ID: item.ID, HTML: html, Mode: mode}
		if item.SchemaErr != "" {
			res.Error = item.SchemaErr
			hadErrors = true
		}
		job.AddResult(res)
	}

	if hadErrors {
		job.SetStatus(StatusPartial)
	} else {
		job.SetStatus(StatusCompleted)
	}
	log.Info("batch formatted", "items", job.Progress.TotalItems, "errors", hadErrors)
}
