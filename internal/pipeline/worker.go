package pipeline

import (
	"context"
	"log/slog"
	"time"

	"doccount/internal/compile"
	"doccount/internal/count"
)

// Worker counts one batch job at a time.
type Worker struct {
	log  *slog.Logger
	opts count.Options
}

func NewWorker(log *slog.Logger, opts count.Options) *Worker {
	return &Worker{log: log, opts: opts}
}

// Process compiles and counts every root file in the job. Uploaded files
// resolve includes against each other, so the batch forms its own little
// filesystem.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID)
	start := time.Now()

	job.SetStatus(StatusCounting)

	files := job.Files()
	world := compile.NewMemWorld()
	var roots []string
	for _, f := range files {
		world.Add(f.Name, f.Data)
		if f.Root {
			roots = append(roots, f.Name)
		}
	}

	opts := w.opts
	opts.ExcludeImports = job.ExcludeImports
	report := count.Aggregate(ctx, world, roots, opts)
	job.SetReport(report)

	failed := 0
	for _, f := range report.Files {
		if f.Err != nil {
			failed++
			log.Warn("file failed", "file", f.File, "error", f.Err)
		}
	}
	log.Info("batch counted",
		"files", len(roots),
		"failed", failed,
		"words", report.Total.Words,
		"characters", report.Total.Characters,
		"duration", time.Since(start))
}
