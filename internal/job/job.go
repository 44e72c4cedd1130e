// Package job orchestrates one daily run: pull the last two days of papers,
// generate their summaries and record the outcome in the run log.
package job

import (
	"context"
	"time"

	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/joblog"
	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/logger"
	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/papers"
)

// Puller downloads the PDFs for a date range.
type Puller interface {
	PullRange(ctx context.Context, start, end time.Time, destDir string) (papers.Report, error)
}

// Summarizer writes markdown summaries for downloaded PDFs in a date range.
type Summarizer interface {
	GenerateRange(ctx context.Context, papersDir, outDir string, start, end time.Time) (int, error)
}

// RunLog records completed runs.
type RunLog interface {
	Append(run joblog.RunRecord) error
}

// Runner executes the daily job.
type Runner struct {
	puller       Puller
	summarizer   Summarizer
	runLog       RunLog
	papersDir    string
	summariesDir string
	now          func() time.Time
	logger       *logger.Logger
}

// NewRunner creates a Runner covering papersDir and summariesDir.
func NewRunner(puller Puller, summarizer Summarizer, runLog RunLog, papersDir, summariesDir string, log *logger.Logger) *Runner {
	return &Runner{
		puller:       puller,
		summarizer:   summarizer,
		runLog:       runLog,
		papersDir:    papersDir,
		summariesDir: summariesDir,
		now:          time.Now,
		logger:       log,
	}
}

// Run pulls papers for yesterday and today, generates summaries and appends a
// run record. A pull failure marks the run failed and skips summary
// generation; the record is written either way.
func (r *Runner) Run(ctx context.Context) (joblog.RunRecord, error) {
	startedAt := r.now()
	end := midnight(startedAt)
	start := end.AddDate(0, 0, -1)

	record := joblog.RunRecord{
		ID:        joblog.NewRunID(),
		StartedAt: startedAt,
		Start:     start.Format("2006-01-02"),
		End:       end.Format("2006-01-02"),
		Status:    joblog.StatusOK,
	}

	r.logger.InfoCtx(ctx, "daily job started",
		logger.Field{Key: "run_id", Value: record.ID},
		logger.Field{Key: "start", Value: record.Start},
		logger.Field{Key: "end", Value: record.End})

	report, runErr := r.puller.PullRange(ctx, start, end, r.papersDir)
	record.Found = report.Found
	record.Downloaded = report.Downloaded

	if runErr != nil {
		record.Status = joblog.StatusFailed
		record.Error = runErr.Error()
		r.logger.ErrorCtx(ctx, "pull failed, skipping summaries", runErr,
			logger.Field{Key: "run_id", Value: record.ID})
	} else {
		summaries, err := r.summarizer.GenerateRange(ctx, r.papersDir, r.summariesDir, start, end)
		record.Summaries = summaries
		if err != nil {
			runErr = err
			record.Status = joblog.StatusFailed
			record.Error = err.Error()
			r.logger.ErrorCtx(ctx, "summary generation failed", err,
				logger.Field{Key: "run_id", Value: record.ID})
		}
	}

	record.FinishedAt = r.now()

	if err := r.runLog.Append(record); err != nil {
		r.logger.ErrorCtx(ctx, "failed to record run", err,
			logger.Field{Key: "run_id", Value: record.ID})
		if runErr == nil {
			runErr = err
		}
	}

	r.logger.InfoCtx(ctx, "daily job finished",
		logger.Field{Key: "run_id", Value: record.ID},
		logger.Field{Key: "status", Value: record.Status},
		logger.Field{Key: "downloaded", Value: record.Downloaded},
		logger.Field{Key: "summaries", Value: record.Summaries})

	return record, runErr
}

// midnight truncates t to the start of its UTC day. Date bounds are kept in
// UTC everywhere so they compare cleanly against dates parsed from filenames
// and flags.
func midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
