package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dailysky/apodrelay/internal/display"
	"github.com/dailysky/apodrelay/internal/domain"
)

// Logger is the subset of the process logger the runner needs.
type Logger interface {
	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

const pushExcerptLen = 150

// Runner drives one end-to-end acquisition: fetch, download, optimize,
// replicate, notify, cleanup. The first four stages are mandatory and
// abort the run on failure; notification and cleanup are best effort.
type Runner struct {
	Fetcher    Fetcher
	Acquirer   Acquirer
	Optimizer  Optimizer
	Replicator Replicator
	Notifiers  []Notifier

	DeleteOriginal bool
	Log            Logger
}

// Run executes the pipeline once. A non-image record ends the run early
// with StatusSkipped, which is a successful outcome.
func (r *Runner) Run(ctx context.Context) RunResult {
	r.Log.Info("[1/6] fetching picture metadata")
	rec, err := r.Fetcher.Fetch(ctx)
	if err != nil {
		return r.fail(StageFetch, err)
	}
	r.Log.Info("      %s: %q", rec.Date, rec.Title)

	if !rec.IsImage() {
		r.Log.Info("media type is %q, nothing to download today", rec.MediaType)
		return RunResult{Status: StatusSkipped, Stage: StageFetch}
	}

	r.Log.Info("[2/6] downloading image")
	original, err := r.Acquirer.Acquire(ctx, rec)
	if err != nil {
		return r.fail(StageAcquire, err)
	}
	r.Log.Info("      saved %s (%s)", original.Path, display.FormatBytes(original.ByteSize))

	r.Log.Info("[3/6] optimizing image")
	optimized, err := r.Optimizer.Optimize(original)
	if err != nil {
		return r.fail(StageOptimize, err)
	}
	r.Log.Info("      wrote %s (%s)", optimized.Path, display.FormatBytes(optimized.ByteSize))
	r.Log.Debug("      size change %s", display.FormatBytesWithSign(optimized.ByteSize-original.ByteSize))

	r.Log.Info("[4/6] replicating to network share")
	receipt, err := r.Replicator.Replicate(optimized)
	if err != nil {
		return r.fail(StageReplicate, err)
	}
	r.Log.Info("      copied to %s", receipt.Destination)

	r.Log.Info("[5/6] sending notifications")
	outcomes := r.notifyAll(ctx, rec, optimized)

	r.Log.Info("[6/6] cleanup")
	r.cleanup(original)

	r.Log.Success("done")
	return RunResult{Status: StatusCompleted, Stage: StageCleanup, Notifications: outcomes}
}

func (r *Runner) fail(stage Stage, err error) RunResult {
	r.Log.Error("%s stage failed: %v", stage, err)
	return RunResult{Status: StatusFailed, Stage: stage, Err: &StageError{Stage: stage, Err: err}}
}

// notifyAll attempts every configured channel even when an earlier one
// fails; each result is logged and collected.
func (r *Runner) notifyAll(ctx context.Context, rec *domain.Record, art *domain.Artifact) []domain.Outcome {
	outcomes := make([]domain.Outcome, 0, len(r.Notifiers))
	for _, n := range r.Notifiers {
		msg := notificationFor(n.Channel(), rec, art)
		out := n.Notify(ctx, msg)
		if out.Delivered {
			r.Log.Success("      %s notification delivered", out.Channel)
		} else {
			r.Log.Warn("      %s notification failed: %s", out.Channel, out.Detail)
		}
		outcomes = append(outcomes, out)
	}
	return outcomes
}

func (r *Runner) cleanup(original *domain.Artifact) {
	if !r.DeleteOriginal {
		r.Log.Debug("      keeping original %s", original.Path)
		return
	}
	if err := os.Remove(original.Path); err != nil {
		r.Log.Warn("      could not delete original: %v", err)
		return
	}
	r.Log.Info("      deleted original %s", original.Path)
}

// notificationFor builds the per-channel message. Push carries a short
// excerpt of the explanation; email carries the full text.
func notificationFor(ch domain.Channel, rec *domain.Record, art *domain.Artifact) domain.Notification {
	switch ch {
	case domain.ChannelPush:
		return domain.Notification{
			Title:          fmt.Sprintf("New APOD: %s", rec.Title),
			Message:        excerpt(rec.Explanation, pushExcerptLen),
			AttachmentPath: art.Path,
		}
	default:
		body := rec.Explanation
		if strings.TrimSpace(body) == "" {
			body = fmt.Sprintf("NASA's picture of the day for %s.", rec.Date)
		}
		return domain.Notification{
			Title:          fmt.Sprintf("NASA Picture of the Day: %s", rec.Title),
			Message:        body,
			AttachmentPath: art.Path,
		}
	}
}

func excerpt(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	// Back the limit onto a rune boundary before slicing so a multibyte
	// explanation never yields an invalid-UTF-8 message.
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	cut := strings.LastIndex(s[:limit], " ")
	if cut <= 0 {
		cut = limit
	}
	return s[:cut] + "..."
}
