package pipeline

import (
	"fmt"

	"github.com/dailysky/apodrelay/internal/domain"
)

// Stage names the pipeline stages, in execution order.
type Stage string

const (
	StageFetch     Stage = "fetch"
	StageAcquire   Stage = "acquire"
	StageOptimize  Stage = "optimize"
	StageReplicate Stage = "replicate"
	StageNotify    Stage = "notify"
	StageCleanup   Stage = "cleanup"
)

// Status is the run's terminal state. There is no partial silent success:
// every run ends completed, skipped, or failed at a named stage.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped" // non-image day, nothing to distribute
	StatusFailed    Status = "failed"
)

// StageError is a fatal stage failure: the stage that failed plus the
// underlying cause for diagnostics.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// RunResult is the aggregate terminal state of one pipeline run.
type RunResult struct {
	Status        Status
	Stage         Stage // last stage reached
	Err           error // non-nil only when Status is failed
	Notifications []domain.Outcome
}

// ExitCode maps the terminal status to a process exit code: completed and
// skipped are 0, a fatal stage failure is 1.
func (r *RunResult) ExitCode() int {
	if r.Status == StatusFailed {
		return 1
	}
	return 0
}
