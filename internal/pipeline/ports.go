package pipeline

import (
	"context"

	"github.com/dailysky/apodrelay/internal/domain"
)

// The stage collaborators are narrow interfaces so the orchestrator's
// failure policy can be exercised without network or filesystem fixtures.

// Fetcher retrieves today's record from the remote source.
type Fetcher interface {
	Fetch(ctx context.Context) (*domain.Record, error)
}

// Acquirer downloads the record's image and persists it locally.
type Acquirer interface {
	Acquire(ctx context.Context, rec *domain.Record) (*domain.Artifact, error)
}

// Optimizer produces the normalized copy of a downloaded artifact.
type Optimizer interface {
	Optimize(art *domain.Artifact) (*domain.Artifact, error)
}

// Replicator copies an artifact to the network sink.
type Replicator interface {
	Replicate(art *domain.Artifact) (*domain.Receipt, error)
}

// Notifier delivers one channel's notification. Implementations never
// return an error; delivery failure is carried inside the Outcome.
type Notifier interface {
	Channel() domain.Channel
	Notify(ctx context.Context, n domain.Notification) domain.Outcome
}
