package pipeline

import (
	"context"
	"path/filepath"

	"github.com/dailysky/apodrelay/internal/apod"
	"github.com/dailysky/apodrelay/internal/config"
	"github.com/dailysky/apodrelay/internal/domain"
	"github.com/dailysky/apodrelay/internal/logging"
	"github.com/dailysky/apodrelay/internal/notify"
	"github.com/dailysky/apodrelay/internal/optimize"
	"github.com/dailysky/apodrelay/internal/replicate"
)

// NewRunner assembles the production pipeline from the resolved
// configuration. Optimized copies land in SaveDir/optimized.
func NewRunner(cfg *config.Config, log *logging.Logger) *Runner {
	client := apod.NewClient(cfg.APIBaseURL, cfg.APIKey, log)
	return &Runner{
		Fetcher:  client,
		Acquirer: &downloadStage{client: client, saveDir: cfg.SaveDir},
		Optimizer: &optimizeStage{
			outDir: filepath.Join(cfg.SaveDir, "optimized"),
			opts: optimize.Options{
				MaxWidth:  cfg.MaxWidth,
				MaxHeight: cfg.MaxHeight,
				Quality:   cfg.Quality,
				Format:    "jpeg",
			},
			log: log,
		},
		Replicator: &replicateStage{mountPoint: cfg.MountPoint, log: log},
		Notifiers: []Notifier{
			&notify.Pushover{Token: cfg.PushoverToken, User: cfg.PushoverUser, Log: log},
			&notify.Email{
				Host:     cfg.SMTPHost,
				Port:     cfg.SMTPPort,
				From:     cfg.EmailFrom,
				Password: cfg.EmailPassword,
				To:       cfg.EmailTo,
				Log:      log,
			},
		},
		DeleteOriginal: cfg.DeleteOriginal,
		Log:            log,
	}
}

type downloadStage struct {
	client  *apod.Client
	saveDir string
}

func (s *downloadStage) Acquire(ctx context.Context, rec *domain.Record) (*domain.Artifact, error) {
	return s.client.Download(ctx, rec, s.saveDir)
}

type optimizeStage struct {
	outDir string
	opts   optimize.Options
	log    optimize.Logger
}

func (s *optimizeStage) Optimize(art *domain.Artifact) (*domain.Artifact, error) {
	return optimize.Optimize(art, s.outDir, s.opts, s.log)
}

type replicateStage struct {
	mountPoint string
	log        replicate.Logger
}

func (s *replicateStage) Replicate(art *domain.Artifact) (*domain.Receipt, error) {
	return replicate.Replicate(art, s.mountPoint, s.log)
}
