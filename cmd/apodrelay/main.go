// Command apodrelay fetches NASA's Astronomy Picture of the Day, optimizes
// it for distribution, replicates it to a network share, and notifies the
// configured push and email recipients.
//
// It can also run configuration diagnostics (--check) or serve a local
// gallery of everything saved so far (--serve).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dailysky/apodrelay/internal/check"
	"github.com/dailysky/apodrelay/internal/config"
	"github.com/dailysky/apodrelay/internal/display"
	"github.com/dailysky/apodrelay/internal/gallery"
	"github.com/dailysky/apodrelay/internal/logging"
	"github.com/dailysky/apodrelay/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "apodrelay: %v\n", err)
		return 1
	}

	if err := config.LoadEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "apodrelay: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "apodrelay: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "apodrelay: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available — all output goes through log from here on.
	display.PrintBanner()
	log.Info("=== apodrelay v%s (%s) ===", version, commit)

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	// Phase 3: Signal handling — cancel context on SIGINT/SIGTERM so an
	// in-flight download or delivery stops cleanly.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, shutting down…")
		cancel()
	}()

	if cfg.Serve {
		srv := &gallery.Server{Dir: cfg.SaveDir, Log: log}
		if err := srv.Serve(ctx, cfg.GalleryHost, cfg.GalleryPort); err != nil {
			log.Error("gallery server: %v", err)
			return 1
		}
		return 0
	}

	// Phase 4: Run the acquisition pipeline once.
	res := pipeline.NewRunner(&cfg, log).Run(ctx)
	return res.ExitCode()
}
