// Package check provides the --check diagnostics: configuration presence,
// storage writability, mount health, and notification channel readiness.
package check

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/dailysky/apodrelay/internal/config"
	"github.com/dailysky/apodrelay/internal/replicate"
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...any)
	Success(string, ...any)
	Warn(string, ...any)
	Error(string, ...any)
}

// RunCheck runs the interactive --check flow: reports on the API key,
// local storage, the replication mount, and both notification channels.
// It is informational and keeps going past failures; the return value
// is false if any hard requirement for a pipeline run is unmet.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkAPI(cfg, log)
	ok = checkStorage(cfg, log) && ok
	ok = checkMount(cfg, log) && ok
	ok = checkPush(cfg, log) && ok
	ok = checkEmail(cfg, log) && ok
	return ok
}

func checkAPI(cfg *config.Config, log Logger) bool {
	if cfg.APIKey == "" {
		log.Error("NASA_API_KEY is not set")
		return false
	}
	if cfg.APIKey == "DEMO_KEY" {
		log.Warn("API key is DEMO_KEY (heavily rate-limited)")
		return true
	}
	log.Success("API key configured")
	return true
}

// checkStorage verifies the save directory and its optimized/ child can be
// created and written to.
func checkStorage(cfg *config.Config, log Logger) bool {
	for _, dir := range []string{cfg.SaveDir, filepath.Join(cfg.SaveDir, "optimized")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Error("cannot create %s: %v", dir, err)
			return false
		}
		if !dirWritable(dir) {
			log.Error("%s is not writable", dir)
			return false
		}
	}
	log.Success("save directory writable: %s", cfg.SaveDir)
	return true
}

func checkMount(cfg *config.Config, log Logger) bool {
	err := replicate.CheckMount(cfg.MountPoint)
	switch {
	case err == nil:
		log.Success("mount healthy: %s", cfg.MountPoint)
		return true
	case errors.Is(err, replicate.ErrNotMounted):
		log.Error("mount point exists but nothing is mounted: %s", cfg.MountPoint)
	default:
		log.Error("mount check failed: %v", err)
	}
	return false
}

func checkPush(cfg *config.Config, log Logger) bool {
	if cfg.PushoverToken == "" || cfg.PushoverUser == "" {
		log.Error("push channel incomplete (PUSHOVER_APP_TOKEN / PUSHOVER_USER_KEY)")
		return false
	}
	log.Success("push channel configured")
	return true
}

func checkEmail(cfg *config.Config, log Logger) bool {
	missing := false
	if cfg.SMTPHost == "" || cfg.SMTPPort == 0 {
		log.Error("SMTP server not configured")
		missing = true
	}
	if cfg.EmailFrom == "" || cfg.EmailPassword == "" {
		log.Error("email sender credentials missing (EMAIL_FROM / EMAIL_PASSWORD)")
		missing = true
	}
	if len(cfg.EmailTo) == 0 {
		log.Error("no email recipients (EMAIL_TO)")
		missing = true
	}
	if missing {
		return false
	}
	log.Success("email channel configured (%d recipient(s))", len(cfg.EmailTo))
	return true
}

// dirWritable probes a directory by creating and removing a temp file.
// A stat-based permission check would miss read-only filesystems.
func dirWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".writecheck-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
