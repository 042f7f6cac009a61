// Package config holds runtime configuration: defaults, .env and environment
// loading, CLI flag parsing, and validation. Configuration is an explicit
// immutable object passed into the pipeline at construction; missing required
// fields are a startup error, never discovered mid-run.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then [LoadEnv], then [ParseFlags], and finally checked by [Validate]
// before being passed (by pointer) to packages that need it.
type Config struct {
	// Metadata API.
	APIKey     string // NASA_API_KEY. Required for pipeline runs.
	APIBaseURL string // Default: the public APOD endpoint.

	// Local artifact storage.
	SaveDir string // Default: "./saved_images". Optimized copies go to SaveDir/optimized.

	// Replication sink.
	MountPoint string // Default: "/mnt/windows_share".

	// Push channel.
	PushoverToken string // PUSHOVER_APP_TOKEN. Required.
	PushoverUser  string // PUSHOVER_USER_KEY. Required.

	// Email channel.
	SMTPHost      string   // Default: "smtp.gmail.com".
	SMTPPort      int      // Default: 587.
	EmailFrom     string   // EMAIL_FROM. Required.
	EmailPassword string   // EMAIL_PASSWORD. Required.
	EmailTo       []string // EMAIL_TO, comma-separated. Required.

	// Normalizer settings.
	MaxWidth  int // Default: 1920.
	MaxHeight int // Default: 1080.
	Quality   int // Default: 85. JPEG encode quality, 1-100.

	// Behavior flags.
	DeleteOriginal bool // Delete the original artifact after notifications.

	// Gallery server (--serve mode).
	GalleryHost string // Default: "127.0.0.1".
	GalleryPort int    // Default: 9999.

	// Display and logging.
	LogLevel  string    // Default: "INFO".
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
	Serve     bool      // Run the gallery server instead of the pipeline.
	EnvFile   string    // Optional .env path; default "./.env" when present.
}

// DefaultConfig returns a Config with all defaults matching the legacy
// deployment. Used as the base before environment and CLI overrides.
func DefaultConfig() Config {
	return Config{
		APIBaseURL:  "https://api.nasa.gov/planetary/apod",
		SaveDir:     "./saved_images",
		MountPoint:  "/mnt/windows_share",
		SMTPHost:    "smtp.gmail.com",
		SMTPPort:    587,
		MaxWidth:    1920,
		MaxHeight:   1080,
		Quality:     85,
		GalleryHost: "127.0.0.1",
		GalleryPort: 9999,
		LogLevel:    "INFO",
		ColorMode:   ColorAuto,
	}
}

// LoadEnv loads cfg.EnvFile (or ./.env when unset and present) into the
// process environment, then copies recognized variables into cfg. A missing
// default .env file is fine; an explicitly named one must exist.
func LoadEnv(cfg *Config) error {
	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil {
			return fmt.Errorf("load env file %s: %w", cfg.EnvFile, err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("load .env: %w", err)
		}
	}

	setString(&cfg.APIKey, "NASA_API_KEY")
	setString(&cfg.APIBaseURL, "APOD_API_URL")
	setString(&cfg.SaveDir, "SAVE_DIR")
	setString(&cfg.MountPoint, "SMB_MOUNT_POINT")
	setString(&cfg.PushoverToken, "PUSHOVER_APP_TOKEN")
	setString(&cfg.PushoverUser, "PUSHOVER_USER_KEY")
	setString(&cfg.SMTPHost, "SMTP_SERVER")
	setInt(&cfg.SMTPPort, "SMTP_PORT")
	setString(&cfg.EmailFrom, "EMAIL_FROM")
	setString(&cfg.EmailPassword, "EMAIL_PASSWORD")
	setString(&cfg.GalleryHost, "GALLERY_HOST")
	setInt(&cfg.GalleryPort, "GALLERY_PORT")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	if v := strings.TrimSpace(os.Getenv("EMAIL_TO")); v != "" {
		cfg.EmailTo = SplitRecipients(v)
	}
	if v := strings.TrimSpace(os.Getenv("DELETE_ORIGINAL_AFTER_PROCESSING")); v != "" {
		cfg.DeleteOriginal = truthy(v)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	// Unparseable numeric env values keep the default, as the legacy
	// deployment did for SMTP_PORT.
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

// SplitRecipients splits a comma-separated recipient list, trimming
// whitespace and dropping empty entries.
func SplitRecipients(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks value ranges and, for pipeline runs, the presence of every
// required credential. Missing fields are reported together in one error.
// Check and serve modes never touch the remote services, so they skip the
// credential requirement.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("quality must be 1-100 (got %d)", c.Quality)
	}
	if c.MaxWidth < 1 || c.MaxHeight < 1 {
		return errors.New("max dimensions must be positive")
	}
	if c.GalleryPort < 1 || c.GalleryPort > 65535 {
		return fmt.Errorf("invalid gallery port %d", c.GalleryPort)
	}
	if c.SaveDir == "" {
		return errors.New("save directory must not be empty")
	}

	if c.CheckOnly || c.Serve {
		return nil
	}

	var missing []string
	required := []struct {
		name  string
		empty bool
	}{
		{"NASA_API_KEY", c.APIKey == ""},
		{"PUSHOVER_APP_TOKEN", c.PushoverToken == ""},
		{"PUSHOVER_USER_KEY", c.PushoverUser == ""},
		{"EMAIL_FROM", c.EmailFrom == ""},
		{"EMAIL_PASSWORD", c.EmailPassword == ""},
		{"EMAIL_TO", len(c.EmailTo) == 0},
	}
	for _, r := range required {
		if r.empty {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
