package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fullPipelineConfig returns a config that passes Validate for pipeline runs.
func fullPipelineConfig() Config {
	cfg := DefaultConfig()
	cfg.APIKey = "key"
	cfg.PushoverToken = "tok"
	cfg.PushoverUser = "usr"
	cfg.EmailFrom = "from@example.com"
	cfg.EmailPassword = "pw"
	cfg.EmailTo = []string{"to@example.com"}
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.APIBaseURL != "https://api.nasa.gov/planetary/apod" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.MaxWidth != 1920 || cfg.MaxHeight != 1080 || cfg.Quality != 85 {
		t.Errorf("optimizer defaults = %dx%d q%d", cfg.MaxWidth, cfg.MaxHeight, cfg.Quality)
	}
	if cfg.SMTPHost != "smtp.gmail.com" || cfg.SMTPPort != 587 {
		t.Errorf("smtp defaults = %s:%d", cfg.SMTPHost, cfg.SMTPPort)
	}
	if cfg.DeleteOriginal {
		t.Error("DeleteOriginal should default to false")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string // empty means valid
	}{
		{"complete pipeline config", func(c *Config) {}, ""},
		{"bad color mode", func(c *Config) { c.ColorMode = "rainbow" }, "color mode"},
		{"quality zero", func(c *Config) { c.Quality = 0 }, "quality"},
		{"quality above range", func(c *Config) { c.Quality = 101 }, "quality"},
		{"zero dimensions", func(c *Config) { c.MaxWidth = 0 }, "dimensions"},
		{"bad gallery port", func(c *Config) { c.GalleryPort = 70000 }, "gallery port"},
		{"empty save dir", func(c *Config) { c.SaveDir = "" }, "save directory"},
		{"missing api key", func(c *Config) { c.APIKey = "" }, "NASA_API_KEY"},
		{"missing recipients", func(c *Config) { c.EmailTo = nil }, "EMAIL_TO"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fullPipelineConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_AggregatesMissingFields(t *testing.T) {
	cfg := fullPipelineConfig()
	cfg.APIKey = ""
	cfg.PushoverToken = ""
	cfg.EmailPassword = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil with three missing fields")
	}
	for _, want := range []string{"NASA_API_KEY", "PUSHOVER_APP_TOKEN", "EMAIL_PASSWORD"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %s", err, want)
		}
	}
}

func TestValidate_CheckAndServeSkipCredentials(t *testing.T) {
	for _, mode := range []string{"check", "serve"} {
		t.Run(mode, func(t *testing.T) {
			cfg := DefaultConfig()
			if mode == "check" {
				cfg.CheckOnly = true
			} else {
				cfg.Serve = true
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() = %v, want nil without credentials in %s mode", err, mode)
			}
		})
	}
}

func TestSplitRecipients(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single", "a@x.com", []string{"a@x.com"}},
		{"multiple with spaces", "a@x.com, b@y.com ,c@z.com", []string{"a@x.com", "b@y.com", "c@z.com"}},
		{"empty entries dropped", "a@x.com,,  ,b@y.com", []string{"a@x.com", "b@y.com"}},
		{"empty input", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitRecipients(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitRecipients(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("entry %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/mnt/share/", "/mnt/share"},
		{"/mnt/share///", "/mnt/share"},
		{"/mnt/share", "/mnt/share"},
		{"/", "/"},
		{"relative/dir/", "relative/dir"},
	}
	for _, tt := range tests {
		if got := NormalizeDirArg(tt.in); got != tt.want {
			t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadEnv_ReadsRecognizedVariables(t *testing.T) {
	t.Setenv("NASA_API_KEY", "env-key")
	t.Setenv("SMB_MOUNT_POINT", "/mnt/other")
	t.Setenv("EMAIL_TO", "a@x.com, b@y.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("DELETE_ORIGINAL_AFTER_PROCESSING", "true")

	cfg := DefaultConfig()
	if err := LoadEnv(&cfg); err != nil {
		t.Fatal(err)
	}

	if cfg.APIKey != "env-key" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.MountPoint != "/mnt/other" {
		t.Errorf("MountPoint = %q", cfg.MountPoint)
	}
	if len(cfg.EmailTo) != 2 || cfg.EmailTo[1] != "b@y.com" {
		t.Errorf("EmailTo = %v", cfg.EmailTo)
	}
	if cfg.SMTPPort != 2525 {
		t.Errorf("SMTPPort = %d", cfg.SMTPPort)
	}
	if !cfg.DeleteOriginal {
		t.Error("DeleteOriginal not set from env")
	}
}

func TestLoadEnv_UnparseablePortKeepsDefault(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")

	cfg := DefaultConfig()
	if err := LoadEnv(&cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("SMTPPort = %d, want default 587", cfg.SMTPPort)
	}
}

func TestLoadEnv_ExplicitFileMustExist(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnvFile = filepath.Join(t.TempDir(), "missing.env")

	if err := LoadEnv(&cfg); err == nil {
		t.Error("LoadEnv() = nil for a missing explicit env file")
	}
}

func TestLoadEnv_ReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "NASA_API_KEY=file-key\nPUSHOVER_APP_TOKEN=file-tok\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv.Load does not override variables already in the process
	// environment, so clear the one we assert on.
	t.Setenv("NASA_API_KEY", "")
	os.Unsetenv("NASA_API_KEY")

	cfg := DefaultConfig()
	cfg.EnvFile = path
	if err := LoadEnv(&cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey != "file-key" {
		t.Errorf("APIKey = %q, want value from env file", cfg.APIKey)
	}
	if cfg.PushoverToken != "file-tok" {
		t.Errorf("PushoverToken = %q, want value from env file", cfg.PushoverToken)
	}
}

func TestParseFlags(t *testing.T) {
	cfg := DefaultConfig()
	err := ParseFlags(&cfg, "test", []string{
		"--save-dir", "/tmp/images/",
		"--quality", "70",
		"--to", "x@a.com,y@b.com",
		"--no-color",
		"-v",
		"--delete-original",
	})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.SaveDir != "/tmp/images" {
		t.Errorf("SaveDir = %q, want trailing slash stripped", cfg.SaveDir)
	}
	if cfg.Quality != 70 {
		t.Errorf("Quality = %d", cfg.Quality)
	}
	if len(cfg.EmailTo) != 2 {
		t.Errorf("EmailTo = %v", cfg.EmailTo)
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q", cfg.ColorMode)
	}
	if cfg.LogLevel != "DEBUG" {
		t.Errorf("LogLevel = %q, want DEBUG from -v", cfg.LogLevel)
	}
	if !cfg.DeleteOriginal {
		t.Error("DeleteOriginal not set")
	}
}

func TestParseFlags_RejectsPositionalArgs(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, "test", []string{"stray"}); err == nil {
		t.Error("ParseFlags() = nil with a positional argument")
	}
}
