package config

// This file implements CLI flag parsing and help text.
// Flags override values loaded from the environment; grouped into paths,
// pipeline behavior, display, and utility.

import (
	"flag"
	"fmt"
	"os"
)

// ParseFlags parses args (normally os.Args[1:]) into cfg. On --help or
// --version it prints and exits. Returns non-nil on unknown flags.
func ParseFlags(cfg *Config, version string, args []string) error {
	fs := flag.NewFlagSet("apodrelay", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var (
		forceColor  bool
		noColor     bool
		verbose     bool
		showHelp    bool
		showVersion bool
		recipients  string
	)

	// Paths.
	fs.StringVar(&cfg.SaveDir, "save-dir", cfg.SaveDir, "Directory for downloaded and optimized images")
	fs.StringVar(&cfg.MountPoint, "mount", cfg.MountPoint, "Network share mount point for replication")
	fs.StringVar(&cfg.EnvFile, "env", "", "Path to .env file (default: ./.env when present)")

	// Pipeline behavior.
	fs.BoolVar(&cfg.DeleteOriginal, "delete-original", cfg.DeleteOriginal, "Delete the original image after notifications")
	fs.IntVar(&cfg.Quality, "quality", cfg.Quality, "JPEG quality for the optimized copy (1-100)")
	fs.IntVar(&cfg.MaxWidth, "max-width", cfg.MaxWidth, "Maximum optimized width")
	fs.IntVar(&cfg.MaxHeight, "max-height", cfg.MaxHeight, "Maximum optimized height")
	fs.StringVar(&recipients, "to", "", "Comma-separated email recipients (overrides EMAIL_TO)")

	// Display.
	fs.BoolVar(&forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&verbose, "verbose", false, "Debug-level output")
	fs.BoolVar(&verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")

	// Modes and utility.
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.BoolVar(&cfg.Serve, "serve", false, "Run the image gallery server instead of the pipeline")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&showVersion, "V", false, "Same as --version")
	fs.BoolVar(&showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&showHelp, "h", false, "Same as --help")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, "apodrelay v"+version)
		os.Exit(0)
	}

	if noColor {
		cfg.ColorMode = ColorNever
	} else if forceColor {
		cfg.ColorMode = ColorAlways
	}
	if verbose {
		cfg.LogLevel = "DEBUG"
	}
	if recipients != "" {
		cfg.EmailTo = SplitRecipients(recipients)
	}
	cfg.SaveDir = NormalizeDirArg(cfg.SaveDir)
	cfg.MountPoint = NormalizeDirArg(cfg.MountPoint)

	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected argument %q", fs.Args()[0])
	}
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "apodrelay v" + version + " — daily picture-of-the-day relay"},
		{"", ""},
		{"  apodrelay [OPTIONS]", ""},
		{"", ""},
		{"Paths", ""},
		{"  --save-dir <dir>", "Image directory (default: ./saved_images)"},
		{"  --mount <dir>", "Network share mount point"},
		{"  --env <file>", "Load configuration from a .env file"},
		{"", ""},
		{"Pipeline", ""},
		{"  --quality <1-100>", "JPEG quality for the optimized copy (default: 85)"},
		{"  --max-width <px>", "Maximum optimized width (default: 1920)"},
		{"  --max-height <px>", "Maximum optimized height (default: 1080)"},
		{"  --to <a,b,…>", "Email recipients (overrides EMAIL_TO)"},
		{"  --delete-original", "Delete the original image after notifications"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Debug-level output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "Diagnostics (config, directories, mount, channels)"},
		{"  --serve", "Serve the saved-image gallery over HTTP"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
