// Package optimize normalizes a downloaded image: bounded resize with
// aspect ratio preserved (never upscaling) and re-encode to the target
// format. The result is a second artifact next to the original; the
// original is left untouched.
package optimize

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/dailysky/apodrelay/internal/domain"
)

// Logger is the minimal logging interface needed by the normalizer.
type Logger interface {
	Info(string, ...interface{})
	Debug(string, ...interface{})
}

// Options control the normalization bounds and encoding.
type Options struct {
	MaxWidth  int
	MaxHeight int
	Quality   int    // JPEG quality, 1-100.
	Format    string // "jpeg" (default), "png", or any format imaging can encode.
}

// DefaultOptions matches the legacy deployment: fit within 1920x1080,
// JPEG at quality 85.
func DefaultOptions() Options {
	return Options{MaxWidth: 1920, MaxHeight: 1080, Quality: 85, Format: "jpeg"}
}

const suffix = "_optimized"

// Optimize opens the source artifact, fits it within the configured bounds,
// and encodes it into outDir as "{stem}_optimized{ext}", creating outDir if
// absent. A same-named output from an earlier run is replaced. Any failure
// (unreadable source, unwritable directory, encode error) is fatal to the
// pipeline: without the optimized copy nothing further is distributed.
func Optimize(src *domain.Artifact, outDir string, opts Options, log Logger) (*domain.Artifact, error) {
	if opts.Format == "" {
		opts.Format = "jpeg"
	}

	img, err := imaging.Open(src.Path)
	if err != nil {
		return nil, fmt.Errorf("open source image: %w", err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	before := img.Bounds().Size()
	fitted := imaging.Fit(img, opts.MaxWidth, opts.MaxHeight, imaging.Lanczos)
	after := fitted.Bounds().Size()
	if after != before {
		log.Info("Resized %dx%d -> %dx%d", before.X, before.Y, after.X, after.Y)
	} else {
		log.Debug("Image %dx%d already within bounds", before.X, before.Y)
	}

	stem := strings.TrimSuffix(filepath.Base(src.Path), filepath.Ext(src.Path))
	outPath := filepath.Join(outDir, stem+suffix+targetExt(opts.Format))

	var encodeOpts []imaging.EncodeOption
	out := image.Image(fitted)
	switch strings.ToLower(opts.Format) {
	case "jpeg":
		// JPEG has no alpha; flatten translucent sources onto white so
		// transparent regions don't come out black.
		if !fitted.Opaque() {
			bg := imaging.New(after.X, after.Y, color.White)
			out = imaging.Overlay(bg, fitted, image.Pt(0, 0), 1.0)
		}
		encodeOpts = append(encodeOpts, imaging.JPEGQuality(opts.Quality))
	case "png":
		encodeOpts = append(encodeOpts, imaging.PNGCompressionLevel(png.DefaultCompression))
	}

	if err := imaging.Save(out, outPath, encodeOpts...); err != nil {
		return nil, fmt.Errorf("encode %s: %w", outPath, err)
	}

	fi, err := os.Stat(outPath)
	if err != nil {
		return nil, fmt.Errorf("stat output: %w", err)
	}

	return &domain.Artifact{
		Path:     outPath,
		Origin:   domain.OriginOptimized,
		ByteSize: fi.Size(),
	}, nil
}

// targetExt maps a format name to the output extension. JPEG keeps the
// legacy ".jpg" spelling.
func targetExt(format string) string {
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		return ".jpg"
	case "png":
		return ".png"
	default:
		return "." + strings.ToLower(format)
	}
}
