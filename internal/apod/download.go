package apod

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dailysky/apodrelay/internal/domain"
	"github.com/dailysky/apodrelay/internal/naming"
)

// ErrNoImageURL is returned when the record carries neither a primary nor
// a high-resolution URL.
var ErrNoImageURL = errors.New("record has no image URL")

// Download fetches the record's image (preferring the high-resolution
// variant) and writes it into saveDir, creating the directory if absent.
// Exactly one file is written; a same-named file from an earlier run is
// silently replaced.
func (c *Client) Download(ctx context.Context, rec *domain.Record, saveDir string) (*domain.Artifact, error) {
	imageURL := rec.BestURL()
	if imageURL == "" {
		return nil, ErrNoImageURL
	}

	c.log.Info("Downloading %s", imageURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.mediaHTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image source returned HTTP %d", resp.StatusCode)
	}

	name, confident := naming.Resolve(rec.Date, rec.Title, resp.Header.Get("Content-Type"), imageURL)
	if !confident {
		c.log.Warn("Could not determine image extension, defaulting to .jpg (url: %s)", imageURL)
	}

	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		return nil, fmt.Errorf("create save directory: %w", err)
	}

	dest := filepath.Join(saveDir, name)
	f, err := os.Create(dest)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", dest, err)
	}

	written, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dest)
		return nil, fmt.Errorf("write %s: %w", dest, err)
	}

	c.log.Info("Saved %s", dest)
	return &domain.Artifact{
		Path:     dest,
		Origin:   domain.OriginOriginal,
		ByteSize: written,
	}, nil
}
