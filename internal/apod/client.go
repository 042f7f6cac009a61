// Package apod talks to the remote picture-of-the-day service: it fetches
// the day's metadata record and downloads the referenced image to local
// storage. Both operations are single attempts with fixed timeouts;
// retrying is an operator concern, not part of the contract.
package apod

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dailysky/apodrelay/internal/domain"
)

// Logger is the minimal logging interface needed by the client. Defined
// here (rather than importing the logging package) so that apod remains
// dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Warn(string, ...interface{})
	Debug(string, ...interface{})
}

const (
	fetchTimeout    = 30 * time.Second
	downloadTimeout = 60 * time.Second
)

// demoKey is the shared demo-tier credential. Using it works but is rate
// limited, so it is a warning condition, not an error.
const demoKey = "DEMO_KEY"

// Client fetches metadata and downloads images. The zero value is not
// usable; construct with [NewClient].
type Client struct {
	baseURL   string
	apiKey    string
	log       Logger
	fetchHTTP *http.Client
	mediaHTTP *http.Client
}

// NewClient returns a Client for the given endpoint and credential.
func NewClient(baseURL, apiKey string, log Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		apiKey:    apiKey,
		log:       log,
		fetchHTTP: &http.Client{Timeout: fetchTimeout},
		mediaHTTP: &http.Client{Timeout: downloadTimeout},
	}
}

// Fetch retrieves today's record. Network failure, a non-success status, or
// a malformed body all return an error; the caller treats any of them as
// fatal since there is nothing to operate on.
func (c *Client) Fetch(ctx context.Context) (*domain.Record, error) {
	if c.apiKey == demoKey {
		c.log.Warn("Using the shared %s credential; expect rate limiting", demoKey)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("metadata endpoint: %w", err)
	}
	q := u.Query()
	q.Set("api_key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.fetchHTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metadata endpoint returned HTTP %d", resp.StatusCode)
	}

	var rec domain.Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}

	c.log.Debug("Record: date=%s media=%s url=%s hdurl=%s",
		rec.Date, rec.MediaType, rec.URL, rec.HDURL)
	return &rec, nil
}
