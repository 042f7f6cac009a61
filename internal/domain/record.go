// Package domain holds the data types shared across pipeline stages:
// the day's remote record, locally stored artifacts, replication receipts,
// and notification outcomes. All types are plain values owned by a single
// run; nothing here performs I/O.
package domain

// MediaType classifies the day's record. Anything other than an image
// short-circuits the pipeline with a skip, not a failure.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaOther MediaType = "other"
)

// Record is the immutable snapshot of the remote picture-of-the-day
// metadata for one run. Created once by the fetcher, read-only after.
type Record struct {
	Date        string    `json:"date"`
	Title       string    `json:"title"`
	Explanation string    `json:"explanation"`
	MediaType   MediaType `json:"media_type"`
	URL         string    `json:"url"`
	HDURL       string    `json:"hdurl,omitempty"`
}

// IsImage reports whether the record's media type is an image.
func (r *Record) IsImage() bool {
	return r.MediaType == MediaImage
}

// BestURL returns the preferred download URL: the high-resolution variant
// when present, otherwise the primary URL. Empty when the record carries
// neither.
func (r *Record) BestURL() string {
	if r.HDURL != "" {
		return r.HDURL
	}
	return r.URL
}
