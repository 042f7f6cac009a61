package domain

// Origin distinguishes the downloaded original from its optimized copy.
type Origin string

const (
	OriginOriginal  Origin = "original"
	OriginOptimized Origin = "optimized"
)

// Artifact is a materialized image file on local storage. The acquirer
// creates one with OriginOriginal; the normalizer consumes it and produces
// exactly one OriginOptimized counterpart.
type Artifact struct {
	Path     string
	Origin   Origin
	ByteSize int64
}

// Receipt is evidence that an artifact reached the replication sink.
// Source is a weak reference (path only); the sink does not own the
// artifact. Receipts are never mutated.
type Receipt struct {
	Destination string
	Source      string
}
