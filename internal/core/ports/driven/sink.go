package driven

import "context"

// DocumentSink writes rendered document bytes to a destination.
type DocumentSink interface {
	// Write stores data at destination. Failures wrap domain.ErrSinkFailure.
	Write(ctx context.Context, destination string, data []byte) (*SinkResult, error)
}

// SinkResult describes a completed write.
type SinkResult struct {
	// Destination is where the bytes ended up.
	Destination string

	// Bytes is the size of the rendered document.
	Bytes int

	// Digest is the hex BLAKE3 digest of the rendered document.
	Digest string

	// Written is false when the destination already held identical content.
	Written bool
}
