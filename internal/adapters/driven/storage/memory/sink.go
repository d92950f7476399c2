package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/reqif-cli/internal/adapters/driven/sink"
	"github.com/custodia-labs/reqif-cli/internal/core/domain"
	"github.com/custodia-labs/reqif-cli/internal/core/ports/driven"
)

// Ensure Sink implements the interface.
var _ driven.DocumentSink = (*Sink)(nil)

// Sink is an in-memory implementation of driven.DocumentSink.
// It keeps the last bytes written to every destination.
type Sink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewSink creates a new in-memory sink.
func NewSink() *Sink {
	return &Sink{
		files: make(map[string][]byte),
	}
}

// Write stores data under destination. Identical content is not rewritten.
func (s *Sink) Write(ctx context.Context, destination string, data []byte) (*driven.SinkResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSinkFailure, err)
	}
	if destination == "" {
		return nil, fmt.Errorf("%w: empty destination", domain.ErrSinkFailure)
	}

	digest := sink.Digest(data)
	result := &driven.SinkResult{
		Destination: destination,
		Bytes:       len(data),
		Digest:      digest,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.files[destination]; ok && sink.Digest(existing) == digest {
		return result, nil
	}
	s.files[destination] = append([]byte(nil), data...)
	result.Written = true
	return result, nil
}

// Get returns the bytes last written to destination.
func (s *Sink) Get(destination string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[destination]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Destinations returns every destination written so far.
func (s *Sink) Destinations() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]string, 0, len(s.files))
	for d := range s.files {
		result = append(result, d)
	}
	sort.Strings(result)
	return result
}
