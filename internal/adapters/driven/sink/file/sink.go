// Package file writes rendered documents to the local filesystem.
//
// Writes are atomic: the bytes go to a temporary file in the destination
// directory which is then renamed over the target. A destination ending in
// .reqifz is written as a zip archive holding a single .reqif entry.
package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/custodia-labs/reqif-cli/internal/adapters/driven/sink"
	"github.com/custodia-labs/reqif-cli/internal/core/domain"
	"github.com/custodia-labs/reqif-cli/internal/core/ports/driven"
)

// Archive and plain document extensions.
const (
	ArchiveExt  = ".reqifz"
	DocumentExt = ".reqif"
)

// Ensure Sink implements the interface.
var _ driven.DocumentSink = (*Sink)(nil)

// Sink writes documents to files.
type Sink struct {
	perm fs.FileMode
}

// New creates a file sink writing files with mode 0644.
func New() *Sink {
	return &Sink{perm: 0o644}
}

// Write stores data at destination unless the file already holds the same
// document.
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

	if current, err := s.read(destination); err == nil && sink.Digest(current) == digest {
		return result, nil
	}

	payload := data
	if IsArchive(destination) {
		var err error
		if payload, err = archive(destination, data); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrSinkFailure, err)
		}
	}

	if err := s.writeAtomic(destination, payload); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSinkFailure, err)
	}
	result.Written = true
	return result, nil
}

// Read returns the document stored at destination, unpacking archives.
func (s *Sink) Read(destination string) ([]byte, error) {
	data, err := s.read(destination)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", destination, domain.ErrNotFound)
	}
	return data, err
}

func (s *Sink) read(destination string) ([]byte, error) {
	if !IsArchive(destination) {
		return os.ReadFile(destination)
	}

	r, err := zip.OpenReader(destination)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if strings.HasSuffix(f.Name, DocumentExt) {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("%s: no %s entry: %w", destination, DocumentExt, fs.ErrNotExist)
}

func (s *Sink) writeAtomic(destination string, payload []byte) (err error) {
	dir := filepath.Dir(destination)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(destination)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", destination, err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing %s: %w", destination, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", destination, err)
	}
	if err = os.Chmod(tmp.Name(), s.perm); err != nil {
		return fmt.Errorf("setting mode on %s: %w", destination, err)
	}
	if err = os.Rename(tmp.Name(), destination); err != nil {
		return fmt.Errorf("renaming into %s: %w", destination, err)
	}
	return nil
}

// IsArchive reports whether destination names a .reqifz archive.
func IsArchive(destination string) bool {
	return strings.EqualFold(filepath.Ext(destination), ArchiveExt)
}

// archive packs data as the single entry of a zip archive. The entry is
// named after the destination with a .reqif extension and carries no
// timestamp, so equal documents give equal archives.
func archive(destination string, data []byte) ([]byte, error) {
	base := filepath.Base(destination)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + DocumentExt

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return nil, fmt.Errorf("creating archive entry: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("compressing document: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}
	return buf.Bytes(), nil
}
