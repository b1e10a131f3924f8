package debug

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// DefaultPath is the backing file, relative to the working directory.
const DefaultPath = ".debug"

// Store persists the single debug record.
type Store interface {
	Read(ctx context.Context) (*Record, error)
	Write(ctx context.Context, record *Record) error
}

// FileStore keeps the record in one afs-addressable file.
type FileStore struct {
	fs  afs.Service
	URL string
}

// Read returns the stored record; a missing file reads as disabled with no expiry.
func (s *FileStore) Read(ctx context.Context) (*Record, error) {
	ok, err := s.fs.Exists(ctx, s.URL)
	if err != nil {
		return DisabledRecord(), fmt.Errorf("failed to check %v: %w", s.URL, err)
	}
	if !ok {
		return DisabledRecord(), nil
	}
	data, err := s.fs.DownloadWithURL(ctx, s.URL)
	if err != nil {
		return DisabledRecord(), fmt.Errorf("failed to read %v: %w", s.URL, err)
	}
	return DecodeRecord(data), nil
}

// Write overwrites the backing file with the encoded record.
func (s *FileStore) Write(ctx context.Context, record *Record) error {
	if err := s.fs.Upload(ctx, s.URL, file.DefaultFileOsMode, bytes.NewReader(record.Encode())); err != nil {
		return fmt.Errorf("failed to write %v: %w", s.URL, err)
	}
	return nil
}

// NewFileStore creates a store for location; plain paths resolve against the working directory.
func NewFileStore(fs afs.Service, location string) *FileStore {
	if fs == nil {
		fs = afs.New()
	}
	if location == "" {
		location = DefaultPath
	}
	return &FileStore{fs: fs, URL: resolveURL(location)}
}

func resolveURL(location string) string {
	if url.Scheme(location, "") != "" {
		return location
	}
	if abs, err := filepath.Abs(location); err == nil {
		location = abs
	}
	return file.Scheme + "://" + location
}
