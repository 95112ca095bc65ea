// Package media holds uploaded blobs in a local staging area while a draft is
// being edited. Staged files are transient: they become durable only when the
// submission assembler promotes them to the storage service.
package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StagedFile describes one blob waiting in the staging area.
type StagedFile struct {
	ID          string
	Name        string
	Size        int64
	ContentType string
	Path        string
	StoredAt    time.Time
}

// StagingStore writes uploads to a directory and indexes them by handle ID.
type StagingStore struct {
	dir string

	mu    sync.RWMutex
	files map[string]StagedFile
}

// NewStagingStore creates the staging directory if needed. An empty dir
// places the staging area under the system temp directory.
func NewStagingStore(dir string) (*StagingStore, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "estatedesk-staging")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("staging: failed to create directory %s: %w", dir, err)
	}
	return &StagingStore{
		dir:   dir,
		files: make(map[string]StagedFile),
	}, nil
}

// Put copies src into the staging area and returns its handle.
func (s *StagingStore) Put(src io.Reader, name, contentType string) (StagedFile, error) {
	id := uuid.New().String()
	path := filepath.Join(s.dir, id)

	dst, err := os.Create(path)
	if err != nil {
		return StagedFile{}, fmt.Errorf("staging: failed to create %s: %w", path, err)
	}
	written, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return StagedFile{}, fmt.Errorf("staging: failed to write %s: %w", name, err)
	}

	file := StagedFile{
		ID:          id,
		Name:        name,
		Size:        written,
		ContentType: contentType,
		Path:        path,
		StoredAt:    time.Now(),
	}

	s.mu.Lock()
	s.files[id] = file
	s.mu.Unlock()
	return file, nil
}

// Get returns the staged file for the given handle ID.
func (s *StagingStore) Get(id string) (StagedFile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[id]
	return f, ok
}

// Remove deletes a staged file and its index entry. Removing an unknown
// handle is a no-op.
func (s *StagingStore) Remove(id string) error {
	s.mu.Lock()
	f, ok := s.files[id]
	delete(s.files, id)
	s.mu.Unlock()

	if !ok {
		return nil
	}
	if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("staging: failed to remove %s: %w", f.Path, err)
	}
	return nil
}

// Sweep removes staged files older than maxAge and returns how many were
// deleted. Abandoned drafts leave staged files behind; the background worker
// calls this periodically.
func (s *StagingStore) Sweep(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	s.mu.Lock()
	var stale []StagedFile
	for id, f := range s.files {
		if f.StoredAt.Before(cutoff) {
			stale = append(stale, f)
			delete(s.files, id)
		}
	}
	s.mu.Unlock()

	for _, f := range stale {
		os.Remove(f.Path)
	}
	return len(stale)
}
