package slot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"
)

const fileExt = ".json"

// FileSlot stores each key as <dir>/<key>.json on an afero filesystem.
type FileSlot struct {
	fs  afero.Fs
	dir string

	mu      sync.Mutex
	written map[string]uint64 // key -> hash of the last value this slot wrote
}

// NewFileSlot creates a file-backed slot rooted at dir.
func NewFileSlot(fs afero.Fs, dir string) *FileSlot {
	return &FileSlot{
		fs:      fs,
		dir:     dir,
		written: make(map[string]uint64),
	}
}

// NewMemorySlot returns a FileSlot on an in-memory filesystem.
func NewMemorySlot() *FileSlot {
	return NewFileSlot(afero.NewMemMapFs(), "/slots")
}

// Path returns the file that holds key.
func (s *FileSlot) Path(key string) string {
	return filepath.Join(s.dir, key+fileExt)
}

// Get reads the value stored under key.
func (s *FileSlot) Get(key string) ([]byte, bool, error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}
	data, err := afero.ReadFile(s.fs, s.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read slot %s: %w", key, err)
	}
	return data, true, nil
}

// Set replaces the value stored under key. The file is written to a temp
// file and renamed into place so readers never see a partial value.
func (s *FileSlot) Set(key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := writeFileAtomic(s.fs, s.Path(key), value); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	s.mu.Lock()
	s.written[key] = xxhash.Sum64(value)
	s.mu.Unlock()
	return nil
}

// Close is a no-op; files are not held open between calls.
func (s *FileSlot) Close() error { return nil }

// lastWritten returns the hash of the last value Set wrote under key.
func (s *FileSlot) lastWritten(key string) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum, ok := s.written[key]
	return sum, ok
}

// writeFileAtomic writes data to path via a temp file in the same directory
// followed by a rename.
func writeFileAtomic(fs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(fs, dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer fs.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := fs.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
