package slot

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

// ErrWatchUnsupported is returned when the slot's filesystem is not the OS
// filesystem.
var ErrWatchUnsupported = errors.New("watch requires an OS-backed file slot")

// debounceDelay coalesces the create/write/rename bursts of one atomic write.
const debounceDelay = 100 * time.Millisecond

// Change reports that a slot's stored value was replaced by another writer.
type Change struct {
	Key string
}

// Watch reports changes to key made outside this FileSlot, such as another
// process writing the same directory. Writes made through s are not
// reported. The returned channel is closed once ctx is done.
func (s *FileSlot) Watch(ctx context.Context, key string, logger *slog.Logger) (<-chan Change, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	if _, ok := s.fs.(*afero.OsFs); !ok {
		return nil, ErrWatchUnsupported
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return nil, err
	}

	target := filepath.Clean(s.Path(key))
	lastSeen, _ := s.hashFile(target)
	events := make(chan Change, 8)

	go func() {
		defer watcher.Close()
		defer close(events)

		debounce := time.NewTimer(debounceDelay)
		debounce.Stop()

		for {
			select {
			case <-ctx.Done():
				debounce.Stop()
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				debounce.Reset(debounceDelay)

			case <-debounce.C:
				sum, ok := s.hashFile(target)
				if !ok || sum == lastSeen {
					continue
				}
				lastSeen = sum
				if own, ok := s.lastWritten(key); ok && own == sum {
					continue
				}
				select {
				case events <- Change{Key: key}:
				default:
					// Receiver is behind; it will read the latest value anyway.
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Debug("slot: watch error", "key", key, "error", err)
			}
		}
	}()

	return events, nil
}

func (s *FileSlot) hashFile(path string) (uint64, bool) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return 0, false
	}
	return xxhash.Sum64(data), true
}
