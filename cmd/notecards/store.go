package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/marcus/notecards/internal/config"
	"github.com/marcus/notecards/internal/note"
	"github.com/marcus/notecards/internal/notes"
	"github.com/marcus/notecards/internal/slot"
	"github.com/spf13/afero"
)

const dbFile = "notecards.db"

// openSlot opens the configured storage backend. The FileSlot is returned
// separately when the backend is file-based so callers can watch it.
func openSlot(cfg *config.Config) (slot.Slot, *slot.FileSlot, error) {
	dir := cfg.Storage.Dir
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		s, err := slot.OpenSQLite(slot.DriverCgo, filepath.Join(dir, dbFile))
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite slot: %w", err)
		}
		return s, nil, nil
	case config.BackendSQLitePure:
		s, err := slot.OpenSQLite(slot.DriverPure, filepath.Join(dir, dbFile))
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite slot: %w", err)
		}
		return s, nil, nil
	default:
		fs := slot.NewFileSlot(afero.NewOsFs(), dir)
		return fs, fs, nil
	}
}

// openStore opens the slot and hydrates a store from it.
func openStore(cfg *config.Config, logger *slog.Logger) (*notes.Store, slot.Slot, *slot.FileSlot, error) {
	sl, fileSlot, err := openSlot(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	clock := note.SystemClock{}
	store := notes.Open(sl,
		notes.WithKey(cfg.Storage.Key),
		notes.WithIDGenerator(note.NewGenerator(cfg.IDs.Format, clock)),
		notes.WithClock(clock),
		notes.WithLogger(logger),
	)
	return store, sl, fileSlot, nil
}
