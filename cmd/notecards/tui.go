package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notecards/internal/app"
	"github.com/marcus/notecards/internal/keymap"
	"github.com/marcus/notecards/internal/plugin"
	notesplugin "github.com/marcus/notecards/internal/plugins/notes"
	"github.com/marcus/notecards/internal/slot"
	"github.com/marcus/notecards/internal/state"
	"github.com/marcus/notecards/internal/styles"
	"github.com/marcus/notecards/internal/version"
	"github.com/spf13/cobra"
)

const logFile = "notecards.log"

func runTUI(cmd *cobra.Command, opts *options) error {
	cfg := opts.cfg

	// stderr belongs to the terminal UI; log to a file next to the data.
	logger, closeLog, err := fileLogger(filepath.Join(cfg.Storage.Dir, logFile), opts.debug)
	if err != nil {
		return err
	}
	defer closeLog()

	if cfg.UI.Accent != "" {
		if err := styles.ApplyAccent(cfg.UI.Accent); err != nil {
			logger.Warn("ignoring ui.accent", "error", err)
		}
	}

	// Load persistent state (ignore errors - state is optional)
	if err := state.Init(); err != nil {
		logger.Warn("state load failed", "error", err)
	}

	store, sl, fileSlot, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer sl.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var (
		changes  <-chan slot.Change
		watchErr error
	)
	if cfg.Storage.Watch && fileSlot != nil {
		ch, err := fileSlot.Watch(ctx, cfg.Storage.Key, logger)
		if err != nil {
			logger.Warn("slot watch disabled", "error", err)
			watchErr = fmt.Errorf("watch notes: %w", err)
		} else {
			changes = ch
		}
	}

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	for key, cmdID := range cfg.Keymap.Overrides {
		km.SetUserOverride(key, cmdID)
	}

	p := notesplugin.New()
	err = p.Init(&plugin.Context{
		Config:  cfg,
		Store:   store,
		Keymap:  km,
		Logger:  logger,
		Changes: changes,
	})
	if err != nil {
		return fmt.Errorf("init notes: %w", err)
	}
	defer p.Stop()

	model := app.New(p, km, cfg, version.Effective(Version))
	model.ReportOnStart(watchErr)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// fileLogger returns a logger writing to path.
func fileLogger(path string, debug bool) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { f.Close() }, nil
}
