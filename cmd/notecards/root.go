package main

import (
	"log/slog"

	"github.com/marcus/notecards/internal/config"
	"github.com/spf13/cobra"
)

// options holds the persistent flags and what PersistentPreRunE derives
// from them.
type options struct {
	configPath string
	dataDir    string
	debug      bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "notecards",
		Short: "Notes as cards in your terminal",
		Long: `notecards keeps short text notes and shows them as a grid of cards.
Type in the search box to filter them; press n to write a new one.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd, false)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config file (default ~/.config/notecards/config.json)")
	flags.StringVar(&opts.dataDir, "data-dir", "", "directory holding the notes slot (overrides storage.dir)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newAddCmd(opts))
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// setup configures logging and loads configuration. With lenient set, an
// unreadable config file falls back to the defaults instead of failing.
func (o *options) setup(cmd *cobra.Command, lenient bool) error {
	level := slog.LevelInfo
	if o.debug {
		level = slog.LevelDebug
	}
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(o.logger)

	cfg, err := config.LoadFrom(o.configPath)
	if err != nil {
		if !lenient {
			return err
		}
		o.logger.Warn("config unreadable, using defaults", "error", err)
		cfg = config.Default()
		cfg.Storage.Dir = config.ExpandPath(cfg.Storage.Dir)
	}
	if o.dataDir != "" {
		cfg.Storage.Dir = config.ExpandPath(o.dataDir)
	}
	o.cfg = cfg
	o.logger.Debug("config loaded", "backend", cfg.Storage.Backend, "dir", cfg.Storage.Dir, "key", cfg.Storage.Key)
	return nil
}
