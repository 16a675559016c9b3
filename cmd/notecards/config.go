package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/marcus/notecards/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write configuration",
	}
	cmd.AddCommand(newConfigShowCmd(opts))
	cmd.AddCommand(newConfigInitCmd(opts))
	return cmd
}

func newConfigShowCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Encode(opts.cfg, !asJSON)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON instead of YAML")
	return cmd
}

func newConfigInitCmd(opts *options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Long: `Write the effective configuration to --config, or to
~/.config/notecards/config.json. Unknown top-level keys already in the file are kept.
A file that cannot be parsed is replaced with the defaults when --force is set.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd, force)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				path = config.ConfigPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			var err error
			if opts.configPath == "" {
				err = config.Save(opts.cfg)
			} else {
				err = config.SaveTo(path, opts.cfg)
			}
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
