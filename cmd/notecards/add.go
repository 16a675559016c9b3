package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/marcus/notecards/internal/notes"
	"github.com/spf13/cobra"
)

func newAddCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add [text...]",
		Short: "Create a note",
		Long:  "Create a note from the arguments, or from standard input when none are given.",
		Example: `  notecards add Buy milk
  echo "Call mom" | notecards add`,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				content = strings.TrimRight(string(data), "\r\n")
			}
			return runAdd(cmd, opts, content)
		},
	}
}

func runAdd(cmd *cobra.Command, opts *options, content string) error {
	store, sl, _, err := openStore(opts.cfg, opts.logger)
	if err != nil {
		return err
	}
	defer sl.Close()

	n, err := store.Create(content)
	if errors.Is(err, notes.ErrEmptyContent) {
		return errors.New("nothing to add: note content is empty")
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created note %s\n", n.ID)
	return nil
}
