package main

import (
	"fmt"
	"strings"

	"github.com/marcus/notecards/internal/filter"
	"github.com/marcus/notecards/internal/note"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

const listContentWidth = 60

func newListCmd(opts *options) *cobra.Command {
	var query string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		Example: `  notecards list
  notecards list --query milk
  notecards list --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, query, asJSON)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Only show notes containing this text (case-insensitive)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the notes as a JSON array")
	return cmd
}

func runList(cmd *cobra.Command, opts *options, query string, asJSON bool) error {
	store, sl, _, err := openStore(opts.cfg, opts.logger)
	if err != nil {
		return err
	}
	defer sl.Close()

	shown := filter.Filter(store.Notes(), query)
	out := cmd.OutOrStdout()

	if asJSON {
		data, err := note.EncodeCollection(shown)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(shown) == 0 {
		if query != "" {
			fmt.Fprintf(out, "No notes match %q.\n", query)
		} else {
			fmt.Fprintln(out, "No notes yet. Add one with 'notecards add'.")
		}
		return nil
	}
	for _, n := range shown {
		fmt.Fprintf(out, "%s  %s\n", n.Date.Local().Format("2006-01-02 15:04"), summary(n.Content))
	}
	return nil
}

// summary returns the first line of content cut to listContentWidth cells.
func summary(content string) string {
	first, rest, more := strings.Cut(content, "\n")
	if more && strings.TrimSpace(rest) != "" {
		first += " …"
	}
	return runewidth.Truncate(first, listContentWidth, "…")
}
