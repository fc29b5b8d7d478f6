package main

import (
	"fmt"
	"io"

	"github.com/cristianoliveira/adnow/cmd"
	"github.com/cristianoliveira/adnow/internal/colors"
	"github.com/cristianoliveira/adnow/internal/storage"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command with explicit dependencies.
func NewHistoryCmd(client persistenceClient) *cobra.Command {
	if client == nil {
		panic("NewHistoryCmd: client dependency cannot be nil")
	}

	var clearHistory bool
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent searches",
		Long: `Show searches confirmed with Enter in the browser, most recent first.

USAGE:
    adnow history [--clear]`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := client.Persistence()
			if clearHistory {
				store.ClearSearchHistory()
				colors.Success("Search history cleared")
				return nil
			}
			return PrintHistory(store, cmd.OutOrStdout())
		},
	}
	historyCmd.Flags().BoolVar(&clearHistory, "clear", false, "Clear the search history")
	return historyCmd
}

// PrintHistory writes the search history, one term per line.
func PrintHistory(store *storage.Store, w io.Writer) error {
	terms := store.SearchHistory()
	if len(terms) == 0 {
		_, err := fmt.Fprintln(w, "No recent searches")
		return err
	}
	for _, term := range terms {
		if _, err := fmt.Fprintln(w, term); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	cmd.RootCmd.AddCommand(NewHistoryCmd(coreClient))
}
