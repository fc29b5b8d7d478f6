package main

import (
	"fmt"
	"io"
	"time"

	"github.com/cristianoliveira/adnow/cmd"
	"github.com/cristianoliveira/adnow/internal/storage"
	"github.com/spf13/cobra"
)

type persistenceClient interface {
	Persistence() *storage.Store
}

// NewVisitsCmd creates the visits command with explicit dependencies.
func NewVisitsCmd(client persistenceClient) *cobra.Command {
	if client == nil {
		panic("NewVisitsCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "visits",
		Short: "Show how many times the browser was opened",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return PrintVisits(client.Persistence(), cmd.OutOrStdout())
		},
	}
}

// PrintVisits writes the visit counter and the last visit time.
func PrintVisits(store *storage.Store, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Visits: %d\n", store.VisitCount()); err != nil {
		return err
	}
	if last, ok := store.LastVisit(); ok {
		_, err := fmt.Fprintf(w, "Last visit: %s\n", last.Local().Format(time.RFC1123))
		return err
	}
	return nil
}

func init() {
	cmd.RootCmd.AddCommand(NewVisitsCmd(coreClient))
}
