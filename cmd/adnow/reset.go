package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cristianoliveira/adnow/cmd"
	"github.com/cristianoliveira/adnow/internal/colors"
	"github.com/cristianoliveira/adnow/internal/hooks"
	"github.com/spf13/cobra"
)

// resetInput is read for the confirmation answer. Replaced in tests.
var resetInput io.Reader = os.Stdin

type resetClient interface {
	persistenceClient
	Hooks() *hooks.Runner
}

// NewResetCmd creates the reset command with explicit dependencies.
func NewResetCmd(client resetClient) *cobra.Command {
	if client == nil {
		panic("NewResetCmd: client dependency cannot be nil")
	}

	var force bool
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete visits, favorites, preferences and search history",
		Long: `Delete every value adnow has stored: the visit counter, favorites,
preferences, search history and last visit time.

Scripts in {hooks_dir}/pre-reset run first; with hooks_failure_mode=abort
a failing script keeps the data.

USAGE:
    adnow reset [--force]`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && os.Getenv("CI") == "" && !confirmReset(cmd.OutOrStdout(), resetInput) {
				colors.Info("Operation cancelled")
				return nil
			}
			runner := client.Hooks()
			if err := runner.Run(cmd.Context(), hooks.PreReset); err != nil {
				return fmt.Errorf("reset cancelled by hook: %w", err)
			}
			client.Persistence().ClearAll()
			colors.Success("Stored data cleared")
			return runner.Run(cmd.Context(), hooks.PostReset)
		},
	}
	resetCmd.Flags().BoolVar(&force, "force", false, "Reset without confirmation")
	return resetCmd
}

// confirmReset asks the user for confirmation before clearing stored data.
func confirmReset(w io.Writer, r io.Reader) bool {
	fmt.Fprint(w, "Are you sure you want to delete all stored data? (y/N): ")
	answer, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}

func init() {
	cmd.RootCmd.AddCommand(NewResetCmd(coreClient))
}
