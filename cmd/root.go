package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/adnow/internal/version"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:           "adnow",
	Short:         "Browse local sellers from the terminal.",
	Long:          `Browse local sellers from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. main reports the returned error.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.Version = version.String()

	// Hide the completion command
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != RootCmd {
			// Subcommands keep cobra's own help with their flags listed.
			fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
			if cmd.Long != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", cmd.Long)
			}
			return
		}
		printHelpText(cmd, cmd.OutOrStdout())
	})

	RootCmd.PersistentFlags().String("catalog", "", "Catalog source: URL, file path or 'embedded' (overrides catalog_source)")
	RootCmd.PersistentFlags().String("storage", "", "Storage backend: sqlite, redis or memory (overrides storage_backend)")
}

var commandOrder = []string{
	"browse",
	"list",
	"show",
	"categories",
	"favorites",
	"visits",
	"prefs",
	"history",
	"serve",
	"reset",
	"version",
}

func printHelpText(cmd *cobra.Command, w io.Writer) {
	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Use, found.Short))
	}

	fmt.Fprintf(w, `adnow v%s

Browse local sellers from the terminal.

USAGE:
    adnow [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    --catalog <src>  Catalog source (URL, file path or embedded)
    --storage <name> Storage backend (sqlite, redis, memory)
    -h, --help       Show help message

Running adnow without a command opens the browser.
`, version.String(), strings.Join(cmdLines, "\n"))
}
