package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/adnow/cmd"
	"github.com/cristianoliveira/adnow/internal/colors"
	"github.com/cristianoliveira/adnow/internal/settings"
	"github.com/spf13/cobra"
)

const prefsCommandLong = `Show or change the saved browser preferences.

USAGE:
    adnow prefs [show]
    adnow prefs set <key>=<value> [<key>=<value>...]

KEYS:
    sortBy      name, rating or newest
    viewMode    grid or list
    darkMode    true or false

EXAMPLES:
    adnow prefs set sortBy=rating viewMode=list`

// NewPrefsCmd creates the prefs command with explicit dependencies.
func NewPrefsCmd(client persistenceClient) *cobra.Command {
	if client == nil {
		panic("NewPrefsCmd: client dependency cannot be nil")
	}

	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change saved preferences",
		Long:  prefsCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return PrintPrefs(client, cmd.OutOrStdout())
		},
	}
	prefsCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Display saved preferences as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return PrintPrefs(client, cmd.OutOrStdout())
		},
	})
	prefsCmd.AddCommand(&cobra.Command{
		Use:   "set <key>=<value>...",
		Short: "Change one or more preferences",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return SetPrefs(client, args)
		},
	})
	return prefsCmd
}

// PrintPrefs writes the preferences in their stored shape.
func PrintPrefs(client persistenceClient, w io.Writer) error {
	prefs := settings.Load(client.Persistence())
	data, err := json.MarshalIndent(prefs.ToMap(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// SetPrefs applies key=value pairs. Nothing is written unless every pair is valid.
func SetPrefs(client persistenceClient, pairs []string) error {
	prefs := settings.Load(client.Persistence())
	staged := &stagedStore{values: prefs.ToMap()}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return fmt.Errorf("expected key=value, got %q", pair)
		}
		if err := settings.Set(staged, strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	if err := settings.Save(client.Persistence(), settings.FromMap(staged.values)); err != nil {
		return err
	}
	colors.Success("Preferences saved")
	return nil
}

// stagedStore collects preference updates in memory.
type stagedStore struct {
	values map[string]any
}

func (s *stagedStore) Preferences() map[string]any {
	return s.values
}

func (s *stagedStore) UpdatePreferences(partial map[string]any) {
	for k, v := range partial {
		s.values[k] = v
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewPrefsCmd(coreClient))
}
