package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintHelpText(t *testing.T) {
	root := &cobra.Command{Use: "adnow"}
	root.AddCommand(
		&cobra.Command{Use: "version", Short: "Show version information"},
		&cobra.Command{Use: "list", Short: "List sellers"},
		&cobra.Command{Use: "hidden-extra", Short: "Not in the help order"},
	)

	var buf bytes.Buffer
	printHelpText(root, &buf)
	out := buf.String()

	assert.Contains(t, out, "USAGE:")
	assert.Contains(t, out, "    list             List sellers")
	assert.NotContains(t, out, "hidden-extra")

	listAt := bytes.Index(buf.Bytes(), []byte("list "))
	versionAt := bytes.Index(buf.Bytes(), []byte("version "))
	require.True(t, listAt > 0 && versionAt > 0)
	assert.Less(t, listAt, versionAt, "commands follow the fixed order")
}

func TestRootFlags(t *testing.T) {
	for _, name := range []string{"catalog", "storage"} {
		assert.NotNil(t, RootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.True(t, RootCmd.SilenceUsage)
}
