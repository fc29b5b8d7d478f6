package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cristianoliveira/adnow/internal/colors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureMainStderr(t *testing.T, fn func()) string {
	t.Helper()

	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	defer func() { os.Stderr = oldStderr }()

	fn()

	require.NoError(t, w.Close())
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	return buf.String()
}

func TestRunLogsStartupAndCompletion(t *testing.T) {
	colors.EnableStructuredLogging()
	colors.SetDebug(true)
	defer colors.SetDebug(false)

	var exitCode int
	output := captureMainStderr(t, func() {
		exitCode = run([]string{"list"}, func() error { return nil })
	})

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, output, `"component":"startup"`)
	assert.Contains(t, output, `"status":"started"`)
	assert.Contains(t, output, `"status":"completed"`)
}

func TestRunReportsFailure(t *testing.T) {
	colors.EnableStructuredLogging()
	colors.SetDebug(true)
	defer colors.SetDebug(false)

	var exitCode int
	output := captureMainStderr(t, func() {
		exitCode = run([]string{"show", "99"}, func() error { return errors.New("seller not found: 99") })
	})

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, output, "Seller not found: 99")
	assert.Contains(t, output, `"status":"failed"`)
}

func TestRunBrowseSkipsStartupLogs(t *testing.T) {
	colors.EnableStructuredLogging()
	colors.SetDebug(true)
	defer colors.SetDebug(false)

	var exitCode int
	output := captureMainStderr(t, func() {
		exitCode = run([]string{"--storage", "memory"}, func() error { return nil })
	})

	assert.Equal(t, 0, exitCode)
	assert.False(t, strings.Contains(output, `"component":"startup"`), output)
}

func TestIsBrowse(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{nil, true},
		{[]string{"browse"}, true},
		{[]string{"--catalog", "sellers.json"}, true},
		{[]string{"--catalog=sellers.json", "list"}, false},
		{[]string{"--storage", "memory", "browse"}, true},
		{[]string{"list", "--search", "bead"}, false},
		{[]string{"--help"}, false},
		{[]string{"version"}, false},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			assert.Equal(t, tt.want, isBrowse(tt.args))
		})
	}
}

func TestAppClientDebounceWindowLoadsConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("ADNOW_STORAGE_BACKEND", "memory")
	t.Setenv("ADNOW_SEARCH_DEBOUNCE_MS", "120")

	c := &appClient{}
	assert.Equal(t, 120*time.Millisecond, c.DebounceWindow(), "first call loads the configuration")
	require.NotNil(t, c.store)
	require.NoError(t, c.store.Close())
}
