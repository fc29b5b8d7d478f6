// Package hooks runs user scripts when adnow changes stored state.
//
// Scripts live in {hooks_dir}/<hook point>/ and run in name order. A script
// must be executable; anything else in the directory is skipped. Each script
// receives the event through ADNOW_* environment variables.
package hooks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cristianoliveira/adnow/internal/colors"
	"github.com/cristianoliveira/adnow/internal/config"
)

// Hook points.
const (
	PostFavoriteAdd    = "post-favorite-add"
	PostFavoriteRemove = "post-favorite-remove"
	PreReset           = "pre-reset"
	PostReset          = "post-reset"
)

// FailureMode decides what a failing script does to the operation.
type FailureMode string

const (
	// FailAbort stops at the first failing script and returns its error.
	FailAbort FailureMode = "abort"
	// FailWarn prints a warning and runs the remaining scripts.
	FailWarn FailureMode = "warn"
	// FailIgnore runs the remaining scripts silently.
	FailIgnore FailureMode = "ignore"
)

const defaultTimeout = 10 * time.Second

// Runner executes the scripts of a hook point.
type Runner struct {
	Dir     string
	Mode    FailureMode
	Timeout time.Duration
	// Output receives script output. Nil discards it.
	Output io.Writer
}

// NewFromConfig builds a Runner from hooks_dir, hooks_failure_mode and
// hooks_timeout_ms. hooks_dir defaults to {config_dir}/hooks.
func NewFromConfig() *Runner {
	dir := strings.TrimSpace(config.Get("hooks_dir", ""))
	if dir == "" {
		dir = filepath.Join(config.Get("config_dir", ""), "hooks")
	}
	return &Runner{
		Dir:     dir,
		Mode:    FailureMode(config.Get("hooks_failure_mode", string(FailWarn))),
		Timeout: time.Duration(config.GetInt("hooks_timeout_ms", int(defaultTimeout/time.Millisecond))) * time.Millisecond,
		Output:  os.Stderr,
	}
}

// Scripts returns the executable scripts of a hook point in run order.
// A missing directory has no scripts.
func (r *Runner) Scripts(point string) ([]string, error) {
	dir := filepath.Join(r.Dir, point)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read hooks dir %s: %w", dir, err)
	}

	var scripts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.Mode()&0111 == 0 {
			continue
		}
		scripts = append(scripts, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(scripts)
	return scripts, nil
}

// Run executes every script of point with env ("KEY=value") added to the
// process environment. Only FailAbort makes Run return a script failure.
func (r *Runner) Run(ctx context.Context, point string, env ...string) error {
	if r == nil {
		return nil
	}
	scripts, err := r.Scripts(point)
	if err != nil {
		return err
	}
	if len(scripts) == 0 {
		return nil
	}

	base := append(os.Environ(),
		"ADNOW_HOOK_POINT="+point,
		"ADNOW_HOOK_TIMESTAMP="+time.Now().UTC().Format(time.RFC3339),
	)
	if exe, err := os.Executable(); err == nil {
		base = append(base, "ADNOW_BINARY="+exe)
	}
	base = append(base, env...)

	colors.StructuredDebug("hooks", "run", "started", nil, point, map[string]interface{}{"scripts": len(scripts)})
	for _, script := range scripts {
		if err := r.runScript(ctx, script, base); err != nil {
			switch r.Mode {
			case FailAbort:
				return err
			case FailIgnore:
			default:
				colors.Warning(err.Error())
			}
		}
	}
	return nil
}

func (r *Runner) runScript(ctx context.Context, script string, env []string) error {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, script)
	cmd.Env = env
	cmd.Stdout = &out
	cmd.Stderr = &out

	start := time.Now()
	err := cmd.Run()
	if r.Output != nil && out.Len() > 0 {
		_, _ = r.Output.Write(out.Bytes())
	}
	name := filepath.Base(script)
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("hook %s timed out after %s", name, timeout)
	}
	if err != nil {
		return fmt.Errorf("hook %s failed: %w", name, err)
	}
	colors.StructuredDebug("hooks", "script", "completed", nil, name, map[string]interface{}{
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}
