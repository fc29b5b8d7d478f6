// Package colors provides console output helpers for adnow commands.
// Every console line is mirrored to the structured file logger when one is set.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// Color constants
const (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[1;33m"
	Blue   = "\033[0;34m"
	Cyan   = "\033[0;36m"
	Reset  = "\033[0m"
)

const checkmark = "✓"

// DebugEnv turns on debug output when set to "true" or "1".
const DebugEnv = "ADNOW_DEBUG"

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// kind is one console message style.
type kind struct {
	label  string // e.g. "Error:", printed in color before the message
	color  string // used for the whole line when label is empty
	stderr bool
	// chatty lines are dropped in quiet mode
	chatty bool
	mirror func(l Logger, msg string)
}

var (
	kindError = kind{label: Red + "Error:" + Reset + " ", stderr: true,
		mirror: func(l Logger, msg string) { l.Error(msg) }}
	kindWarning = kind{label: Yellow + "Warning:" + Reset + " ", stderr: true,
		mirror: func(l Logger, msg string) { l.Warn(msg) }}
	kindSuccess = kind{label: Green + checkmark + Reset + " ", chatty: true,
		mirror: func(l Logger, msg string) { l.Info(msg, "type", "success") }}
	kindInfo = kind{color: Blue, chatty: true,
		mirror: func(l Logger, msg string) { l.Info(msg) }}
	kindLogInfo = kind{color: Blue, stderr: true,
		mirror: func(l Logger, msg string) { l.Info(msg) }}
	kindDebug = kind{label: Cyan + "Debug:" + Reset + " ", stderr: true,
		mirror: func(l Logger, msg string) { l.Debug(msg) }}
)

var (
	debugEnabled = debugFromEnv()
	quiet        atomic.Bool

	outMu     sync.Mutex
	writeMu   sync.Mutex
	stdoutW   io.Writer
	stderrW   io.Writer
	logger    Logger
	loggerMu  sync.RWMutex
	writeFail atomic.Bool
)

func debugFromEnv() bool {
	val := os.Getenv(DebugEnv)
	return val == "true" || val == "1"
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

// SetQuiet drops Info and Success lines from the console. They are still
// mirrored to the logger.
func SetQuiet(enabled bool) {
	quiet.Store(enabled)
}

// SetOutput redirects console output. A nil writer restores the process
// stream, resolved at write time.
func SetOutput(stdout, stderr io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	stdoutW, stderrW = stdout, stderr
}

// SetLogger sets the structured logger to mirror console output.
func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

func writerFor(k kind) io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	if k.stderr {
		if stderrW != nil {
			return stderrW
		}
		return os.Stderr
	}
	if stdoutW != nil {
		return stdoutW
	}
	return os.Stdout
}

// writeLine serializes writes so concurrent lines never interleave.
func writeLine(k kind, line []byte) error {
	w := writerFor(k)
	writeMu.Lock()
	defer writeMu.Unlock()
	_, err := w.Write(line)
	return err
}

func emit(k kind, msgs []string) {
	msg := strings.Join(msgs, " ")

	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l != nil {
		k.mirror(l, msg)
	}
	if k.chatty && quiet.Load() {
		return
	}

	var line string
	if k.label != "" {
		line = k.label + msg + Reset + "\n"
	} else {
		line = k.color + msg + Reset + "\n"
	}
	if err := writeLine(k, []byte(line)); err != nil {
		// report once, uncolored, so a closed pipe does not loop
		if writeFail.CompareAndSwap(false, true) {
			fmt.Fprintf(os.Stderr, "adnow: console write failed: %v\n", err)
		}
	}
}

// Error outputs an error message to stderr.
func Error(msgs ...string) { emit(kindError, msgs) }

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) { emit(kindWarning, msgs) }

// Success outputs a success message to stdout.
func Success(msgs ...string) { emit(kindSuccess, msgs) }

// Info outputs an informational message to stdout.
func Info(msgs ...string) { emit(kindInfo, msgs) }

// LogInfo outputs an informational message to stderr, for commands whose
// stdout is data.
func LogInfo(msgs ...string) { emit(kindLogInfo, msgs) }

// Debug outputs a debug message to stderr if debug is enabled.
func Debug(msgs ...string) {
	if !debugEnabled {
		return
	}
	emit(kindDebug, msgs)
}
