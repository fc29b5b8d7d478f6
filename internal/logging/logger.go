package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/cristianoliveira/adnow/internal/colors"
)

// Logger is the structured logging interface.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With returns a child logger that adds args to every entry.
	With(args ...any) Logger
	// Shutdown closes the log file. Children share it.
	Shutdown() error
}

// logFile is shared by a logger and all of its children.
type logFile struct {
	f    *os.File
	path string
	once sync.Once
	err  error
}

func (lf *logFile) close() error {
	lf.once.Do(func() { lf.err = lf.f.Close() })
	return lf.err
}

type fileLogger struct {
	clogger *clog.Logger
	file    *logFile
	redact  *redactor
}

// fileName builds adnow_<timestamp>_PID<pid>_<command>.log.
func fileName(cfg Config, now time.Time) string {
	command := strings.Join(strings.Fields(cfg.Command), "_")
	if command == "" {
		command = "adnow"
	}
	return fmt.Sprintf("%s%s_PID%d_%s.log", FilePrefix, now.Format("20060102_150405"), cfg.PID, command)
}

// Init opens a new JSON log file for cfg. A disabled config yields a logger
// that discards everything.
func Init(cfg Config) (Logger, error) {
	if !cfg.Enabled {
		return noopLogger{}, nil
	}
	logDir, err := LogDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine log directory: %w", err)
	}
	if err := rotate(logDir, cfg.MaxFiles); err != nil {
		colors.Debug("log rotation:", err.Error())
	}

	path := filepath.Join(logDir, fileName(cfg, time.Now()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	clogger := clog.NewWithOptions(f, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           parseLevel(cfg.Level),
	})
	clogger.SetFormatter(clog.JSONFormatter)
	base := []any{"pid", cfg.PID, "command", cfg.Command}
	if cfg.SessionID != "" {
		base = append(base, "session_id", cfg.SessionID)
	}

	return &fileLogger{
		clogger: clogger.With(base...),
		file:    &logFile{f: f, path: path},
		redact:  newRedactor(),
	}, nil
}

func parseLevel(level string) clog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return clog.DebugLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}

func (l *fileLogger) Debug(msg string, args ...any) {
	l.clogger.Debug(msg, l.redact.redact(args)...)
}

func (l *fileLogger) Info(msg string, args ...any) {
	l.clogger.Info(msg, l.redact.redact(args)...)
}

func (l *fileLogger) Warn(msg string, args ...any) {
	l.clogger.Warn(msg, l.redact.redact(args)...)
}

func (l *fileLogger) Error(msg string, args ...any) {
	l.clogger.Error(msg, l.redact.redact(args)...)
}

func (l *fileLogger) With(args ...any) Logger {
	return &fileLogger{
		clogger: l.clogger.With(l.redact.redact(args)...),
		file:    l.file,
		redact:  l.redact,
	}
}

func (l *fileLogger) Shutdown() error {
	return l.file.close()
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (n noopLogger) With(...any) Logger { return n }
func (noopLogger) Shutdown() error      { return nil }

var (
	globalMu     sync.RWMutex
	globalLogger Logger = noopLogger{}
	globalOnce   sync.Once
)

// InitGlobal opens the process log file once, tagging entries with
// sessionID, and mirrors console output into it. Later calls are no-ops.
func InitGlobal(sessionID string) error {
	var err error
	globalOnce.Do(func() {
		cfg := FromGlobalConfig()
		cfg.SessionID = sessionID
		var l Logger
		if l, err = Init(cfg); err != nil {
			return
		}
		globalMu.Lock()
		globalLogger = l
		globalMu.Unlock()
		if _, enabled := l.(*fileLogger); enabled {
			colors.SetLogger(l)
			colors.Debug("Logging to file:", CurrentLogFile())
		}
	})
	return err
}

// GetGlobal returns the process logger. It discards entries until
// InitGlobal succeeds with logging enabled.
func GetGlobal() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// Debug logs a debug message using the global logger.
func Debug(msg string, args ...any) { GetGlobal().Debug(msg, args...) }

// Info logs an info message using the global logger.
func Info(msg string, args ...any) { GetGlobal().Info(msg, args...) }

// Warn logs a warning message using the global logger.
func Warn(msg string, args ...any) { GetGlobal().Warn(msg, args...) }

// Error logs an error message using the global logger.
func Error(msg string, args ...any) { GetGlobal().Error(msg, args...) }

// With returns a child of the global logger.
func With(args ...any) Logger { return GetGlobal().With(args...) }

// ShutdownGlobal closes the global log file and stops console mirroring.
func ShutdownGlobal() error {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if _, enabled := l.(*fileLogger); enabled {
		colors.SetLogger(nil)
	}
	return l.Shutdown()
}

// CurrentLogFile returns the global log file path, or "" when logging is off.
func CurrentLogFile() string {
	if l, ok := GetGlobal().(*fileLogger); ok {
		return l.file.path
	}
	return ""
}
