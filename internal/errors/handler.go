// Package errors routes user-facing messages to the terminal or the TUI
// status line and turns adnow failures into readable text.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/cristianoliveira/adnow/internal/catalog"
	"github.com/cristianoliveira/adnow/internal/colors"
)

// ErrorHandler receives messages at one of four levels.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// Level orders messages by severity, most severe first.
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
	LevelSuccess
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Describe renders err for a person. Catalog failures name the source and
// the failed step so the user knows what to fix.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var loadErr *catalog.LoadError
	switch {
	case stderrors.As(err, &loadErr):
		return fmt.Sprintf("Catalog unavailable: could not %s %s: %v", loadErr.Op, loadErr.Source, loadErr.Err)
	case stderrors.Is(err, context.DeadlineExceeded):
		return "Timed out: " + err.Error()
	}
	return capitalize(err.Error())
}

// Report sends err to h at error level. A nil err sends nothing.
func Report(h ErrorHandler, err error) {
	if h == nil || err == nil {
		return
	}
	h.Error(Describe(err))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ColorOutput is the console sink used by CLIHandler.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

type colorsOutput struct{}

func (colorsOutput) Error(msgs ...string)   { colors.Error(msgs...) }
func (colorsOutput) Warning(msgs ...string) { colors.Warning(msgs...) }
func (colorsOutput) Info(msgs ...string)    { colors.Info(msgs...) }
func (colorsOutput) Success(msgs ...string) { colors.Success(msgs...) }

// CLIHandler prints messages through a ColorOutput. Messages less severe
// than MaxLevel are dropped.
type CLIHandler struct {
	out      ColorOutput
	MaxLevel Level
}

// NewCLIHandler returns a handler that prints every level to out.
func NewCLIHandler(out ColorOutput) *CLIHandler {
	return &CLIHandler{out: out, MaxLevel: LevelSuccess}
}

// NewDefaultCLIHandler prints through the colors package.
func NewDefaultCLIHandler() *CLIHandler {
	return NewCLIHandler(colorsOutput{})
}

func (h *CLIHandler) Error(msg string) { h.emit(LevelError, msg) }

func (h *CLIHandler) Warning(msg string) { h.emit(LevelWarning, msg) }

func (h *CLIHandler) Info(msg string) { h.emit(LevelInfo, msg) }

func (h *CLIHandler) Success(msg string) { h.emit(LevelSuccess, msg) }

func (h *CLIHandler) emit(level Level, msg string) {
	if level > h.MaxLevel {
		return
	}
	switch level {
	case LevelError:
		h.out.Error(msg)
	case LevelWarning:
		h.out.Warning(msg)
	case LevelInfo:
		h.out.Info(msg)
	default:
		h.out.Success(msg)
	}
}
