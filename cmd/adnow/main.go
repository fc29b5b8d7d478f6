package main

import (
	"os"
	"strings"

	"github.com/cristianoliveira/adnow/cmd"
	"github.com/cristianoliveira/adnow/internal/colors"
	"github.com/cristianoliveira/adnow/internal/errors"
	"github.com/cristianoliveira/adnow/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], cmd.Execute))
}

// run executes the CLI and returns the exit code. Startup lines are not
// written for the browser, whose alternate screen would be garbled by them.
func run(args []string, execute func() error) int {
	logStartup := !isBrowse(args)
	if logStartup {
		colors.StructuredInfo("startup", "main", "started", nil, "", nil)
	}
	defer func() {
		if err := coreClient.Close(); err != nil {
			colors.StructuredWarn("startup", "close", "failed", err, "", nil)
		}
		_ = logging.ShutdownGlobal()
	}()

	if err := execute(); err != nil {
		colors.Error(errors.Describe(err))
		if logStartup {
			colors.StructuredError("startup", "main", "failed", err, "", nil)
		}
		return 1
	}
	if logStartup {
		colors.StructuredInfo("startup", "main", "completed", nil, "", nil)
	}
	return 0
}

// valueFlags are global flags whose value is the following argument.
var valueFlags = map[string]bool{"--catalog": true, "--storage": true}

// isBrowse reports whether args select the interactive browser.
func isBrowse(args []string) bool {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "-h", a == "--help", a == "-v", a == "--version":
			return false
		case valueFlags[a]:
			i++
		case strings.HasPrefix(a, "-"):
		default:
			return a == "browse"
		}
	}
	return true
}
