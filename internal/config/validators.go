package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Validator normalizes a non-empty raw value. An error sends the key back
// to its default.
type Validator func(value string) (string, error)

// validators lists every key with constrained values.
var validators = map[string]Validator{
	"search_debounce_ms": intAtLeast(1),
	"logging_max_files":  intAtLeast(1),
	"hooks_timeout_ms":   intAtLeast(1),
	"redis_db":           intAtLeast(0),

	"storage_backend":    oneOf("sqlite", "redis", "memory"),
	"default_sort":       oneOf("name", "rating", "newest"),
	"hooks_failure_mode": oneOf("abort", "warn", "ignore"),
	"output_format":      oneOf("table", "simple", "compact", "json"),
	"logging_level":      oneOf("debug", "info", "warn", "error"),

	"locale": languageTag,

	"logging_enabled": boolean,
	"debug":           boolean,
	"quiet":           boolean,
}

func intAtLeast(min int) Validator {
	return func(value string) (string, error) {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < min {
			return "", fmt.Errorf("must be an integer >= %d", min)
		}
		return strconv.Itoa(n), nil
	}
}

// oneOf accepts the listed values case-insensitively and lower-cases them.
func oneOf(allowed ...string) Validator {
	set := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		set[a] = true
	}
	sorted := append([]string(nil), allowed...)
	sort.Strings(sorted)
	return func(value string) (string, error) {
		v := strings.ToLower(strings.TrimSpace(value))
		if !set[v] {
			return "", fmt.Errorf("must be one of: %s", strings.Join(sorted, ", "))
		}
		return v, nil
	}
}

// languageTag accepts BCP 47 tags such as "en", "fr-CA" or "sv" and returns
// the canonical form.
func languageTag(value string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return "", errors.New("must be a language tag (e.g. en, fr-CA)")
	}
	return tag.String(), nil
}

func boolean(value string) (string, error) {
	b, ok := parseBool(value)
	if !ok {
		return "", errors.New("must be one of: 1, true, yes, on, 0, false, no, off")
	}
	return strconv.FormatBool(b), nil
}

func parseBool(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}
