package logging

import (
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

var (
	keySegments = regexp.MustCompile(`[^a-z0-9]+`)
	// international phone numbers, the form seller WhatsApp contacts take
	phoneValue = regexp.MustCompile(`^\+[0-9][0-9 ()-]{6,}$`)
)

// redactor hides credentials and seller phone numbers in key-value pairs.
type redactor struct {
	sensitive map[string]bool
}

func newRedactor() *redactor {
	words := []string{"secret", "password", "token", "key", "auth", "credential", "phone", "whatsapp"}
	r := &redactor{sensitive: make(map[string]bool, len(words))}
	for _, w := range words {
		r.sensitive[w] = true
	}
	return r
}

// redact returns a copy of pairs ([k1, v1, k2, v2, ...]) with the values of
// sensitive keys and phone-number strings replaced. A trailing odd element
// is kept as is.
func (r *redactor) redact(pairs []any) []any {
	if len(pairs) == 0 {
		return pairs
	}
	out := make([]any, len(pairs))
	copy(out, pairs)
	for i := 0; i+1 < len(out); i += 2 {
		if key, ok := out[i].(string); ok && r.isSensitive(key) {
			out[i+1] = redacted
			continue
		}
		if s, ok := out[i+1].(string); ok && phoneValue.MatchString(strings.TrimSpace(s)) {
			out[i+1] = redacted
		}
	}
	return out
}

// isSensitive matches whole key segments, so "api_token" is sensitive and
// "secretary" is not.
func (r *redactor) isSensitive(key string) bool {
	for _, part := range keySegments.Split(strings.ToLower(key), -1) {
		if r.sensitive[part] {
			return true
		}
	}
	return false
}
