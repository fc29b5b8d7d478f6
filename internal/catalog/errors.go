package catalog

import (
	"errors"
	"fmt"
)

// ErrInvalidPayload indicates the payload does not have the expected shape.
var ErrInvalidPayload = errors.New("invalid catalog payload")

// Load operations reported by LoadError.
const (
	OpFetch    = "fetch"
	OpDecode   = "decode"
	OpValidate = "validate"
)

// LoadError reports a failed catalog load. A LoadError never leaves a
// partial catalog installed.
type LoadError struct {
	Op     string
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog %s %s: %v", e.Op, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether err is or wraps a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
