package ledgrid

import (
	"errors"
	"fmt"
)

// Sentinel errors for the root package.
var (
	// ErrClosed is returned when an operation is attempted on a closed session.
	ErrClosed = errors.New("ledgrid: session is closed")

	// ErrEmbeddedNUL is returned when a string destined for a driver contains
	// an interior NUL byte. Driver string representations are NUL-terminated,
	// so such input cannot be passed through; it is rejected as a recoverable
	// error rather than truncated or aborted on.
	ErrEmbeddedNUL = errors.New("ledgrid: string contains an embedded NUL byte")
)

// ConfigError reports an invalid session configuration value.
// Field names the option that was violated, Reason states the constraint.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("ledgrid: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// hasEmbeddedNUL reports whether s contains an interior NUL byte.
func hasEmbeddedNUL(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return true
		}
	}
	return false
}
