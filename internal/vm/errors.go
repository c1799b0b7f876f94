package vm

import (
	"errors"
	"fmt"
)

// UsageError reports invalid command-line usage: unknown action or VM, a
// missing VM name, or malformed KEY=VALUE arguments.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

func usageErrorf(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// IsUsageError reports whether err wraps a UsageError.
func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}
