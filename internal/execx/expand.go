package execx

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrMissingParam is returned when a placeholder has no value.
	ErrMissingParam = errors.New("missing command parameter")

	// ErrUnsafeParam is returned when a parameter value contains shell
	// command or variable syntax. Values must be literal strings.
	ErrUnsafeParam = errors.New("unsafe command parameter")
)

var placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Expand replaces every ${name} placeholder in line with the shell-quoted
// value of params[name].
func Expand(line string, params map[string]string) (string, error) {
	var firstErr error
	out := placeholderPattern.ReplaceAllStringFunc(line, func(m string) string {
		if firstErr != nil {
			return m
		}
		name := placeholderPattern.FindStringSubmatch(m)[1]
		value, ok := params[name]
		if !ok {
			firstErr = fmt.Errorf("%w: %s", ErrMissingParam, name)
			return m
		}
		if strings.ContainsAny(value, "$`") {
			firstErr = fmt.Errorf("%w: %s=%q", ErrUnsafeParam, name, value)
			return m
		}
		return Quote(value)
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

// Quote returns s quoted for a POSIX shell.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, needsQuoting) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuoting(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("-_./:@%+=,", r)
}
