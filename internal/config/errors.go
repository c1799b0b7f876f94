package config

import (
	"errors"
	"fmt"
)

// ErrConfigNotFound is returned by Find when no configuration file exists in
// the starting directory or any of its ancestors.
var ErrConfigNotFound = &ConfigurationError{Msg: "no configuration file found"}

// ConfigurationError reports a problem with the macman configuration, such as
// a missing configuration file or a base image path that does not exist.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return e.Msg
}

// Errorf returns a ConfigurationError with a formatted message.
func Errorf(format string, args ...any) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

// IsConfigurationError reports whether err wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
