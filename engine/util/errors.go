package util

import (
	"fmt"

	"github.com/pkg/errors"
)

// ConfigurationError reports a mesh whose data layout cannot be decoded.
// It signals caller misuse and is never retried.
type ConfigurationError struct {
	Collider string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	if e.Collider == "" {
		return fmt.Sprintf("invalid mesh configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid mesh configuration for '%s': %s", e.Collider, e.Reason)
}

func newConfigurationError(collider string, format string, args ...any) error {
	err := &ConfigurationError{Collider: collider, Reason: fmt.Sprintf(format, args...)}
	LogCollisionError(err.Error())
	return errors.WithStack(err)
}
