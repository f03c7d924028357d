package backdrop

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every *ConfigError so callers can test with
// errors.Is without caring which field was rejected.
var ErrInvalidConfig = errors.New("invalid config")

// ConfigError reports an activation parameter rejected by Loop.Start.
// Values are never clamped into range; the activation fails instead.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("backdrop: invalid config: %s=%v: %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
