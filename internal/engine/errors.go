package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration indicates a board cannot be built with the
	// requested size, win target or spawn weighting.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidState indicates a saved State that cannot be restored.
	ErrInvalidState = errors.New("invalid board state")
)

// ConfigError describes the offending construction parameter.
// It unwraps to ErrInvalidConfiguration.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("engine: %s: %s=%v: %s", ErrInvalidConfiguration, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}

// ValidateConfig checks board construction parameters.
func ValidateConfig(size, winTarget int, four float64) error {
	if size < 2 {
		return &ConfigError{Field: "size", Value: size, Reason: "must be at least 2"}
	}
	if winTarget < 4 || !isPowerOfTwo(winTarget) {
		return &ConfigError{Field: "win_target", Value: winTarget, Reason: "must be a power of two >= 4"}
	}
	if four < 0 || four > 1 {
		return &ConfigError{Field: "four_probability", Value: four, Reason: "must be within [0, 1]"}
	}
	return nil
}

func stateErrorf(format string, args ...any) error {
	return fmt.Errorf("engine: %w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}
