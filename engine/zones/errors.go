package zones

import (
	"errors"
	"fmt"
)

// Fatal selection failures. Every one is returned wrapped in a ConfigError.
var (
	ErrUnknownBranch       = errors.New("unknown alliance")
	ErrUnknownZone         = errors.New("unknown zone")
	ErrEmptyPool           = errors.New("no zones left to choose from")
	ErrUnsupported         = errors.New("objective not supported by this world")
	ErrGoalIsStart         = errors.New("goal zone is the starting zone")
	ErrGoalNotInPool       = errors.New("goal zone is not in the allowed pool")
	ErrRequiredExcluded    = errors.New("required zone is not in the allowed pool")
	ErrNoPath              = errors.New("no path within the allowed pool")
	ErrGoalUnreachable     = errors.New("goal zone unreachable after filtering")
	ErrRequiredUnreachable = errors.New("required zone unreachable after filtering")
)

// ConfigError is a fatal configuration problem, reported against the option
// that caused it.
type ConfigError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func configErr(field, value string, err error) error {
	return &ConfigError{Field: field, Value: value, Err: err}
}
