package logging

import (
	"errors"
	"fmt"
)

var ErrNilSink = errors.New("sink is nil")

// ConfigurationError reports a sink or format that could not be set up.
type ConfigurationError struct {
	Op     string
	Target string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("logging: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("logging: %s %q: %v", e.Op, e.Target, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
