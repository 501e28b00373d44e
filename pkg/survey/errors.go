package survey

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is matched by errors caused by a misconfigured survey.
	ErrConfiguration = errors.New("survey: configuration error")
	// ErrParse is matched by errors returned from Import on malformed input.
	ErrParse = errors.New("survey: parse error")
)

// ConfigurationError reports a question that cannot be declared as written.
type ConfigurationError struct {
	Label  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("survey: question %q: %s", e.Label, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// ParseError reports an import payload that could not be decoded. ID is set
// when a single record was malformed.
type ParseError struct {
	ID  string
	Err error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.ID != "" {
		return fmt.Sprintf("survey: import record %q: %v", e.ID, e.Err)
	}
	return fmt.Sprintf("survey: import: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
