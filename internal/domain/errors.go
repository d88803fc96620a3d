package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors, use with errors.Is.
var (
	// ErrInvalidInput is returned for negative amounts, a missing or zero salary,
	// unknown GST supply types and missing transaction dates.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration is returned when a rule book is malformed, for example a
	// slab table that does not partition [0, ∞).
	ErrConfiguration = errors.New("invalid configuration")

	// ErrUnknownAssessmentYear is returned when no rule book is registered for a year.
	ErrUnknownAssessmentYear = errors.New("unknown assessment year")
)

// InputError names the offending input field.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// ConfigError names the rule book section that failed validation.
type ConfigError struct {
	Section string
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Section, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

// IsClientError reports whether err was caused by caller-supplied data.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrConfiguration)
}

// IsNotFound reports whether err refers to a missing rule book.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnknownAssessmentYear)
}
