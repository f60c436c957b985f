package config

import (
	"errors"
	"fmt"
	"strings"
)

// Error types of a ConfigurationError.
const (
	ErrorTypeIO         = "io"
	ErrorTypeParse      = "parse"
	ErrorTypeValidation = "validation"
)

// ConfigurationError represents a problem with the supplied configuration.
type ConfigurationError struct {
	Source      string   // "file" or "env"
	FilePath    string   // set when Source is "file"
	Field       string   // environment variable or file key, when known
	ErrorType   string   // io, parse or validation
	Message     string   // human-readable error message
	Suggestions []string // actionable suggestions to fix the error
}

// Error implements the error interface
func (ce *ConfigurationError) Error() string {
	if ce.Field != "" {
		return fmt.Sprintf("configuration error [%s] %s: %s", ce.Source, ce.Field, ce.Message)
	}
	return fmt.Sprintf("configuration error [%s]: %s", ce.Source, ce.Message)
}

// DetailedError returns a detailed error message with all context
func (ce *ConfigurationError) DetailedError() string {
	parts := []string{ce.Error()}
	if ce.FilePath != "" {
		parts = append(parts, fmt.Sprintf("  File: %s", ce.FilePath))
	}
	parts = append(parts, fmt.Sprintf("  Type: %s", ce.ErrorType))
	if len(ce.Suggestions) > 0 {
		parts = append(parts, "  Suggestions:")
		for _, suggestion := range ce.Suggestions {
			parts = append(parts, fmt.Sprintf("    - %s", suggestion))
		}
	}
	return strings.Join(parts, "\n")
}

// ConfigurationErrorCollection holds multiple configuration errors
type ConfigurationErrorCollection struct {
	Errors []*ConfigurationError
}

// Error implements the error interface for the collection
func (cec *ConfigurationErrorCollection) Error() string {
	switch len(cec.Errors) {
	case 0:
		return "no configuration errors"
	case 1:
		return cec.Errors[0].Error()
	}
	msgs := make([]string, 0, len(cec.Errors))
	for _, e := range cec.Errors {
		msgs = append(msgs, e.Error())
	}
	return fmt.Sprintf("%d configuration errors: %s", len(cec.Errors), strings.Join(msgs, "; "))
}

// Add appends an error to the collection
func (cec *ConfigurationErrorCollection) Add(err *ConfigurationError) {
	cec.Errors = append(cec.Errors, err)
}

// IsConfigurationError reports whether err is or wraps a configuration error.
func IsConfigurationError(err error) bool {
	var single *ConfigurationError
	var collection *ConfigurationErrorCollection
	return errors.As(err, &single) || errors.As(err, &collection)
}
