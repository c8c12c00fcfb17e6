// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Typed error kinds shared by the cipher and analysis layers

package spn

import "fmt"

// ConfigurationError reports an invalid cipher configuration, such as a
// non-bijective substitution or permutation table. It is raised at
// construction time, before any cryptographic computation runs.
type ConfigurationError struct {
	Field  string // which configuration value is broken
	Reason string // what is wrong with it
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewConfigurationError creates a ConfigurationError with a formatted reason.
func NewConfigurationError(field, format string, args ...interface{}) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// FormatError reports malformed textual input: wrong hex length, stray
// characters, or mismatched block counts. Value carries the offending
// input when it is short enough to be worth echoing.
type FormatError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("malformed %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed %s %q: %s", e.Field, e.Value, e.Reason)
}

// NewFormatError creates a FormatError with a formatted reason.
func NewFormatError(field, value, format string, args ...interface{}) error {
	return &FormatError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)}
}
