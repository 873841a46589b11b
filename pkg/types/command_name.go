// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCommandName is the sentinel error wrapped by InvalidCommandNameError.
var ErrInvalidCommandName = errors.New("invalid command name")

type (
	// CommandName identifies a subcommand, builtin or plugin. Names are
	// hyphen-separated and case-sensitive; equality is exact string match.
	// Canonical identifiers with underscores are normalized to hyphens
	// via Normalize.
	CommandName string

	// InvalidCommandNameError is returned when a CommandName is empty or
	// contains whitespace or path separators.
	InvalidCommandNameError struct {
		Value CommandName
	}
)

// NormalizeCommandName derives a CommandName from a canonical identifier by
// replacing underscores with hyphens (e.g. "locate_project" -> "locate-project").
func NormalizeCommandName(ident string) CommandName {
	return CommandName(strings.ReplaceAll(ident, "_", "-"))
}

// String returns the string representation of the CommandName.
func (n CommandName) String() string { return string(n) }

// IsValid reports whether the CommandName is non-empty and free of
// whitespace and path separators.
func (n CommandName) IsValid() (bool, []error) {
	s := string(n)
	if s == "" || strings.ContainsAny(s, " \t\n/\\") {
		return false, []error{&InvalidCommandNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface for InvalidCommandNameError.
func (e *InvalidCommandNameError) Error() string {
	return fmt.Sprintf("invalid command name %q: must be non-empty with no whitespace or path separators", e.Value)
}

// Unwrap returns ErrInvalidCommandName for errors.Is() compatibility.
func (e *InvalidCommandNameError) Unwrap() error { return ErrInvalidCommandName }
