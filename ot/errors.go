package ot

import (
	"errors"
	"fmt"
)

var errBufferBounds = errors.New("internal inconsistency: buffer bounds error")

// ErrTableMissing is returned by a TableProvider when asked for a table
// which the font does not contain. Callers that treat a table as optional
// test for it with errors.Is.
var ErrTableMissing = errors.New("font table not present")

// errFontFormat produces user level errors for font parsing.
func errFontFormat(message string) error {
	return fmt.Errorf("OpenType font format: %s", message)
}

// ErrorSeverity represents the severity level of a font parsing error.
type ErrorSeverity int

const (
	// SeverityCritical indicates a severe error that makes the table unusable.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor indicates a significant error that may affect functionality
	// but doesn't prevent usage.
	SeverityMajor
	// SeverityMinor indicates a minor issue that can be safely ignored in most cases.
	SeverityMinor
)

// String returns a human-readable representation of the error severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	}
	return "UNKNOWN"
}

// FontError represents an error encountered while interpreting a font table.
// Table bytes are untrusted input, so parse errors carry enough structure to
// tell a client which table and section misbehaved.
type FontError struct {
	Table    Tag           // the OpenType table where the error occurred, e.g. "cmap"
	Section  string        // specific section within the table, e.g. "EncodingRecord"
	Issue    string        // human-readable description of the issue
	Severity ErrorSeverity // severity level of the error
}

// Error implements the error interface.
func (e FontError) Error() string {
	return fmt.Sprintf("[%s] %s/%s: %s", e.Severity, e.Table, e.Section, e.Issue)
}

// tableError is a shorthand for a critical FontError.
func tableError(table Tag, section, issue string) FontError {
	return FontError{
		Table:    table,
		Section:  section,
		Issue:    issue,
		Severity: SeverityCritical,
	}
}
