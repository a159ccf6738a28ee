// Package pgforge provides parameterized SQL statement assembly and
// PostgreSQL schema reflection for typed interface generation.
//
// The root package defines the error kinds shared by the statement
// builder (dialect/sql), the catalog inspector (introspect) and the
// interface generator (codegen).
package pgforge

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common failure modes.
var (
	// ErrFormat is returned when an array literal cannot be parsed.
	ErrFormat = errors.New("pgforge: malformed array literal")

	// ErrMissingData is returned when an INSERT or UPDATE statement is
	// rendered without a payload.
	ErrMissingData = errors.New("pgforge: missing statement payload")

	// ErrUnsupportedOperation is returned when a statement is rendered
	// without a recognized query kind, or with an unknown operator.
	ErrUnsupportedOperation = errors.New("pgforge: unsupported operation")

	// ErrTableNotFound is returned when a requested table is absent from
	// the catalog listing.
	ErrTableNotFound = errors.New("pgforge: table not found")
)

// FormatError represents a malformed array literal.
type FormatError struct {
	literal string
}

// Error returns the error string.
func (e *FormatError) Error() string {
	return fmt.Sprintf("pgforge: malformed array literal %q: missing braces", e.literal)
}

// Is reports whether the target error matches FormatError.
// This allows errors.Is(formatErr, ErrFormat) to return true.
func (e *FormatError) Is(err error) bool {
	return err == ErrFormat
}

// Literal returns the text that failed to parse.
func (e *FormatError) Literal() string {
	return e.literal
}

// NewFormatError returns a new FormatError for the given literal.
func NewFormatError(literal string) *FormatError {
	return &FormatError{literal: literal}
}

// IsFormat returns true if the error is a FormatError.
func IsFormat(err error) bool {
	if err == nil {
		return false
	}
	var e *FormatError
	return errors.As(err, &e) || errors.Is(err, ErrFormat)
}

// MissingDataError represents an INSERT or UPDATE rendered without a payload.
type MissingDataError struct {
	op string
}

// Error returns the error string.
func (e *MissingDataError) Error() string {
	return fmt.Sprintf("pgforge: %s requires a payload", e.op)
}

// Is reports whether the target error matches MissingDataError.
func (e *MissingDataError) Is(err error) bool {
	return err == ErrMissingData
}

// Op returns the statement kind that was missing its payload.
func (e *MissingDataError) Op() string {
	return e.op
}

// NewMissingDataError returns a new MissingDataError for the given statement kind.
func NewMissingDataError(op string) *MissingDataError {
	return &MissingDataError{op: op}
}

// IsMissingData returns true if the error is a MissingDataError.
func IsMissingData(err error) bool {
	if err == nil {
		return false
	}
	var e *MissingDataError
	return errors.As(err, &e) || errors.Is(err, ErrMissingData)
}

// UnsupportedOperationError represents a statement rendered without a
// recognized query kind, or a condition using an unknown operator key.
type UnsupportedOperationError struct {
	op string
}

// Error returns the error string.
func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("pgforge: unsupported operation %q", e.op)
}

// Is reports whether the target error matches UnsupportedOperationError.
func (e *UnsupportedOperationError) Is(err error) bool {
	return err == ErrUnsupportedOperation
}

// Op returns the unsupported operation name.
func (e *UnsupportedOperationError) Op() string {
	return e.op
}

// NewUnsupportedOperationError returns a new UnsupportedOperationError for the given operation.
func NewUnsupportedOperationError(op string) *UnsupportedOperationError {
	return &UnsupportedOperationError{op: op}
}

// IsUnsupportedOperation returns true if the error is an UnsupportedOperationError.
func IsUnsupportedOperation(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedOperationError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupportedOperation)
}

// TableNotFoundError represents a table absent from the catalog listing.
type TableNotFoundError struct {
	schema string
	table  string
}

// Error returns the error string.
func (e *TableNotFoundError) Error() string {
	if e.schema != "" {
		return fmt.Sprintf("pgforge: table %q not found in schema %q", e.table, e.schema)
	}
	return fmt.Sprintf("pgforge: table %q not found", e.table)
}

// Is reports whether the target error matches TableNotFoundError.
func (e *TableNotFoundError) Is(err error) bool {
	return err == ErrTableNotFound
}

// Table returns the table name that was requested.
func (e *TableNotFoundError) Table() string {
	return e.table
}

// Schema returns the schema that was searched, if known.
func (e *TableNotFoundError) Schema() string {
	return e.schema
}

// NewTableNotFoundError returns a new TableNotFoundError for the given table.
func NewTableNotFoundError(schema, table string) *TableNotFoundError {
	return &TableNotFoundError{schema: schema, table: table}
}

// IsTableNotFound returns true if the error is a TableNotFoundError.
func IsTableNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *TableNotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrTableNotFound)
}
