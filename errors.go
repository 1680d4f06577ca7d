package csv2sql

import (
	"errors"
	"fmt"
	"strings"
)

// Standard error values used for error classification with errors.Is.
var (
	// ErrEmptyInput indicates that the input contains no header row
	ErrEmptyInput = errors.New("csv2sql: empty input")

	// ErrUnsupportedDialect indicates an unknown SQL dialect name
	ErrUnsupportedDialect = errors.New("csv2sql: unsupported dialect")

	// ErrUnsupportedFormat indicates an unsupported input file format
	ErrUnsupportedFormat = errors.New("csv2sql: unsupported file format")

	// ErrInputNotFound indicates the input file does not exist or is unreadable
	ErrInputNotFound = errors.New("csv2sql: input file not found")

	// ErrOutputNotWritable indicates the output destination cannot be written
	ErrOutputNotWritable = errors.New("csv2sql: output not writable")

	// ErrConflictingOptions indicates mutually exclusive options were combined
	ErrConflictingOptions = errors.New("csv2sql: schema-only and data-only are mutually exclusive")

	// ErrUnknownColumn indicates a requested column name is not in the schema
	ErrUnknownColumn = errors.New("csv2sql: unknown column")
)

// ErrorContext provides context for where an error occurred
type ErrorContext struct {
	Operation string
	InputPath string
	TableName string
	Details   string
}

// NewErrorContext creates a new error context
func NewErrorContext(operation, inputPath string) *ErrorContext {
	return &ErrorContext{
		Operation: operation,
		InputPath: inputPath,
	}
}

// WithTable adds table context to the error
func (ec *ErrorContext) WithTable(tableName string) *ErrorContext {
	ec.TableName = tableName
	return ec
}

// WithDetails adds details to the error context
func (ec *ErrorContext) WithDetails(details string) *ErrorContext {
	ec.Details = details
	return ec
}

// Error creates a formatted error with context
func (ec *ErrorContext) Error(baseErr error) error {
	var parts []string
	parts = append(parts, fmt.Sprintf("csv2sql: %s failed", ec.Operation))

	if ec.InputPath != "" {
		parts = append(parts, "input: "+ec.InputPath)
	}

	if ec.TableName != "" {
		parts = append(parts, "table: "+ec.TableName)
	}

	if ec.Details != "" {
		parts = append(parts, "details: "+ec.Details)
	}

	context := strings.Join(parts, ", ")
	if baseErr != nil {
		return fmt.Errorf("%s: %w", context, baseErr)
	}
	return errors.New(context)
}
