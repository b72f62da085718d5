package dataprep

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/dataprep/domain/model"
)

// Standard error messages and error creation functions for consistency
var (
	// ErrEmptyData indicates that the data source contains no records
	ErrEmptyData = errors.New("dataprep: empty data source")

	// ErrUnsupportedFormat indicates an unsupported file format
	ErrUnsupportedFormat = errors.New("dataprep: unsupported file format")

	// ErrUnsupportedCompression indicates a compression type that cannot be used for the operation
	ErrUnsupportedCompression = errors.New("dataprep: unsupported compression type")

	// ErrInvalidData indicates malformed or invalid data
	ErrInvalidData = errors.New("dataprep: invalid data format")

	// ErrNotDirectory indicates that an input path is not a directory
	ErrNotDirectory = errors.New("dataprep: not a directory")

	// ErrInvalidOutputDir indicates that the output directory does not exist or is not a directory
	ErrInvalidOutputDir = errors.New("dataprep: invalid output directory")

	// ErrNilNamespace indicates that a nil namespace was passed to a stage
	ErrNilNamespace = errors.New("dataprep: nil namespace")

	// ErrDuplicateColumnName is returned when a file contains duplicate column names
	ErrDuplicateColumnName = model.ErrDuplicateColumnName

	// ErrColumnLength is returned when the columns of a table have different lengths
	ErrColumnLength = model.ErrColumnLength
)

// ErrorContext provides context for where an error occurred
type ErrorContext struct {
	Operation string
	FilePath  string
	TableName string
	Details   string
}

// NewErrorContext creates a new error context
func NewErrorContext(operation, filePath string) *ErrorContext {
	return &ErrorContext{
		Operation: operation,
		FilePath:  filePath,
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
	parts = append(parts, fmt.Sprintf("dataprep: %s failed", ec.Operation))

	if ec.FilePath != "" {
		parts = append(parts, "file: "+ec.FilePath)
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
	return fmt.Errorf("%s", context)
}
