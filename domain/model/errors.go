// Package model provides domain model for dataprep
package model

import "errors"

var (
	// ErrDuplicateColumnName is returned when a file contains duplicate column names
	ErrDuplicateColumnName = errors.New("duplicate column name")

	// ErrColumnLength is returned when the columns of a table have different lengths
	ErrColumnLength = errors.New("column length mismatch")

	// ErrLossyCast is returned when a cast would change at least one value
	ErrLossyCast = errors.New("cast would lose data")

	// ErrInvalidCast is returned when a cast between two dtypes is not supported
	ErrInvalidCast = errors.New("unsupported cast")
)
