// Package model provides domain model for dataprep
package model

// DType represents the storage type of a column.
type DType int

const (
	// DTypeString represents a textual column
	DTypeString DType = iota
	// DTypeInt8 represents an 8-bit signed integer column
	DTypeInt8
	// DTypeInt16 represents a 16-bit signed integer column
	DTypeInt16
	// DTypeInt32 represents a 32-bit signed integer column
	DTypeInt32
	// DTypeInt64 represents a 64-bit signed integer column
	DTypeInt64
	// DTypeFloat32 represents a 32-bit floating-point column
	DTypeFloat32
	// DTypeFloat64 represents a 64-bit floating-point column
	DTypeFloat64
)

const (
	// stringHeaderSize is the size of a Go string header, used for memory estimates
	stringHeaderSize = 16
)

// String returns the dtype name
func (d DType) String() string {
	switch d {
	case DTypeString:
		return "string"
	case DTypeInt8:
		return "int8"
	case DTypeInt16:
		return "int16"
	case DTypeInt32:
		return "int32"
	case DTypeInt64:
		return "int64"
	case DTypeFloat32:
		return "float32"
	case DTypeFloat64:
		return "float64"
	default:
		return "string"
	}
}

// IsInteger reports whether d is one of the integer dtypes
func (d DType) IsInteger() bool {
	return d == DTypeInt8 || d == DTypeInt16 || d == DTypeInt32 || d == DTypeInt64
}

// IsFloat reports whether d is one of the floating-point dtypes
func (d DType) IsFloat() bool {
	return d == DTypeFloat32 || d == DTypeFloat64
}

// IsNumeric reports whether d is an integer or floating-point dtype
func (d DType) IsNumeric() bool {
	return d.IsInteger() || d.IsFloat()
}

// ByteWidth returns the number of bytes one value of d occupies.
// For DTypeString it returns the size of the string header only.
func (d DType) ByteWidth() int {
	switch d {
	case DTypeInt8:
		return 1
	case DTypeInt16:
		return 2
	case DTypeInt32, DTypeFloat32:
		return 4
	case DTypeInt64, DTypeFloat64:
		return 8
	default:
		return stringHeaderSize
	}
}

// SQLType returns the SQLite type affinity used when the column is stored in a database
func (d DType) SQLType() string {
	switch {
	case d.IsInteger():
		return "INTEGER"
	case d.IsFloat():
		return "REAL"
	default:
		return "TEXT"
	}
}
