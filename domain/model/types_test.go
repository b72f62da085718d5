package model

import (
	"testing"
)

func TestDType_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		dtype    DType
		expected string
	}{
		{name: "String dtype", dtype: DTypeString, expected: "string"},
		{name: "Int8 dtype", dtype: DTypeInt8, expected: "int8"},
		{name: "Int16 dtype", dtype: DTypeInt16, expected: "int16"},
		{name: "Int32 dtype", dtype: DTypeInt32, expected: "int32"},
		{name: "Int64 dtype", dtype: DTypeInt64, expected: "int64"},
		{name: "Float32 dtype", dtype: DTypeFloat32, expected: "float32"},
		{name: "Float64 dtype", dtype: DTypeFloat64, expected: "float64"},
		{name: "Unknown dtype", dtype: DType(99), expected: "string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.dtype.String(); got != tt.expected {
				t.Errorf("String() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestDType_Classification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		dtype     DType
		isInteger bool
		isFloat   bool
		width     int
		sqlType   string
	}{
		{name: "String", dtype: DTypeString, width: stringHeaderSize, sqlType: "TEXT"},
		{name: "Int8", dtype: DTypeInt8, isInteger: true, width: 1, sqlType: "INTEGER"},
		{name: "Int16", dtype: DTypeInt16, isInteger: true, width: 2, sqlType: "INTEGER"},
		{name: "Int32", dtype: DTypeInt32, isInteger: true, width: 4, sqlType: "INTEGER"},
		{name: "Int64", dtype: DTypeInt64, isInteger: true, width: 8, sqlType: "INTEGER"},
		{name: "Float32", dtype: DTypeFloat32, isFloat: true, width: 4, sqlType: "REAL"},
		{name: "Float64", dtype: DTypeFloat64, isFloat: true, width: 8, sqlType: "REAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.dtype.IsInteger(); got != tt.isInteger {
				t.Errorf("IsInteger() = %v, want %v", got, tt.isInteger)
			}
			if got := tt.dtype.IsFloat(); got != tt.isFloat {
				t.Errorf("IsFloat() = %v, want %v", got, tt.isFloat)
			}
			if got := tt.dtype.IsNumeric(); got != (tt.isInteger || tt.isFloat) {
				t.Errorf("IsNumeric() = %v, want %v", got, tt.isInteger || tt.isFloat)
			}
			if got := tt.dtype.ByteWidth(); got != tt.width {
				t.Errorf("ByteWidth() = %d, want %d", got, tt.width)
			}
			if got := tt.dtype.SQLType(); got != tt.sqlType {
				t.Errorf("SQLType() = %s, want %s", got, tt.sqlType)
			}
		})
	}
}
