package model

import (
	"strconv"
	"strings"
)

// isInteger reports whether value parses as a base-10 int64
func isInteger(value string) bool {
	_, err := strconv.ParseInt(value, 10, 64)
	return err == nil
}

// isFloat reports whether value parses as a float64.
// Hexadecimal forms and underscore digit separators are not numbers.
func isFloat(value string) bool {
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		return false
	}
	return !strings.ContainsAny(value, "_xX")
}

// InferDType infers the column dtype from a slice of text cells.
// Cells marked invalid in valid are skipped; valid may be nil.
func InferDType(values []string, valid []bool) DType {
	hasReal := false
	hasInteger := false

	for i, value := range values {
		// Skip missing values for type inference
		if valid != nil && i < len(valid) && !valid[i] {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		if isInteger(value) {
			hasInteger = true
			continue
		}
		if isFloat(value) {
			hasReal = true
			continue
		}
		// If any value is text, the whole column is text
		return DTypeString
	}

	// Priority: TEXT > REAL > INTEGER
	if hasReal {
		return DTypeFloat64
	}
	if hasInteger {
		return DTypeInt64
	}
	// Default to TEXT if no values were found
	return DTypeString
}

// InferColumns builds typed columns from header and data records.
// Short records are padded with nulls and empty cells become nulls.
func InferColumns(header Header, records []Record) []*Column {
	columns := make([]*Column, len(header))
	for i, name := range header {
		cells := make([]string, len(records))
		valid := make([]bool, len(records))
		for j, record := range records {
			if i < len(record) {
				cells[j] = record[i]
				valid[j] = strings.TrimSpace(record[i]) != ""
			}
		}
		columns[i] = NewColumnFromStrings(name, cells, valid)
	}
	return columns
}
