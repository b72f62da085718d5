package model

import (
	"fmt"
)

// Header is table header.
type Header []string

// NewHeader create new Header.
func NewHeader(h []string) Header {
	return Header(h)
}

// Equal compare Header.
func (h Header) Equal(h2 Header) bool {
	if len(h) != len(h2) {
		return false
	}
	for i, v := range h {
		if v != h2[i] {
			return false
		}
	}
	return true
}

// Duplicate returns the first name that occurs more than once, or "" when names are unique.
func (h Header) Duplicate() string {
	seen := make(map[string]struct{}, len(h))
	for _, name := range h {
		if _, ok := seen[name]; ok {
			return name
		}
		seen[name] = struct{}{}
	}
	return ""
}

// Record is a row of text cells.
type Record []string

// Table is a named, ordered set of equally long columns.
type Table struct {
	// name is the collection key the table was loaded under.
	name string
	// columns are the table columns in display order.
	columns []*Column
}

// NewTable create new Table. Every column must have the same length.
func NewTable(name string, columns ...*Column) (*Table, error) {
	for i, c := range columns {
		if c.Len() != columns[0].Len() {
			return nil, fmt.Errorf("%w: column %q has %d rows, column %q has %d rows",
				ErrColumnLength, columns[i].Name(), c.Len(), columns[0].Name(), columns[0].Len())
		}
	}
	return &Table{
		name:    name,
		columns: columns,
	}, nil
}

// NewTableFromRecords creates a Table from a header and text records, inferring column types.
// Duplicate header names are rejected.
func NewTableFromRecords(name string, header Header, records []Record) (*Table, error) {
	if dup := header.Duplicate(); dup != "" {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateColumnName, dup)
	}
	return NewTable(name, InferColumns(header, records)...)
}

// Name return table name.
func (t *Table) Name() string {
	return t.name
}

// SetName replaces the table name.
func (t *Table) SetName(name string) {
	t.name = name
}

// Columns returns the table columns. Callers may mutate the columns but not the slice.
func (t *Table) Columns() []*Column {
	return t.columns
}

// Column returns column i.
func (t *Table) Column(i int) *Column {
	return t.columns[i]
}

// ColumnByName returns the first column labelled name.
func (t *Table) ColumnByName(name string) (*Column, bool) {
	for _, c := range t.columns {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	if len(t.columns) == 0 {
		return 0
	}
	return t.columns[0].Len()
}

// Header return table header.
func (t *Table) Header() Header {
	header := make(Header, len(t.columns))
	for i, c := range t.columns {
		header[i] = c.Name()
	}
	return header
}

// Row returns row i as cell values (nil, string, int64 or float64).
func (t *Table) Row(i int) []any {
	row := make([]any, len(t.columns))
	for j, c := range t.columns {
		row[j] = c.Value(i)
	}
	return row
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	columns := make([]*Column, len(t.columns))
	for i, c := range t.columns {
		columns[i] = c.Clone()
	}
	return &Table{name: t.name, columns: columns}
}

// MemoryUsage returns the estimated number of bytes held by the table values.
func (t *Table) MemoryUsage() int64 {
	var size int64
	for _, c := range t.columns {
		size += c.MemoryUsage()
	}
	return size
}

// Equal compare Table, including names and dtypes.
func (t *Table) Equal(t2 *Table) bool {
	if t.Name() != t2.Name() || len(t.columns) != len(t2.columns) {
		return false
	}
	for i, c := range t.columns {
		if !c.Equal(t2.columns[i]) {
			return false
		}
	}
	return true
}

// EqualValues reports whether both tables hold the same header and cell values.
// Table names and numeric widths are ignored; an integer cell equals a float cell of the same value.
func (t *Table) EqualValues(t2 *Table) bool {
	if !t.Header().Equal(t2.Header()) || t.NumRows() != t2.NumRows() {
		return false
	}
	for i, c := range t.columns {
		other := t2.columns[i]
		for row := range c.Len() {
			if c.IsNull(row) != other.IsNull(row) {
				return false
			}
			if !c.IsNull(row) && !cellEqual(c, other, row) {
				return false
			}
		}
	}
	return true
}
