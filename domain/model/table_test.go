package model

import (
	"errors"
	"testing"
)

func TestHeader_Equal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		header1  Header
		header2  Header
		expected bool
	}{
		{
			name:     "Equal headers",
			header1:  NewHeader([]string{"col1", "col2"}),
			header2:  NewHeader([]string{"col1", "col2"}),
			expected: true,
		},
		{
			name:     "Different length headers",
			header1:  NewHeader([]string{"col1", "col2"}),
			header2:  NewHeader([]string{"col1"}),
			expected: false,
		},
		{
			name:     "Different content headers",
			header1:  NewHeader([]string{"col1", "col2"}),
			header2:  NewHeader([]string{"col1", "col3"}),
			expected: false,
		},
		{
			name:     "Empty headers",
			header1:  NewHeader([]string{}),
			header2:  NewHeader([]string{}),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.header1.Equal(tt.header2); got != tt.expected {
				t.Errorf("Equal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHeader_Duplicate(t *testing.T) {
	t.Parallel()

	if got := NewHeader([]string{"a", "b", "a"}).Duplicate(); got != "a" {
		t.Errorf("expected a, got %q", got)
	}
	if got := NewHeader([]string{"a", "b"}).Duplicate(); got != "" {
		t.Errorf("expected no duplicate, got %q", got)
	}
}

func TestNewTable(t *testing.T) {
	t.Parallel()

	t.Run("Columns of equal length", func(t *testing.T) {
		t.Parallel()

		table, err := NewTable("people",
			NewStringColumn("name", []string{"alice", "bob"}, nil),
			NewIntColumn("age", DTypeInt64, []int64{30, 40}, nil),
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if table.Name() != "people" {
			t.Errorf("expected people, got %s", table.Name())
		}
		if table.NumRows() != 2 || table.NumColumns() != 2 {
			t.Errorf("expected 2x2 table, got %dx%d", table.NumRows(), table.NumColumns())
		}
		if !table.Header().Equal(NewHeader([]string{"name", "age"})) {
			t.Errorf("unexpected header %v", table.Header())
		}
		row := table.Row(1)
		if row[0] != "bob" || row[1] != int64(40) {
			t.Errorf("unexpected row %v", row)
		}
		if c, ok := table.ColumnByName("age"); !ok || c != table.Column(1) {
			t.Error("ColumnByName did not find age")
		}
		if _, ok := table.ColumnByName("missing"); ok {
			t.Error("ColumnByName found a missing column")
		}
	})

	t.Run("Columns of different length", func(t *testing.T) {
		t.Parallel()

		_, err := NewTable("bad",
			NewStringColumn("a", []string{"x"}, nil),
			NewStringColumn("b", []string{"x", "y"}, nil),
		)
		if !errors.Is(err, ErrColumnLength) {
			t.Errorf("expected ErrColumnLength, got %v", err)
		}
	})

	t.Run("No columns", func(t *testing.T) {
		t.Parallel()

		table, err := NewTable("empty")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if table.NumRows() != 0 || table.NumColumns() != 0 {
			t.Error("expected empty table")
		}
	})
}

func TestNewTableFromRecords(t *testing.T) {
	t.Parallel()

	t.Run("Infer column types", func(t *testing.T) {
		t.Parallel()

		table, err := NewTableFromRecords("t", NewHeader([]string{"id", "name"}), []Record{
			{"1", "alice"},
			{"2", "bob"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if table.Column(0).DType() != DTypeInt64 || table.Column(1).DType() != DTypeString {
			t.Errorf("unexpected dtypes %s, %s", table.Column(0).DType(), table.Column(1).DType())
		}
	})

	t.Run("Reject duplicate column names", func(t *testing.T) {
		t.Parallel()

		_, err := NewTableFromRecords("t", NewHeader([]string{"id", "id"}), nil)
		if !errors.Is(err, ErrDuplicateColumnName) {
			t.Errorf("expected ErrDuplicateColumnName, got %v", err)
		}
	})
}

func TestTable_EqualValues(t *testing.T) {
	t.Parallel()

	ints, err := NewTable("a", NewIntColumn("n", DTypeInt8, []int64{1, 2}, []bool{true, false}))
	if err != nil {
		t.Fatal(err)
	}
	floats, err := NewTable("b", NewFloatColumn("n", DTypeFloat64, []float64{1, 0}, []bool{true, false}))
	if err != nil {
		t.Fatal(err)
	}

	if !ints.EqualValues(floats) {
		t.Error("tables with the same values should be equal by value")
	}
	if ints.Equal(floats) {
		t.Error("tables with different names and dtypes should not be strictly equal")
	}

	clone := ints.Clone()
	if !ints.Equal(clone) {
		t.Error("clone should be strictly equal")
	}
	clone.Column(0).SetName("m")
	if ints.EqualValues(clone) {
		t.Error("tables with different headers should differ")
	}
}

func TestTable_MemoryUsage(t *testing.T) {
	t.Parallel()

	table, err := NewTable("t",
		NewIntColumn("a", DTypeInt8, []int64{1, 2}, nil),
		NewFloatColumn("b", DTypeFloat32, []float64{1, 2}, nil),
	)
	if err != nil {
		t.Fatal(err)
	}
	if got := table.MemoryUsage(); got != 2+8 {
		t.Errorf("MemoryUsage() = %d, want 10", got)
	}
}
