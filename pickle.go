package dataprep

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"

	"github.com/nao1215/dataprep/domain/model"
)

// pickleVersion is the snapshot layout written by the pickle encoder
const pickleVersion = 1

// pickleCodec stores a lossless gob snapshot of a Table
type pickleCodec struct{}

// pickleSnapshot is the serialized form of a Table
type pickleSnapshot struct {
	Version int
	Name    string
	Columns []pickleColumn
}

// pickleColumn is the serialized form of a Column
type pickleColumn struct {
	Name    string
	DType   model.DType
	Strings []string
	Ints    []int64
	Floats  []float64
	Valid   []bool
}

// decode restores a snapshot. dtypes and nulls are preserved exactly.
func (pickleCodec) decode(r io.Reader, name string) (*Table, error) {
	var snapshot pickleSnapshot
	if err := gob.NewDecoder(r).Decode(&snapshot); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty pickle file", ErrEmptyData)
		}
		return nil, fmt.Errorf("%w: failed to decode pickle: %v", ErrInvalidData, err)
	}
	if snapshot.Version != pickleVersion {
		return nil, fmt.Errorf("%w: unsupported pickle version %d", ErrInvalidData, snapshot.Version)
	}

	columns := make([]*Column, len(snapshot.Columns))
	for i, c := range snapshot.Columns {
		switch {
		case c.DType.IsInteger():
			columns[i] = model.NewIntColumn(c.Name, c.DType, c.Ints, c.Valid)
		case c.DType.IsFloat():
			columns[i] = model.NewFloatColumn(c.Name, c.DType, c.Floats, c.Valid)
		default:
			columns[i] = model.NewStringColumn(c.Name, c.Strings, c.Valid)
		}
	}
	return model.NewTable(name, columns...)
}

// encode writes a snapshot of t
func (pickleCodec) encode(w io.Writer, t *Table) error {
	snapshot := pickleSnapshot{
		Version: pickleVersion,
		Name:    t.Name(),
		Columns: make([]pickleColumn, t.NumColumns()),
	}
	for i, c := range t.Columns() {
		snapshot.Columns[i] = pickleColumn{
			Name:    c.Name(),
			DType:   c.DType(),
			Strings: c.Strings(),
			Ints:    c.Ints(),
			Floats:  c.Floats(),
			Valid:   c.Validity(),
		}
	}
	if err := gob.NewEncoder(w).Encode(&snapshot); err != nil {
		return fmt.Errorf("failed to encode pickle: %w", err)
	}
	return nil
}
