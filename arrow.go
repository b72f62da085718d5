package dataprep

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	"github.com/apache/arrow/go/v18/parquet/compress"
	pqfile "github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/nao1215/dataprep/domain/model"
)

const (
	// parquetRowGroupSize is the maximum number of rows per Parquet row group
	parquetRowGroupSize = 128 * 1024
	// pandasIndexPrefix names the index columns pandas stores in Parquet files
	pandasIndexPrefix = "__index_level_"
)

// featherCodec reads and writes Arrow IPC files (Feather v2)
type featherCodec struct{}

// parquetCodec reads and writes Parquet files through the Arrow schema
type parquetCodec struct{}

// decode reads every record batch of an Arrow IPC file
func (featherCodec) decode(r io.Reader, name string) (*Table, error) {
	// Arrow IPC files require random access
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read feather data: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty feather file", ErrEmptyData)
	}

	mem := memory.NewGoAllocator()
	fr, err := ipc.NewFileReader(bytes.NewReader(data), ipc.WithAllocator(mem))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create feather reader: %v", ErrInvalidData, err)
	}
	defer fr.Close()

	columns := newArrowColumns(fr.Schema())
	for i := range fr.NumRecords() {
		rec, err := fr.Record(i)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read record batch %d: %v", ErrInvalidData, i, err)
		}
		for _, c := range columns {
			if err := c.append(rec.Column(c.index)); err != nil {
				return nil, err
			}
		}
	}
	return buildArrowTable(name, columns)
}

// encode writes t as a single record batch with LZ4 frame compressed buffers
func (featherCodec) encode(w io.Writer, t *Table) error {
	mem := memory.NewGoAllocator()
	rec := buildArrowRecord(mem, t)
	defer rec.Release()

	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(rec.Schema()), ipc.WithAllocator(mem), ipc.WithLZ4())
	if err != nil {
		return fmt.Errorf("failed to create feather writer: %w", err)
	}
	if err := fw.Write(rec); err != nil {
		_ = fw.Close()
		return fmt.Errorf("failed to write record batch: %w", err)
	}
	return fw.Close()
}

// decode reads a Parquet file as an Arrow table
func (parquetCodec) decode(r io.Reader, name string) (*Table, error) {
	// Read all data into memory (Parquet requires random access)
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty parquet file", ErrEmptyData)
	}

	pqReader, err := pqfile.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create parquet reader: %v", ErrInvalidData, err)
	}
	defer pqReader.Close()

	mem := memory.NewGoAllocator()
	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	tbl, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read table: %v", ErrInvalidData, err)
	}
	defer tbl.Release()

	columns := newArrowColumns(tbl.Schema())
	for _, c := range columns {
		for _, chunk := range tbl.Column(c.index).Data().Chunks() {
			if err := c.append(chunk); err != nil {
				return nil, err
			}
		}
	}
	return buildArrowTable(name, columns)
}

// encode writes t with Snappy compression and the Arrow schema stored in the file metadata
func (parquetCodec) encode(w io.Writer, t *Table) error {
	mem := memory.NewGoAllocator()
	rec := buildArrowRecord(mem, t)
	defer rec.Release()

	tbl := array.NewTableFromRecords(rec.Schema(), []arrow.Record{rec})
	defer tbl.Release()

	// The parquet writer closes its sink, so the file is assembled in memory first
	var buf bytes.Buffer
	props := parquet.NewWriterProperties(
		parquet.WithCompression(compress.Codecs.Snappy),
		parquet.WithAllocator(mem),
	)
	arrProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())
	if err := pqarrow.WriteTable(tbl, &buf, parquetRowGroupSize, props, arrProps); err != nil {
		return fmt.Errorf("failed to write parquet: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// arrowDataType returns the Arrow type that stores a dtype
func arrowDataType(d DType) arrow.DataType {
	switch d {
	case model.DTypeInt8:
		return arrow.PrimitiveTypes.Int8
	case model.DTypeInt16:
		return arrow.PrimitiveTypes.Int16
	case model.DTypeInt32:
		return arrow.PrimitiveTypes.Int32
	case model.DTypeInt64:
		return arrow.PrimitiveTypes.Int64
	case model.DTypeFloat32:
		return arrow.PrimitiveTypes.Float32
	case model.DTypeFloat64:
		return arrow.PrimitiveTypes.Float64
	default:
		return arrow.BinaryTypes.String
	}
}

// dtypeFromArrow returns the dtype that holds every value of an Arrow type.
// Unsigned integers map to the next wider signed width; unknown types become text.
func dtypeFromArrow(dt arrow.DataType) DType {
	switch dt.ID() {
	case arrow.INT8:
		return model.DTypeInt8
	case arrow.INT16, arrow.UINT8:
		return model.DTypeInt16
	case arrow.INT32, arrow.UINT16:
		return model.DTypeInt32
	case arrow.INT64, arrow.UINT32, arrow.UINT64:
		return model.DTypeInt64
	case arrow.FLOAT32:
		return model.DTypeFloat32
	case arrow.FLOAT64:
		return model.DTypeFloat64
	default:
		return model.DTypeString
	}
}

// buildArrowRecord converts t to a single Arrow record batch
func buildArrowRecord(mem memory.Allocator, t *Table) arrow.Record {
	fields := make([]arrow.Field, t.NumColumns())
	for j, c := range t.Columns() {
		fields[j] = arrow.Field{Name: c.Name(), Type: arrowDataType(c.DType()), Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	for j, c := range t.Columns() {
		valid := c.Validity()
		switch fb := b.Field(j).(type) {
		case *array.Int8Builder:
			fb.AppendValues(convertInts[int8](c.Ints()), valid)
		case *array.Int16Builder:
			fb.AppendValues(convertInts[int16](c.Ints()), valid)
		case *array.Int32Builder:
			fb.AppendValues(convertInts[int32](c.Ints()), valid)
		case *array.Int64Builder:
			fb.AppendValues(c.Ints(), valid)
		case *array.Float32Builder:
			fb.AppendValues(convertFloats(c.Floats()), valid)
		case *array.Float64Builder:
			fb.AppendValues(c.Floats(), valid)
		case *array.StringBuilder:
			fb.AppendValues(c.Strings(), valid)
		}
	}
	return b.NewRecord()
}

// convertInts narrows int64 values that are known to fit T
func convertInts[T int8 | int16 | int32](in []int64) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = T(v)
	}
	return out
}

// convertFloats narrows float64 values that are known to be exact float32 values
func convertFloats(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}

// arrowColumn accumulates the chunks of one Arrow field
type arrowColumn struct {
	index  int
	name   string
	dtype  DType
	strs   []string
	ints   []int64
	floats []float64
	valid  []bool
}

// newArrowColumns creates one accumulator per schema field, skipping pandas index columns
func newArrowColumns(schema *arrow.Schema) []*arrowColumn {
	var columns []*arrowColumn
	for i, field := range schema.Fields() {
		if strings.HasPrefix(field.Name, pandasIndexPrefix) {
			continue
		}
		columns = append(columns, &arrowColumn{
			index: i,
			name:  field.Name,
			dtype: dtypeFromArrow(field.Type),
		})
	}
	return columns
}

// append copies every cell of arr into the accumulator
func (c *arrowColumn) append(arr arrow.Array) error {
	for i := range arr.Len() {
		ok := arr.IsValid(i)
		c.valid = append(c.valid, ok)
		switch {
		case c.dtype.IsInteger():
			var v int64
			if ok {
				var err error
				if v, err = arrowInt(arr, i); err != nil {
					return fmt.Errorf("%w: column %s: %v", ErrInvalidData, c.name, err)
				}
			}
			c.ints = append(c.ints, v)
		case c.dtype.IsFloat():
			var v float64
			if ok {
				v = arrowFloat(arr, i)
			}
			c.floats = append(c.floats, v)
		default:
			var v string
			if ok {
				v = arrowString(arr, i)
			}
			c.strs = append(c.strs, v)
		}
	}
	return nil
}

// column converts the accumulated cells to a Column
func (c *arrowColumn) column() *Column {
	switch {
	case c.dtype.IsInteger():
		return model.NewIntColumn(c.name, c.dtype, c.ints, c.valid)
	case c.dtype.IsFloat():
		return model.NewFloatColumn(c.name, c.dtype, c.floats, c.valid)
	default:
		return model.NewStringColumn(c.name, c.strs, c.valid)
	}
}

// buildArrowTable assembles the accumulated columns into a Table
func buildArrowTable(name string, columns []*arrowColumn) (*Table, error) {
	out := make([]*Column, len(columns))
	for i, c := range columns {
		out[i] = c.column()
	}
	return model.NewTable(name, out...)
}

// arrowInt returns cell i of an integer array
func arrowInt(arr arrow.Array, i int) (int64, error) {
	switch a := arr.(type) {
	case *array.Int8:
		return int64(a.Value(i)), nil
	case *array.Int16:
		return int64(a.Value(i)), nil
	case *array.Int32:
		return int64(a.Value(i)), nil
	case *array.Int64:
		return a.Value(i), nil
	case *array.Uint8:
		return int64(a.Value(i)), nil
	case *array.Uint16:
		return int64(a.Value(i)), nil
	case *array.Uint32:
		return int64(a.Value(i)), nil
	case *array.Uint64:
		v := a.Value(i)
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows int64", v)
		}
		return int64(v), nil
	default:
		return 0, fmt.Errorf("unexpected array type %s", arr.DataType())
	}
}

// arrowFloat returns cell i of a floating-point array
func arrowFloat(arr arrow.Array, i int) float64 {
	switch a := arr.(type) {
	case *array.Float32:
		return float64(a.Value(i))
	case *array.Float64:
		return a.Value(i)
	default:
		return math.NaN()
	}
}

// arrowString returns cell i of any array as text
func arrowString(arr arrow.Array, i int) string {
	switch a := arr.(type) {
	case *array.String:
		return a.Value(i)
	case *array.LargeString:
		return a.Value(i)
	default:
		return arr.ValueStr(i)
	}
}
