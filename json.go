package dataprep

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/nao1215/dataprep/domain/model"
)

// jsonCodec reads records or columns oriented JSON and writes records oriented JSON
type jsonCodec struct{}

// jsonColumn accumulates the cells of one column while decoding
type jsonColumn struct {
	name  string
	cells map[int]string
	valid map[int]bool
}

// jsonTableBuilder collects cells in first-seen column and row order
type jsonTableBuilder struct {
	columns  []*jsonColumn
	byName   map[string]*jsonColumn
	rows     int
	rowIndex map[string]int
}

func newJSONTableBuilder() *jsonTableBuilder {
	return &jsonTableBuilder{
		byName:   make(map[string]*jsonColumn),
		rowIndex: make(map[string]int),
	}
}

// column returns the column called name, appending it when new
func (b *jsonTableBuilder) column(name string) *jsonColumn {
	c, ok := b.byName[name]
	if !ok {
		c = &jsonColumn{name: name, cells: make(map[int]string), valid: make(map[int]bool)}
		b.byName[name] = c
		b.columns = append(b.columns, c)
	}
	return c
}

// row returns the row number of an index label, appending it when new
func (b *jsonTableBuilder) row(label string) int {
	i, ok := b.rowIndex[label]
	if !ok {
		i = b.rows
		b.rowIndex[label] = i
		b.rows++
	}
	return i
}

// set stores a decoded JSON value at row i of column c
func (b *jsonTableBuilder) set(c *jsonColumn, i int, value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		c.cells[i] = v
	case json.Number:
		c.cells[i] = v.String()
	case bool:
		c.cells[i] = strconv.FormatBool(v)
	default:
		nested, err := json.Marshal(v)
		if err != nil {
			return err
		}
		c.cells[i] = string(nested)
	}
	c.valid[i] = true
	return nil
}

// build converts the collected cells into typed columns
func (b *jsonTableBuilder) build(name string) (*Table, error) {
	columns := make([]*Column, len(b.columns))
	for j, c := range b.columns {
		cells := make([]string, b.rows)
		valid := make([]bool, b.rows)
		for i := range b.rows {
			cells[i] = c.cells[i]
			valid[i] = c.valid[i]
		}
		columns[j] = model.NewColumnFromStrings(c.name, cells, valid)
	}
	return model.NewTable(name, columns...)
}

// decode parses either an array of records or an object of columns keyed by index label
func (jsonCodec) decode(r io.Reader, name string) (*Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty JSON data", ErrEmptyData)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	b := newJSONTableBuilder()
	switch tok {
	case json.Delim('['):
		err = decodeJSONRecords(dec, b)
	case json.Delim('{'):
		err = decodeJSONColumns(dec, b)
	default:
		err = fmt.Errorf("unexpected token %v", tok)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return b.build(name)
}

// decodeJSONRecords reads [{"col": value, ...}, ...] after the opening bracket
func decodeJSONRecords(dec *json.Decoder, b *jsonTableBuilder) error {
	for dec.More() {
		if err := expectDelim(dec, '{'); err != nil {
			return err
		}
		i := b.row(strconv.Itoa(b.rows))
		for dec.More() {
			key, err := objectKey(dec)
			if err != nil {
				return err
			}
			var value any
			if err := dec.Decode(&value); err != nil {
				return err
			}
			if err := b.set(b.column(key), i, value); err != nil {
				return err
			}
		}
		if err := expectDelim(dec, '}'); err != nil {
			return err
		}
	}
	return expectDelim(dec, ']')
}

// decodeJSONColumns reads {"col": {"label": value, ...}, ...} or {"col": [value, ...], ...}
// after the opening brace
func decodeJSONColumns(dec *json.Decoder, b *jsonTableBuilder) error {
	for dec.More() {
		key, err := objectKey(dec)
		if err != nil {
			return err
		}
		c := b.column(key)

		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch tok {
		case json.Delim('{'):
			for dec.More() {
				label, err := objectKey(dec)
				if err != nil {
					return err
				}
				var value any
				if err := dec.Decode(&value); err != nil {
					return err
				}
				if err := b.set(c, b.row(label), value); err != nil {
					return err
				}
			}
			if err := expectDelim(dec, '}'); err != nil {
				return err
			}
		case json.Delim('['):
			for n := 0; dec.More(); n++ {
				var value any
				if err := dec.Decode(&value); err != nil {
					return err
				}
				if err := b.set(c, b.row(strconv.Itoa(n)), value); err != nil {
					return err
				}
			}
			if err := expectDelim(dec, ']'); err != nil {
				return err
			}
		default:
			return fmt.Errorf("column %q must be an object or an array", key)
		}
	}
	return expectDelim(dec, '}')
}

// objectKey reads the next object key
func objectKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

// expectDelim reads the next token and checks that it is delim
func expectDelim(dec *json.Decoder, delim json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != delim {
		return fmt.Errorf("expected %v, got %v", delim, tok)
	}
	return nil
}

// encode writes an array of records. Nulls and non-finite floats become null.
func (jsonCodec) encode(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)

	keys := make([][]byte, t.NumColumns())
	for j, name := range t.Header() {
		key, err := json.Marshal(name)
		if err != nil {
			return err
		}
		keys[j] = key
	}

	if _, err := bw.WriteString("["); err != nil {
		return err
	}
	for i := range t.NumRows() {
		if i > 0 {
			_ = bw.WriteByte(',')
		}
		_ = bw.WriteByte('{')
		for j, c := range t.Columns() {
			if j > 0 {
				_ = bw.WriteByte(',')
			}
			_, _ = bw.Write(keys[j])
			_ = bw.WriteByte(':')
			value, err := jsonValue(c, i)
			if err != nil {
				return err
			}
			_, _ = bw.Write(value)
		}
		_ = bw.WriteByte('}')
	}
	if _, err := bw.WriteString("]"); err != nil {
		return err
	}
	return bw.Flush()
}

// jsonValue encodes cell i of c as a JSON value
func jsonValue(c *Column, i int) ([]byte, error) {
	if c.IsNull(i) {
		return []byte("null"), nil
	}
	switch {
	case c.DType().IsInteger():
		return strconv.AppendInt(nil, c.Ints()[i], 10), nil
	case c.DType().IsFloat():
		v := c.Floats()[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return []byte("null"), nil
		}
		return []byte(model.FormatFloat(v, c.DType())), nil
	default:
		return json.Marshal(c.Strings()[i])
	}
}
