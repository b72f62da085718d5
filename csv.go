package dataprep

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/dataprep/domain/model"
)

// utf8BOM is the byte order mark some editors write at the start of a file
const utf8BOM = "\ufeff"

// csvCodec reads and writes comma-separated values with a header row
type csvCodec struct{}

// decode parses CSV data. The first record is the header and empty cells are nulls.
func (csvCodec) decode(r io.Reader, name string) (*Table, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV: %v", ErrInvalidData, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty CSV data", ErrEmptyData)
	}

	// Spreadsheet exports often start with a UTF-8 byte order mark
	if len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], utf8BOM)
	}
	header := model.NewHeader(records[0])
	tableRecords := make([]model.Record, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		// Short records are padded with nulls; long ones are malformed
		if len(records[i]) > len(header) {
			return nil, fmt.Errorf("%w: record %d: expected %d fields, saw %d",
				ErrInvalidData, i+1, len(header), len(records[i]))
		}
		tableRecords = append(tableRecords, model.Record(records[i]))
	}

	return model.NewTableFromRecords(name, header, tableRecords)
}

// encode writes the header row and one row per record. Nulls become empty cells.
func (csvCodec) encode(w io.Writer, t *Table) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(t.Header()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, t.NumColumns())
	for i := range t.NumRows() {
		for j, c := range t.Columns() {
			row[j] = c.StringAt(i)
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}
