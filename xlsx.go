package dataprep

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/nao1215/dataprep/domain/model"
	"github.com/xuri/excelize/v2"
)

// xlsxSheetName is the sheet written by the XLSX encoder
const xlsxSheetName = "Sheet1"

// xlsxCodec reads the first sheet of a workbook and writes a single-sheet workbook
type xlsxCodec struct{}

// decode parses the first sheet. The first row is the header and short rows are padded with nulls.
func (xlsxCodec) decode(r io.Reader, name string) (*Table, error) {
	xlsxFile, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open XLSX file: %v", ErrInvalidData, err)
	}
	defer func() {
		_ = xlsxFile.Close() // Ignore close error
	}()

	sheetNames := xlsxFile.GetSheetList()
	if len(sheetNames) == 0 {
		return nil, fmt.Errorf("%w: no sheets found in XLSX file", ErrEmptyData)
	}

	// Only the first sheet is loaded
	sheetName := sheetNames[0]
	rows, err := xlsxFile.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s is empty", ErrEmptyData, sheetName)
	}

	header, records, err := convertXLSXRowsToRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %s: %v", ErrInvalidData, sheetName, err)
	}
	return model.NewTableFromRecords(name, header, records)
}

// convertXLSXRowsToRecords converts XLSX rows to a header and records.
// The first row becomes the header; remaining rows are padded to the header width.
// A row with a non-empty cell past the header width is rejected.
func convertXLSXRowsToRecords(rows [][]string) (model.Header, []model.Record, error) {
	header := make(model.Header, len(rows[0]))
	copy(header, rows[0])

	records := make([]model.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		for j := len(header); j < len(row); j++ {
			if row[j] != "" {
				cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
				return nil, nil, fmt.Errorf("row %d: cell %s is outside the %d header columns", i+2, cell, len(header))
			}
		}
		record := make(model.Record, len(header))
		copy(record, row)
		records = append(records, record)
	}
	return header, records, nil
}

// encode writes the header row and typed cells to Sheet1 with the excelize stream writer
func (xlsxCodec) encode(w io.Writer, t *Table) (err error) {
	xlsxFile := excelize.NewFile()
	defer func() {
		err = errors.Join(err, xlsxFile.Close())
	}()

	sw, err := xlsxFile.NewStreamWriter(xlsxSheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	header := make([]interface{}, t.NumColumns())
	for j, name := range t.Header() {
		header[j] = name
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range t.NumRows() {
		row := make([]interface{}, t.NumColumns())
		for j, c := range t.Columns() {
			row[j] = xlsxCellValue(c, i)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush stream writer: %w", err)
	}
	return xlsxFile.Write(w)
}

// xlsxCellValue returns cell i of c as an excelize cell value. Nulls and non-finite floats are blank.
func xlsxCellValue(c *Column, i int) interface{} {
	v := c.Value(i)
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return nil
	}
	return v
}
