package dataprep

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// WriteAll writes every published table of ns into dir.
//
// Each name carrying ReservedPrefix is written as <dir>/<prefix>_<key><ext>, where key
// is the name without ReservedPrefix and ext is the format extension followed by the
// compression extension. Names are written in sorted order and the first failure
// aborts the batch. dir must be an existing directory.
//
// Example usage:
//
//	// Default: CSV files named processed_<key>.csv
//	err := WriteAll(ns, "./output")
//
//	// Parquet files with zstd compression named clean_<key>.parquet.zst
//	options := NewWriteOptions().
//		WithFormat(FormatParquet).
//		WithCompression(CompressionZSTD).
//		WithFilePrefix("clean")
//	err := WriteAll(ns, "./output", options)
func WriteAll(ns *Namespace, dir string, opts ...WriteOptions) error {
	// Use default options if none provided
	options := NewWriteOptions()
	if len(opts) > 0 {
		options = opts[0]
	}
	if ns == nil {
		return NewErrorContext("write", dir).Error(ErrNilNamespace)
	}
	if !options.Format.IsSupported() {
		return NewErrorContext("write", dir).Error(ErrUnsupportedFormat)
	}
	if err := newValidator().validateOutputDir(dir); err != nil {
		return NewErrorContext("write", dir).Error(err)
	}

	for _, name := range ns.Published() {
		t, _ := ns.Get(name)
		key := strings.TrimPrefix(name, ReservedPrefix)
		outputPath := filepath.Join(dir, options.FileName(key))
		if err := WriteFile(t, outputPath, options); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes every published table as records oriented JSON.
func WriteJSON(ns *Namespace, dir string, filePrefix ...string) error {
	return WriteAll(ns, dir, writeOptionsFor(FormatJSON, filePrefix))
}

// WriteCSV writes every published table as CSV with a header row.
func WriteCSV(ns *Namespace, dir string, filePrefix ...string) error {
	return WriteAll(ns, dir, writeOptionsFor(FormatCSV, filePrefix))
}

// WriteXLSX writes every published table as a single-sheet Excel workbook.
func WriteXLSX(ns *Namespace, dir string, filePrefix ...string) error {
	return WriteAll(ns, dir, writeOptionsFor(FormatXLSX, filePrefix))
}

// WriteFeather writes every published table as an Arrow IPC file.
func WriteFeather(ns *Namespace, dir string, filePrefix ...string) error {
	return WriteAll(ns, dir, writeOptionsFor(FormatFeather, filePrefix))
}

// WriteParquet writes every published table as a Parquet file.
func WriteParquet(ns *Namespace, dir string, filePrefix ...string) error {
	return WriteAll(ns, dir, writeOptionsFor(FormatParquet, filePrefix))
}

// WritePickle writes every published table as a serialized snapshot.
func WritePickle(ns *Namespace, dir string, filePrefix ...string) error {
	return WriteAll(ns, dir, writeOptionsFor(FormatPickle, filePrefix))
}

// writeOptionsFor returns default options for format with an optional file prefix
func writeOptionsFor(format Format, filePrefix []string) WriteOptions {
	options := NewWriteOptions().WithFormat(format)
	if len(filePrefix) > 0 {
		options = options.WithFilePrefix(filePrefix[0])
	}
	return options
}

// WriteFile writes a single table to filePath with the format and compression of opts.
// The file name is used as given; opts.FilePrefix is ignored.
func WriteFile(t *Table, filePath string, opts ...WriteOptions) (err error) {
	options := NewWriteOptions()
	if len(opts) > 0 {
		options = opts[0]
	}
	errCtx := NewErrorContext("write", filePath)
	if t == nil {
		return errCtx.Error(ErrEmptyData)
	}
	errCtx = errCtx.WithTable(t.Name())

	codec, err := codecFor(options.Format)
	if err != nil {
		return errCtx.Error(err)
	}

	writer, cleanup, err := NewCompressionFactory().CreateWriterForFile(filePath, options.Compression)
	if err != nil {
		return errCtx.Error(err)
	}
	defer func() {
		if closeErr := cleanup(); closeErr != nil {
			err = errors.Join(err, errCtx.Error(closeErr))
		}
	}()

	if err := codec.encode(writer, t); err != nil {
		return errCtx.Error(err)
	}

	options.logger().Debug("wrote file",
		"file", filePath,
		"table", t.Name(),
		"rows", humanize.Comma(int64(t.NumRows())),
		"format", options.Format.String(),
		"compression", options.Compression.String())
	return nil
}
