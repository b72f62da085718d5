package dataprep

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/dataprep/domain/model"
)

// ReadAll loads every file of dir whose name carries the extension of format,
// optionally followed by a compression extension (.gz, .bz2, .xz, .zst, .lz4).
//
// The directory is listed non-recursively and file names are processed in sorted
// order. Each table is stored in the returned Collection under the file name
// without compression and format extensions. When two files map to the same key
// (e.g. "a.csv" and "a.csv.gz"), the uncompressed file wins. Any failure aborts
// the call; no partial collection is returned. A directory without matching
// files yields an empty Collection.
func ReadAll(ctx context.Context, dir string, format Format, opts ...ReadOptions) (*Collection, error) {
	if err := newValidator().validateInputDir(dir); err != nil {
		return nil, NewErrorContext("read", dir).Error(err)
	}
	return readAll(ctx, os.DirFS(dir), dir, format, opts...)
}

// ReadAllFS is like ReadAll but lists the root of fsys.
func ReadAllFS(ctx context.Context, fsys fs.FS, format Format, opts ...ReadOptions) (*Collection, error) {
	if fsys == nil {
		return nil, NewErrorContext("read", "").Error(ErrNotDirectory)
	}
	return readAll(ctx, fsys, "", format, opts...)
}

// ReadAllJSON loads every .json file of dir.
func ReadAllJSON(ctx context.Context, dir string, opts ...ReadOptions) (*Collection, error) {
	return ReadAll(ctx, dir, FormatJSON, opts...)
}

// ReadAllCSV loads every .csv file of dir.
func ReadAllCSV(ctx context.Context, dir string, opts ...ReadOptions) (*Collection, error) {
	return ReadAll(ctx, dir, FormatCSV, opts...)
}

// ReadAllXLSX loads the first sheet of every .xlsx file of dir.
func ReadAllXLSX(ctx context.Context, dir string, opts ...ReadOptions) (*Collection, error) {
	return ReadAll(ctx, dir, FormatXLSX, opts...)
}

// ReadAllFeather loads every .feather file of dir.
func ReadAllFeather(ctx context.Context, dir string, opts ...ReadOptions) (*Collection, error) {
	return ReadAll(ctx, dir, FormatFeather, opts...)
}

// ReadAllParquet loads every .parquet file of dir.
func ReadAllParquet(ctx context.Context, dir string, opts ...ReadOptions) (*Collection, error) {
	return ReadAll(ctx, dir, FormatParquet, opts...)
}

// ReadAllPickle loads every .pickle file of dir.
func ReadAllPickle(ctx context.Context, dir string, opts ...ReadOptions) (*Collection, error) {
	return ReadAll(ctx, dir, FormatPickle, opts...)
}

// ReadFile loads a single file. The format and compression are detected from the file name
// and the table is named after the file name without extensions.
func ReadFile(ctx context.Context, filePath string, opts ...ReadOptions) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	options := readOptions(opts)
	factory := NewCompressionFactory()
	if !factory.GetBaseFormat(filePath).IsSupported() {
		return nil, NewErrorContext("read", filePath).Error(ErrUnsupportedFormat)
	}
	file := model.NewFile(filePath)

	reader, cleanup, err := factory.CreateReaderForFile(filePath)
	if err != nil {
		return nil, NewErrorContext("read", filePath).Error(err)
	}
	defer func() {
		_ = cleanup()
	}()

	t, err := decodeTable(reader, file)
	if err != nil {
		return nil, NewErrorContext("read", filePath).WithTable(file.Key()).Error(err)
	}
	logLoaded(ctx, options, filePath, t)
	return t, nil
}

// readOptions returns the first options value or the defaults
func readOptions(opts []ReadOptions) ReadOptions {
	if len(opts) > 0 {
		return opts[0]
	}
	return NewReadOptions()
}

// readAll loads the selected files of the root of fsys; dir is only used in messages
func readAll(ctx context.Context, fsys fs.FS, dir string, format Format, opts ...ReadOptions) (*Collection, error) {
	if !format.IsSupported() {
		return nil, NewErrorContext("read", dir).Error(fmt.Errorf("%w: %s", ErrUnsupportedFormat, format))
	}
	options := readOptions(opts)

	files, err := collectFiles(fsys, dir, format)
	if err != nil {
		return nil, err
	}

	coll := NewCollection()
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		displayPath := filepath.Join(dir, file.Path())
		t, err := readFSFile(fsys, file)
		if err != nil {
			return nil, NewErrorContext("read", displayPath).WithTable(file.Key()).Error(err)
		}
		logLoaded(ctx, options, displayPath, t)
		coll.Add(file.Key(), t)
	}
	return coll, nil
}

// collectFiles lists the regular files of the root of fsys that carry the format extension.
// Names are sorted and, per key, the least compressed file is kept.
func collectFiles(fsys fs.FS, dir string, format Format) ([]*model.File, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, NewErrorContext("read", dir).Error(fmt.Errorf("failed to read directory: %w", err))
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !model.HasFormat(entry.Name(), format) {
			continue
		}
		// Follow symbolic links and skip anything that is not a regular file
		info, err := fs.Stat(fsys, entry.Name())
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}
	slices.Sort(names)

	var files []*model.File
	byKey := make(map[string]int)
	for _, name := range names {
		file := model.NewFile(name)
		i, exists := byKey[file.Key()]
		if !exists {
			byKey[file.Key()] = len(files)
			files = append(files, file)
			continue
		}
		// Prefer uncompressed files over compressed ones
		if files[i].IsCompressed() && !file.IsCompressed() {
			files[i] = file
		}
	}
	return files, nil
}

// readFSFile opens, decompresses and decodes one file of fsys
func readFSFile(fsys fs.FS, file *model.File) (*Table, error) {
	f, err := fsys.Open(file.Path())
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	reader, cleanup, err := NewCompressionHandler(file.Compression()).CreateReader(f)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cleanup()
	}()

	return decodeTable(reader, file)
}

// decodeTable decodes a decompressed file body with the codec of the file format
func decodeTable(r io.Reader, file *model.File) (*Table, error) {
	codec, err := codecFor(file.Format())
	if err != nil {
		return nil, err
	}
	return codec.decode(r, file.Key())
}

// logLoaded writes a debug message for a loaded table
func logLoaded(ctx context.Context, options ReadOptions, filePath string, t *Table) {
	options.logger().DebugContext(ctx, "loaded file",
		"file", filePath,
		"table", t.Name(),
		"rows", humanize.Comma(int64(t.NumRows())),
		"columns", t.NumColumns())
}
