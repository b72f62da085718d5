package dataprep

import (
	"log/slog"
	"time"
)

// DefaultFilePrefix is the file name prefix used by the batch writer when none is given
const DefaultFilePrefix = "processed"

// ReadOptions configures how files and databases are loaded.
//
// Example:
//
//	options := NewReadOptions().WithLogger(logger)
//	coll, err := ReadAll(ctx, "./raw", FormatCSV, options)
type ReadOptions struct {
	// Logger receives debug messages for every loaded file
	Logger *slog.Logger
}

// NewReadOptions creates default read options (logging through slog.Default).
func NewReadOptions() ReadOptions {
	return ReadOptions{}
}

// WithLogger sets the logger used for debug messages.
func (o ReadOptions) WithLogger(logger *slog.Logger) ReadOptions {
	o.Logger = logger
	return o
}

// logger returns the configured logger or slog.Default
func (o ReadOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// WriteOptions configures how published tables are exported to files.
//
// Example:
//
//	options := NewWriteOptions().
//		WithFormat(FormatParquet).
//		WithCompression(CompressionZSTD).
//		WithFilePrefix("clean")
//
//	err := WriteAll(ns, "./output", options)
type WriteOptions struct {
	// Format specifies the output file format
	Format Format
	// Compression specifies the compression type
	Compression CompressionType
	// FilePrefix is prepended to every output file name, followed by '_'
	FilePrefix string
	// Logger receives debug messages for every written file
	Logger *slog.Logger
}

// NewWriteOptions creates default export options (CSV, no compression, "processed" prefix).
//
// Modify with:
//   - WithFormat(): Change file format (CSV, JSON, XLSX, Feather, Parquet, Pickle)
//   - WithCompression(): Add compression (GZ, XZ, ZSTD, LZ4)
//   - WithFilePrefix(): Change the output file name prefix
func NewWriteOptions() WriteOptions {
	return WriteOptions{
		Format:      FormatCSV,
		Compression: CompressionNone,
		FilePrefix:  DefaultFilePrefix,
	}
}

// WithFormat sets the output file format.
//
// Options:
//   - FormatCSV: Comma-separated values
//   - FormatJSON: JSON array of records
//   - FormatXLSX: Excel workbook with a single sheet
//   - FormatFeather: Arrow IPC file with LZ4 compressed buffers
//   - FormatParquet: Parquet file with the Arrow schema stored
//   - FormatPickle: serialized table snapshot
func (o WriteOptions) WithFormat(format Format) WriteOptions {
	o.Format = format
	return o
}

// WithCompression adds compression to output files.
//
// Options:
//   - CompressionNone: No compression (default)
//   - CompressionGZ: Gzip compression (.gz)
//   - CompressionXZ: XZ compression (.xz)
//   - CompressionZSTD: Zstandard compression (.zst)
//   - CompressionLZ4: LZ4 frame compression (.lz4)
//
// CompressionBZ2 can be read but not written.
func (o WriteOptions) WithCompression(compression CompressionType) WriteOptions {
	o.Compression = compression
	return o
}

// WithFilePrefix sets the output file name prefix. An empty prefix selects DefaultFilePrefix.
func (o WriteOptions) WithFilePrefix(prefix string) WriteOptions {
	o.FilePrefix = prefix
	return o
}

// WithLogger sets the logger used for debug messages.
func (o WriteOptions) WithLogger(logger *slog.Logger) WriteOptions {
	o.Logger = logger
	return o
}

// FileExtension returns the complete file extension including compression
func (o WriteOptions) FileExtension() string {
	baseExt := o.Format.Extension()
	compExt := o.Compression.Extension()
	return baseExt + compExt
}

// FileName returns the output file name for a collection key
func (o WriteOptions) FileName(key string) string {
	prefix := o.FilePrefix
	if prefix == "" {
		prefix = DefaultFilePrefix
	}
	return prefix + "_" + key + o.FileExtension()
}

// logger returns the configured logger or slog.Default
func (o WriteOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// UnpackOptions configures how a collection is published into a namespace.
//
// Example:
//
//	options := NewUnpackOptions().
//		WithMessaging(true).
//		WithDelay(500 * time.Millisecond)
//
//	err := Unpack(ctx, coll, ns, options)
type UnpackOptions struct {
	// Delay is waited before each progress message
	Delay time.Duration
	// Messaging enables one progress message per published table
	Messaging bool
	// Logger receives the progress messages at info level
	Logger *slog.Logger
}

// NewUnpackOptions creates default unpack options (no messaging, no delay).
func NewUnpackOptions() UnpackOptions {
	return UnpackOptions{}
}

// WithDelay sets the delay waited before each progress message.
func (o UnpackOptions) WithDelay(delay time.Duration) UnpackOptions {
	o.Delay = delay
	return o
}

// WithMessaging enables or disables the progress messages.
func (o UnpackOptions) WithMessaging(enabled bool) UnpackOptions {
	o.Messaging = enabled
	return o
}

// WithLogger sets the logger that receives the progress messages.
func (o UnpackOptions) WithLogger(logger *slog.Logger) UnpackOptions {
	o.Logger = logger
	return o
}

// logger returns the configured logger or slog.Default
func (o UnpackOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}
