package dataprep

import (
	"github.com/nao1215/dataprep/domain/model"
)

// Type aliases for the table model from model package
type (
	// Table is a named, ordered set of equally long typed columns
	Table = model.Table
	// Column is a named, typed sequence of values with a validity channel
	Column = model.Column
	// DType represents the storage type of a column
	DType = model.DType
	// Header is table header
	Header = model.Header
	// Format represents a supported file format
	Format = model.Format
	// CompressionType represents the compression type
	CompressionType = model.CompressionType
)

// Re-export constants for easier use
const (
	// DTypeString represents a textual column
	DTypeString = model.DTypeString
	// DTypeInt8 represents an 8-bit signed integer column
	DTypeInt8 = model.DTypeInt8
	// DTypeInt16 represents a 16-bit signed integer column
	DTypeInt16 = model.DTypeInt16
	// DTypeInt32 represents a 32-bit signed integer column
	DTypeInt32 = model.DTypeInt32
	// DTypeInt64 represents a 64-bit signed integer column
	DTypeInt64 = model.DTypeInt64
	// DTypeFloat32 represents a 32-bit floating-point column
	DTypeFloat32 = model.DTypeFloat32
	// DTypeFloat64 represents a 64-bit floating-point column
	DTypeFloat64 = model.DTypeFloat64

	// FormatCSV represents CSV format
	FormatCSV = model.FormatCSV
	// FormatJSON represents JSON format
	FormatJSON = model.FormatJSON
	// FormatXLSX represents Excel spreadsheet format
	FormatXLSX = model.FormatXLSX
	// FormatFeather represents Arrow IPC (Feather v2) format
	FormatFeather = model.FormatFeather
	// FormatParquet represents Parquet format
	FormatParquet = model.FormatParquet
	// FormatPickle represents the serialized table snapshot format
	FormatPickle = model.FormatPickle
	// FormatUnsupported represents an unsupported file format
	FormatUnsupported = model.FormatUnsupported

	// CompressionNone represents no compression
	CompressionNone = model.CompressionNone
	// CompressionGZ represents gzip compression
	CompressionGZ = model.CompressionGZ
	// CompressionBZ2 represents bzip2 compression (read only)
	CompressionBZ2 = model.CompressionBZ2
	// CompressionXZ represents xz compression
	CompressionXZ = model.CompressionXZ
	// CompressionZSTD represents zstd compression
	CompressionZSTD = model.CompressionZSTD
	// CompressionLZ4 represents lz4 frame compression
	CompressionLZ4 = model.CompressionLZ4
)

// Constructors re-exported from model package
var (
	// NewTable creates a table from columns of equal length
	NewTable = model.NewTable
	// NewStringColumn creates a textual column
	NewStringColumn = model.NewStringColumn
	// NewIntColumn creates an integer column
	NewIntColumn = model.NewIntColumn
	// NewFloatColumn creates a floating-point column
	NewFloatColumn = model.NewFloatColumn
)
