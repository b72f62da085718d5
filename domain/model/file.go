package model

import (
	"path/filepath"
	"strings"
)

// Format represents supported file formats
type Format int

const (
	// FormatCSV represents CSV file format
	FormatCSV Format = iota
	// FormatJSON represents JSON file format
	FormatJSON
	// FormatXLSX represents Excel spreadsheet file format
	FormatXLSX
	// FormatFeather represents Arrow IPC (Feather v2) file format
	FormatFeather
	// FormatParquet represents Parquet file format
	FormatParquet
	// FormatPickle represents the serialized table snapshot format
	FormatPickle
	// FormatUnsupported represents unsupported file format
	FormatUnsupported
)

// CompressionType represents the compression type
type CompressionType int

const (
	// CompressionNone represents no compression
	CompressionNone CompressionType = iota
	// CompressionGZ represents gzip compression
	CompressionGZ
	// CompressionBZ2 represents bzip2 compression
	CompressionBZ2
	// CompressionXZ represents xz compression
	CompressionXZ
	// CompressionZSTD represents zstd compression
	CompressionZSTD
	// CompressionLZ4 represents lz4 frame compression
	CompressionLZ4
)

// File extensions
const (
	// ExtCSV is the CSV file extension
	ExtCSV = ".csv"
	// ExtJSON is the JSON file extension
	ExtJSON = ".json"
	// ExtXLSX is the Excel file extension
	ExtXLSX = ".xlsx"
	// ExtFeather is the Feather file extension
	ExtFeather = ".feather"
	// ExtParquet is the Parquet file extension
	ExtParquet = ".parquet"
	// ExtPickle is the serialized snapshot file extension
	ExtPickle = ".pickle"
	// ExtGZ is the gzip compression extension
	ExtGZ = ".gz"
	// ExtBZ2 is the bzip2 compression extension
	ExtBZ2 = ".bz2"
	// ExtXZ is the xz compression extension
	ExtXZ = ".xz"
	// ExtZSTD is the zstd compression extension
	ExtZSTD = ".zst"
	// ExtLZ4 is the lz4 compression extension
	ExtLZ4 = ".lz4"
)

// formats lists every supported format in declaration order
var formats = []Format{FormatCSV, FormatJSON, FormatXLSX, FormatFeather, FormatParquet, FormatPickle}

// compressions lists every compression type that carries a file extension
var compressions = []CompressionType{CompressionGZ, CompressionBZ2, CompressionXZ, CompressionZSTD, CompressionLZ4}

// Formats returns every supported format.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// String returns the format name
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	case FormatXLSX:
		return "xlsx"
	case FormatFeather:
		return "feather"
	case FormatParquet:
		return "parquet"
	case FormatPickle:
		return "pickle"
	default:
		return "unsupported"
	}
}

// Extension returns the canonical file extension of the format
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return ExtCSV
	case FormatJSON:
		return ExtJSON
	case FormatXLSX:
		return ExtXLSX
	case FormatFeather:
		return ExtFeather
	case FormatParquet:
		return ExtParquet
	case FormatPickle:
		return ExtPickle
	default:
		return ""
	}
}

// IsSupported reports whether f is one of the supported formats
func (f Format) IsSupported() bool {
	return f >= FormatCSV && f < FormatUnsupported
}

// String returns the string representation of compression type
func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGZ:
		return "gzip"
	case CompressionBZ2:
		return "bzip2"
	case CompressionXZ:
		return "xz"
	case CompressionZSTD:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// Extension returns the file extension for the compression type
func (c CompressionType) Extension() string {
	switch c {
	case CompressionGZ:
		return ExtGZ
	case CompressionBZ2:
		return ExtBZ2
	case CompressionXZ:
		return ExtXZ
	case CompressionZSTD:
		return ExtZSTD
	case CompressionLZ4:
		return ExtLZ4
	default:
		return ""
	}
}

// File represents a data file that can be converted to a Table
type File struct {
	path        string
	format      Format
	compression CompressionType
}

// NewFile creates a new File
func NewFile(path string) *File {
	return &File{
		path:        path,
		format:      DetectFormat(path),
		compression: DetectCompression(path),
	}
}

// Path returns file path
func (f *File) Path() string {
	return f.path
}

// Format returns the file format
func (f *File) Format() Format {
	return f.format
}

// Compression returns the compression type of the file
func (f *File) Compression() CompressionType {
	return f.compression
}

// IsCompressed returns true if the file is compressed
func (f *File) IsCompressed() bool {
	return f.compression != CompressionNone
}

// Key returns the collection key derived from the file name
func (f *File) Key() string {
	return KeyFromFilePath(f.path)
}

// DetectCompression detects the compression type from the file extension
func DetectCompression(path string) CompressionType {
	lower := strings.ToLower(path)
	for _, c := range compressions {
		if strings.HasSuffix(lower, c.Extension()) {
			return c
		}
	}
	return CompressionNone
}

// TrimCompressionExtension removes a trailing compression extension from path
func TrimCompressionExtension(path string) string {
	if c := DetectCompression(path); c != CompressionNone {
		return path[:len(path)-len(c.Extension())]
	}
	return path
}

// DetectFormat detects the file format from extension, considering compressed files
func DetectFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(TrimCompressionExtension(path)))
	for _, f := range formats {
		if ext == f.Extension() {
			return f
		}
	}
	return FormatUnsupported
}

// HasFormat reports whether the file name carries the extension of format f,
// optionally followed by a compression extension
func HasFormat(path string, f Format) bool {
	return f.IsSupported() && DetectFormat(path) == f
}

// KeyFromFilePath creates the collection key from file path:
// the base name without compression and format extensions
func KeyFromFilePath(filePath string) string {
	fileName := TrimCompressionExtension(filepath.Base(filePath))
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}
