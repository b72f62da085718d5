package dataprep

import (
	"fmt"
	"io"

	"github.com/nao1215/dataprep/domain/model"
)

// tableCodec converts between a serialized file body and a Table.
// Compression is handled by CompressionHandler before the codec sees the stream.
type tableCodec interface {
	// decode reads one table named name from r
	decode(r io.Reader, name string) (*Table, error)
	// encode writes t to w
	encode(w io.Writer, t *Table) error
}

// codecFor returns the codec of a file format
func codecFor(format Format) (tableCodec, error) {
	switch format {
	case model.FormatCSV:
		return csvCodec{}, nil
	case model.FormatJSON:
		return jsonCodec{}, nil
	case model.FormatXLSX:
		return xlsxCodec{}, nil
	case model.FormatFeather:
		return featherCodec{}, nil
	case model.FormatParquet:
		return parquetCodec{}, nil
	case model.FormatPickle:
		return pickleCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
