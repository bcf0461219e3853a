package formatter

import (
	"fmt"
	"io"

	"github.com/penwyp/yt-slicer/internal/core/model"
)

// Formatter writes a record list in one output format
type Formatter interface {
	Format(w io.Writer, records []model.Record) error
}

// Output format names accepted by New
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// New returns the formatter registered under name
func New(name string) (Formatter, error) {
	switch name {
	case "", FormatTable:
		return NewTableFormatter(), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	case FormatCSV:
		return NewCSVFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want table, json or csv)", name)
	}
}
