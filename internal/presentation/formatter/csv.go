package formatter

import (
	"errors"
	"io"

	"github.com/penwyp/yt-slicer/internal/core/model"
	"github.com/penwyp/yt-slicer/internal/data/csvio"
)

// CSVFormatter prints the same document the export command writes, so the
// output can be fed back to import.
type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Format(w io.Writer, records []model.Record) error {
	err := csvio.Export(w, records)
	if errors.Is(err, csvio.ErrNothingToExport) {
		return nil
	}
	return err
}
