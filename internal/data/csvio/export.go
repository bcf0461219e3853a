package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/penwyp/yt-slicer/internal/core/model"
)

// DefaultFileName is the name offered for exported files
const DefaultFileName = "youtube_slicer.csv"

// ErrNothingToExport is returned when the record list is empty. Nothing is
// written in that case.
var ErrNothingToExport = errors.New("no records to export")

var exportHeader = []string{"SN", "URL"}

// Export writes the SN,URL header and one line per record numbered from 1
func Export(w io.Writer, records []model.Record) error {
	if len(records) == 0 {
		return ErrNothingToExport
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for i, r := range records {
		if err := cw.Write([]string{strconv.Itoa(i + 1), r.URL}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFile renders records and writes them to path. The file is not
// created when there is nothing to export.
func ExportFile(path string, records []model.Record) error {
	var buf bytes.Buffer
	if err := Export(&buf, records); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}
