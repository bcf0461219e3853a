package layout

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/penwyp/yt-slicer/internal/core/pager"
	"github.com/penwyp/yt-slicer/internal/util"
	"golang.org/x/term"
)

const (
	// ChromeLines is every overlay line that is not a record row: title,
	// status, two separators, pager, status message, help footer and a
	// spare line so the cursor never scrolls the screen.
	ChromeLines = 8

	fallbackWidth  = 80
	fallbackHeight = 24
	minWidth       = 40
)

// Sizer measures the terminal and turns it into overlay geometry. It
// implements pager.SizeProvider.
type Sizer struct {
	getSize  func() (width, height int, err error)
	previous int
}

// NewSizer measures the controlling terminal on stdout
func NewSizer() *Sizer {
	return &Sizer{
		getSize: func() (int, int, error) {
			return term.GetSize(int(os.Stdout.Fd()))
		},
	}
}

// NewSizerFunc measures through fn instead of the real terminal
func NewSizerFunc(fn func() (width, height int, err error)) *Sizer {
	return &Sizer{getSize: fn}
}

func (s *Sizer) dimensions() (int, int, bool) {
	width, height, err := s.getSize()
	if err != nil || width <= 0 || height <= 0 {
		return fallbackWidth, fallbackHeight, false
	}
	return width, height, true
}

// PageSize is the number of record rows that fit below the overlay chrome.
// Rows are one line tall with no gap between them.
func (s *Sizer) PageSize() int {
	_, height, ok := s.dimensions()
	m := pager.Measurement{ItemHeight: 1}
	if ok {
		// a measured terminal always shows at least one row
		m.ListHeight = float64(max(height-ChromeLines, 1))
	}
	size := pager.FromLayout(m, s.previous)
	if size != s.previous {
		util.LogDebugf("Page size changed %d -> %d (terminal height %d)", s.previous, size, height)
	}
	s.previous = size
	return size
}

// GetMaxWidth is the usable line width of the terminal
func (s *Sizer) GetMaxWidth() int {
	width, _, _ := s.dimensions()
	if width < minWidth {
		return minWidth
	}
	return width
}

// PadString pads a string to a specific display width, handling wide runes
func PadString(s string, width int, leftAlign bool) string {
	actualWidth := runewidth.StringWidth(s)
	if actualWidth >= width {
		return s
	}

	padding := strings.Repeat(" ", width-actualWidth)
	if leftAlign {
		return s + padding
	}
	return padding + s
}
