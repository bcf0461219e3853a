package overlay

import (
	"github.com/penwyp/yt-slicer/internal/core/model"
	"github.com/penwyp/yt-slicer/internal/core/pager"
)

// State is the overlay's cached view of storage plus its own UI state. The
// event loop owns it; render functions receive it by value.
type State struct {
	Enabled bool
	Records []model.Record
	Pager   pager.Pager
	// Selected is the highlighted row, relative to the current page
	Selected    int
	Interaction model.InteractionState
}

func NewState() State {
	return State{
		Records: []model.Record{},
		Pager:   pager.New(),
	}
}

// PageRecords returns the records on the current page and the index of the
// first one in the whole list
func (s State) PageRecords() ([]model.Record, int) {
	start, end := s.Pager.Bounds(len(s.Records))
	return s.Records[start:end], start
}

func (s *State) clampSelection() {
	rows, _ := s.PageRecords()
	if s.Selected >= len(rows) {
		s.Selected = len(rows) - 1
	}
	if s.Selected < 0 {
		s.Selected = 0
	}
}
