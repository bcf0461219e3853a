// Package pager splits a record list into pages. Page numbers are 1-based.
package pager

import "math"

// DefaultPageSize is used until a layout has been measured
const DefaultPageSize = 8

// DefaultGap is the assumed spacing between rows when none is measured
const DefaultGap = 8

// SizeProvider reports how many rows fit on one page
type SizeProvider interface {
	PageSize() int
}

// FixedSize always reports the same page size
type FixedSize int

func (f FixedSize) PageSize() int {
	if f < 1 {
		return 1
	}
	return int(f)
}

// SizeFunc adapts a function to SizeProvider
type SizeFunc func() int

func (f SizeFunc) PageSize() int {
	return f()
}

// Measurement is the rendered geometry a page size is derived from
type Measurement struct {
	ListHeight float64 // height available for rows
	ItemHeight float64 // height of one sample row
	Gap        float64 // spacing between rows
}

// FromLayout derives a page size from measured geometry. An unmeasured list
// keeps the previous size, an unmeasured row falls back to DefaultPageSize.
func FromLayout(m Measurement, previous int) int {
	if m.ListHeight <= 0 {
		if previous > 0 {
			return previous
		}
		return DefaultPageSize
	}
	if m.ItemHeight <= 0 {
		return DefaultPageSize
	}
	gap := m.Gap
	if gap < 0 {
		gap = 0
	}
	size := int(math.Floor((m.ListHeight + gap) / (m.ItemHeight + gap)))
	if size < 1 {
		return 1
	}
	return size
}

// TotalPages is never less than one, even for an empty list
func TotalPages(total, size int) int {
	if size < 1 {
		size = 1
	}
	pages := (total + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// Pager tracks the current page and the page size it was last computed with
type Pager struct {
	Page int
	Size int
}

// New starts on page one with the default size
func New() Pager {
	return Pager{Page: 1, Size: DefaultPageSize}
}

// Resize applies a new page size and clamps the current page into range
func (p *Pager) Resize(total, size int) {
	if size < 1 {
		size = 1
	}
	p.Size = size
	p.Clamp(total)
}

// Clamp keeps the page within 1..TotalPages
func (p *Pager) Clamp(total int) {
	pages := TotalPages(total, p.Size)
	if p.Page > pages {
		p.Page = pages
	}
	if p.Page < 1 {
		p.Page = 1
	}
}

// Next advances one page; it is a no-op on the last page
func (p *Pager) Next(total int) bool {
	if p.Page >= TotalPages(total, p.Size) {
		return false
	}
	p.Page++
	return true
}

// Prev goes back one page; it is a no-op on the first page
func (p *Pager) Prev() bool {
	if p.Page <= 1 {
		return false
	}
	p.Page--
	return true
}

// First moves to page one
func (p *Pager) First() {
	p.Page = 1
}

// Last moves to the final page
func (p *Pager) Last(total int) {
	p.Page = TotalPages(total, p.Size)
}

// Bounds returns the [start, end) slice indices of the current page
func (p Pager) Bounds(total int) (int, int) {
	size := p.Size
	if size < 1 {
		size = 1
	}
	start := (p.Page - 1) * size
	if start > total {
		start = total
	}
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > total {
		end = total
	}
	return start, end
}

// View describes what the pager control should show
type View struct {
	Page       int
	TotalPages int
	Start      int
	End        int
	HasPrev    bool
	HasNext    bool
	Hidden     bool // every record fits on one page
}

// View computes the pager control state for total records
func (p Pager) View(total int) View {
	pages := TotalPages(total, p.Size)
	start, end := p.Bounds(total)
	return View{
		Page:       p.Page,
		TotalPages: pages,
		Start:      start,
		End:        end,
		HasPrev:    p.Page > 1,
		HasNext:    p.Page < pages,
		Hidden:     total <= p.Size,
	}
}
