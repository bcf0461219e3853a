// Package vterm is a virtual terminal for tests. It replays the escape
// sequences the display package writes and exposes the resulting screen.
package vterm

import (
	"regexp"
	"strings"
	"sync"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// Screen is a fixed-size character grid. It implements io.Writer so a
// display can draw straight into it.
type Screen struct {
	mu      sync.Mutex
	rows    int
	cols    int
	buffer  [][]rune
	cursorX int
	cursorY int

	// alternate buffer state, toggled by ?1049h / ?1049l
	alternate bool
	pending   []rune
}

// NewScreen creates a blank screen
func NewScreen(rows, cols int) *Screen {
	s := &Screen{rows: rows, cols: cols}
	s.buffer = make([][]rune, rows)
	for i := range s.buffer {
		s.buffer[i] = blankRow(cols)
	}
	return s
}

func blankRow(cols int) []rune {
	row := make([]rune, cols)
	for j := range row {
		row[j] = ' '
	}
	return row
}

// StripANSI removes all escape sequences from s
func StripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

func (s *Screen) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// an escape sequence may be split across writes
	runes := append(s.pending, []rune(string(p))...)
	s.pending = nil

	i := 0
	for i < len(runes) {
		switch r := runes[i]; {
		case r == '\x1b':
			next, ok := s.handleSequence(runes, i)
			if !ok {
				s.pending = append([]rune(nil), runes[i:]...)
				return len(p), nil
			}
			i = next
		case r == '\r':
			s.cursorX = 0
			i++
		case r == '\n':
			s.lineFeed()
			i++
		case r == '\b':
			if s.cursorX > 0 {
				s.cursorX--
			}
			i++
		default:
			s.putChar(r)
			i++
		}
	}
	return len(p), nil
}

// handleSequence applies the CSI sequence starting at start. It reports false
// when the sequence is incomplete.
func (s *Screen) handleSequence(runes []rune, start int) (int, bool) {
	if start+1 >= len(runes) {
		return start, false
	}
	if runes[start+1] != '[' {
		return start + 2, true
	}

	i := start + 2
	private := false
	if i < len(runes) && runes[i] == '?' {
		private = true
		i++
	}

	var params []int
	current, hasDigits := 0, false
	for ; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r >= '0' && r <= '9':
			current = current*10 + int(r-'0')
			hasDigits = true
		case r == ';':
			params = append(params, current)
			current, hasDigits = 0, false
		default:
			if hasDigits {
				params = append(params, current)
			}
			if private {
				s.handlePrivate(r, params)
			} else {
				s.handleCommand(r, params)
			}
			return i + 1, true
		}
	}
	return start, false
}

func param(params []int, index, fallback int) int {
	if index < len(params) && params[index] > 0 {
		return params[index]
	}
	return fallback
}

func (s *Screen) handlePrivate(cmd rune, params []int) {
	if param(params, 0, 0) != 1049 {
		return
	}
	switch cmd {
	case 'h':
		s.alternate = true
	case 'l':
		s.alternate = false
	}
}

func (s *Screen) handleCommand(cmd rune, params []int) {
	switch cmd {
	case 'H', 'f':
		s.cursorY = min(param(params, 0, 1), s.rows) - 1
		s.cursorX = min(param(params, 1, 1), s.cols) - 1

	case 'J':
		mode := 0
		if len(params) > 0 {
			mode = params[0]
		}
		switch mode {
		case 0:
			s.clearLineFrom(s.cursorX)
			for i := s.cursorY + 1; i < s.rows; i++ {
				s.buffer[i] = blankRow(s.cols)
			}
		case 2:
			for i := range s.buffer {
				s.buffer[i] = blankRow(s.cols)
			}
		}

	case 'K':
		mode := 0
		if len(params) > 0 {
			mode = params[0]
		}
		switch mode {
		case 0:
			s.clearLineFrom(s.cursorX)
		case 2:
			s.clearLineFrom(0)
		}

	case 'A':
		s.cursorY = max(0, s.cursorY-param(params, 0, 1))
	case 'B':
		s.cursorY = min(s.rows-1, s.cursorY+param(params, 0, 1))
	case 'C':
		s.cursorX = min(s.cols-1, s.cursorX+param(params, 0, 1))
	case 'D':
		s.cursorX = max(0, s.cursorX-param(params, 0, 1))
	}
	// m (colors) and r (scroll region) do not change the grid
}

func (s *Screen) clearLineFrom(x int) {
	if s.cursorY < 0 || s.cursorY >= s.rows {
		return
	}
	for j := x; j < s.cols; j++ {
		s.buffer[s.cursorY][j] = ' '
	}
}

func (s *Screen) putChar(ch rune) {
	if s.cursorX >= s.cols {
		return
	}
	if s.cursorY >= 0 && s.cursorY < s.rows && s.cursorX >= 0 {
		s.buffer[s.cursorY][s.cursorX] = ch
		s.cursorX++
	}
}

func (s *Screen) lineFeed() {
	s.cursorY++
	if s.cursorY >= s.rows {
		s.scrollUp()
	}
}

func (s *Screen) scrollUp() {
	copy(s.buffer, s.buffer[1:])
	s.buffer[s.rows-1] = blankRow(s.cols)
	s.cursorY = s.rows - 1
}

// Render returns the screen with trailing blanks trimmed from every row
func (s *Screen) Render() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result strings.Builder
	for i, row := range s.buffer {
		result.WriteString(strings.TrimRight(string(row), " "))
		if i < len(s.buffer)-1 {
			result.WriteRune('\n')
		}
	}
	return result.String()
}

// Line returns one row, trimmed
func (s *Screen) Line(n int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n >= 0 && n < s.rows {
		return strings.TrimRight(string(s.buffer[n]), " ")
	}
	return ""
}

// ContainsText reports whether text appears on the screen
func (s *Screen) ContainsText(text string) bool {
	return strings.Contains(s.Render(), text)
}

// Alternate reports whether the alternate buffer is active
func (s *Screen) Alternate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alternate
}
