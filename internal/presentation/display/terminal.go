package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/penwyp/yt-slicer/internal/core/model"
	"github.com/penwyp/yt-slicer/internal/util"
)

const clearToEOL = "\033[K"
const clearToEOS = "\033[J"

// WidthProvider reports the usable terminal width
type WidthProvider interface {
	GetMaxWidth() int
}

// TerminalDisplay draws full frames onto the alternate screen. Frames are
// written from the home position so unchanged lines do not flicker.
type TerminalDisplay struct {
	out               io.Writer
	width             WidthProvider
	inAlternateScreen bool
	isFirstRender     bool
}

func NewTerminalDisplay(width WidthProvider) *TerminalDisplay {
	return NewTerminalDisplayTo(os.Stdout, width)
}

// NewTerminalDisplayTo draws onto out instead of stdout
func NewTerminalDisplayTo(out io.Writer, width WidthProvider) *TerminalDisplay {
	return &TerminalDisplay{
		out:           out,
		width:         width,
		isFirstRender: true,
	}
}

// EnterAlternateScreen switches to alternate screen buffer
func (td *TerminalDisplay) EnterAlternateScreen() {
	if td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.EnterAltScreen, util.ClearScreen, util.MoveCursorHome,
		util.ClearScrollback, util.ResetScrollRegion, util.HideCursor)
	td.inAlternateScreen = true
	td.isFirstRender = true
}

// ExitAlternateScreen returns to normal screen buffer
func (td *TerminalDisplay) ExitAlternateScreen() {
	if !td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.ClearScreen, util.MoveCursorHome, util.ShowCursor, util.ExitAltScreen)
	td.inAlternateScreen = false
}

// Width is the current usable width
func (td *TerminalDisplay) Width() int {
	if td.width == nil {
		return 80
	}
	return td.width.GetMaxWidth()
}

// Draw writes lines from the top of the screen, clearing what is left of
// each line and everything below the frame.
func (td *TerminalDisplay) Draw(lines []string) {
	var b strings.Builder
	if td.isFirstRender {
		b.WriteString(util.ClearScreen)
		td.isFirstRender = false
	}
	b.WriteString(util.MoveCursorHome)
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString(clearToEOL)
		b.WriteString("\r\n")
	}
	b.WriteString(clearToEOS)
	io.WriteString(td.out, b.String())
}

// RenderOverlay draws the overlay panel or whatever modal covers it
func (td *TerminalDisplay) RenderOverlay(frame OverlayFrame) {
	td.Draw(td.modalOr(frame.Interaction, OverlayHelp, func(width int) []string {
		return OverlayLines(frame, width)
	}))
}

// RenderPopup draws the settings popup
func (td *TerminalDisplay) RenderPopup(frame PopupFrame) {
	td.Draw(td.modalOr(frame.Interaction, PopupHelp, func(width int) []string {
		return PopupLines(frame, width)
	}))
}

// modalOr picks the screen by priority: dialog, alert, help, normal view
func (td *TerminalDisplay) modalOr(state model.InteractionState, help []string, normal func(int) []string) []string {
	width := td.Width()
	switch {
	case state.ConfirmDialog != nil:
		return ConfirmDialogLines(state.ConfirmDialog, width)
	case state.Alert != nil:
		return AlertLines(state.Alert, width)
	case state.ShowHelp:
		return HelpLines(help, width)
	default:
		return normal(width)
	}
}
