package display

import (
	"fmt"
	"strings"

	"github.com/penwyp/yt-slicer/internal/core/model"
	"github.com/penwyp/yt-slicer/internal/core/pager"
	"github.com/penwyp/yt-slicer/internal/util"
)

// Row is one record line of the overlay list
type Row struct {
	Number      int // 1-based position in the whole list
	DisplayTime string
	Selected    bool
}

// OverlayFrame is everything the overlay panel shows
type OverlayFrame struct {
	VideoURL     string
	Enabled      bool
	Hidden       bool // the panel only shows while recording is enabled
	PlayerTime   string
	Playing      bool
	HasPlayer    bool
	Rows         []Row
	TotalRecords int
	Pager        pager.View
	Interaction  model.InteractionState
}

// OverlayHelp lists the overlay key bindings
var OverlayHelp = []string{
	"  r         - Record the current playback time",
	"  Space     - Play/pause the player clock",
	"  ↑/↓       - Select a timestamp on this page",
	"  Enter     - Jump to the selected timestamp",
	"  1-9       - Jump to the nth timestamp on this page",
	"  ←/→ p/n   - Previous/next page",
	"  e         - Export timestamps to CSV",
	"  i         - Import timestamps from CSV",
	"  c         - Clear all timestamps",
	"  t         - Toggle recording on/off",
	"  h         - Show this help",
	"  q/Ctrl+C  - Quit",
}

const (
	overlayFooter = "[r]ecord [c]lear [e]xport [i]mport [←/→] page [1-9] jump [t]oggle [h]elp [q]uit"
	hiddenFooter  = "[t]oggle [h]elp [q]uit"
)

// OverlayLines renders the overlay panel. The number of non-row lines is
// fixed so the terminal page size stays predictable.
func OverlayLines(f OverlayFrame, width int) []string {
	lines := make([]string, 0, len(f.Rows)+8)

	title := util.FormatHeaderTitle("YouTube Slicer")
	if f.VideoURL != "" {
		title += " " + util.Colorize(util.ColorGray, util.TruncateWidth(f.VideoURL, width-16))
	}
	lines = append(lines, title)

	if f.Hidden {
		return append(lines,
			"Recording: "+EnabledLabel(f.Enabled),
			"",
			util.Colorize(util.ColorGray, "  The overlay is hidden while recording is off."),
			util.Colorize(util.ColorGray, "  Press t here or run `yt-slicer toggle` to show it."),
			"  "+util.TruncateWidth(f.Interaction.StatusMessage, width-2),
			util.Colorize(util.ColorGray, hiddenFooter),
		)
	}

	status := "Recording: " + EnabledLabel(f.Enabled)
	if f.HasPlayer {
		state := "⏸"
		if f.Playing {
			state = "▶"
		}
		status += fmt.Sprintf("   Player %s %s", state, f.PlayerTime)
	}
	lines = append(lines, status)
	lines = append(lines, util.FormatSectionSeparator(width))

	if f.TotalRecords == 0 {
		lines = append(lines, util.Colorize(util.ColorGray, "  No timestamps yet. Press r to record one."))
	}
	for _, row := range f.Rows {
		lines = append(lines, formatRow(row))
	}

	lines = append(lines, util.FormatSectionSeparator(width))
	lines = append(lines, PagerLine(f.Pager))
	if f.Interaction.StatusMessage != "" {
		lines = append(lines, "  "+util.TruncateWidth(f.Interaction.StatusMessage, width-2))
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, util.Colorize(util.ColorGray, util.TruncateWidth(overlayFooter, width)))
	return lines
}

func formatRow(row Row) string {
	cursor := "  "
	text := fmt.Sprintf("%d. %s", row.Number, row.DisplayTime)
	if row.Selected {
		cursor = util.Colorize(util.ColorCyan, "▸ ")
		text = util.ColorBold + text + util.ColorReset
	}
	return cursor + text
}

// PagerLine renders the prev/next control. It is blank when every record
// fits on one page; disabled arrows are dimmed.
func PagerLine(v pager.View) string {
	if v.Hidden {
		return ""
	}
	prev, next := "‹ Prev", "Next ›"
	if !v.HasPrev {
		prev = util.Colorize(util.ColorGray, prev)
	}
	if !v.HasNext {
		next = util.Colorize(util.ColorGray, next)
	}
	return fmt.Sprintf("  %s  Page %d / %d  %s", prev, v.Page, v.TotalPages, next)
}

// EnabledLabel is the colored on/off badge shared by overlay and popup
func EnabledLabel(enabled bool) string {
	if enabled {
		return util.Colorize(util.ColorGreen, "● Enabled")
	}
	return util.Colorize(util.ColorRed, "○ Disabled")
}

// Plain strips color sequences, used where output is not a terminal
func Plain(s string) string {
	for _, seq := range []string{
		util.ColorReset, util.ColorCyan, util.ColorGreen, util.ColorYellow,
		util.ColorRed, util.ColorGray, util.ColorBold,
	} {
		s = strings.ReplaceAll(s, seq, "")
	}
	return s
}
