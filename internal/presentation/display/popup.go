package display

import (
	"github.com/penwyp/yt-slicer/internal/core/model"
	"github.com/penwyp/yt-slicer/internal/util"
)

// PopupFrame is the settings popup state
type PopupFrame struct {
	Enabled     bool
	Interaction model.InteractionState
}

// PopupHelp lists the popup key bindings
var PopupHelp = []string{
	"  Space/t/Enter - Toggle recording on/off",
	"  h             - Show this help",
	"  q/Esc/Ctrl+C  - Close",
}

func PopupLines(f PopupFrame, width int) []string {
	action := "Enable recording"
	if f.Enabled {
		action = "Disable recording"
	}
	lines := []string{
		util.FormatHeaderTitle("YouTube Slicer Settings"),
		util.FormatSectionSeparator(min(width, 40)),
		"Status: " + EnabledLabel(f.Enabled),
		"",
		"  [Space] " + action,
		"",
	}
	if f.Interaction.StatusMessage != "" {
		lines = append(lines, "  "+f.Interaction.StatusMessage)
	}
	lines = append(lines, util.Colorize(util.ColorGray, "[t]oggle [h]elp [q]uit"))
	return lines
}
