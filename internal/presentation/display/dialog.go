package display

import (
	"strings"

	"github.com/penwyp/yt-slicer/internal/core/model"
	"github.com/penwyp/yt-slicer/internal/util"
)

const dialogWidth = 60

func dialogFrame(title, message, prompt string, width int) []string {
	boxWidth := min(dialogWidth, max(width, 20))
	inner := boxWidth - 2
	indent := strings.Repeat(" ", max((width-boxWidth)/2, 0))

	lines := []string{"", "", ""}
	lines = append(lines, indent+"╔"+strings.Repeat("═", inner)+"╗")
	lines = append(lines, indent+"║"+util.CenterText(util.TruncateWidth(title, inner), inner)+"║")
	lines = append(lines, indent+"╠"+strings.Repeat("═", inner)+"╣")
	lines = append(lines, indent+"║"+strings.Repeat(" ", inner)+"║")
	for _, line := range wrapText(message, inner-2) {
		pad := strings.Repeat(" ", max(inner-2-util.GetDisplayWidth(line), 0))
		lines = append(lines, indent+"║ "+line+pad+" ║")
	}
	lines = append(lines, indent+"║"+strings.Repeat(" ", inner)+"║")
	lines = append(lines, indent+"║"+util.CenterText(prompt, inner)+"║")
	lines = append(lines, indent+"╚"+strings.Repeat("═", inner)+"╝")
	return lines
}

func ConfirmDialogLines(dialog *model.ConfirmDialog, width int) []string {
	return dialogFrame(dialog.Title, dialog.Message, "(Y)es / (N)o", width)
}

func AlertLines(alert *model.Alert, width int) []string {
	return dialogFrame(alert.Title, alert.Message, "Press any key", width)
}

func HelpLines(bindings []string, width int) []string {
	rule := strings.Repeat("═", min(width, 80))
	lines := []string{"YouTube Slicer - Help", rule, "", "Keyboard Shortcuts:", ""}
	lines = append(lines, bindings...)
	lines = append(lines, "", rule, "Press 'h' to return...")
	return lines
}

// wrapText wraps text to fit within the specified width
func wrapText(text string, width int) []string {
	if text == "" {
		return []string{}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		if util.GetDisplayWidth(paragraph) <= width {
			lines = append(lines, paragraph)
			continue
		}

		currentLine := ""
		for _, word := range strings.Fields(paragraph) {
			if util.GetDisplayWidth(word) > width {
				word = util.TruncateWidth(word, width)
			}
			switch {
			case currentLine == "":
				currentLine = word
			case util.GetDisplayWidth(currentLine)+1+util.GetDisplayWidth(word) <= width:
				currentLine += " " + word
			default:
				lines = append(lines, currentLine)
				currentLine = word
			}
		}
		if currentLine != "" {
			lines = append(lines, currentLine)
		}
	}
	return lines
}
