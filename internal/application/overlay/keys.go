package overlay

import (
	"context"
	"errors"

	"github.com/penwyp/yt-slicer/internal/data/csvio"
	"github.com/penwyp/yt-slicer/internal/presentation/interaction"
)

// HandleKey applies one key press and reports whether the overlay should
// quit. Open dialogs and alerts capture every key.
func (c *Controller) HandleKey(ctx context.Context, event interaction.KeyEvent) bool {
	in := &c.state.Interaction

	if in.ConfirmDialog != nil {
		dialog := in.ConfirmDialog
		switch {
		case event.Type == interaction.KeyChar && (event.Key == 'y' || event.Key == 'Y'):
			in.ConfirmDialog = nil
			if dialog.OnConfirm != nil {
				dialog.OnConfirm()
			}
		case event.Type == interaction.KeyEscape,
			event.Type == interaction.KeyChar && (event.Key == 'n' || event.Key == 'N'):
			in.ConfirmDialog = nil
			if dialog.OnCancel != nil {
				dialog.OnCancel()
			}
		}
		return false
	}

	if in.Alert != nil {
		in.Alert = nil
		return false
	}

	switch event.Type {
	case interaction.KeyEscape:
		if in.ShowHelp {
			in.ShowHelp = false
			return false
		}
		return true
	case interaction.KeyArrowLeft:
		c.whenVisible(func() { c.Prev() })
	case interaction.KeyArrowRight:
		c.whenVisible(func() { c.Next() })
	case interaction.KeyArrowUp:
		c.whenVisible(func() { c.MoveSelection(-1) })
	case interaction.KeyArrowDown:
		c.whenVisible(func() { c.MoveSelection(1) })
	case interaction.KeyChar:
		return c.handleChar(ctx, event.Key)
	}
	return false
}

func (c *Controller) handleChar(ctx context.Context, key rune) bool {
	switch key {
	case 'q', 'Q', interaction.KeyCtrlC:
		return true
	case 'h', 'H':
		c.state.Interaction.ShowHelp = !c.state.Interaction.ShowHelp
		return false
	case 't', 'T':
		c.report(c.Toggle(ctx))
		return false
	}

	// Everything else acts on the panel, which is hidden while disabled
	if !c.state.Enabled {
		return false
	}

	switch key {
	case 'r', 'R':
		c.report(c.Record(ctx))
	case 'c', 'C':
		c.report(c.Clear(ctx))
	case 'e', 'E':
		_, err := c.Export(ctx)
		if !errors.Is(err, csvio.ErrNothingToExport) {
			c.report(err)
		}
	case 'i', 'I':
		c.RequestImport(ctx)
	case 'n', 'N':
		c.Next()
	case 'p', 'P':
		c.Prev()
	case interaction.KeyEnter:
		c.report(c.JumpSelected(ctx))
	case ' ':
		c.togglePlayback()
	default:
		if key >= '1' && key <= '9' {
			_, start := c.state.PageRecords()
			c.report(c.Jump(ctx, start+int(key-'1')))
		}
	}
	return false
}

func (c *Controller) whenVisible(fn func()) {
	if c.state.Enabled {
		fn()
	}
}

// report shows an action's error in the status line
func (c *Controller) report(err error) {
	if err != nil {
		c.setStatus("%v", err)
	}
}

func (c *Controller) togglePlayback() {
	video, ok := c.page.Video()
	if !ok {
		return
	}
	if t, ok := video.(interface{ Toggle() bool }); ok {
		if t.Toggle() {
			c.setStatus("Playing")
		} else {
			c.setStatus("Paused")
		}
	}
}
