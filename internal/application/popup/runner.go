package popup

import (
	"context"
	"fmt"

	"github.com/penwyp/yt-slicer/internal/data/storage"
	"github.com/penwyp/yt-slicer/internal/presentation/display"
	"github.com/penwyp/yt-slicer/internal/presentation/interaction"
	"github.com/penwyp/yt-slicer/internal/presentation/layout"
)

// Run shows the interactive popup until it is closed or ctx ends
func Run(ctx context.Context, gw storage.Gateway) error {
	c := NewController(gw)

	changes, unsubscribe := gw.Subscribe()
	defer unsubscribe()

	if err := c.Load(ctx); err != nil {
		return err
	}

	keyboard, err := interaction.NewKeyboardReader()
	if err != nil {
		return fmt.Errorf("failed to initialize keyboard: %w", err)
	}
	defer keyboard.Close()

	screen := display.NewTerminalDisplay(layout.NewSizer())
	screen.EnterAlternateScreen()
	defer screen.ExitAlternateScreen()

	screen.RenderPopup(c.View())
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-changes:
			if !ok {
				return fmt.Errorf("storage closed")
			}
			c.HandleChange(event)
		case key := <-keyboard.Events():
			if c.HandleKey(ctx, key) {
				return nil
			}
		}
		screen.RenderPopup(c.View())
	}
}
