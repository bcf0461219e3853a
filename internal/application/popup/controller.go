// Package popup is the settings popup: a two-state view of the recording
// flag. It holds no logic of its own beyond mirroring storage.
package popup

import (
	"context"
	"fmt"

	"github.com/penwyp/yt-slicer/internal/core/model"
	"github.com/penwyp/yt-slicer/internal/data/storage"
	"github.com/penwyp/yt-slicer/internal/presentation/display"
	"github.com/penwyp/yt-slicer/internal/presentation/interaction"
	"github.com/penwyp/yt-slicer/internal/util"
)

var log = util.Named("popup")

type Controller struct {
	gw          storage.Gateway
	enabled     bool
	interaction model.InteractionState
}

func NewController(gw storage.Gateway) *Controller {
	return &Controller{gw: gw}
}

// Load reads the flag; an absent flag reads as disabled
func (c *Controller) Load(ctx context.Context) error {
	snap, err := c.gw.Get(ctx, model.KeyEnabled)
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	c.enabled = snap.Enabled
	log.Info("Loaded state.", util.F("enabled", c.enabled))
	return nil
}

func (c *Controller) Enabled() bool {
	return c.enabled
}

// Set writes the flag
func (c *Controller) Set(ctx context.Context, enabled bool) error {
	if err := c.gw.Set(ctx, storage.NewPatch().Enabled(enabled)); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	c.enabled = enabled
	if enabled {
		log.Info("Recording enabled.")
	} else {
		log.Info("Recording disabled.")
	}
	return nil
}

// Toggle flips the flag and returns the new value
func (c *Controller) Toggle(ctx context.Context) (bool, error) {
	if err := c.Set(ctx, !c.enabled); err != nil {
		return c.enabled, err
	}
	return c.enabled, nil
}

// HandleChange mirrors flag changes made by any process
func (c *Controller) HandleChange(ev storage.ChangeEvent) {
	if ev.Enabled != nil {
		c.enabled = ev.Enabled.NewValue
	}
}

func (c *Controller) View() display.PopupFrame {
	return display.PopupFrame{Enabled: c.enabled, Interaction: c.interaction}
}

// HandleKey applies one key press and reports whether the popup should close
func (c *Controller) HandleKey(ctx context.Context, event interaction.KeyEvent) bool {
	if event.Type == interaction.KeyEscape {
		if c.interaction.ShowHelp {
			c.interaction.ShowHelp = false
			return false
		}
		return true
	}
	if event.Type != interaction.KeyChar {
		return false
	}

	switch event.Key {
	case 'q', 'Q', interaction.KeyCtrlC:
		return true
	case 'h', 'H':
		c.interaction.ShowHelp = !c.interaction.ShowHelp
	case ' ', 't', 'T', interaction.KeyEnter:
		if _, err := c.Toggle(ctx); err != nil {
			c.interaction.StatusMessage = err.Error()
		} else {
			c.interaction.StatusMessage = ""
		}
	}
	return false
}
