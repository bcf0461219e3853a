package overlay

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/penwyp/yt-slicer/internal/application/messaging"
	"github.com/penwyp/yt-slicer/internal/core/model"
	"github.com/penwyp/yt-slicer/internal/core/pager"
	"github.com/penwyp/yt-slicer/internal/core/player"
	"github.com/penwyp/yt-slicer/internal/core/videourl"
	"github.com/penwyp/yt-slicer/internal/data/storage"
	"github.com/penwyp/yt-slicer/internal/presentation/display"
	"github.com/penwyp/yt-slicer/internal/presentation/interaction"
	"github.com/penwyp/yt-slicer/internal/presentation/layout"
	"golang.org/x/sys/unix"
)

// Orchestrator runs the watch screen: it owns the controller and feeds it
// keyboard input, storage changes, inbox messages and resize signals from a
// single loop.
type Orchestrator struct {
	config *Config

	gw         storage.Gateway
	page       *player.Page
	controller *Controller

	display  *display.TerminalDisplay
	keyboard *interaction.KeyboardReader
	inbox    *messaging.Inbox
}

// NewOrchestrator creates a new Orchestrator instance
func NewOrchestrator(config *Config, gw storage.Gateway) (*Orchestrator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// The player starts where the URL's t parameter points
	var video player.Player
	if !config.NoVideo {
		start, _ := videourl.Timestamp(config.VideoURL)
		video = player.NewClock(float64(start))
	}
	page := player.NewPage(config.VideoURL, video)

	sizer := layout.NewSizer()
	var sizeProvider pager.SizeProvider = sizer
	if config.PageSize > 0 {
		sizeProvider = pager.FixedSize(config.PageSize)
	}

	controller := NewController(Deps{
		Gateway: gw,
		Page:    page,
		Sizer:   sizeProvider,
		Matcher: videourl.NewMatcher(config.Domains...),
		CSVPath: config.CSVPath,
	})

	return &Orchestrator{
		config:     config,
		gw:         gw,
		page:       page,
		controller: controller,
		display:    display.NewTerminalDisplay(sizer),
	}, nil
}

// Run starts the orchestrator main loop
func (o *Orchestrator) Run(ctx context.Context) error {
	log.Info("Starting overlay...")

	// Subscribe before the reset so no change is missed
	changes, unsubscribe := o.gw.Subscribe()
	defer unsubscribe()

	if err := o.controller.Start(ctx); err != nil {
		return err
	}

	var messages <-chan model.Message
	if o.config.InboxDir != "" {
		inbox, err := messaging.Open(o.config.InboxDir)
		if err != nil {
			return err
		}
		o.inbox = inbox
		defer o.inbox.Close()
		messages = inbox.Messages()
	}

	keyboard, err := interaction.NewKeyboardReader()
	if err != nil {
		return fmt.Errorf("failed to initialize keyboard: %w", err)
	}
	o.keyboard = keyboard
	defer o.keyboard.Close()

	o.display.EnterAlternateScreen()
	defer o.display.ExitAlternateScreen()

	resize := make(chan os.Signal, 1)
	signal.Notify(resize, unix.SIGWINCH)
	defer signal.Stop(resize)

	uiTicker := time.NewTicker(o.config.UIRefreshInterval)
	defer uiTicker.Stop()

	o.updateDisplay()

	for {
		select {
		case <-ctx.Done():
			log.Info("Shutting down overlay...")
			return nil

		case <-uiTicker.C:
			// keeps the player clock moving on screen
			o.updateDisplay()

		case event, ok := <-changes:
			if !ok {
				return fmt.Errorf("storage closed")
			}
			o.controller.HandleChange(event)
			o.updateDisplay()

		case msg, ok := <-messages:
			if !ok {
				messages = nil
				continue
			}
			if err := o.controller.HandleMessage(ctx, msg); err != nil {
				log.Errorf("Failed to handle %s message: %v", msg.Type, err)
			}
			o.updateDisplay()

		case <-resize:
			o.controller.Resize()
			o.updateDisplay()

		case keyEvent := <-o.keyboard.Events():
			if o.controller.HandleKey(ctx, keyEvent) {
				return nil
			}
			o.updateDisplay()
		}
	}
}

// updateDisplay updates the terminal display
func (o *Orchestrator) updateDisplay() {
	o.display.RenderOverlay(o.controller.View())
}
