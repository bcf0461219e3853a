package overlay

import (
	"fmt"
	"time"

	"github.com/penwyp/yt-slicer/internal/core/videourl"
	"github.com/penwyp/yt-slicer/internal/data/csvio"
)

// Config contains configuration for the watch command
type Config struct {
	// Page the overlay is attached to
	VideoURL string
	// NoVideo models a platform page without a player; jumps navigate
	NoVideo bool

	// Where export writes and import reads
	CSVPath string
	// Jump messages arrive here
	InboxDir string

	// 0 sizes pages from the terminal height
	PageSize int
	Domains  []string

	UIRefreshInterval time.Duration
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.CSVPath == "" {
		c.CSVPath = csvio.DefaultFileName
	}
	if c.UIRefreshInterval == 0 {
		c.UIRefreshInterval = 250 * time.Millisecond
	}
	if c.PageSize < 0 {
		return fmt.Errorf("page size must not be negative, got %d", c.PageSize)
	}
	if c.VideoURL == "" {
		return fmt.Errorf("video url is required")
	}
	if !videourl.NewMatcher(c.Domains...).IsPlatformURL(c.VideoURL) {
		return fmt.Errorf("%q is not a video platform url", c.VideoURL)
	}
	return nil
}
