package commands

import (
	"context"
	"fmt"

	"github.com/penwyp/yt-slicer/internal/application/overlay"
	"github.com/spf13/cobra"
)

var (
	noVideo       bool
	watchCSV      string
	watchPageSize int
)

var watchCmd = &cobra.Command{
	Use:   "watch <url>",
	Short: "Open the timestamp overlay for a video",
	Long: `Open the full-screen overlay for a video. Recording is switched off when
the overlay starts; press t to enable it and r to record the current position.

Keys:
  t        toggle recording        r        record current time
  n / p    next / previous page    1-9      jump to row on page
  ↑ / ↓    select row              Enter    jump to selected row
  space    pause / resume          c        clear all
  e        export CSV              i        import CSV
  h        help                    q / Esc  quit`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&noVideo, "no-video", false,
		"Treat the page as having no video element (jumps navigate instead of seeking)")
	watchCmd.Flags().StringVar(&watchCSV, "csv", "",
		"CSV file used by export and import (default from config)")
	watchCmd.Flags().IntVar(&watchPageSize, "page-size", 0,
		"Timestamps per page (0 sizes pages from the terminal height)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		csvPath := watchCSV
		if csvPath == "" {
			csvPath = a.cfg.ExportFile
		}
		pageSize := watchPageSize
		if pageSize == 0 {
			pageSize = a.cfg.DefaultPageSize
		}

		cfg := &overlay.Config{
			VideoURL: args[0],
			NoVideo:  noVideo,
			CSVPath:  expandPath(csvPath),
			InboxDir: a.inboxDir(),
			PageSize: pageSize,
			Domains:  a.cfg.PlatformDomains,
		}
		orchestrator, err := overlay.NewOrchestrator(cfg, a.store)
		if err != nil {
			return fmt.Errorf("failed to create overlay: %w", err)
		}

		ctx, cancel := signalContext(ctx)
		defer cancel()
		return orchestrator.Run(ctx)
	})
}
