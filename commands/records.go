package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/penwyp/yt-slicer/internal/application/overlay"
	"github.com/penwyp/yt-slicer/internal/core/model"
	"github.com/penwyp/yt-slicer/internal/core/pager"
	"github.com/penwyp/yt-slicer/internal/core/player"
	"github.com/penwyp/yt-slicer/internal/core/timecode"
	"github.com/penwyp/yt-slicer/internal/core/videourl"
	"github.com/penwyp/yt-slicer/internal/data/csvio"
	"github.com/penwyp/yt-slicer/internal/presentation/formatter"
	"github.com/spf13/cobra"
)

var (
	// record
	recordURL string
	recordAt  string

	// list
	listPage     int
	listPageSize int
	listOutput   string

	// clear / import
	assumeYes bool

	// export
	exportOut string
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a timestamp for a video without opening the overlay",
	Long: `Record a timestamp for a video. Recording must be enabled first
(yt-slicer toggle on). --at takes seconds ("90", "12.5"), MM:SS, HH:MM:SS
or HH:MM:SS:mmm;
without it the URL's t parameter is used.`,
	Args: cobra.NoArgs,
	RunE: runRecord,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded timestamps",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every recorded timestamp",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write recorded timestamps to a CSV file",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace recorded timestamps with the content of a CSV file",
	Long: `Replace recorded timestamps with the content of a CSV file of
<index>,<url> lines. The file is validated first; on any error the stored
timestamps are left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	recordCmd.Flags().StringVar(&recordURL, "url", "", "Video URL (required)")
	recordCmd.Flags().StringVar(&recordAt, "at", "", "Position in seconds, MM:SS, HH:MM:SS or HH:MM:SS:mmm")
	_ = recordCmd.MarkFlagRequired("url")

	listCmd.Flags().IntVar(&listPage, "page", 0, "Page to show (0 shows every timestamp)")
	listCmd.Flags().IntVar(&listPageSize, "page-size", pager.DefaultPageSize, "Timestamps per page")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", formatter.FormatTable, "Output format (table, json, csv)")

	clearCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	importCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")

	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default from config, "+csvio.DefaultFileName+")")

	rootCmd.AddCommand(recordCmd, listCmd, clearCmd, exportCmd, importCmd)
}

// newController builds an overlay controller bound to the app's store. url
// and at describe the video being recorded; csvPath is the CSV file used by
// export and import.
func newController(a *app, url string, at float64, csvPath string) *overlay.Controller {
	now := time.Now()
	clock := player.NewClockWithTime(at, func() time.Time { return now })
	return overlay.NewController(overlay.Deps{
		Gateway: a.store,
		Page:    player.NewPage(url, clock),
		Sizer:   pager.FixedSize(pager.DefaultPageSize),
		Matcher: a.matcher(),
		CSVPath: csvPath,
	})
}

func runRecord(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		if !a.matcher().IsPlatformURL(recordURL) {
			return fmt.Errorf("%q is not a video platform url", recordURL)
		}

		var at float64
		if recordAt != "" {
			v, err := timecode.ParseFlexible(recordAt)
			if err != nil {
				return err
			}
			at = v
		} else if t, ok := videourl.Timestamp(recordURL); ok {
			at = float64(t)
		}

		ctrl := newController(a, recordURL, at, "")
		if err := ctrl.Load(ctx); err != nil {
			return err
		}
		err := ctrl.Record(ctx)
		if errors.Is(err, overlay.ErrDisabled) {
			return fmt.Errorf("recording is disabled, run 'yt-slicer toggle on' first")
		}
		if err != nil {
			return err
		}

		records := ctrl.State().Records
		last := records[len(records)-1]
		fmt.Fprintf(cmd.OutOrStdout(), "Recorded #%d at %s\n%s\n", len(records), last.DisplayTime, last.URL)
		return nil
	})
}

func runList(cmd *cobra.Command, args []string) error {
	f, err := formatter.New(listOutput)
	if err != nil {
		return err
	}
	return withApp(cmd, func(ctx context.Context, a *app) error {
		snap, err := a.store.Get(ctx, model.KeyRecords)
		if err != nil {
			return err
		}
		records := snap.RecordsOrEmpty()
		if listPage <= 0 {
			return f.Format(cmd.OutOrStdout(), records)
		}

		p := pager.New()
		p.Page = listPage
		p.Resize(len(records), listPageSize)
		start, end := p.Bounds(len(records))
		if err := f.Format(cmd.OutOrStdout(), records[start:end]); err != nil {
			return err
		}
		if listOutput == "" || listOutput == formatter.FormatTable {
			fmt.Fprintf(cmd.OutOrStdout(), "Page %d of %d\n", p.Page, pager.TotalPages(len(records), p.Size))
		}
		return nil
	})
}

func runClear(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		if !assumeYes && !confirm(cmd, "Are you sure you want to clear all timestamps?") {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
		ctrl := newController(a, "", 0, "")
		if err := ctrl.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All timestamps cleared.")
		return nil
	})
}

func runExport(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		out := exportOut
		if out == "" {
			out = a.cfg.ExportFile
		}
		ctrl := newController(a, "", 0, expandPath(out))
		path, err := ctrl.Export(ctx)
		if errors.Is(err, csvio.ErrNothingToExport) {
			fmt.Fprintln(cmd.OutOrStdout(), "No timestamps to export.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
		return nil
	})
}

func runImport(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		ctrl := newController(a, "", 0, expandPath(args[0]))
		if err := ctrl.Load(ctx); err != nil {
			return err
		}
		if n := len(ctrl.State().Records); n > 0 && !assumeYes &&
			!confirm(cmd, fmt.Sprintf("Importing will replace %d existing timestamps. Continue?", n)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
		if err := ctrl.Import(ctx); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d timestamps.\n", len(ctrl.State().Records))
		return nil
	})
}
