package overlay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/penwyp/yt-slicer/internal/core/model"
	"github.com/penwyp/yt-slicer/internal/core/pager"
	"github.com/penwyp/yt-slicer/internal/core/player"
	"github.com/penwyp/yt-slicer/internal/core/timecode"
	"github.com/penwyp/yt-slicer/internal/core/videourl"
	"github.com/penwyp/yt-slicer/internal/data/csvio"
	"github.com/penwyp/yt-slicer/internal/data/storage"
	"github.com/penwyp/yt-slicer/internal/presentation/display"
	"github.com/penwyp/yt-slicer/internal/util"
)

var (
	ErrDisabled     = errors.New("recording is disabled")
	ErrNoVideo      = errors.New("no video element found")
	ErrNoSuchRecord = errors.New("no such record")
)

var log = util.Named("content")

// Deps are the collaborators a Controller works with
type Deps struct {
	Gateway storage.Gateway
	Page    *player.Page
	Sizer   pager.SizeProvider
	Matcher *videourl.Matcher
	CSVPath string
	Now     func() time.Time
}

// Controller implements every overlay action against the storage gateway.
// It is not safe for concurrent use; the event loop serializes calls.
type Controller struct {
	gw      storage.Gateway
	page    *player.Page
	sizer   pager.SizeProvider
	matcher *videourl.Matcher
	csvPath string
	now     func() time.Time

	state State
}

func NewController(d Deps) *Controller {
	if d.Sizer == nil {
		d.Sizer = pager.FixedSize(pager.DefaultPageSize)
	}
	if d.Matcher == nil {
		d.Matcher = videourl.NewMatcher()
	}
	if d.CSVPath == "" {
		d.CSVPath = csvio.DefaultFileName
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Controller{
		gw:      d.Gateway,
		page:    d.Page,
		sizer:   d.Sizer,
		matcher: d.Matcher,
		csvPath: d.CSVPath,
		now:     d.Now,
		state:   NewState(),
	}
}

// State returns a copy of the current UI state
func (c *Controller) State() State {
	s := c.state
	s.Records = model.CloneRecords(c.state.Records)
	return s
}

// Start treats the page as freshly loaded: recording is switched off so it
// never carries over, then the stored state is loaded.
func (c *Controller) Start(ctx context.Context) error {
	if err := c.gw.Set(ctx, storage.NewPatch().Enabled(false)); err != nil {
		return fmt.Errorf("failed to reset enabled state: %w", err)
	}
	c.state.Enabled = false
	log.Info("Reset enabled state on page load.")
	return c.Load(ctx)
}

// Load refreshes the cached flag and records from storage
func (c *Controller) Load(ctx context.Context) error {
	snap, err := c.gw.Get(ctx, model.AllKeys...)
	if err != nil {
		return fmt.Errorf("failed to load overlay state: %w", err)
	}
	c.state.Enabled = snap.Enabled
	c.setRecords(snap.RecordsOrEmpty())
	log.Info("Overlay state loaded.",
		util.F("enabled", c.state.Enabled),
		util.F("count", len(c.state.Records)))
	return nil
}

func (c *Controller) setRecords(records []model.Record) {
	c.state.Records = records
	c.refreshPageSize()
}

// refreshPageSize re-measures the page size and clamps page and selection
func (c *Controller) refreshPageSize() {
	c.state.Pager.Resize(len(c.state.Records), c.sizer.PageSize())
	c.state.clampSelection()
}

func (c *Controller) setStatus(format string, args ...interface{}) {
	c.state.Interaction.StatusMessage = fmt.Sprintf(format, args...)
}

// Toggle flips the recording flag
func (c *Controller) Toggle(ctx context.Context) error {
	enabled := !c.state.Enabled
	if err := c.gw.Set(ctx, storage.NewPatch().Enabled(enabled)); err != nil {
		return fmt.Errorf("failed to toggle recording: %w", err)
	}
	c.state.Enabled = enabled
	c.refreshPageSize()
	if enabled {
		log.Info("Recording enabled.")
		c.setStatus("Recording enabled.")
	} else {
		log.Info("Recording disabled.")
		c.setStatus("Recording disabled.")
	}
	return nil
}

// Record appends the video's current position and moves to the last page
func (c *Controller) Record(ctx context.Context) error {
	if !c.state.Enabled {
		log.Info("Recording is disabled.")
		return ErrDisabled
	}
	video, ok := c.page.Video()
	if !ok {
		log.Info("No video element found.")
		return ErrNoVideo
	}

	seconds := max(video.CurrentTime(), 0)
	url, err := videourl.WithTimestamp(c.page.URL(), seconds)
	if err != nil {
		return err
	}

	snap, err := c.gw.Get(ctx, model.KeyRecords)
	if err != nil {
		return fmt.Errorf("failed to read records: %w", err)
	}
	existing := snap.RecordsOrEmpty()
	record := model.Record{
		ID:          model.NextID(existing, c.now().UnixMilli()),
		URL:         url,
		TimeSeconds: seconds,
		DisplayTime: timecode.Format(seconds),
	}
	updated := append(model.CloneRecords(existing), record)

	if err := c.gw.Set(ctx, storage.NewPatch().Records(updated)); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	c.setRecords(updated)
	c.state.Pager.Last(len(updated))
	rows, _ := c.state.PageRecords()
	c.state.Selected = len(rows) - 1

	log.Info("Record added.", util.F("id", record.ID), util.F("time", record.DisplayTime), util.F("url", record.URL))
	c.setStatus("Recorded %s", record.DisplayTime)
	return nil
}

// Clear empties the record list
func (c *Controller) Clear(ctx context.Context) error {
	if err := c.gw.Set(ctx, storage.NewPatch().Records([]model.Record{})); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	c.setRecords([]model.Record{})
	c.state.Pager.First()
	c.state.Selected = 0

	log.Info("All records cleared.")
	c.setStatus("All timestamps cleared.")
	return nil
}

// Export writes the stored records to the CSV path. An empty list writes
// nothing and returns csvio.ErrNothingToExport.
func (c *Controller) Export(ctx context.Context) (string, error) {
	snap, err := c.gw.Get(ctx, model.KeyRecords)
	if err != nil {
		return "", fmt.Errorf("failed to read records: %w", err)
	}

	err = csvio.ExportFile(c.csvPath, snap.RecordsOrEmpty())
	if errors.Is(err, csvio.ErrNothingToExport) {
		log.Info("No records to export.")
		c.setStatus("No timestamps to export.")
		return "", err
	}
	if err != nil {
		return "", err
	}

	log.Info("CSV exported.", util.F("path", c.csvPath), util.F("count", len(snap.RecordsOrEmpty())))
	c.setStatus("Exported %d timestamps to %s", len(snap.RecordsOrEmpty()), c.csvPath)
	return c.csvPath, nil
}

// RequestImport imports the CSV file, asking for confirmation first when
// records already exist.
func (c *Controller) RequestImport(ctx context.Context) {
	if len(c.state.Records) == 0 {
		c.importWithFeedback(ctx)
		return
	}

	c.state.Interaction.ConfirmDialog = &model.ConfirmDialog{
		Title:   "Replace timestamps?",
		Message: fmt.Sprintf("%d timestamps already exist. Replace them with the content of %s?", len(c.state.Records), c.csvPath),
		OnConfirm: func() {
			c.importWithFeedback(ctx)
		},
		OnCancel: func() {
			log.Info("Import canceled by user.")
			c.setStatus("Import canceled.")
		},
	}
}

// Import replaces the stored records with the CSV file's content. A file
// that fails validation leaves the records untouched and raises an alert.
func (c *Controller) Import(ctx context.Context) error {
	records, err := csvio.ImportFile(c.csvPath, csvio.ImportOptions{
		Matcher: c.matcher,
		Now:     c.now,
	})
	if err != nil {
		c.state.Interaction.Alert = importAlert(err)
		log.Warn("Import failed.", util.F("error", err.Error()))
		return err
	}

	if err := c.gw.Set(ctx, storage.NewPatch().Records(records)); err != nil {
		return fmt.Errorf("failed to save imported records: %w", err)
	}
	c.setRecords(records)
	c.state.Pager.First()
	c.state.Selected = 0

	log.Info("Records imported.", util.F("count", len(records)))
	c.setStatus("Imported %d timestamps.", len(records))
	return nil
}

// importWithFeedback reports failures that did not already raise an alert
func (c *Controller) importWithFeedback(ctx context.Context) {
	if err := c.Import(ctx); err != nil && c.state.Interaction.Alert == nil {
		c.setStatus("Import failed: %v", err)
	}
}

func importAlert(err error) *model.Alert {
	if errors.Is(err, csvio.ErrFileRead) {
		return &model.Alert{Title: "Import failed", Message: "Could not read the file, please try again."}
	}
	return &model.Alert{Title: "Import failed", Message: err.Error()}
}

// Next moves one page forward; a no-op on the last page
func (c *Controller) Next() bool {
	c.refreshPageSize()
	if !c.state.Pager.Next(len(c.state.Records)) {
		return false
	}
	c.state.Selected = 0
	return true
}

// Prev moves one page back; a no-op on the first page
func (c *Controller) Prev() bool {
	if !c.state.Pager.Prev() {
		return false
	}
	c.refreshPageSize()
	c.state.Selected = 0
	return true
}

// MoveSelection shifts the highlighted row within the current page
func (c *Controller) MoveSelection(delta int) {
	c.state.Selected += delta
	c.state.clampSelection()
}

// JumpSelected seeks to the highlighted row
func (c *Controller) JumpSelected(ctx context.Context) error {
	_, start := c.state.PageRecords()
	return c.Jump(ctx, start+c.state.Selected)
}

// Jump seeks to the record at index in the whole list
func (c *Controller) Jump(ctx context.Context, index int) error {
	if index < 0 || index >= len(c.state.Records) {
		return fmt.Errorf("%w: %d", ErrNoSuchRecord, index+1)
	}
	record := c.state.Records[index]
	log.Info("Jumped to time.", util.F("id", record.ID), util.F("time", record.DisplayTime))
	return c.JumpToTime(ctx, record.TimeSeconds)
}

// JumpToTime seeks the video and rewrites the page URL's t parameter. A
// page without a video navigates to the URL carrying t instead, which
// counts as a fresh page load.
func (c *Controller) JumpToTime(ctx context.Context, seconds float64) error {
	seconds = max(seconds, 0)
	target, err := videourl.WithTimestamp(c.page.URL(), seconds)

	if video, ok := c.page.Video(); ok {
		video.Seek(seconds)
		if err != nil {
			log.Warnf("Failed to update page url: %v", err)
		} else {
			c.page.ReplaceURL(target)
		}
		c.setStatus("Jumped to %s", timecode.Format(seconds))
		return nil
	}

	if err != nil {
		return err
	}
	c.page.Navigate(target)
	return c.Start(ctx)
}

// HandleMessage executes a request delivered through the inbox
func (c *Controller) HandleMessage(ctx context.Context, msg model.Message) error {
	if msg.Type != model.MessageTypeJumpToTime || msg.Payload == nil {
		log.Debugf("Ignoring message of type %q", msg.Type)
		return nil
	}
	return c.JumpToTime(ctx, msg.Payload.TimeSeconds)
}

// HandleChange applies a storage change made by this or any other process
func (c *Controller) HandleChange(ev storage.ChangeEvent) {
	if ev.Enabled != nil {
		c.state.Enabled = ev.Enabled.NewValue
		log.Debug("Enabled state changed.", util.F("enabled", c.state.Enabled), util.F("external", ev.External))
	}
	if ev.Records != nil {
		c.state.Records = model.CloneRecords(ev.Records.NewValue)
		log.Debug("Records changed.", util.F("count", len(c.state.Records)), util.F("external", ev.External))
	}
	c.refreshPageSize()
}

// Resize re-measures the page size after the terminal changed
func (c *Controller) Resize() {
	c.refreshPageSize()
}

// View builds the frame to render. The page size is re-measured on every
// render.
func (c *Controller) View() display.OverlayFrame {
	c.refreshPageSize()

	rows, start := c.state.PageRecords()
	frame := display.OverlayFrame{
		VideoURL:     c.page.URL(),
		Enabled:      c.state.Enabled,
		Hidden:       !c.state.Enabled,
		TotalRecords: len(c.state.Records),
		Pager:        c.state.Pager.View(len(c.state.Records)),
		Interaction:  c.state.Interaction,
		Rows:         make([]display.Row, len(rows)),
	}
	for i, r := range rows {
		frame.Rows[i] = display.Row{
			Number:      start + i + 1,
			DisplayTime: r.DisplayTime,
			Selected:    i == c.state.Selected,
		}
	}

	if video, ok := c.page.Video(); ok {
		frame.HasPlayer = true
		frame.PlayerTime = timecode.Format(video.CurrentTime())
		frame.Playing = true
		if p, ok := video.(interface{ Playing() bool }); ok {
			frame.Playing = p.Playing()
		}
	}
	return frame
}
