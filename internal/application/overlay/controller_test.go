package overlay

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/penwyp/yt-slicer/internal/core/model"
	"github.com/penwyp/yt-slicer/internal/core/pager"
	"github.com/penwyp/yt-slicer/internal/core/player"
	"github.com/penwyp/yt-slicer/internal/core/timecode"
	"github.com/penwyp/yt-slicer/internal/core/videourl"
	"github.com/penwyp/yt-slicer/internal/data/csvio"
	"github.com/penwyp/yt-slicer/internal/data/storage"
	"github.com/penwyp/yt-slicer/internal/presentation/interaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const watchURL = "https://www.youtube.com/watch?v=abc"

var fixedNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

type fixture struct {
	ctx        context.Context
	store      *storage.Store
	page       *player.Page
	clock      *player.Clock
	controller *Controller
	csvPath    string
}

type fixtureOptions struct {
	noVideo  bool
	pageSize int
	records  []model.Record
	enabled  bool
}

func newFixture(t *testing.T, opts fixtureOptions) *fixture {
	t.Helper()
	ctx := context.Background()

	store, err := storage.NewStore(ctx, storage.NewMemoryBackend())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	f := &fixture{ctx: ctx, store: store, csvPath: filepath.Join(t.TempDir(), csvio.DefaultFileName)}

	var video player.Player
	if !opts.noVideo {
		f.clock = player.NewClockWithTime(0, func() time.Time { return fixedNow })
		video = f.clock
	}
	f.page = player.NewPage(watchURL, video)

	size := opts.pageSize
	if size == 0 {
		size = pager.DefaultPageSize
	}
	f.controller = NewController(Deps{
		Gateway: store,
		Page:    f.page,
		Sizer:   pager.FixedSize(size),
		CSVPath: f.csvPath,
		Now:     func() time.Time { return fixedNow },
	})

	patch := storage.NewPatch().Enabled(opts.enabled)
	if opts.records != nil {
		patch = patch.Records(opts.records)
	}
	require.NoError(t, store.Set(ctx, patch))
	require.NoError(t, f.controller.Load(ctx))
	return f
}

func (f *fixture) storedRecords(t *testing.T) []model.Record {
	t.Helper()
	snap, err := f.store.Get(f.ctx, model.KeyRecords)
	require.NoError(t, err)
	return snap.RecordsOrEmpty()
}

func (f *fixture) storedEnabled(t *testing.T) bool {
	t.Helper()
	snap, err := f.store.Get(f.ctx, model.KeyEnabled)
	require.NoError(t, err)
	return snap.Enabled
}

func makeRecords(n int) []model.Record {
	records := make([]model.Record, n)
	for i := range records {
		seconds := float64((i + 1) * 10)
		records[i] = model.Record{
			ID:          int64(i + 1),
			URL:         fmt.Sprintf("https://youtu.be/abc?t=%d", (i+1)*10),
			TimeSeconds: seconds,
			DisplayTime: timecode.Format(seconds),
		}
	}
	return records
}

func TestStartResetsEnabled(t *testing.T) {
	f := newFixture(t, fixtureOptions{enabled: true, records: makeRecords(3)})
	require.True(t, f.controller.State().Enabled)

	require.NoError(t, f.controller.Start(f.ctx))

	assert.False(t, f.controller.State().Enabled)
	assert.False(t, f.storedEnabled(t))
	assert.Len(t, f.controller.State().Records, 3)
}

func TestPagination(t *testing.T) {
	f := newFixture(t, fixtureOptions{enabled: true, pageSize: 8, records: makeRecords(20)})
	c := f.controller

	view := c.View()
	assert.Equal(t, 3, view.Pager.TotalPages)
	assert.Equal(t, 1, view.Pager.Page)
	assert.False(t, view.Pager.HasPrev)
	assert.False(t, view.Pager.Hidden)
	require.Len(t, view.Rows, 8)
	assert.Equal(t, 1, view.Rows[0].Number)

	assert.False(t, c.Prev(), "prev from page 1 is a no-op")
	assert.Equal(t, 1, c.State().Pager.Page)

	assert.True(t, c.Next())
	assert.True(t, c.Next())
	assert.False(t, c.Next(), "next from page 3 is a no-op")
	assert.Equal(t, 3, c.State().Pager.Page)

	view = c.View()
	assert.False(t, view.Pager.HasNext)
	require.Len(t, view.Rows, 4)
	assert.Equal(t, 17, view.Rows[0].Number)
	assert.Equal(t, 20, view.Rows[3].Number)
}

func TestPagerHiddenWhenRecordsFit(t *testing.T) {
	f := newFixture(t, fixtureOptions{enabled: true, pageSize: 8, records: makeRecords(8)})
	view := f.controller.View()
	assert.True(t, view.Pager.Hidden)
	assert.Len(t, view.Rows, 8)
}

func TestPageSizeRecomputedOnRender(t *testing.T) {
	size := 8
	f := newFixture(t, fixtureOptions{enabled: true, records: makeRecords(20)})
	f.controller.sizer = pager.SizeFunc(func() int { return size })

	f.controller.Next()
	f.controller.Next()
	require.Equal(t, 3, f.controller.State().Pager.Page)

	// a taller terminal fits everything; the page is clamped back
	size = 50
	f.controller.Resize()
	assert.Equal(t, 1, f.controller.State().Pager.Page)
	assert.True(t, f.controller.View().Pager.Hidden)

	size = 5
	assert.Equal(t, 4, f.controller.View().Pager.TotalPages)
}

func TestRecordRefusedWhenDisabled(t *testing.T) {
	f := newFixture(t, fixtureOptions{records: makeRecords(2)})

	err := f.controller.Record(f.ctx)
	assert.ErrorIs(t, err, ErrDisabled)
	assert.Len(t, f.storedRecords(t), 2)
}

func TestRecordWithoutVideo(t *testing.T) {
	f := newFixture(t, fixtureOptions{enabled: true, noVideo: true})
	assert.ErrorIs(t, f.controller.Record(f.ctx), ErrNoVideo)
	assert.Empty(t, f.storedRecords(t))
}

func TestRecordAppendsAndMovesToLastPage(t *testing.T) {
	f := newFixture(t, fixtureOptions{enabled: true, pageSize: 8, records: makeRecords(16)})
	f.clock.Seek(3661.2005)

	require.NoError(t, f.controller.Record(f.ctx))

	stored := f.storedRecords(t)
	require.Len(t, stored, 17)
	added := stored[16]
	assert.Equal(t, 3661.2005, added.TimeSeconds)
	assert.Equal(t, "01:01:01:200", added.DisplayTime)
	assert.Equal(t, fixedNow.UnixMilli(), added.ID)

	seconds, ok := videourl.Timestamp(added.URL)
	require.True(t, ok)
	assert.Equal(t, int64(3661), seconds)

	state := f.controller.State()
	assert.Equal(t, 3, state.Pager.Page)
	assert.Equal(t, 0, state.Selected)
	assert.Equal(t, "Recorded 01:01:01:200", state.Interaction.StatusMessage)
}

func TestRecordIDsStayUnique(t *testing.T) {
	f := newFixture(t, fixtureOptions{enabled: true})
	require.NoError(t, f.controller.Record(f.ctx))
	require.NoError(t, f.controller.Record(f.ctx))

	stored := f.storedRecords(t)
	require.Len(t, stored, 2)
	assert.NotEqual(t, stored[0].ID, stored[1].ID)
}

func TestClear(t *testing.T) {
	f := newFixture(t, fixtureOptions{enabled: true, records: makeRecords(20)})
	f.controller.Next()

	require.NoError(t, f.controller.Clear(f.ctx))

	assert.Empty(t, f.storedRecords(t))
	assert.Equal(t, 1, f.controller.State().Pager.Page)
	assert.Equal(t, 0, f.controller.View().TotalRecords)
}

func TestExport(t *testing.T) {
	f := newFixture(t, fixtureOptions{enabled: true})

	_, err := f.controller.Export(f.ctx)
	assert.ErrorIs(t, err, csvio.ErrNothingToExport)
	_, statErr := os.Stat(f.csvPath)
	assert.True(t, os.IsNotExist(statErr), "no file for an empty list")

	require.NoError(t, f.store.Set(f.ctx, storage.NewPatch().Records(makeRecords(2))))
	path, err := f.controller.Export(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, f.csvPath, path)

	data, err := os.ReadFile(f.csvPath)
	require.NoError(t, err)
	assert.Equal(t, "SN,URL\n1,https://youtu.be/abc?t=10\n2,https://youtu.be/abc?t=20\n", string(data))
}

func TestImportIntoEmptyList(t *testing.T) {
	f := newFixture(t, fixtureOptions{enabled: true})
	content := "SN,URL\n2,https://youtu.be/x?t=30\n1,https://youtu.be/x?t=10\n"
	require.NoError(t, os.WriteFile(f.csvPath, []byte(content), 0644))

	f.controller.RequestImport(f.ctx)

	state := f.controller.State()
	assert.Nil(t, state.Interaction.ConfirmDialog, "no confirmation without existing records")
	stored := f.storedRecords(t)
	require.Len(t, stored, 2)
	assert.Equal(t, 10.0, stored[0].TimeSeconds)
	assert.Equal(t, 30.0, stored[1].TimeSeconds)
	assert.Equal(t, 1, state.Pager.Page)
}

func TestImportAsksBeforeReplacing(t *testing.T) {
	f := newFixture(t, fixtureOptions{enabled: true, pageSize: 8, records: makeRecords(20)})
	require.NoError(t, os.WriteFile(f.csvPath, []byte("1,https://youtu.be/x?t=5\n"), 0644))
	f.controller.Next()

	f.controller.RequestImport(f.ctx)
	require.NotNil(t, f.controller.State().Interaction.ConfirmDialog)

	// declining keeps everything
	f.controller.HandleKey(f.ctx, interaction.KeyEvent{Key: 'n', Type: interaction.KeyChar})
	assert.Nil(t, f.controller.State().Interaction.ConfirmDialog)
	assert.Len(t, f.storedRecords(t), 20)
	assert.Equal(t, "Import canceled.", f.controller.State().Interaction.StatusMessage)

	f.controller.RequestImport(f.ctx)
	f.controller.HandleKey(f.ctx, interaction.KeyEvent{Key: 'y', Type: interaction.KeyChar})
	stored := f.storedRecords(t)
	require.Len(t, stored, 1)
	assert.Equal(t, 5.0, stored[0].TimeSeconds)
	assert.Equal(t, 1, f.controller.State().Pager.Page)
}

func TestImportFailureLeavesRecordsUntouched(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		wantErr error
		wantMsg string
	}{
		{name: "invalid_host", content: ptr("SN,URL\n1,https://youtu.be/x?t=1\n2,https://vimeo.com/1?t=2\n"), wantErr: csvio.ErrInvalidHost, wantMsg: "line 3"},
		{name: "empty_file", content: ptr("\n  \n"), wantErr: csvio.ErrEmptyFile},
		{name: "missing_file", content: nil, wantErr: csvio.ErrFileRead, wantMsg: "Could not read the file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := makeRecords(3)
			f := newFixture(t, fixtureOptions{enabled: true, records: original})
			if tt.content != nil {
				require.NoError(t, os.WriteFile(f.csvPath, []byte(*tt.content), 0644))
			}

			err := f.controller.Import(f.ctx)
			assert.ErrorIs(t, err, tt.wantErr)

			assert.Equal(t, original, f.storedRecords(t))
			assert.Equal(t, original, f.controller.State().Records)

			alert := f.controller.State().Interaction.Alert
			require.NotNil(t, alert)
			assert.Contains(t, alert.Message, tt.wantMsg)

			// any key dismisses the alert
			f.controller.HandleKey(f.ctx, interaction.KeyEvent{Key: 'x', Type: interaction.KeyChar})
			assert.Nil(t, f.controller.State().Interaction.Alert)
		})
	}
}

func ptr(s string) *string {
	return &s
}

func TestJumpWithPlayer(t *testing.T) {
	f := newFixture(t, fixtureOptions{enabled: true, records: makeRecords(3)})

	require.NoError(t, f.controller.Jump(f.ctx, 1))

	assert.Equal(t, 20.0, f.clock.CurrentTime())
	seconds, ok := videourl.Timestamp(f.page.URL())
	require.True(t, ok)
	assert.Equal(t, int64(20), seconds)
	assert.Empty(t, f.page.Navigations())
	assert.True(t, f.controller.State().Enabled, "a seek is not a page load")

	assert.ErrorIs(t, f.controller.Jump(f.ctx, 3), ErrNoSuchRecord)
	assert.ErrorIs(t, f.controller.Jump(f.ctx, -1), ErrNoSuchRecord)
}

func TestJumpWithoutPlayerNavigates(t *testing.T) {
	f := newFixture(t, fixtureOptions{enabled: true, noVideo: true, records: makeRecords(3)})

	require.NoError(t, f.controller.JumpToTime(f.ctx, 42.9))

	navigations := f.page.Navigations()
	require.Len(t, navigations, 1)
	seconds, ok := videourl.Timestamp(navigations[0])
	require.True(t, ok)
	assert.Equal(t, int64(42), seconds)

	// the navigation reloads the page, which switches recording off
	assert.False(t, f.controller.State().Enabled)
	assert.False(t, f.storedEnabled(t))
}

func TestHandleMessage(t *testing.T) {
	f := newFixture(t, fixtureOptions{})

	require.NoError(t, f.controller.HandleMessage(f.ctx, model.NewJumpMessage(75)))
	assert.Equal(t, 75.0, f.clock.CurrentTime())

	require.NoError(t, f.controller.HandleMessage(f.ctx, model.Message{Type: "pause"}))
	assert.Equal(t, 75.0, f.clock.CurrentTime())
}

func TestHandleChange(t *testing.T) {
	f := newFixture(t, fixtureOptions{enabled: true, pageSize: 8, records: makeRecords(20)})
	f.controller.Next()
	f.controller.Next()

	f.controller.HandleChange(storage.ChangeEvent{
		Records:  &storage.RecordsChange{OldValue: makeRecords(20), NewValue: makeRecords(5)},
		External: true,
	})
	state := f.controller.State()
	assert.Len(t, state.Records, 5)
	assert.Equal(t, 1, state.Pager.Page, "page clamped after the record count dropped")

	f.controller.HandleChange(storage.ChangeEvent{
		Enabled:  &storage.BoolChange{OldValue: true, HadOld: true, NewValue: false},
		External: true,
	})
	assert.False(t, f.controller.State().Enabled)
	assert.True(t, f.controller.View().Hidden)
}

func TestViewHiddenWhileDisabled(t *testing.T) {
	f := newFixture(t, fixtureOptions{records: makeRecords(2)})
	view := f.controller.View()
	assert.True(t, view.Hidden)
	assert.True(t, view.HasPlayer)
	assert.Equal(t, watchURL, view.VideoURL)

	require.NoError(t, f.controller.Toggle(f.ctx))
	assert.False(t, f.controller.View().Hidden)
	assert.True(t, f.storedEnabled(t))
}
