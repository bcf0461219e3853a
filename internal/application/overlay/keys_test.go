package overlay

import (
	"testing"

	"github.com/penwyp/yt-slicer/internal/presentation/interaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func char(r rune) interaction.KeyEvent {
	return interaction.KeyEvent{Key: r, Type: interaction.KeyChar}
}

func TestHandleKeyQuit(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	assert.True(t, f.controller.HandleKey(f.ctx, char('q')))
	assert.True(t, f.controller.HandleKey(f.ctx, char(interaction.KeyCtrlC)))
	assert.True(t, f.controller.HandleKey(f.ctx, interaction.KeyEvent{Key: 27, Type: interaction.KeyEscape}))
}

func TestHandleKeyHelp(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	assert.False(t, f.controller.HandleKey(f.ctx, char('h')))
	assert.True(t, f.controller.State().Interaction.ShowHelp)

	// escape closes help before it quits
	assert.False(t, f.controller.HandleKey(f.ctx, interaction.KeyEvent{Key: 27, Type: interaction.KeyEscape}))
	assert.False(t, f.controller.State().Interaction.ShowHelp)
}

func TestHandleKeyIgnoresPanelKeysWhileDisabled(t *testing.T) {
	f := newFixture(t, fixtureOptions{pageSize: 2, records: makeRecords(6)})

	f.controller.HandleKey(f.ctx, char('r'))
	f.controller.HandleKey(f.ctx, char('c'))
	f.controller.HandleKey(f.ctx, interaction.KeyEvent{Type: interaction.KeyArrowRight})

	assert.Len(t, f.storedRecords(t), 6)
	assert.Equal(t, 1, f.controller.State().Pager.Page)
}

func TestHandleKeyToggleThenRecord(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	f.clock.Seek(12.5)

	f.controller.HandleKey(f.ctx, char('t'))
	require.True(t, f.storedEnabled(t))

	f.controller.HandleKey(f.ctx, char('r'))
	stored := f.storedRecords(t)
	require.Len(t, stored, 1)
	assert.Equal(t, "00:00:12:500", stored[0].DisplayTime)
}

func TestHandleKeyNavigationAndJump(t *testing.T) {
	f := newFixture(t, fixtureOptions{enabled: true, pageSize: 3, records: makeRecords(7)})
	c := f.controller

	c.HandleKey(f.ctx, interaction.KeyEvent{Type: interaction.KeyArrowRight})
	assert.Equal(t, 2, c.State().Pager.Page)
	c.HandleKey(f.ctx, char('n'))
	assert.Equal(t, 3, c.State().Pager.Page)
	c.HandleKey(f.ctx, char('p'))
	c.HandleKey(f.ctx, interaction.KeyEvent{Type: interaction.KeyArrowLeft})
	assert.Equal(t, 1, c.State().Pager.Page)

	// digits jump within the current page
	c.HandleKey(f.ctx, char('2'))
	assert.Equal(t, 20.0, f.clock.CurrentTime())

	c.HandleKey(f.ctx, char('9'))
	assert.Contains(t, c.State().Interaction.StatusMessage, "no such record")

	// selection moves within the page and enter jumps to it
	c.HandleKey(f.ctx, interaction.KeyEvent{Type: interaction.KeyArrowDown})
	c.HandleKey(f.ctx, interaction.KeyEvent{Type: interaction.KeyArrowDown})
	c.HandleKey(f.ctx, interaction.KeyEvent{Type: interaction.KeyArrowDown})
	assert.Equal(t, 2, c.State().Selected)
	c.HandleKey(f.ctx, char(interaction.KeyEnter))
	assert.Equal(t, 30.0, f.clock.CurrentTime())

	c.HandleKey(f.ctx, interaction.KeyEvent{Type: interaction.KeyArrowUp})
	assert.Equal(t, 1, c.State().Selected)
}

func TestHandleKeyExportEmptyIsQuiet(t *testing.T) {
	f := newFixture(t, fixtureOptions{enabled: true})
	f.controller.HandleKey(f.ctx, char('e'))
	assert.Equal(t, "No timestamps to export.", f.controller.State().Interaction.StatusMessage)
}

func TestHandleKeySpaceTogglesPlayback(t *testing.T) {
	f := newFixture(t, fixtureOptions{enabled: true})
	require.True(t, f.clock.Playing())

	f.controller.HandleKey(f.ctx, char(' '))
	assert.False(t, f.clock.Playing())
	assert.False(t, f.controller.View().Playing)

	f.controller.HandleKey(f.ctx, char(' '))
	assert.True(t, f.clock.Playing())
}
