package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyboardReaderParseInput(t *testing.T) {
	kr := newKeyboardReader()

	tests := []struct {
		name     string
		input    []byte
		expected *KeyEvent
	}{
		{name: "Regular char", input: []byte{'a'}, expected: &KeyEvent{Key: 'a', Type: KeyChar}},
		{name: "Escape", input: []byte{27}, expected: &KeyEvent{Key: 27, Type: KeyEscape}},
		{name: "Ctrl+C", input: []byte{3}, expected: &KeyEvent{Key: KeyCtrlC, Type: KeyChar}},
		{name: "Carriage return", input: []byte{'\r'}, expected: &KeyEvent{Key: KeyEnter, Type: KeyChar}},
		{name: "Line feed", input: []byte{'\n'}, expected: &KeyEvent{Key: KeyEnter, Type: KeyChar}},
		{name: "Arrow up", input: []byte{27, '[', 'A'}, expected: &KeyEvent{Type: KeyArrowUp}},
		{name: "Arrow down", input: []byte{27, '[', 'B'}, expected: &KeyEvent{Type: KeyArrowDown}},
		{name: "Arrow right", input: []byte{27, '[', 'C'}, expected: &KeyEvent{Type: KeyArrowRight}},
		{name: "Arrow left", input: []byte{27, '[', 'D'}, expected: &KeyEvent{Type: KeyArrowLeft}},
		{name: "Unknown sequence", input: []byte{27, '[', 'Z'}, expected: nil},
		{name: "Empty", input: nil, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, kr.parseInput(tt.input))
		})
	}
}

func TestKeyboardReaderCloseTwice(t *testing.T) {
	kr := newKeyboardReader()
	assert.NoError(t, kr.Close())
	assert.NoError(t, kr.Close())
}
