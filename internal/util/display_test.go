package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDisplayWidth(t *testing.T) {
	assert.Equal(t, 12, GetDisplayWidth("00:00:10:000"))
	assert.Equal(t, 4, GetDisplayWidth("已啟"))
}

func TestTruncateWidth(t *testing.T) {
	assert.Equal(t, "abc", TruncateWidth("abc", 10))
	assert.Equal(t, "abcd…", TruncateWidth("abcdefgh", 5))
	assert.Equal(t, "", TruncateWidth("abc", 0))
}

func TestColorize(t *testing.T) {
	assert.Equal(t, ColorRed+"off"+ColorReset, Colorize(ColorRed, "off"))
	assert.Equal(t, "\033[3;7H", MoveCursor(3, 7))
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "  ab  ", CenterText("ab", 6))
	assert.Equal(t, " ab  ", CenterText("ab", 5))
	assert.Equal(t, "abcdef", CenterText("abcdef", 3))
}
