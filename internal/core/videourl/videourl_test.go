package videourl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPlatformURL(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{name: "short host", url: "https://youtu.be/abc?t=10", expected: true},
		{name: "apex host", url: "https://youtube.com/watch?v=abc", expected: true},
		{name: "www subdomain", url: "https://www.youtube.com/watch?v=abc", expected: true},
		{name: "music subdomain", url: "https://music.youtube.com/watch?v=abc", expected: true},
		{name: "mixed case host", url: "https://WWW.YouTube.com/watch?v=abc", expected: true},
		{name: "lookalike suffix", url: "https://notyoutube.com/watch?v=abc", expected: false},
		{name: "other platform", url: "https://vimeo.com/123?t=5", expected: false},
		{name: "relative url", url: "/watch?v=abc", expected: false},
		{name: "garbage", url: "not a url", expected: false},
		{name: "youtu.be subdomain", url: "https://m.youtu.be/abc", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.IsPlatformURL(tt.url))
		})
	}
}

func TestNewMatcherCustomDomains(t *testing.T) {
	m := NewMatcher(" Example.org ", "")
	assert.Equal(t, []string{"example.org"}, m.Domains())
	assert.True(t, m.IsPlatformURL("https://video.example.org/x?t=1"))
	assert.False(t, m.IsPlatformURL("https://youtu.be/x?t=1"))
}

func TestNewMatcherExactDomains(t *testing.T) {
	m := NewMatcher("example.org", " =Short.LY ")
	assert.Equal(t, []string{"example.org", "=short.ly"}, m.Domains())
	assert.True(t, m.IsPlatformURL("https://short.ly/x?t=1"))
	assert.False(t, m.IsPlatformURL("https://m.short.ly/x?t=1"))
	assert.True(t, m.IsPlatformURL("https://m.example.org/x?t=1"))

	assert.Equal(t, DefaultDomains, NewMatcher().Domains())
	assert.Equal(t, DefaultDomains, NewMatcher("=").Domains())
}

func TestTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		seconds int64
		ok      bool
	}{
		{name: "plain seconds", url: "https://youtu.be/x?t=30", seconds: 30, ok: true},
		{name: "suffixed seconds", url: "https://youtu.be/x?t=30s", seconds: 30, ok: true},
		{name: "zero", url: "https://youtu.be/x?t=0", seconds: 0, ok: true},
		{name: "missing", url: "https://youtu.be/x", ok: false},
		{name: "empty", url: "https://youtu.be/x?t=", ok: false},
		{name: "negative", url: "https://youtu.be/x?t=-5", ok: false},
		{name: "not a number", url: "https://youtu.be/x?t=abc", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seconds, ok := Timestamp(tt.url)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.seconds, seconds)
			}
		})
	}
}

func TestWithTimestamp(t *testing.T) {
	got, err := WithTimestamp("https://www.youtube.com/watch?v=abc&t=5", 90.9)
	require.NoError(t, err)

	seconds, ok := Timestamp(got)
	require.True(t, ok)
	assert.Equal(t, int64(90), seconds)
	assert.Contains(t, got, "v=abc")

	got, err = WithTimestamp("https://youtu.be/abc", 12)
	require.NoError(t, err)
	assert.Equal(t, "https://youtu.be/abc?t=12", got)
}
