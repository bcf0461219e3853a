// Package player models the watched video: a playback clock that can be
// read and seeked, and the page that hosts it.
package player

import (
	"sync"
	"time"
)

// Player is the active video element
type Player interface {
	CurrentTime() float64
	Seek(seconds float64)
}

// Clock is a Player whose position advances with wall time while playing
type Clock struct {
	mu        sync.Mutex
	now       func() time.Time
	base      float64
	startedAt time.Time
	playing   bool
}

// NewClock starts playing from start seconds
func NewClock(start float64) *Clock {
	return NewClockWithTime(start, time.Now)
}

// NewClockWithTime is NewClock with an injectable time source
func NewClockWithTime(start float64, now func() time.Time) *Clock {
	if start < 0 {
		start = 0
	}
	return &Clock{
		now:       now,
		base:      start,
		startedAt: now(),
		playing:   true,
	}
}

func (c *Clock) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position()
}

func (c *Clock) position() float64 {
	if !c.playing {
		return c.base
	}
	return c.base + c.now().Sub(c.startedAt).Seconds()
}

func (c *Clock) Seek(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seconds < 0 {
		seconds = 0
	}
	c.base = seconds
	c.startedAt = c.now()
}

// Toggle pauses or resumes playback and reports whether it is now playing
func (c *Clock) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.base = c.position()
	c.startedAt = c.now()
	c.playing = !c.playing
	return c.playing
}

func (c *Clock) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}
