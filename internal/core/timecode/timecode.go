// Package timecode converts playback positions to the fixed-width
// HH:MM:SS:mmm form shown in record lists, and back.
package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	maxSeconds = 9e15
	maxMillis  = int64(maxSeconds * 1000)
)

// Format floors seconds to millisecond resolution and renders it as
// HH:MM:SS:mmm. Hours are unbounded. Negative and NaN inputs render as zero.
func Format(seconds float64) string {
	if math.IsNaN(seconds) || seconds <= 0 {
		seconds = 0
	}
	// keeps seconds*1000 inside int64
	if seconds > maxSeconds {
		seconds = maxSeconds
	}

	totalMs := int64(math.Floor(seconds * 1000))
	ms := totalMs % 1000
	totalSeconds := totalMs / 1000
	secs := totalSeconds % 60
	totalMinutes := totalSeconds / 60
	minutes := totalMinutes % 60
	hours := totalMinutes / 60

	return fmt.Sprintf("%02d:%02d:%02d:%03d", hours, minutes, secs, ms)
}

// Parse converts HH:MM:SS:mmm back to seconds. Minutes and seconds must be
// below 60 and milliseconds below 1000. The result formats back to s.
func Parse(s string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 4 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM:SS:mmm", s)
	}
	return parseFields(s, parts, []int64{60, 60, 1000})
}

// ParseFlexible accepts a plain number of seconds ("90", "12.5"), MM:SS,
// HH:MM:SS or HH:MM:SS:mmm. The leading field is unbounded.
func ParseFlexible(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		switch len(parts) {
		case 2:
			return parseFields(s, append(parts, "0"), []int64{60, 1000})
		case 3:
			return parseFields(s, append(parts, "0"), []int64{60, 60, 1000})
		case 4:
			return Parse(s)
		}
		return 0, fmt.Errorf("invalid time %q: want MM:SS, HH:MM:SS or HH:MM:SS:mmm", s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid time %q: must be a non-negative number", s)
	}
	return v, nil
}

// parseFields reads colon separated fields, most significant first. limits
// bounds every field after the first; the last field is milliseconds.
func parseFields(s string, parts []string, limits []int64) (float64, error) {
	var totalMs int64
	for i, p := range parts {
		if p == "" || strings.TrimLeft(p, "0123456789") != "" {
			return 0, fmt.Errorf("invalid time %q: field %d is not a number", s, i+1)
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid time %q: %w", s, err)
		}
		if i == 0 {
			totalMs = v
			continue
		}
		limit := limits[i-1]
		if v >= limit {
			return 0, fmt.Errorf("invalid time %q: field %d out of range", s, i+1)
		}
		if totalMs > (maxMillis-v)/limit {
			return 0, fmt.Errorf("invalid time %q: out of range", s)
		}
		totalMs = totalMs*limit + v
	}
	return fromMillis(totalMs), nil
}

// fromMillis returns the float nearest to totalMs/1000 that Format floors
// back to totalMs
func fromMillis(totalMs int64) float64 {
	v := float64(totalMs) / 1000
	for math.Floor(v*1000) < float64(totalMs) {
		v = math.Nextafter(v, math.Inf(1))
	}
	return v
}
