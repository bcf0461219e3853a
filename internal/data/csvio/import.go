package csvio

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/penwyp/yt-slicer/internal/core/model"
	"github.com/penwyp/yt-slicer/internal/core/timecode"
	"github.com/penwyp/yt-slicer/internal/core/videourl"
)

// Import error kinds. Match them with errors.Is.
var (
	ErrEmptyFile        = errors.New("import file has no content")
	ErrMalformedLine    = errors.New("line does not match <index>,<url>")
	ErrInvalidHost      = errors.New("url is not a video platform url")
	ErrMissingTimestamp = errors.New("url has no valid time parameter")
	ErrNoValidEntries   = errors.New("import file has no valid entries")
	ErrFileRead         = errors.New("failed to read import file")
)

// ImportError carries the failure kind and, when it concerns a single line,
// the 1-based line number in the input. Line numbers count every physical
// line, blank ones and the header included, so they match what an editor
// shows rather than the position among non-empty lines.
type ImportError struct {
	Kind error
	Line int
	Err  error
}

func (e *ImportError) Error() string {
	msg := e.Kind.Error()
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ImportError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// ImportOptions tunes host validation and id assignment
type ImportOptions struct {
	Matcher *videourl.Matcher
	Now     func() time.Time
}

var (
	snHeader    = regexp.MustCompile(`(?i)^sn\s*,\s*url`)
	indexHeader = regexp.MustCompile(`(?i)^index\s*,`)
	digitsOnly  = regexp.MustCompile(`^\d+$`)
)

type importLine struct {
	number int
	text   string
}

type importEntry struct {
	order   uint64
	url     string
	seconds int64
}

// Import validates text and converts it into a fresh record list. Any error
// aborts the whole import.
func Import(text string, opts ImportOptions) ([]model.Record, error) {
	if opts.Matcher == nil {
		opts.Matcher = videourl.NewMatcher()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, &ImportError{Kind: ErrEmptyFile}
	}

	if isHeader(lines[0].text) {
		lines = lines[1:]
	}

	entries := make([]importEntry, 0, len(lines))
	for _, line := range lines {
		entry, err := parseLine(line, opts.Matcher)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, &ImportError{Kind: ErrNoValidEntries}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].order < entries[j].order
	})

	base := opts.Now().UnixMilli()
	records := make([]model.Record, len(entries))
	for i, e := range entries {
		seconds := float64(e.seconds)
		records[i] = model.Record{
			ID:          base + int64(i),
			URL:         e.url,
			TimeSeconds: seconds,
			DisplayTime: timecode.Format(seconds),
		}
	}
	return records, nil
}

// ImportFile reads path and imports its content
func ImportFile(path string, opts ImportOptions) ([]model.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ImportError{Kind: ErrFileRead, Err: err}
	}
	return Import(string(data), opts)
}

func splitLines(text string) []importLine {
	text = strings.TrimPrefix(text, "\ufeff")
	raw := strings.Split(text, "\n")
	lines := make([]importLine, 0, len(raw))
	for i, l := range raw {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, importLine{number: i + 1, text: l})
	}
	return lines
}

func isHeader(line string) bool {
	return snHeader.MatchString(line) || indexHeader.MatchString(line)
}

func parseLine(line importLine, matcher *videourl.Matcher) (importEntry, error) {
	indexPart, urlPart, _ := strings.Cut(line.text, ",")
	indexPart = strings.TrimSpace(indexPart)
	urlPart = unquote(strings.TrimSpace(urlPart))

	if !digitsOnly.MatchString(indexPart) || urlPart == "" {
		return importEntry{}, &ImportError{Kind: ErrMalformedLine, Line: line.number}
	}
	order, err := strconv.ParseUint(indexPart, 10, 64)
	if err != nil {
		return importEntry{}, &ImportError{Kind: ErrMalformedLine, Line: line.number, Err: err}
	}

	if !matcher.IsPlatformURL(urlPart) {
		return importEntry{}, &ImportError{Kind: ErrInvalidHost, Line: line.number}
	}

	seconds, ok := videourl.Timestamp(urlPart)
	if !ok {
		return importEntry{}, &ImportError{Kind: ErrMissingTimestamp, Line: line.number}
	}

	return importEntry{order: order, url: urlPart, seconds: seconds}, nil
}

// unquote strips CSV quoting from a field written by a spreadsheet tool
func unquote(field string) string {
	if len(field) >= 2 && strings.HasPrefix(field, `"`) && strings.HasSuffix(field, `"`) {
		return strings.TrimSpace(strings.ReplaceAll(field[1:len(field)-1], `""`, `"`))
	}
	return field
}
