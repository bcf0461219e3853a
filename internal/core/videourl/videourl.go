// Package videourl holds the URL contract of the video platform: which hosts
// belong to it and how the playback position travels in the "t" parameter.
package videourl

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// TimeParam is the query parameter carrying whole elapsed seconds
const TimeParam = "t"

// ExactPrefix marks a domain entry that matches only the host itself, not
// its subdomains
const ExactPrefix = "="

// DefaultDomains are the platform's own domains: youtube.com with any
// subdomain, and the youtu.be short host exactly.
var DefaultDomains = []string{"youtube.com", ExactPrefix + "youtu.be"}

type domain struct {
	name  string
	exact bool
}

// Matcher decides whether a URL belongs to the platform
type Matcher struct {
	domains []domain
}

// NewMatcher builds a matcher over domains, falling back to DefaultDomains
// when none are given. Entries starting with ExactPrefix do not match
// subdomains.
func NewMatcher(domains ...string) *Matcher {
	m := &Matcher{}
	for _, d := range domains {
		m.add(d)
	}
	if len(m.domains) == 0 {
		for _, d := range DefaultDomains {
			m.add(d)
		}
	}
	return m
}

func (m *Matcher) add(entry string) {
	entry = strings.ToLower(strings.TrimSpace(entry))
	exact := strings.HasPrefix(entry, ExactPrefix)
	name := strings.Trim(strings.TrimPrefix(entry, ExactPrefix), ".")
	if name != "" {
		m.domains = append(m.domains, domain{name: name, exact: exact})
	}
}

// Domains returns the configured domain set in entry form
func (m *Matcher) Domains() []string {
	out := make([]string, len(m.domains))
	for i, d := range m.domains {
		out[i] = d.name
		if d.exact {
			out[i] = ExactPrefix + d.name
		}
	}
	return out
}

// IsPlatformURL reports whether raw is an absolute URL whose host is one of
// the domains or an accepted subdomain of one.
func (m *Matcher) IsPlatformURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" {
		return false
	}
	return m.IsPlatformHost(u.Hostname())
}

// IsPlatformHost matches host exactly or, unless the entry is exact, by
// dot-separated suffix
func (m *Matcher) IsPlatformHost(host string) bool {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "" {
		return false
	}
	for _, d := range m.domains {
		if host == d.name || (!d.exact && strings.HasSuffix(host, "."+d.name)) {
			return true
		}
	}
	return false
}

// Timestamp reads the "t" parameter. Like the platform itself it accepts a
// leading run of digits ("90", "90s") and rejects missing, empty or negative
// values.
func Timestamp(raw string) (int64, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	value := strings.TrimSpace(u.Query().Get(TimeParam))
	value = strings.TrimPrefix(value, "+")

	end := 0
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	seconds, err := strconv.ParseInt(value[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return seconds, true
}

// WithTimestamp returns raw with "t" set to the floor of seconds, keeping
// every other parameter.
func WithTimestamp(raw string, seconds float64) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", raw, err)
	}
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	q := u.Query()
	q.Set(TimeParam, strconv.FormatInt(int64(math.Floor(seconds)), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
