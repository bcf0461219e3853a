package player

import (
	"sync"

	"github.com/penwyp/yt-slicer/internal/util"
)

// Page is the content surface the overlay lives on: its address and, when
// one is present, its video.
type Page struct {
	mu          sync.Mutex
	url         string
	video       Player
	navigations []string
	onNavigate  func(url string)
}

// NewPage hosts video at url. video may be nil for a page without one.
func NewPage(url string, video Player) *Page {
	return &Page{url: url, video: video}
}

// OnNavigate registers a callback fired on full navigations
func (p *Page) OnNavigate(fn func(url string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onNavigate = fn
}

func (p *Page) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

// ReplaceURL rewrites the address without reloading
func (p *Page) ReplaceURL(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.url = url
}

// Navigate loads url as a new page
func (p *Page) Navigate(url string) {
	p.mu.Lock()
	p.url = url
	p.navigations = append(p.navigations, url)
	fn := p.onNavigate
	p.mu.Unlock()

	util.LogInfo("Navigated.", util.F("url", url))
	if fn != nil {
		fn(url)
	}
}

// Navigations lists every url loaded through Navigate
func (p *Page) Navigations() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.navigations))
	copy(out, p.navigations)
	return out
}

// Video returns the page's video, if any
func (p *Page) Video() (Player, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.video, p.video != nil
}
