package monitoring

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/yt-slicer/internal/core/model"
	"github.com/penwyp/yt-slicer/internal/util"
)

// Filter decides whether a changed path is reported
type Filter func(path string) bool

// ByExtension reports files with the given extension
func ByExtension(ext string) Filter {
	return func(path string) bool {
		return filepath.Ext(path) == ext
	}
}

// ByName reports files whose base name matches exactly
func ByName(name string) Filter {
	return func(path string) bool {
		return filepath.Base(path) == name
	}
}

type FileWatcher struct {
	watcher *fsnotify.Watcher
	paths   []string
	filter  Filter
	events  chan model.FileEvent
	done    chan struct{}
	once    sync.Once
}

// NewFileWatcher watches the given directories (not recursively) and reports
// changes of files accepted by filter.
func NewFileWatcher(paths []string, filter Filter) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		paths:   paths,
		filter:  filter,
		events:  make(chan model.FileEvent, 100),
		done:    make(chan struct{}),
	}

	for _, path := range paths {
		if err := os.MkdirAll(path, 0755); err != nil {
			watcher.Close()
			return nil, err
		}
		if err := watcher.Add(path); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.events)
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			if fw.filter != nil && !fw.filter(event.Name) {
				continue
			}

			select {
			case fw.events <- model.FileEvent{Path: event.Name, Operation: event.Op.String()}:
			case <-fw.done:
				return
			default:
				util.LogDebugf("File event dropped, consumer is behind: %s", event.Name)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue running
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

func (fw *FileWatcher) Events() <-chan model.FileEvent {
	return fw.events
}

func (fw *FileWatcher) Close() error {
	var err error
	fw.once.Do(func() {
		close(fw.done)
		err = fw.watcher.Close()
	})
	return err
}
