package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/penwyp/yt-slicer/internal/core/monitoring"
	"github.com/penwyp/yt-slicer/internal/util"
)

// DefaultFileName is the storage document inside the data directory
const DefaultFileName = "storage.json"

// FileBackend keeps every key in one JSON document. Writes go through a
// temporary file and a rename so readers never see a partial document.
type FileBackend struct {
	path string

	mu      sync.Mutex
	watcher *monitoring.FileWatcher
	signals chan struct{}
	closed  bool
}

func NewFileBackend(path string) (*FileBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return &FileBackend{path: path}, nil
}

// Path returns the storage document location
func (f *FileBackend) Path() string {
	return f.path
}

func (f *FileBackend) Load(ctx context.Context) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.read()
}

func (f *FileBackend) read() (map[string][]byte, error) {
	values := make(map[string][]byte)

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("read storage: %w", err)
	}
	if len(data) == 0 {
		return values, nil
	}

	var doc map[string]json.RawMessage
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode storage %s: %w", f.path, err)
	}
	for k, v := range doc {
		values[k] = []byte(v)
	}
	return values, nil
}

func (f *FileBackend) Save(ctx context.Context, values map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.read()
	if err != nil {
		return err
	}
	doc := make(map[string]json.RawMessage, len(current)+len(values))
	for k, v := range current {
		doc[k] = v
	}
	for k, v := range values {
		doc[k] = v
	}

	data, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage: %w", err)
	}
	return writeAtomic(f.path, data)
}

func writeAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("open tmp: %w", err)
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename tmp: %w", err)
	}
	return nil
}

// Changes watches the storage document for writes by any process. The
// watcher starts on first call; if it cannot start the channel never fires.
func (f *FileBackend) Changes() <-chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.signals != nil {
		return f.signals
	}
	f.signals = make(chan struct{}, 1)

	watcher, err := monitoring.NewFileWatcher(
		[]string{filepath.Dir(f.path)},
		monitoring.ByName(filepath.Base(f.path)),
	)
	if err != nil {
		util.LogWarnf("Storage watch disabled for %s: %v", f.path, err)
		return f.signals
	}
	f.watcher = watcher

	go func() {
		for range watcher.Events() {
			select {
			case f.signals <- struct{}{}:
			default:
			}
		}
	}()
	return f.signals
}

func (f *FileBackend) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	if f.watcher != nil {
		return f.watcher.Close()
	}
	return nil
}
