package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"time"
)

// Backend names accepted by Open
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Options selects and locates the backend
type Options struct {
	Backend      string
	DataDir      string
	PollInterval time.Duration
}

// Open builds the configured backend under DataDir and wraps it in a Store
func Open(ctx context.Context, opts Options) (*Store, error) {
	var (
		backend Backend
		err     error
	)
	switch opts.Backend {
	case "", BackendFile:
		backend, err = NewFileBackend(filepath.Join(opts.DataDir, DefaultFileName))
	case BackendSQLite:
		backend, err = NewSQLiteBackend(filepath.Join(opts.DataDir, DefaultSQLiteFileName), opts.PollInterval)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want %s or %s)", opts.Backend, BackendFile, BackendSQLite)
	}
	if err != nil {
		return nil, err
	}

	store, err := NewStore(ctx, backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return store, nil
}
