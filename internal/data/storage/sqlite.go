package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/penwyp/yt-slicer/internal/util"
)

// DefaultSQLiteFileName is the database inside the data directory
const DefaultSQLiteFileName = "storage.db"

// DefaultPollInterval is how often the SQLite backend checks for writes made
// by other processes.
const DefaultPollInterval = time.Second

// kvEntry is one stored key. Revision grows with every write so other
// processes can notice changes cheaply.
type kvEntry struct {
	Key       string `gorm:"primaryKey;column:key"`
	Value     []byte `gorm:"column:value"`
	Revision  int64  `gorm:"column:revision;index"`
	UpdatedAt time.Time
}

func (kvEntry) TableName() string {
	return "kv_entries"
}

// SQLiteBackend stores keys as rows of a single table
type SQLiteBackend struct {
	db           *gorm.DB
	pollInterval time.Duration

	mu      sync.Mutex
	signals chan struct{}
	done    chan struct{}
	closed  bool
}

// NewSQLiteBackend opens (and migrates) the database at path
func NewSQLiteBackend(path string, pollInterval time.Duration) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &SQLiteBackend{
		db:           db,
		pollInterval: pollInterval,
		done:         make(chan struct{}),
	}, nil
}

func (b *SQLiteBackend) Load(ctx context.Context) (map[string][]byte, error) {
	var entries []kvEntry
	if err := b.db.WithContext(ctx).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("query kv_entries: %w", err)
	}
	values := make(map[string][]byte, len(entries))
	for _, e := range entries {
		values[e.Key] = e.Value
	}
	return values, nil
}

func (b *SQLiteBackend) Save(ctx context.Context, values map[string][]byte) error {
	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var revision int64
		if err := tx.Model(&kvEntry{}).Select("COALESCE(MAX(revision), 0)").Scan(&revision).Error; err != nil {
			return fmt.Errorf("read revision: %w", err)
		}
		revision++

		now := time.Now()
		entries := make([]kvEntry, 0, len(values))
		for k, v := range values {
			entries = append(entries, kvEntry{Key: k, Value: v, Revision: revision, UpdatedAt: now})
		}
		if len(entries) == 0 {
			return nil
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "revision", "updated_at"}),
		}).Create(&entries).Error
		if err != nil {
			return fmt.Errorf("upsert kv_entries: %w", err)
		}
		return nil
	})
}

func (b *SQLiteBackend) revision(ctx context.Context) (int64, error) {
	var revision int64
	err := b.db.WithContext(ctx).Model(&kvEntry{}).Select("COALESCE(MAX(revision), 0)").Scan(&revision).Error
	return revision, err
}

// Changes polls the revision counter and signals when it moves
func (b *SQLiteBackend) Changes() <-chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.signals != nil {
		return b.signals
	}
	b.signals = make(chan struct{}, 1)

	go func() {
		ticker := time.NewTicker(b.pollInterval)
		defer ticker.Stop()

		// The first tick always signals so writes made between the
		// caller's initial load and this goroutine starting are not lost.
		last := int64(-1)
		for {
			select {
			case <-b.done:
				return
			case <-ticker.C:
				current, err := b.revision(context.Background())
				if err != nil {
					util.LogDebugf("Storage revision check failed: %v", err)
					continue
				}
				if current == last {
					continue
				}
				last = current
				select {
				case b.signals <- struct{}{}:
				default:
				}
			}
		}
	}()
	return b.signals
}

func (b *SQLiteBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	close(b.done)

	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
