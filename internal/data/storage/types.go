// Package storage is the single source of truth shared by every yt-slicer
// process of one installation. It stores the recording flag and the record
// list under fixed keys, last write wins.
package storage

import (
	"context"

	"github.com/penwyp/yt-slicer/internal/core/model"
)

// Gateway is the key-value API the controllers talk to
type Gateway interface {
	// Get returns the requested keys; absent keys are reported as such
	Get(ctx context.Context, keys ...string) (Snapshot, error)
	// Set writes every key present in the patch
	Set(ctx context.Context, patch Patch) error
	// Subscribe returns a stream of change events and a cancel function
	Subscribe() (<-chan ChangeEvent, func())
	Close() error
}

// Snapshot is a partial view of the stored keys
type Snapshot struct {
	Enabled    bool
	HasEnabled bool
	Records    []model.Record
	HasRecords bool
}

// RecordsOrEmpty never returns nil
func (s Snapshot) RecordsOrEmpty() []model.Record {
	if !s.HasRecords || s.Records == nil {
		return []model.Record{}
	}
	return s.Records
}

// Patch lists the keys to write. Build it with NewPatch and the setters.
type Patch struct {
	enabled *bool
	records *[]model.Record
}

func NewPatch() Patch {
	return Patch{}
}

// Enabled sets the recording flag
func (p Patch) Enabled(v bool) Patch {
	p.enabled = &v
	return p
}

// Records replaces the whole record list
func (p Patch) Records(records []model.Record) Patch {
	cloned := model.CloneRecords(records)
	p.records = &cloned
	return p
}

// Keys lists the storage keys the patch writes
func (p Patch) Keys() []string {
	keys := make([]string, 0, 2)
	if p.enabled != nil {
		keys = append(keys, model.KeyEnabled)
	}
	if p.records != nil {
		keys = append(keys, model.KeyRecords)
	}
	return keys
}

func (p Patch) Empty() bool {
	return p.enabled == nil && p.records == nil
}

// BoolChange is the before/after pair of the recording flag
type BoolChange struct {
	OldValue bool
	HadOld   bool
	NewValue bool
}

// RecordsChange is the before/after pair of the record list
type RecordsChange struct {
	OldValue []model.Record
	NewValue []model.Record
}

// ChangeEvent reports every key that changed in one write. External is set
// when the write came from another process.
type ChangeEvent struct {
	Enabled  *BoolChange
	Records  *RecordsChange
	External bool
}

// Backend persists raw JSON values by key
type Backend interface {
	Load(ctx context.Context) (map[string][]byte, error)
	Save(ctx context.Context, values map[string][]byte) error
	Close() error
}

// ChangeSource is implemented by backends that notice writes made by other
// processes. A signal means "reload", it carries no data.
type ChangeSource interface {
	Changes() <-chan struct{}
}
