package storage

import (
	"bytes"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/penwyp/yt-slicer/internal/core/model"
)

var jsonNull = []byte("null")

func encodePatch(p Patch) (map[string][]byte, error) {
	values := make(map[string][]byte, 2)
	if p.enabled != nil {
		data, err := sonic.Marshal(*p.enabled)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", model.KeyEnabled, err)
		}
		values[model.KeyEnabled] = data
	}
	if p.records != nil {
		data, err := sonic.Marshal(*p.records)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", model.KeyRecords, err)
		}
		values[model.KeyRecords] = data
	}
	return values, nil
}

func decodeEnabled(raw []byte) (bool, bool, error) {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return false, false, nil
	}
	var v bool
	if err := sonic.Unmarshal(raw, &v); err != nil {
		return false, false, fmt.Errorf("decode %s: %w", model.KeyEnabled, err)
	}
	return v, true, nil
}

// decodeRecords treats anything that is not a JSON array as absent
func decodeRecords(raw []byte) ([]model.Record, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false, nil
	}
	records := make([]model.Record, 0)
	if err := sonic.Unmarshal(trimmed, &records); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", model.KeyRecords, err)
	}
	return records, true, nil
}

func decodeSnapshot(values map[string][]byte, keys []string) (Snapshot, error) {
	var snap Snapshot
	for _, key := range keys {
		switch key {
		case model.KeyEnabled:
			v, ok, err := decodeEnabled(values[key])
			if err != nil {
				return Snapshot{}, err
			}
			snap.Enabled, snap.HasEnabled = v, ok
		case model.KeyRecords:
			records, ok, err := decodeRecords(values[key])
			if err != nil {
				return Snapshot{}, err
			}
			snap.Records, snap.HasRecords = records, ok
		default:
			return Snapshot{}, fmt.Errorf("unknown storage key %q", key)
		}
	}
	return snap, nil
}

// diff builds the change event between two raw value sets. Only keys
// present in next are compared. It returns false when nothing changed.
func diff(prev, next map[string][]byte) (ChangeEvent, bool) {
	var event ChangeEvent
	changed := false

	if raw, ok := next[model.KeyEnabled]; ok && !bytes.Equal(prev[model.KeyEnabled], raw) {
		oldValue, hadOld, _ := decodeEnabled(prev[model.KeyEnabled])
		newValue, _, err := decodeEnabled(raw)
		if err == nil {
			event.Enabled = &BoolChange{OldValue: oldValue, HadOld: hadOld, NewValue: newValue}
			changed = true
		}
	}

	if raw, ok := next[model.KeyRecords]; ok && !bytes.Equal(prev[model.KeyRecords], raw) {
		oldValue, _, _ := decodeRecords(prev[model.KeyRecords])
		newValue, _, err := decodeRecords(raw)
		if err == nil {
			if oldValue == nil {
				oldValue = []model.Record{}
			}
			if newValue == nil {
				newValue = []model.Record{}
			}
			event.Records = &RecordsChange{OldValue: oldValue, NewValue: newValue}
			changed = true
		}
	}

	return event, changed
}
