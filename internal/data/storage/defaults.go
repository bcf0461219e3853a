package storage

import (
	"context"

	"github.com/penwyp/yt-slicer/internal/core/model"
	"github.com/penwyp/yt-slicer/internal/util"
)

// EnsureDefaults writes enabled=false and records=[] for keys that are
// absent. Existing values are never overwritten. It reports whether anything
// was written.
func EnsureDefaults(ctx context.Context, gw Gateway) (bool, error) {
	snap, err := gw.Get(ctx, model.AllKeys...)
	if err != nil {
		return false, err
	}

	patch := NewPatch()
	if !snap.HasEnabled {
		patch = patch.Enabled(false)
	}
	if !snap.HasRecords {
		patch = patch.Records([]model.Record{})
	}

	log := util.Named("background")
	if patch.Empty() {
		log.Info("Storage already initialized.")
		return false, nil
	}
	if err := gw.Set(ctx, patch); err != nil {
		return false, err
	}
	log.Info("Initialized storage defaults.", util.F("keys", patch.Keys()))
	return true, nil
}
