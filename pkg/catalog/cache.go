package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/storekit/shopsearch/internal/utils"
)

// SaveSnapshot writes a flattened snapshot to disk as msgpack so a restart
// can skip the upstream tree fetch. The name index is rebuilt on load and
// is not serialized.
func SaveSnapshot(snap *Snapshot, path string) error {
	if snap == nil {
		return fmt.Errorf("save snapshot: nil snapshot")
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	data, err := msgpack.Marshal(snap)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	// Rename keeps readers from ever seeing a half-written cache.
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	log.Debugf("Saved catalog snapshot to %s (%d bytes)", path, len(data))
	return nil
}

// LoadSnapshot reads a cached snapshot back and rebuilds the name index.
// A missing or corrupt cache file is an error the caller is expected to
// treat as "fetch the tree instead", never as fatal.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("load snapshot: decode %s: %w", path, err)
	}
	snap.buildIndex()
	log.Debugf("Loaded catalog snapshot from %s: %d categories, %d subcategories, %d products",
		path, len(snap.Categories), len(snap.Subcategories), len(snap.Products))
	return &snap, nil
}
