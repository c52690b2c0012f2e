package export

import (
	"creator-yield/internal/yield"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// Dataset is a batch of creator snapshots.
type Dataset struct {
	Snapshots []yield.Snapshot `json:"snapshots"`
}

type indexEntry struct {
	CreatorID string  `json:"creator_id"`
	File      string  `json:"file"`
	LastYield float64 `json:"last_yield"`
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Build computes snapshots for ids in order. Duplicates are kept once.
func Build(ids []string, end time.Month) Dataset {
	seen := make(map[string]bool, len(ids))
	ds := Dataset{Snapshots: make([]yield.Snapshot, 0, len(ids))}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		ds.Snapshots = append(ds.Snapshots, yield.SnapshotFor(id, end))
	}
	return ds
}

// WriteDataset writes one <n>-<creator>.json per snapshot plus index.json under dir.
func WriteDataset(ds Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	index := make([]indexEntry, 0, len(ds.Snapshots))
	for i, snap := range ds.Snapshots {
		name := fmt.Sprintf("%03d-%s.json", i+1, FileSafe(snap.CreatorID))
		if err := writeJSON(filepath.Join(dir, name), snap); err != nil {
			return err
		}
		index = append(index, indexEntry{CreatorID: snap.CreatorID, File: name, LastYield: snap.LastYield})
	}

	return writeJSON(filepath.Join(dir, "index.json"), index)
}

// Encode writes v as indented JSON.
func Encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FileSafe maps a creator id to a file name fragment.
func FileSafe(id string) string {
	s := unsafeChars.ReplaceAllString(id, "_")
	if s == "" || s == "_" {
		return "creator"
	}
	return s
}

func writeJSON(path string, data any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if err := Encode(file, data); err != nil {
		return fmt.Errorf("encode json for %s: %w", path, err)
	}
	return nil
}
