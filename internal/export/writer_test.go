package export

import (
	"creator-yield/internal/yield"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	ds := Build([]string{"creator8", "creator26", "creator8"}, time.March)
	require.Len(t, ds.Snapshots, 2)
	assert.Equal(t, "creator26", ds.Snapshots[1].CreatorID)
	assert.Equal(t, 16.34, ds.Snapshots[1].LastYield)
	assert.Equal(t, "Mar", ds.Snapshots[0].Series[yield.MonthCount-1].Label)
}

func TestWriteDataset(t *testing.T) {
	dir := t.TempDir()
	ds := Build([]string{"creator8", "🚀rocket"}, 0)
	require.NoError(t, WriteDataset(ds, dir))

	raw, err := os.ReadFile(filepath.Join(dir, "index.json"))
	require.NoError(t, err)
	var index []indexEntry
	require.NoError(t, json.Unmarshal(raw, &index))
	require.Len(t, index, 2)
	assert.Equal(t, "001-creator8.json", index[0].File)
	assert.Equal(t, "002-_rocket.json", index[1].File)

	raw, err = os.ReadFile(filepath.Join(dir, index[1].File))
	require.NoError(t, err)
	var snap yield.Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	assert.Equal(t, yield.SnapshotFor("🚀rocket", 0), snap)
}

func TestFileSafe(t *testing.T) {
	assert.Equal(t, "emma-chamberlain", FileSafe("emma-chamberlain"))
	assert.Equal(t, "a_b", FileSafe("a/b"))
	assert.Equal(t, "creator", FileSafe("日本"))
}
