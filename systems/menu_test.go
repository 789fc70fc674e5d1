package systems

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMapEntries(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "a.osu")
	require.NoError(t, os.WriteFile(good, []byte(menuMap), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	history := []RunRecord{{Map: good, Cleared: true, ElapsedMs: 65000, Hits: 1}}
	entries, err := LoadMapEntries(dir, history)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, good, entries[0].Path)
	assert.Equal(t, "Artist - Song [Easy]", entries[0].Name)
	assert.Equal(t, 2, entries[0].Objects)
	assert.Equal(t, "1:05 (1 hits)", entries[0].Best)
}

func TestVisibleRange(t *testing.T) {
	first, last := visibleRange(0, 3, 10)
	assert.Equal(t, 0, first)
	assert.Equal(t, 3, last)

	first, last = visibleRange(7, 20, 10)
	assert.Equal(t, 2, first)
	assert.Equal(t, 12, last)

	first, last = visibleRange(19, 20, 10)
	assert.Equal(t, 10, first)
	assert.Equal(t, 20, last)
}

const menuMap = `osu file format v14

[Metadata]
Title:Song
Artist:Artist
Version:Easy

[TimingPoints]
0,500,4,2,0,50,1,0

[HitObjects]
256,192,1000,1,0,0:0:0:0:
256,192,2000,12,0,3000,0:0:0:0:
`
