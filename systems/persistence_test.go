package systems

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/automoto/beatdodge/components"
	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunRecord(t *testing.T) {
	now := time.Date(2024, 3, 9, 21, 15, 0, 0, time.UTC)
	result := components.RunResult{
		Title:     "Someone - Night Drive [Hard]",
		Cleared:   true,
		ElapsedMs: 95000,
		Lives:     3,
		Hits:      2,
		BombsUsed: 1,
	}

	rec := newRunRecord(result, "maps/night.osu", now)

	id, err := ksuid.Parse(rec.ID)
	require.NoError(t, err)
	assert.True(t, id.Time().Equal(now), "id is ordered by play time")
	assert.Equal(t, "maps/night.osu", rec.Map)
	assert.Equal(t, 3, rec.LivesLeft)
	assert.Equal(t, 2, rec.Hits)
	assert.Equal(t, 1, rec.BombsUsed)
	assert.Equal(t, now, rec.PlayedAt)

	other := newRunRecord(result, "maps/night.osu", now)
	assert.NotEqual(t, rec.ID, other.ID)
}

func TestAppendRunKeepsNewest(t *testing.T) {
	var history []RunRecord
	for i := 0; i < 5; i++ {
		history = appendRun(history, RunRecord{ID: fmt.Sprint(i)}, 3)
	}

	require.Len(t, history, 3)
	assert.Equal(t, "2", history[0].ID)
	assert.Equal(t, "4", history[2].ID)
}

func TestBestClear(t *testing.T) {
	history := []RunRecord{
		{Map: "a.osu", Cleared: false, Hits: 0, ElapsedMs: 1000},
		{Map: "a.osu", Cleared: true, Hits: 2, ElapsedMs: 60000},
		{Map: "a.osu", Cleared: true, Hits: 1, ElapsedMs: 62000},
		{Map: "a.osu", Cleared: true, Hits: 1, ElapsedMs: 61000},
		{Map: "b.osu", Cleared: true, Hits: 0, ElapsedMs: 10},
	}

	best, ok := BestClear(history, "a.osu")
	require.True(t, ok)
	assert.Equal(t, 1, best.Hits)
	assert.Equal(t, int64(61000), best.ElapsedMs)

	_, ok = BestClear(history, "c.osu")
	assert.False(t, ok)
}

func TestClampUnit(t *testing.T) {
	assert.Equal(t, 0.0, clampUnit(-1))
	assert.Equal(t, 0.4, clampUnit(0.4))
	assert.Equal(t, 1.0, clampUnit(3))
	assert.Equal(t, 0.0, clampUnit(math.NaN()))
}

func keepVolumes(t *testing.T) {
	t.Helper()
	music, sfx := GetMusicVolume(), GetSFXVolume()
	t.Cleanup(func() {
		SetMusicVolume(music)
		SetSFXVolume(sfx)
	})
}

func TestApplyVolumeOverrides(t *testing.T) {
	keepVolumes(t)
	SetMusicVolume(0.9)
	SetSFXVolume(0.6)

	assert.False(t, ApplyVolumeOverrides(nil, nil))
	assert.Equal(t, 0.9, GetMusicVolume())

	music := 0.25
	assert.True(t, ApplyVolumeOverrides(&music, nil))
	assert.Equal(t, 0.25, GetMusicVolume())
	assert.Equal(t, 0.6, GetSFXVolume(), "unset volume keeps the saved value")

	loud := 4.0
	ApplyVolumeOverrides(nil, &loud)
	assert.Equal(t, 1.0, GetSFXVolume())
}

func TestSavedSettingsThenFileVolumes(t *testing.T) {
	keepVolumes(t)
	ApplySavedSettingsGlobal(&SavedSettings{MusicVolume: 0.2, SFXVolume: 0.3})
	assert.Equal(t, 0.2, GetMusicVolume())

	sfx := 0.7
	ApplyVolumeOverrides(nil, &sfx)
	current := CurrentSettings()
	assert.Equal(t, 0.2, current.MusicVolume)
	assert.Equal(t, 0.7, current.SFXVolume)
	assert.False(t, current.Muted)
}
