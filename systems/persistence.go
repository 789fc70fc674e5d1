package systems

import (
	"encoding/json"
	"log"
	"time"

	"github.com/automoto/beatdodge/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata"
	"github.com/segmentio/ksuid"
)

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	MusicVolume float64 `json:"musicVolume"`
	SFXVolume   float64 `json:"sfxVolume"`
	Muted       bool    `json:"muted"`
	Fullscreen  bool    `json:"fullscreen"`
}

// RunRecord is one finished attempt at a map.
type RunRecord struct {
	ID        string    `json:"id"`
	Map       string    `json:"map"`
	Title     string    `json:"title"`
	Cleared   bool      `json:"cleared"`
	ElapsedMs int64     `json:"elapsedMs"`
	LivesLeft int       `json:"livesLeft"`
	Hits      int       `json:"hits"`
	BombsUsed int       `json:"bombsUsed"`
	PlayedAt  time.Time `json:"playedAt"`
}

const (
	settingsKey  = "settings"
	historyKey   = "runs"
	historyLimit = 50
)

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "beatdodge",
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadSettings loads settings from disk
func LoadSettings() (*SavedSettings, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem(settingsKey)
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
		return nil, nil
	}
	if data == nil {
		// No saved settings yet, use defaults
		return nil, nil
	}

	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return nil, err
	}

	return &settings, nil
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("Warning: Could not serialize settings: %v", err)
		return err
	}

	if err := gdataManager.SaveItem(settingsKey, data); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
		return err
	}
	return nil
}

// ApplySavedSettingsGlobal applies settings without needing an ECS reference.
// Used during startup before the first scene exists.
func ApplySavedSettingsGlobal(saved *SavedSettings) {
	if saved == nil {
		return
	}

	SetMusicVolume(saved.MusicVolume)
	SetSFXVolume(saved.SFXVolume)
	if saved.Muted {
		SetMusicVolume(0)
		SetSFXVolume(0)
	}

	ebiten.SetFullscreen(saved.Fullscreen)
}

// ApplyVolumeOverrides sets the volumes a config file names on top of the
// saved settings and saves the result, so the file wins for this launch and
// the ones after it. A nil volume keeps the current value.
func ApplyVolumeOverrides(music, sfx *float64) bool {
	if music == nil && sfx == nil {
		return false
	}
	if music != nil {
		SetMusicVolume(*music)
	}
	if sfx != nil {
		SetSFXVolume(*sfx)
	}
	_ = SaveSettings(CurrentSettings())
	return true
}

// CurrentSettings captures the live audio settings for saving.
func CurrentSettings() *SavedSettings {
	return &SavedSettings{
		MusicVolume: GetMusicVolume(),
		SFXVolume:   GetSFXVolume(),
		Muted:       GetMusicVolume() == 0 && GetSFXVolume() == 0,
		Fullscreen:  ebiten.IsFullscreen(),
	}
}

// LoadRunHistory returns past runs, newest last.
func LoadRunHistory() []RunRecord {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := gdataManager.LoadItem(historyKey)
	if err != nil || data == nil {
		return nil
	}

	var history []RunRecord
	if err := json.Unmarshal(data, &history); err != nil {
		log.Printf("Warning: Could not parse run history: %v", err)
		return nil
	}
	return history
}

// RecordRun appends the finished run to the history on disk and returns the
// history as it was before this run.
func RecordRun(result components.RunResult, mapPath string) []RunRecord {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	previous := LoadRunHistory()
	rec := newRunRecord(result, mapPath, time.Now())
	history := appendRun(append([]RunRecord(nil), previous...), rec, historyLimit)

	data, err := json.Marshal(history)
	if err != nil {
		log.Printf("Warning: Could not serialize run history: %v", err)
		return previous
	}
	if err := gdataManager.SaveItem(historyKey, data); err != nil {
		log.Printf("Warning: Could not save run history: %v", err)
	}
	return previous
}

func newRunRecord(result components.RunResult, mapPath string, now time.Time) RunRecord {
	id, err := ksuid.NewRandomWithTime(now)
	if err != nil {
		id = ksuid.New()
	}
	return RunRecord{
		ID:        id.String(),
		Map:       mapPath,
		Title:     result.Title,
		Cleared:   result.Cleared,
		ElapsedMs: result.ElapsedMs,
		LivesLeft: result.Lives,
		Hits:      result.Hits,
		BombsUsed: result.BombsUsed,
		PlayedAt:  now.UTC(),
	}
}

// appendRun keeps at most limit records, dropping the oldest.
func appendRun(history []RunRecord, rec RunRecord, limit int) []RunRecord {
	history = append(history, rec)
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	return history
}

// BestClear returns the best cleared run for mapPath: fewest hits, then
// fastest.
func BestClear(history []RunRecord, mapPath string) (RunRecord, bool) {
	var best RunRecord
	found := false
	for _, r := range history {
		if r.Map != mapPath || !r.Cleared {
			continue
		}
		if !found || r.Hits < best.Hits || (r.Hits == best.Hits && r.ElapsedMs < best.ElapsedMs) {
			best = r
			found = true
		}
	}
	return best, found
}

func clampUnit(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
