package factory

import (
	"testing"

	"github.com/automoto/beatdodge/beatmap"
	"github.com/automoto/beatdodge/components"
	cfg "github.com/automoto/beatdodge/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/filter"
)

func testMap() *beatmap.Beatmap {
	return &beatmap.Beatmap{
		Title:  "Night Drive",
		Timing: beatmap.DefaultTiming(),
		HitPoints: []beatmap.HitPoint{
			{X: 256, Y: 192, Time: 1000},
			{X: 64, Y: 64, Time: 2500},
		},
		Sliders: []beatmap.Slider{
			{StartTime: 1500, Repeats: 1, PixelLength: 140, ControlPoints: []beatmap.Point{{X: 100, Y: 50}, {X: 200, Y: 50}, {X: 300, Y: 150}}},
			{StartTime: 1800, Repeats: 1, PixelLength: 10, ControlPoints: []beatmap.Point{{X: 5, Y: 5}, {X: 5, Y: 5}}},
		},
		Spinners: []beatmap.Spinner{{X: 256, Y: 192, StartTime: 3000, EndTime: 4000}},
	}
}

func count(w donburi.World, c donburi.IComponentType) int {
	return donburi.NewQuery(filter.Contains(c)).Count(w)
}

func TestCreateSession(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	s := CreateSession(e, testMap(), "night.osu")

	assert.Equal(t, float64(cfg.C.Width), s.Bounds.W)
	assert.Equal(t, float64(cfg.C.Height), s.Bounds.H)
	assert.Equal(t, "night.osu", s.MapPath)
	assert.Equal(t, int64(4000), s.LastEventMs)

	// two hit points plus every control point after a slider head
	assert.Equal(t, 5, s.Scheduler.Len())
	assert.Equal(t, 1, count(e.World, components.Laser), "degenerate slider is skipped")
	assert.Equal(t, 1, count(e.World, components.Spinner))

	assert.Equal(t, s.Bounds.W/2, s.Bomb.Settings().Radius)
	assert.Equal(t, cfg.Bomb.Charges, s.Bomb.Charges())

	entry, ok := components.Session.First(e.World)
	require.True(t, ok)
	assert.Same(t, s, components.Session.Get(entry))
}

func TestCreateSpinnersAreBombResumers(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	s := CreateSession(e, testMap(), "night.osu")

	entry, ok := components.Spinner.First(e.World)
	require.True(t, ok)
	sp := components.Spinner.Get(entry)

	require.True(t, s.Bomb.Activate(s.Bounds.Center(), 2900))
	ended, skipped := s.Bomb.Update(2900 + cfg.Bomb.DurationMs)
	require.True(t, ended)

	assert.Positive(t, sp.Bursts(), "spinner caught up without firing")
	assert.Equal(t, 0, s.Store.Len())
	assert.Equal(t, s.Scheduler.Len()+sp.Bursts(), skipped)
}

func TestCreatePlayerAtBottomCentre(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	s := CreateSession(e, &beatmap.Beatmap{Timing: beatmap.DefaultTiming()}, "")
	entry := CreatePlayer(e, s.Bounds)

	p := components.Player.Get(entry)
	assert.Equal(t, s.Bounds.W/2, p.Pos.X)
	assert.Equal(t, s.Bounds.H-cfg.Player.SpawnBottomOffset, p.Pos.Y)
	assert.Equal(t, cfg.Player.Lives, p.Lives)
}

func TestLoadBeatmapMissingFile(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	_, err := LoadBeatmap(e, "does-not-exist.osu")
	assert.Error(t, err)
}
