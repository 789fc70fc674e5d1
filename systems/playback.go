package systems

import (
	"log"
	"time"

	"github.com/automoto/beatdodge/assets"
	"github.com/automoto/beatdodge/components"
	cfg "github.com/automoto/beatdodge/config"
	"github.com/automoto/beatdodge/sim"
	"github.com/yohamta/donburi/ecs"
)

// musicSource is the part of *audio.Player the music clock reads.
type musicSource interface {
	Position() time.Duration
	IsPlaying() bool
	Play()
	Pause()
}

// pausable clocks stop while the pause menu is open.
type pausable interface {
	Pause()
	Resume()
}

// MusicClock reads elapsed time from the music position. When the track
// ends before the map does it keeps counting on a wall clock from the last
// position.
type MusicClock struct {
	music  musicSource
	paused bool
	last   int64
	tail   *sim.WallClock
}

func NewMusicClock(music musicSource) *MusicClock {
	return &MusicClock{music: music}
}

func (c *MusicClock) ElapsedMillis() int64 {
	if c.tail != nil {
		return c.last + c.tail.ElapsedMillis()
	}
	pos := c.music.Position().Milliseconds()
	if !c.paused && !c.music.IsPlaying() && pos > 0 {
		c.last = pos
		c.tail = sim.NewWallClock()
		return c.last
	}
	c.last = pos
	return pos
}

func (c *MusicClock) Pause() {
	if c.paused {
		return
	}
	c.paused = true
	if c.tail != nil {
		c.tail.Pause()
		return
	}
	c.music.Pause()
}

func (c *MusicClock) Resume() {
	if !c.paused {
		return
	}
	c.paused = false
	if c.tail != nil {
		c.tail.Resume()
		return
	}
	c.music.Play()
}

// StartClock loads the map's music and returns a clock driven by it. With
// no playable track it falls back to a wall clock so the map still runs.
func StartClock(mapPath, audioFilename string) (clock sim.Clock, hasMusic bool) {
	path, err := assets.FindMusic(mapPath, audioFilename)
	if err != nil {
		log.Printf("Warning: %v, running on the wall clock", err)
		return sim.NewWallClock(), false
	}

	player, err := LoadBeatmapMusic(path)
	if err != nil {
		log.Printf("Warning: Could not load music %s: %v, running on the wall clock", path, err)
		return sim.NewWallClock(), false
	}
	player.Play()
	return NewMusicClock(player), true
}

// GetOrCreatePlayback returns the singleton Playback component, creating if needed.
func GetOrCreatePlayback(ecs *ecs.ECS) *components.PlaybackData {
	entry, ok := components.Playback.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.Playback))
	}
	return components.Playback.Get(entry)
}

// UpdatePlayback samples the clock once per tick. Elapsed never decreases
// and Dt is capped so a stall cannot teleport projectiles.
func UpdatePlayback(ecs *ecs.ECS) {
	pb := GetOrCreatePlayback(ecs)
	if pb.Clock == nil {
		return
	}

	elapsed, delta := pb.Monotonic.Observe(pb.Clock.ElapsedMillis())
	if delta > cfg.Loop.MaxStepMs {
		delta = cfg.Loop.MaxStepMs
	}
	pb.Elapsed = elapsed
	pb.Dt = delta
	pb.Ticks++
}

// pauseClock freezes or resumes the playback clock along with the pause menu.
func pauseClock(ecs *ecs.ECS, paused bool) {
	pb := GetOrCreatePlayback(ecs)
	p, ok := pb.Clock.(pausable)
	if !ok {
		return
	}
	if paused {
		p.Pause()
	} else {
		p.Resume()
	}
}
