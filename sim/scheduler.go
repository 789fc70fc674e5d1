package sim

import (
	"math"
	"sort"

	"github.com/automoto/beatdodge/beatmap"
	dmath "github.com/yohamta/donburi/features/math"
)

// SpawnKind says which beatmap object produced a spawn event.
type SpawnKind int

const (
	SpawnHitPoint SpawnKind = iota
	SpawnSliderPoint
)

// SpawnEvent is one projectile the schedule will release at Trigger.
type SpawnEvent struct {
	Trigger  int64
	Position dmath.Vec2
	Kind     SpawnKind
}

// BuildSchedule turns a beatmap into the merged, trigger-ordered spawn list.
//
// Hit points trigger one approach time before their hit time and enter from
// the top edge above their x. Slider control points after the head trigger at
// their proportional offset through one pass of the slider, at their mapped
// position.
func BuildSchedule(bm *beatmap.Beatmap, pf Playfield, radius float64) []SpawnEvent {
	events := make([]SpawnEvent, 0, len(bm.HitPoints)+len(bm.Sliders)*4)
	approach := bm.Timing.ApproachMs

	for _, h := range bm.HitPoints {
		p := pf.Map(h.X, h.Y)
		events = append(events, SpawnEvent{
			Trigger:  h.Time - int64(approach),
			Position: dmath.Vec2{X: p.X, Y: -radius},
			Kind:     SpawnHitPoint,
		})
	}

	for _, s := range bm.Sliders {
		n := len(s.ControlPoints)
		if n < 2 {
			continue
		}
		pass := bm.Timing.SinglePassMs(s.PixelLength)
		if !(pass >= 0) || math.IsInf(pass, 0) {
			pass = 0
		}
		for k := 1; k < n; k++ {
			cp := s.ControlPoints[k]
			offset := float64(k) / float64(n-1) * pass
			events = append(events, SpawnEvent{
				Trigger:  s.StartTime + int64(offset),
				Position: pf.Map(cp.X, cp.Y),
				Kind:     SpawnSliderPoint,
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Trigger < events[j].Trigger
	})
	return events
}

// Scheduler releases spawn events in trigger order as elapsed time passes
// them. The cursor only moves forward, so a clock that jumps backwards
// releases nothing and no event is ever released twice.
type Scheduler struct {
	events []SpawnEvent
	cursor int
}

// NewScheduler takes ownership of events, which must already be sorted.
func NewScheduler(events []SpawnEvent) *Scheduler {
	return &Scheduler{events: events}
}

// Advance emits every pending event whose trigger is at or before elapsed
// and returns how many it emitted.
func (s *Scheduler) Advance(elapsed int64, emit func(SpawnEvent)) int {
	n := 0
	for s.cursor < len(s.events) && s.events[s.cursor].Trigger <= elapsed {
		emit(s.events[s.cursor])
		s.cursor++
		n++
	}
	return n
}

// CatchUp consumes every pending event due by elapsed without emitting it
// and returns how many were skipped.
func (s *Scheduler) CatchUp(elapsed int64) int {
	start := s.cursor
	for s.cursor < len(s.events) && s.events[s.cursor].Trigger <= elapsed {
		s.cursor++
	}
	return s.cursor - start
}

// Cursor is the index of the next event to release.
func (s *Scheduler) Cursor() int { return s.cursor }

// Len is the total number of events.
func (s *Scheduler) Len() int { return len(s.events) }

// Remaining is the number of events not yet released or skipped.
func (s *Scheduler) Remaining() int { return len(s.events) - s.cursor }

// Done reports whether every event has been consumed.
func (s *Scheduler) Done() bool { return s.cursor >= len(s.events) }

// Reset rewinds the cursor for a replay of the same map.
func (s *Scheduler) Reset() { s.cursor = 0 }
