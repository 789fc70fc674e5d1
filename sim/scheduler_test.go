package sim

import (
	"math"
	"testing"

	"github.com/automoto/beatdodge/beatmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dmath "github.com/yohamta/donburi/features/math"
)

func testPlayfield() Playfield {
	return NewPlayfield(Bounds{W: 800, H: 600}, beatmap.SourceWidth, beatmap.SourceHeight)
}

func TestBuildScheduleMergesAndSorts(t *testing.T) {
	bm := &beatmap.Beatmap{
		Timing: beatmap.Timing{ApproachMs: 500, SliderMultiplier: 1.4, BeatLengthMs: 500},
		HitPoints: []beatmap.HitPoint{
			{X: 256, Y: 192, Time: 3000},
			{X: 0, Y: 0, Time: 1000},
		},
		Sliders: []beatmap.Slider{{
			StartTime:     1200,
			Repeats:       2,
			PixelLength:   140, // one pass = 140/140*500 = 500ms
			ControlPoints: []beatmap.Point{{X: 0, Y: 0}, {X: 128, Y: 0}, {X: 256, Y: 0}},
		}},
	}

	events := BuildSchedule(bm, testPlayfield(), 6)
	require.Len(t, events, 4)

	triggers := make([]int64, len(events))
	for i, ev := range events {
		triggers[i] = ev.Trigger
	}
	assert.Equal(t, []int64{500, 1450, 1700, 2500}, triggers)

	assert.Equal(t, SpawnHitPoint, events[0].Kind)
	assert.Equal(t, dmath.Vec2{X: 0, Y: -6}, events[0].Position, "hit points enter above the top edge")

	assert.Equal(t, SpawnSliderPoint, events[1].Kind)
	assert.InDelta(t, 200, events[1].Position.X, 1e-9)
	assert.InDelta(t, 400, events[2].Position.X, 1e-9)

	assert.InDelta(t, 400, events[3].Position.X, 1e-9)
}

func TestBuildScheduleUnusableSliderLengthSpawnsAtStart(t *testing.T) {
	for _, length := range []float64{math.NaN(), math.Inf(1), -100} {
		bm := &beatmap.Beatmap{
			Timing: beatmap.Timing{ApproachMs: 500, SliderMultiplier: 1.4, BeatLengthMs: 500},
			Sliders: []beatmap.Slider{{
				StartTime:     5000,
				Repeats:       1,
				PixelLength:   length,
				ControlPoints: []beatmap.Point{{X: 100, Y: 100}, {X: 200, Y: 100}, {X: 300, Y: 100}},
			}},
		}
		events := BuildSchedule(bm, testPlayfield(), 6)
		require.Len(t, events, 2)
		for _, ev := range events {
			assert.Equal(t, int64(5000), ev.Trigger, "length %v", length)
		}
	}
}

func TestBuildScheduleIsStableForEqualTriggers(t *testing.T) {
	bm := &beatmap.Beatmap{
		Timing: beatmap.Timing{ApproachMs: 0, SliderMultiplier: 1, BeatLengthMs: 100},
		HitPoints: []beatmap.HitPoint{
			{X: 10, Time: 100},
			{X: 20, Time: 100},
			{X: 30, Time: 100},
		},
	}
	events := BuildSchedule(bm, NewPlayfield(Bounds{W: 512, H: 384}, 512, 384), 1)
	require.Len(t, events, 3)
	assert.Equal(t, 10.0, events[0].Position.X)
	assert.Equal(t, 20.0, events[1].Position.X)
	assert.Equal(t, 30.0, events[2].Position.X)
}

// N hit points plus M slider points produce exactly N+M spawns, in
// non-decreasing trigger order, none before its trigger.
func TestSchedulerSpawnMonotonicity(t *testing.T) {
	bm := &beatmap.Beatmap{Timing: beatmap.Timing{ApproachMs: 450, SliderMultiplier: 1.4, BeatLengthMs: 400}}
	for i := 0; i < 40; i++ {
		bm.HitPoints = append(bm.HitPoints, beatmap.HitPoint{X: float64(i * 12), Y: 100, Time: int64(600 + i*137)})
	}
	sliderPoints := 0
	for i := 0; i < 6; i++ {
		s := beatmap.Slider{
			StartTime:   int64(900 + i*700),
			Repeats:     1,
			PixelLength: 210,
		}
		for k := 0; k <= i%3+1; k++ {
			s.ControlPoints = append(s.ControlPoints, beatmap.Point{X: float64(40 * k), Y: float64(30 * i)})
		}
		sliderPoints += len(s.ControlPoints) - 1
		bm.Sliders = append(bm.Sliders, s)
	}

	sched := NewScheduler(BuildSchedule(bm, testPlayfield(), 6))
	require.Equal(t, len(bm.HitPoints)+sliderPoints, sched.Len())

	var emitted []SpawnEvent
	var emittedAt []int64
	// a jittery clock with occasional backward steps
	samples := []int64{}
	for ms := int64(0); ms < 8000; ms += 16 {
		samples = append(samples, ms)
		if ms%160 == 0 {
			samples = append(samples, ms-40)
		}
	}
	var mono Monotonic
	for _, raw := range samples {
		elapsed, _ := mono.Observe(raw)
		sched.Advance(elapsed, func(ev SpawnEvent) {
			emitted = append(emitted, ev)
			emittedAt = append(emittedAt, elapsed)
		})
	}

	require.True(t, sched.Done())
	require.Len(t, emitted, len(bm.HitPoints)+sliderPoints)
	for i := range emitted {
		assert.LessOrEqual(t, emitted[i].Trigger, emittedAt[i], "never spawned early")
		if i > 0 {
			assert.LessOrEqual(t, emitted[i-1].Trigger, emitted[i].Trigger)
		}
	}
}

func TestSchedulerIgnoresBackwardJumps(t *testing.T) {
	sched := NewScheduler([]SpawnEvent{{Trigger: 100}, {Trigger: 200}, {Trigger: 300}})
	count := 0
	emit := func(SpawnEvent) { count++ }

	assert.Equal(t, 2, sched.Advance(250, emit))
	assert.Equal(t, 0, sched.Advance(50, emit), "rewinding the clock releases nothing")
	assert.Equal(t, 0, sched.Advance(250, emit), "already released events are not re-emitted")
	assert.Equal(t, 1, sched.Advance(300, emit))
	assert.Equal(t, 3, count)
}

func TestSchedulerCatchUpSkipsWithoutEmitting(t *testing.T) {
	sched := NewScheduler([]SpawnEvent{{Trigger: 100}, {Trigger: 200}, {Trigger: 300}, {Trigger: 400}})
	sched.Advance(100, func(SpawnEvent) {})
	require.Equal(t, 1, sched.Cursor())

	assert.Equal(t, 2, sched.CatchUp(350))
	assert.Equal(t, 3, sched.Cursor())
	assert.Equal(t, 1, sched.Remaining())

	sched.Reset()
	assert.Equal(t, 0, sched.Cursor())
}

// A hit at 1000ms with a 500ms approach spawns at 500ms aimed at where the
// player stands then, and leaves the store once it has passed the bottom
// edge by more than its radius.
func TestApproachTimeScenario(t *testing.T) {
	bounds := Bounds{W: 800, H: 600}
	pf := NewPlayfield(bounds, beatmap.SourceWidth, beatmap.SourceHeight)
	bm := &beatmap.Beatmap{
		Timing:    beatmap.Timing{ApproachMs: 500, SliderMultiplier: 1.4, BeatLengthMs: 500},
		HitPoints: []beatmap.HitPoint{{X: 256, Y: 0, Time: 1000}},
	}
	const radius = 6.0
	sched := NewScheduler(BuildSchedule(bm, pf, radius))
	store := NewStore(bounds, 32, 8)
	player := NewPlayer(dmath.Vec2{X: 400, Y: 500}, 20, 10, 3)

	var spawned []Handle
	emit := func(ev SpawnEvent) {
		spawned = append(spawned, store.Spawn(OriginNormal, ev.Position,
			Aimed(ModelConstant, ev.Position, player.Pos, 300, bm.Timing.ApproachMs), radius))
	}

	sched.Advance(499, emit)
	assert.Empty(t, spawned)
	sched.Advance(500, emit)
	require.Len(t, spawned, 1)

	p, ok := store.Get(spawned[0])
	require.True(t, ok)
	assert.Equal(t, dmath.Vec2{X: 400, Y: -radius}, p.Pos)
	assert.InDelta(t, 0, p.Vel.X, 1e-9, "aimed straight at the player below")
	assert.InDelta(t, 300, p.Vel.Y, 1e-9)

	// the player moving afterwards does not steer the projectile
	player.Pos = dmath.Vec2{X: 100, Y: 500}

	var removedAfter int
	for tick := 1; tick <= 400; tick++ {
		if removed := store.Tick(1.0 / 60); len(removed) > 0 {
			removedAfter = tick
			break
		}
		p, _ := store.Get(spawned[0])
		assert.LessOrEqual(t, p.Pos.Y, bounds.H+radius)
	}
	require.NotZero(t, removedAfter)
	// 612px of travel at 5px per tick is 123 ticks before it is strictly past the margin
	assert.Equal(t, 123, removedAfter)
}
