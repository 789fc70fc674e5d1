package assets

import (
	"math"
	"math/rand"
	"sync"
	"time"

	cfg "github.com/automoto/beatdodge/config"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// oscillator generates a wave whose frequency slides linearly from freq to
// sweepTo over its duration.
type oscillator struct {
	freq     float64
	sweepTo  float64
	phase    float64
	duration int
	position int
	wave     cfg.Waveform
	rate     beep.SampleRate
	rng      *rand.Rand
}

func newOscillator(c cfg.CueConfig, freq float64, wave cfg.Waveform, rate beep.SampleRate, seed int64) beep.Streamer {
	sweep := c.SweepTo
	if sweep <= 0 {
		sweep = freq
	}
	return &oscillator{
		freq:     freq,
		sweepTo:  sweep,
		duration: rate.N(time.Duration(c.DurationMs) * time.Millisecond),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case cfg.WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case cfg.WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case cfg.WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.sweepTo-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, c cfg.CueConfig, rate beep.SampleRate) beep.Streamer {
	total := rate.N(time.Duration(c.DurationMs) * time.Millisecond)
	att := rate.N(time.Duration(c.AttackMs) * time.Millisecond)
	rel := rate.N(time.Duration(c.ReleaseMs) * time.Millisecond)
	if att+rel > total {
		rel = total - att
		if rel < 0 {
			att, rel = total, 0
		}
	}
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Min(vol, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume goes silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// cueStreamer builds the shaped streamer for one cue. Noise cues with a
// frequency get a sine body mixed under the noise.
func cueStreamer(c cfg.CueConfig, rate beep.SampleRate, seed int64) beep.Streamer {
	var s beep.Streamer
	if c.Wave == cfg.WaveNoise && c.Frequency > 0 {
		noise := newOscillator(c, 0, cfg.WaveNoise, rate, seed)
		body := newOscillator(c, c.Frequency, cfg.WaveSine, rate, seed)
		s = beep.Mix(newVolume(noise, 0.6), newVolume(body, 0.4))
	} else {
		s = newOscillator(c, c.Frequency, c.Wave, rate, seed)
	}
	return newVolume(newEnvelope(s, c, rate), c.Gain)
}

// RenderCue synthesizes a cue to 16-bit little-endian stereo PCM, the format
// an ebiten audio player reads.
func RenderCue(c cfg.CueConfig, sampleRate int) []byte {
	rate := beep.SampleRate(sampleRate)
	total := rate.N(time.Duration(c.DurationMs) * time.Millisecond)
	if total <= 0 {
		return nil
	}
	s := beep.Take(total, cueStreamer(c, rate, int64(c.DurationMs)))

	out := make([]byte, 0, total*4)
	buf := make([][2]float64, 512)
	for rendered := 0; rendered < total; {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			out = appendSample(out, frame[0])
			out = appendSample(out, frame[1])
		}
		rendered += n
		if !ok || n == 0 {
			break
		}
	}
	return out
}

func appendSample(out []byte, v float64) []byte {
	v = math.Max(-1, math.Min(1, v))
	s := int16(v * math.MaxInt16)
	return append(out, byte(s), byte(s>>8))
}

// CueBank synthesizes every configured cue once, on first use, and hands
// out the shared PCM.
type CueBank struct {
	once       sync.Once
	sampleRate int
	cues       map[cfg.SoundID]cfg.CueConfig
	pcm        map[cfg.SoundID][]byte
}

func NewCueBank(sampleRate int, cues map[cfg.SoundID]cfg.CueConfig) *CueBank {
	return &CueBank{sampleRate: sampleRate, cues: cues}
}

// PCM returns the rendered bytes for id, or nil for an unknown sound.
func (b *CueBank) PCM(id cfg.SoundID) []byte {
	b.once.Do(func() {
		b.pcm = make(map[cfg.SoundID][]byte, len(b.cues))
		for sid, c := range b.cues {
			b.pcm[sid] = RenderCue(c, b.sampleRate)
		}
	})
	return b.pcm[id]
}
