package assets

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	cfg "github.com/automoto/beatdodge/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samples(pcm []byte) []int16 {
	out := make([]int16, len(pcm)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(pcm[i*2:]))
	}
	return out
}

func TestRenderCueLengthAndGain(t *testing.T) {
	c := cfg.CueConfig{Wave: cfg.WaveSquare, Frequency: 440, DurationMs: 100, AttackMs: 10, ReleaseMs: 20, Gain: 0.5}
	pcm := RenderCue(c, 44100)

	// 4410 stereo frames of two 16-bit samples
	require.Len(t, pcm, 4410*4)

	s := samples(pcm)
	assert.Zero(t, s[0], "attack starts from silence")
	peak := 0
	for i := 0; i < len(s); i += 2 {
		assert.Equal(t, s[i], s[i+1], "both channels carry the same signal")
		v := int(s[i])
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	assert.InDelta(t, 0.5*32767, float64(peak), 2, "square wave sustains at the configured gain")
	assert.Less(t, abs16(s[len(s)-2]), int16(400), "release fades to near silence")
}

func abs16(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}

func TestRenderCueNoiseWithBody(t *testing.T) {
	c := cfg.Sound.Cues[cfg.SoundBomb]
	pcm := RenderCue(c, 22050)
	require.NotEmpty(t, pcm)
	for _, v := range samples(pcm) {
		assert.LessOrEqual(t, abs16(v), int16(float64(32767)*c.Gain)+1)
	}
}

func TestRenderCueEmpty(t *testing.T) {
	assert.Nil(t, RenderCue(cfg.CueConfig{DurationMs: 0}, 44100))
}

func TestCueBankRendersOnce(t *testing.T) {
	bank := NewCueBank(8000, cfg.Sound.Cues)
	first := bank.PCM(cfg.SoundWarning)
	require.NotEmpty(t, first)
	second := bank.PCM(cfg.SoundWarning)
	assert.Same(t, &first[0], &second[0], "shared buffer, not a re-render")
	assert.Nil(t, bank.PCM(cfg.SoundNone))
}

func TestFindMusic(t *testing.T) {
	dir := t.TempDir()
	mapPath := filepath.Join(dir, "song [Hard].osu")
	require.NoError(t, os.WriteFile(mapPath, nil, 0o644))

	_, err := FindMusic(mapPath, "audio.mp3")
	assert.ErrorIs(t, err, ErrNoMusic)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.ogg"), nil, 0o644))
	got, err := FindMusic(mapPath, "audio.mp3")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "other.ogg"), got, "falls back to any audio file")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "audio.mp3"), nil, 0o644))
	got, err = FindMusic(mapPath, "audio.mp3")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "audio.mp3"), got)
}
