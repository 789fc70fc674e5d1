package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	cfg "github.com/automoto/beatdodge/config"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// ErrNoMusic is returned when a map directory holds no playable audio.
var ErrNoMusic = errors.New("no music file found")

var musicExts = []string{".mp3", ".ogg", ".wav"}

// AudioLoader handles loading beatmap music and synthesized cues
type AudioLoader struct {
	cues    *CueBank
	context *audio.Context
}

// NewAudioLoader creates a new audio loader with the given context
func NewAudioLoader(ctx *audio.Context, cues *CueBank) *AudioLoader {
	return &AudioLoader{
		cues:    cues,
		context: ctx,
	}
}

// PreloadCues renders every cue now to avoid a stall on first play.
func (l *AudioLoader) PreloadCues() {
	l.cues.PCM(cfg.SoundNone)
}

// LoadCue returns a new player for a synthesized cue.
func (l *AudioLoader) LoadCue(id cfg.SoundID) (*audio.Player, error) {
	pcm := l.cues.PCM(id)
	if pcm == nil {
		return nil, fmt.Errorf("no cue for sound %d", id)
	}
	return l.context.NewPlayer(bytes.NewReader(pcm))
}

// LoadMusicFile decodes a music file from disk into a player that plays once.
func (l *AudioLoader) LoadMusicFile(path string) (*audio.Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read music file %s: %w", path, err)
	}

	stream, err := decode(l.context.SampleRate(), path, data)
	if err != nil {
		return nil, err
	}
	return l.context.NewPlayer(stream)
}

func decode(sampleRate int, path string, data []byte) (io.Reader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp3":
		stream, err := mp3.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode mp3 %s: %w", path, err)
		}
		return stream, nil

	case ".ogg":
		stream, err := vorbis.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode ogg %s: %w", path, err)
		}
		return stream, nil

	case ".wav":
		stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode wav %s: %w", path, err)
		}
		return stream, nil
	}
	return nil, fmt.Errorf("unsupported audio format: %s", ext)
}

// FindMusic resolves the music for a map: the named file next to the map if
// it exists, otherwise the first supported audio file in the same directory.
func FindMusic(mapPath, audioFilename string) (string, error) {
	dir := filepath.Dir(mapPath)
	if audioFilename != "" {
		named := filepath.Join(dir, audioFilename)
		if _, err := os.Stat(named); err == nil && isMusic(named) {
			return named, nil
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read map directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isMusic(entry.Name()) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("%s: %w", dir, ErrNoMusic)
}

func isMusic(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range musicExts {
		if ext == e {
			return true
		}
	}
	return false
}
