package beatmap

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Hit-object type bits.
const (
	typeCircle  = 1 << 0
	typeSlider  = 1 << 1
	typeSpinner = 1 << 3
)

// LoadFile opens and parses a .osu file.
func LoadFile(path string) (*Beatmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open beatmap %s: %w", path, err)
	}
	defer f.Close()

	bm, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse beatmap %s: %w", path, err)
	}
	return bm, nil
}

// ListDir returns the .osu files in dir sorted by name.
func ListDir(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.osu"))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	return matches, nil
}

// Parse reads a beatmap. Bad timing values fall back to defaults and bad
// hit-object lines are skipped, each with a logged warning; only a read
// failure is returned as an error.
func Parse(r io.Reader) (*Beatmap, error) {
	bm := &Beatmap{Timing: DefaultTiming()}
	beatFound := false
	section := ""
	lineNo := 0

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = line[1 : len(line)-1]
			continue
		}

		switch section {
		case "General":
			if k, v, ok := keyValue(line); ok && k == "AudioFilename" {
				bm.AudioFilename = v
			}
		case "Metadata":
			if k, v, ok := keyValue(line); ok {
				switch k {
				case "Title":
					bm.Title = v
				case "Artist":
					bm.Artist = v
				case "Version":
					bm.Version = v
				}
			}
		case "Difficulty":
			parseDifficulty(bm, line, lineNo)
		case "TimingPoints":
			if !beatFound {
				beatFound = parseTimingPoint(bm, line, lineNo)
			}
		case "HitObjects":
			parseHitObject(bm, line, lineNo)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	bm.Timing.Sanitize()
	return bm, nil
}

func keyValue(line string) (key, value string, ok bool) {
	k, v, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	return strings.TrimSpace(k), strings.TrimSpace(v), true
}

func parseDifficulty(bm *Beatmap, line string, lineNo int) {
	k, v, ok := keyValue(line)
	if !ok {
		return
	}
	switch k {
	case "ApproachRate":
		ar, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Printf("Warning: line %d: bad ApproachRate %q, keeping %vms", lineNo, v, bm.Timing.ApproachMs)
			return
		}
		bm.Timing.ApproachMs = ApproachFromAR(ar)
	case "SliderMultiplier":
		m, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Printf("Warning: line %d: bad SliderMultiplier %q, keeping %v", lineNo, v, bm.Timing.SliderMultiplier)
			return
		}
		bm.Timing.SliderMultiplier = m
	}
}

// parseTimingPoint takes the beat length from the first uninherited point.
func parseTimingPoint(bm *Beatmap, line string, lineNo int) bool {
	f := strings.Split(line, ",")
	if len(f) <= 6 || strings.TrimSpace(f[6]) != "1" {
		return false
	}
	beat, err := strconv.ParseFloat(strings.TrimSpace(f[1]), 64)
	if err != nil {
		log.Printf("Warning: line %d: bad beat length %q, keeping %vms", lineNo, f[1], bm.Timing.BeatLengthMs)
		return false
	}
	bm.Timing.BeatLengthMs = beat
	return true
}

func parseHitObject(bm *Beatmap, line string, lineNo int) {
	f := strings.Split(line, ",")
	if len(f) < 4 {
		log.Printf("Warning: line %d: hit object has %d fields, skipping", lineNo, len(f))
		return
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(f[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(f[1]), 64)
	t, errT := strconv.ParseInt(strings.TrimSpace(f[2]), 10, 64)
	typ, errTyp := strconv.Atoi(strings.TrimSpace(f[3]))
	if errX != nil || errY != nil || errT != nil || errTyp != nil || !finite(x) || !finite(y) {
		log.Printf("Warning: line %d: malformed hit object %q, skipping", lineNo, line)
		return
	}

	switch {
	case typ&typeSlider != 0 && len(f) > 7:
		s, err := parseSlider(x, y, t, f)
		if err != nil {
			log.Printf("Warning: line %d: %v, skipping", lineNo, err)
			return
		}
		bm.Sliders = append(bm.Sliders, s)
	case typ&typeSpinner != 0 && len(f) > 5:
		end, err := strconv.ParseInt(strings.TrimSpace(f[5]), 10, 64)
		if err != nil || end < t {
			log.Printf("Warning: line %d: bad spinner end %q, skipping", lineNo, f[5])
			return
		}
		bm.Spinners = append(bm.Spinners, Spinner{X: x, Y: y, StartTime: t, EndTime: end})
	case typ&typeCircle != 0:
		bm.HitPoints = append(bm.HitPoints, HitPoint{X: x, Y: y, Time: t})
	}
}

func parseSlider(x, y float64, t int64, f []string) (Slider, error) {
	repeats, err := strconv.Atoi(strings.TrimSpace(f[6]))
	if err != nil {
		return Slider{}, fmt.Errorf("bad slider repeats %q", f[6])
	}
	pixelLen, err := strconv.ParseFloat(strings.TrimSpace(f[7]), 64)
	if err != nil || pixelLen < 0 || !finite(pixelLen) {
		return Slider{}, fmt.Errorf("bad slider length %q", f[7])
	}

	parts := strings.Split(strings.TrimSpace(f[5]), "|")
	s := Slider{
		StartTime:     t,
		Repeats:       repeats,
		PixelLength:   pixelLen,
		CurveType:     parts[0],
		ControlPoints: []Point{{X: x, Y: y}},
	}
	for _, p := range parts[1:] {
		xs, ys, ok := strings.Cut(p, ":")
		if !ok {
			return Slider{}, fmt.Errorf("bad slider point %q", p)
		}
		px, errX := strconv.ParseFloat(xs, 64)
		py, errY := strconv.ParseFloat(ys, 64)
		if errX != nil || errY != nil || !finite(px) || !finite(py) {
			return Slider{}, fmt.Errorf("bad slider point %q", p)
		}
		s.ControlPoints = append(s.ControlPoints, Point{X: px, Y: py})
	}
	return s, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
