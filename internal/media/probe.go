package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/gopxl/beep/v2/mp3"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// ffprobe arguments
const (
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "json"
	ProbeTimeout        = 10 * time.Second
)

// Prober reads media durations. ffprobe is preferred; mp3 files fall back to
// counting decoded frames when ffprobe is missing or fails.
type Prober struct {
	ffprobe string
	log     zerolog.Logger
}

// NewProber creates a prober. ffprobe is the executable path, empty to rely
// on the fallback only.
func NewProber(ffprobe string, log zerolog.Logger) *Prober {
	return &Prober{
		ffprobe: ffprobe,
		log:     log.With().Str("component", "prober").Logger(),
	}
}

// Probe returns the duration of the file at path.
func (p *Prober) Probe(ctx context.Context, path string) (time.Duration, error) {
	if p.ffprobe != "" {
		d, err := p.probeFFprobe(ctx, path)
		if err == nil && d > 0 {
			return d, nil
		}
		p.log.Debug().Err(err).Str("file", path).Msg("ffprobe failed, decoding")
	}
	return DecodeDuration(path)
}

func (p *Prober) probeFFprobe(ctx context.Context, path string) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.ffprobe,
		"-v", FFprobeLogLevel,
		"-show_entries", FFprobeShowEntries,
		"-of", FFprobeOutputFormat,
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}
	return ParseProbeOutput(out)
}

// ParseProbeOutput extracts format.duration from ffprobe JSON output.
func ParseProbeOutput(data []byte) (time.Duration, error) {
	if !gjson.ValidBytes(data) {
		return 0, fmt.Errorf("ffprobe output is not JSON")
	}
	v := gjson.GetBytes(data, "format.duration")
	if !v.Exists() {
		return 0, fmt.Errorf("ffprobe output has no format.duration")
	}
	seconds := v.Float()
	if seconds < 0 {
		return 0, fmt.Errorf("negative duration %v", seconds)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// DecodeDuration measures an mp3 by decoding its frame index.
func DecodeDuration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return 0, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()), nil
}
