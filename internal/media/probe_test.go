package media

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProbeOutput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"typical", `{"format":{"duration":"217.338776"}}`, 217338776 * time.Microsecond, false},
		{"numeric", `{"format":{"duration":3.5}}`, 3500 * time.Millisecond, false},
		{"missing", `{"format":{}}`, 0, true},
		{"not json", `N/A`, 0, true},
		{"negative", `{"format":{"duration":"-1"}}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseProbeOutput([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, float64(tt.expected), float64(d), float64(time.Microsecond))
		})
	}
}

func TestProber_FallbackOnGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.mp3")
	require.NoError(t, os.WriteFile(path, []byte("not an mp3"), 0o644))

	p := NewProber("", zerolog.Nop())
	_, err := p.Probe(context.Background(), path)
	assert.Error(t, err)

	_, err = p.Probe(context.Background(), filepath.Join(t.TempDir(), "missing.mp3"))
	assert.Error(t, err)
}

func TestToolPath(t *testing.T) {
	dir := t.TempDir()
	ffmpeg := filepath.Join(dir, "ffmpeg")
	ffprobe := filepath.Join(dir, "ffprobe")
	require.NoError(t, os.WriteFile(ffmpeg, nil, 0o755))
	require.NoError(t, os.WriteFile(ffprobe, nil, 0o755))

	assert.Equal(t, ffprobe, ToolPath(dir, FFprobeCommand))
	assert.Equal(t, ffmpeg, ToolPath(ffmpeg, FFmpegCommand))
	assert.Equal(t, ffprobe, ToolPath(ffmpeg, FFprobeCommand))
	assert.Equal(t, "", ToolPath(dir, MPVCommand))
	assert.Equal(t, "", ToolPath(filepath.Join(dir, "nope"), FFmpegCommand))
}
