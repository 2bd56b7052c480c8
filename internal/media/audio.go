package media

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/rs/zerolog"
)

// MixerSampleRate is the fixed output rate; tracks are resampled to it.
const MixerSampleRate beep.SampleRate = 44100

// speaker buffer length
const speakerBuffer = time.Second / 10

var errNotLoaded = errors.New("no audio loaded")

// AudioClock plays one mp3 at a time through the system speaker. Its
// position is the reference clock of the player.
type AudioClock struct {
	mu       sync.Mutex
	initOnce sync.Once
	initErr  error

	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	muted    bool

	log zerolog.Logger
}

// NewAudioClock creates an idle audio clock. The speaker is opened on the
// first Load.
func NewAudioClock(log zerolog.Logger) *AudioClock {
	return &AudioClock{log: log.With().Str("component", "audio").Logger()}
}

func (a *AudioClock) initSpeaker() error {
	a.initOnce.Do(func() {
		a.initErr = speaker.Init(MixerSampleRate, MixerSampleRate.N(speakerBuffer))
	})
	return a.initErr
}

// Load decodes path and queues it paused at position 0, replacing the
// previous track.
func (a *AudioClock) Load(path string) error {
	if err := a.initSpeaker(); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("decode: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	speaker.Clear()
	if a.streamer != nil {
		a.streamer.Close()
	}

	ctrl := &beep.Ctrl{Streamer: streamer, Paused: true}
	var out beep.Streamer = ctrl
	if format.SampleRate != MixerSampleRate {
		out = beep.Resample(4, format.SampleRate, MixerSampleRate, ctrl)
	}
	volume := &effects.Volume{Streamer: out, Base: 2, Silent: a.muted}

	a.streamer, a.format, a.ctrl, a.volume = streamer, format, ctrl, volume
	speaker.Play(volume)

	a.log.Debug().Str("file", path).Int("rate", int(format.SampleRate)).Msg("loaded")
	return nil
}

// Play resumes output
func (a *AudioClock) Play() error {
	return a.setPaused(false)
}

// Pause holds output at the current position
func (a *AudioClock) Pause() error {
	return a.setPaused(true)
}

func (a *AudioClock) setPaused(paused bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ctrl == nil {
		return errNotLoaded
	}
	speaker.Lock()
	a.ctrl.Paused = paused
	speaker.Unlock()
	return nil
}

// Position returns the playback position of the loaded track
func (a *AudioClock) Position() (time.Duration, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.streamer == nil {
		return 0, errNotLoaded
	}
	speaker.Lock()
	pos := a.streamer.Position()
	speaker.Unlock()
	return a.format.SampleRate.D(pos), nil
}

// Seek moves to pos, clamped to the track
func (a *AudioClock) Seek(pos time.Duration) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.streamer == nil {
		return errNotLoaded
	}

	speaker.Lock()
	defer speaker.Unlock()
	n := a.format.SampleRate.N(pos)
	n = min(max(n, 0), max(a.streamer.Len()-1, 0))
	return a.streamer.Seek(n)
}

// SetMuted silences output without pausing it
func (a *AudioClock) SetMuted(muted bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.muted = muted
	if a.volume != nil {
		speaker.Lock()
		a.volume.Silent = muted
		speaker.Unlock()
	}
	return nil
}

// Close stops output and releases the decoder
func (a *AudioClock) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.streamer == nil {
		return nil
	}
	speaker.Clear()
	err := a.streamer.Close()
	a.streamer, a.ctrl, a.volume = nil, nil, nil
	return err
}
