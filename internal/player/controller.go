package player

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ytget/yt-jukebox/internal/catalog"
	"github.com/ytget/yt-jukebox/internal/model"
)

// Sentinel errors
var (
	ErrNoTrack    = errors.New("no track selected")
	ErrNoVideo    = errors.New("no music video for track")
	ErrNoDuration = errors.New("track duration unknown")
	// ErrVideoFailed reports a video pipeline failure. Playback has fallen
	// back to lyrics and the audio carries on.
	ErrVideoFailed = errors.New("video playback failed")
)

// Timing constants
const (
	SyncTolerance = 500 * time.Millisecond
	EndTolerance  = 1000 * time.Millisecond
	SeekStep      = 10 * time.Second
	SampleEvery   = 100 * time.Millisecond
)

// Progress is one sample of the reference clock.
type Progress struct {
	Current  int
	Position time.Duration
	Duration time.Duration
	Fraction float64
	Text     string
	// Advanced is set when this sample moved to the next track.
	Advanced bool
}

// State is a snapshot of the controller.
type State struct {
	Current int
	Track   model.Track
	Playing bool
	Muted   bool
	Mode    model.Mode
	Video   string // loaded video path, empty when none
}

// PlayState derives stopped, playing or paused.
func (s State) PlayState() model.PlayState {
	switch {
	case s.Current == model.NoTrack:
		return model.PlayStateStopped
	case s.Playing:
		return model.PlayStatePlaying
	default:
		return model.PlayStatePaused
	}
}

// Controller owns playback state. It is safe for concurrent use, though the
// UI drives it from a single goroutine.
type Controller struct {
	mu sync.Mutex

	lib   Library
	audio AudioClock
	video VideoClock

	current   int
	track     model.Track
	playing   bool
	muted     bool
	mode      model.Mode
	videoPath string
	ended     bool

	log zerolog.Logger
}

// New creates a stopped controller. video may be nil when no video player
// is available.
func New(lib Library, audio AudioClock, video VideoClock, log zerolog.Logger) *Controller {
	return &Controller{
		lib:     lib,
		audio:   audio,
		video:   video,
		current: model.NoTrack,
		mode:    model.ModeLyrics,
		log:     log.With().Str("component", "player").Logger(),
	}
}

// State returns a snapshot
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	return State{
		Current: c.current,
		Track:   c.track,
		Playing: c.playing,
		Muted:   c.muted,
		Mode:    c.mode,
		Video:   c.videoPath,
	}
}

// Select stops whatever plays, loads track index and starts it.
func (c *Controller) Select(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectLocked(index)
}

func (c *Controller) selectLocked(index int) error {
	if c.lib.Len() == 0 {
		return catalog.ErrEmptyCatalog
	}
	track, err := c.lib.Track(index)
	if err != nil {
		return err
	}

	if err := c.pauseAll(); err != nil {
		return err
	}
	c.playing = false
	c.current = index
	c.track = track
	c.ended = false
	c.videoPath = ""

	if err := c.audio.Load(c.lib.AudioPath(index)); err != nil {
		return fmt.Errorf("load audio %s: %w", track.File, err)
	}

	if c.mode == model.ModeVideo {
		if err := c.loadVideo(); err != nil {
			_ = c.dropVideo(err)
		}
	}

	if err := c.audio.Play(); err != nil {
		return fmt.Errorf("play audio: %w", err)
	}
	c.playing = true

	if c.videoPath != "" {
		if err := c.video.Play(); err != nil {
			_ = c.dropVideo(fmt.Errorf("play video: %w", err))
		}
	}

	c.log.Info().Int("index", index).Str("track", track.DisplayName()).Msg("selected")
	return nil
}

// TogglePlay flips between playing and paused.
func (c *Controller) TogglePlay() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == model.NoTrack {
		return ErrNoTrack
	}

	if c.playing {
		if err := c.pauseAll(); err != nil {
			return err
		}
		c.playing = false
		return nil
	}

	if err := c.audio.Play(); err != nil {
		return fmt.Errorf("play audio: %w", err)
	}
	c.playing = true

	if c.mode == model.ModeVideo && c.videoPath != "" {
		if err := c.startVideoAtAudio(); err != nil && !errors.Is(err, ErrVideoFailed) {
			return err
		}
	}
	return nil
}

// Sample reads the reference clock and advances to the next track once the
// position reaches the end window. In video mode it also corrects drift; a
// video failure found there falls back to lyrics and is not returned.
func (c *Controller) Sample() (Progress, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == model.NoTrack {
		return Progress{Current: model.NoTrack, Text: progressText(0, 0)}, nil
	}

	pos, err := c.audio.Position()
	if err != nil {
		return Progress{Current: c.current}, fmt.Errorf("audio position: %w", err)
	}
	p := newProgress(c.current, pos, c.track.Duration)

	if c.playing && !c.ended && c.track.Duration > 0 && pos >= c.track.Duration-EndTolerance {
		c.ended = true
		c.log.Debug().Int("index", c.current).Msg("end of track")
		if err := c.stepLocked(1); err != nil {
			return p, err
		}
		return Progress{Current: c.current, Text: progressText(0, c.track.Duration), Duration: c.track.Duration, Advanced: true}, nil
	}

	if c.mode == model.ModeVideo && c.playing {
		if _, err := c.correctLocked(); err != nil {
			return p, err
		}
	}
	return p, nil
}

// Correct seeks the video to the audio position when they drift apart by
// more than SyncTolerance. It never moves the audio. When the video clock
// fails the video is dropped and the mode falls back to lyrics.
func (c *Controller) Correct() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.correctLocked()
}

func (c *Controller) correctLocked() (bool, error) {
	if c.videoPath == "" {
		return false, nil
	}
	a, err := c.audio.Position()
	if err != nil {
		return false, fmt.Errorf("audio position: %w", err)
	}
	v, err := c.video.Position()
	if err != nil {
		_ = c.dropVideo(fmt.Errorf("video position: %w", err))
		return false, nil
	}
	if absDuration(v-a) <= SyncTolerance {
		return false, nil
	}
	if err := c.video.Seek(a); err != nil {
		_ = c.dropVideo(fmt.Errorf("video seek: %w", err))
		return false, nil
	}
	c.log.Debug().Dur("drift", v-a).Msg("video resynced")
	return true, nil
}

// Seek moves both clocks to fraction f of the track, clamped to [0,1].
func (c *Controller) Seek(f float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == model.NoTrack {
		return ErrNoTrack
	}
	if c.track.Duration <= 0 {
		return ErrNoDuration
	}
	f = min(1, max(0, f))
	return c.seekLocked(time.Duration(f * float64(c.track.Duration)))
}

// Rewind jumps back SeekStep, moving to the previous track past the start.
func (c *Controller) Rewind() error {
	return c.shift(-SeekStep)
}

// Forward jumps ahead SeekStep, moving to the next track past the end.
func (c *Controller) Forward() error {
	return c.shift(SeekStep)
}

func (c *Controller) shift(delta time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == model.NoTrack {
		return ErrNoTrack
	}
	pos, err := c.audio.Position()
	if err != nil {
		return fmt.Errorf("audio position: %w", err)
	}

	target := pos + delta
	switch {
	case target <= 0:
		return c.stepLocked(-1)
	case c.track.Duration > 0 && target >= c.track.Duration:
		return c.stepLocked(1)
	}
	return c.seekLocked(target)
}

// Next selects the following track, wrapping at the end.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stepLocked(1)
}

// Previous selects the preceding track, wrapping at the start.
func (c *Controller) Previous() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stepLocked(-1)
}

func (c *Controller) stepLocked(dir int) error {
	n := c.lib.Len()
	if n == 0 {
		return catalog.ErrEmptyCatalog
	}
	next := 0
	if c.current != model.NoTrack {
		next = ((c.current+dir)%n + n) % n
	}
	return c.selectLocked(next)
}

// ToggleMute flips audio mute. The video clock stays muted regardless.
func (c *Controller) ToggleMute() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.audio.SetMuted(!c.muted); err != nil {
		return fmt.Errorf("mute: %w", err)
	}
	c.muted = !c.muted
	return nil
}

// SetMuted forces the mute flag, used to restore preferences.
func (c *Controller) SetMuted(muted bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.audio.SetMuted(muted); err != nil {
		return fmt.Errorf("mute: %w", err)
	}
	c.muted = muted
	return nil
}

// SetMode switches between lyrics and video. Switching to video without a
// matching video reverts to lyrics and returns ErrNoVideo.
func (c *Controller) SetMode(mode model.Mode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !mode.Valid() {
		return fmt.Errorf("unknown mode %q", mode)
	}
	if mode == c.mode && (mode == model.ModeLyrics || c.videoPath != "") {
		return nil
	}

	if mode == model.ModeLyrics {
		if c.videoPath != "" {
			if err := c.video.Pause(); err != nil {
				c.log.Warn().Err(err).Msg("pause video")
			}
		}
		c.mode = model.ModeLyrics
		return nil
	}

	if c.current == model.NoTrack {
		c.mode = model.ModeVideo
		return nil
	}
	if err := c.loadVideo(); err != nil {
		if errors.Is(err, ErrNoVideo) {
			c.mode = model.ModeLyrics
			return err
		}
		return c.dropVideo(err)
	}
	c.mode = model.ModeVideo
	if c.playing {
		return c.startVideoAtAudio()
	}
	return nil
}

// VideoEnded is called when the video pipeline reaches its end.
func (c *Controller) VideoEnded() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == model.NoTrack {
		return nil
	}
	return c.stepLocked(1)
}

// loadVideo resolves and loads the video of the current track.
func (c *Controller) loadVideo() error {
	if c.video == nil {
		return fmt.Errorf("%w: no video player available", ErrNoVideo)
	}
	path, ok := c.lib.VideoFor(c.track.Title)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoVideo, c.track.Title)
	}
	if err := c.video.Load(path); err != nil {
		return fmt.Errorf("load video: %w", err)
	}
	c.videoPath = path
	return nil
}

// startVideoAtAudio lines the video up with the audio and starts it. A
// video failure drops the video and returns ErrVideoFailed.
func (c *Controller) startVideoAtAudio() error {
	pos, err := c.audio.Position()
	if err != nil {
		return fmt.Errorf("audio position: %w", err)
	}
	if err := c.video.Seek(pos); err != nil {
		return c.dropVideo(fmt.Errorf("video seek: %w", err))
	}
	if err := c.video.Play(); err != nil {
		return c.dropVideo(fmt.Errorf("play video: %w", err))
	}
	return nil
}

// dropVideo gives up on the loaded video after a failure and falls back
// to lyrics. The audio clock is left untouched.
func (c *Controller) dropVideo(cause error) error {
	if errors.Is(cause, ErrNoVideo) {
		c.log.Warn().Str("title", c.track.Title).Msg("no video, back to lyrics")
	} else {
		c.log.Error().Err(cause).Str("title", c.track.Title).Msg("video failed, back to lyrics")
	}
	if c.videoPath != "" {
		_ = c.video.Pause()
	}
	c.videoPath = ""
	c.mode = model.ModeLyrics
	if errors.Is(cause, ErrNoVideo) {
		return cause
	}
	return fmt.Errorf("%w: %v", ErrVideoFailed, cause)
}

func (c *Controller) seekLocked(pos time.Duration) error {
	if err := c.audio.Seek(pos); err != nil {
		return fmt.Errorf("audio seek: %w", err)
	}
	if c.videoPath != "" {
		if err := c.video.Seek(pos); err != nil {
			_ = c.dropVideo(fmt.Errorf("video seek: %w", err))
		}
	}
	c.ended = false
	return nil
}

func (c *Controller) pauseAll() error {
	if c.current != model.NoTrack {
		if err := c.audio.Pause(); err != nil {
			return fmt.Errorf("pause audio: %w", err)
		}
	}
	if c.videoPath != "" {
		if err := c.video.Pause(); err != nil {
			_ = c.dropVideo(fmt.Errorf("pause video: %w", err))
		}
	}
	return nil
}

func newProgress(current int, pos, dur time.Duration) Progress {
	p := Progress{Current: current, Position: pos, Duration: dur, Text: progressText(pos, dur)}
	if dur > 0 {
		p.Fraction = min(1, max(0, float64(pos)/float64(dur)))
	}
	return p
}

func progressText(pos, dur time.Duration) string {
	return model.FormatClock(pos) + " / " + model.FormatClock(dur)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
