package player

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-jukebox/internal/catalog"
	"github.com/ytget/yt-jukebox/internal/model"
)

type rig struct {
	j     *journal
	audio *fakeClock
	video *fakeClock
	lib   *fakeLibrary
	c     *Controller
}

func newRig(durations ...time.Duration) *rig {
	j := &journal{}
	r := &rig{
		j:     j,
		audio: &fakeClock{name: "audio", j: j},
		video: &fakeClock{name: "video", j: j},
		lib:   newLibrary(durations...),
	}
	r.c = New(r.lib, r.audio, r.video, zerolog.Nop())
	return r
}

func TestController_InitialState(t *testing.T) {
	r := newRig(time.Minute)
	st := r.c.State()
	assert.Equal(t, model.NoTrack, st.Current)
	assert.Equal(t, model.PlayStateStopped, st.PlayState())
	assert.Equal(t, model.ModeLyrics, st.Mode)

	assert.ErrorIs(t, r.c.TogglePlay(), ErrNoTrack)
	assert.ErrorIs(t, r.c.Seek(0.5), ErrNoTrack)
	assert.ErrorIs(t, r.c.Rewind(), ErrNoTrack)

	p, err := r.c.Sample()
	require.NoError(t, err)
	assert.Equal(t, "00:00 / 00:00", p.Text)
}

func TestController_SelectAutoPlays(t *testing.T) {
	r := newRig(time.Minute, 2*time.Minute)
	require.NoError(t, r.c.Select(1))

	st := r.c.State()
	assert.Equal(t, 1, st.Current)
	assert.Equal(t, "T1", st.Track.Title)
	assert.Equal(t, model.PlayStatePlaying, st.PlayState())
	assert.Equal(t, []string{"audio.load music/A_T1.mp3", "audio.play"}, r.j.events)
}

func TestController_SelectStopsPreviousBeforeStarting(t *testing.T) {
	r := newRig(time.Minute, 2*time.Minute)
	require.NoError(t, r.c.Select(0))
	r.j.reset()

	require.NoError(t, r.c.Select(1))
	require.Equal(t, []string{"audio.pause", "audio.load music/A_T1.mp3", "audio.play"}, r.j.events)
}

func TestController_SelectEmptyAndOutOfRange(t *testing.T) {
	r := newRig()
	assert.ErrorIs(t, r.c.Select(0), catalog.ErrEmptyCatalog)
	assert.ErrorIs(t, r.c.Next(), catalog.ErrEmptyCatalog)

	r = newRig(time.Minute)
	assert.Error(t, r.c.Select(3))
	assert.Equal(t, model.NoTrack, r.c.State().Current)
}

func TestController_SelectLoadFailureLeavesPaused(t *testing.T) {
	r := newRig(time.Minute)
	r.audio.failOn = "load"
	require.Error(t, r.c.Select(0))

	st := r.c.State()
	assert.Equal(t, 0, st.Current)
	assert.False(t, st.Playing)
}

func TestController_TogglePlay(t *testing.T) {
	r := newRig(time.Minute)
	require.NoError(t, r.c.Select(0))

	require.NoError(t, r.c.TogglePlay())
	assert.Equal(t, model.PlayStatePaused, r.c.State().PlayState())
	assert.False(t, r.audio.playing)

	require.NoError(t, r.c.TogglePlay())
	assert.Equal(t, model.PlayStatePlaying, r.c.State().PlayState())
	assert.True(t, r.audio.playing)
}

func TestController_EndOfTrackFiresOnce(t *testing.T) {
	dur := 3 * time.Minute
	r := newRig(dur, dur, dur)
	require.NoError(t, r.c.Select(0))

	// Just before the end window nothing happens.
	r.audio.pos = dur - EndTolerance - time.Millisecond
	p, err := r.c.Sample()
	require.NoError(t, err)
	assert.False(t, p.Advanced)
	assert.Equal(t, 0, r.c.State().Current)

	r.audio.pos = dur - EndTolerance
	p, err = r.c.Sample()
	require.NoError(t, err)
	assert.True(t, p.Advanced)
	assert.Equal(t, 1, p.Current)
	assert.Equal(t, 1, r.c.State().Current)

	// The new track starts at zero, so the next sample does not advance again.
	p, err = r.c.Sample()
	require.NoError(t, err)
	assert.False(t, p.Advanced)
	assert.Equal(t, 1, r.c.State().Current)
}

func TestController_EndOfTrackWraps(t *testing.T) {
	r := newRig(time.Minute, time.Minute)
	require.NoError(t, r.c.Select(1))
	r.audio.pos = time.Minute
	p, err := r.c.Sample()
	require.NoError(t, err)
	assert.True(t, p.Advanced)
	assert.Equal(t, 0, r.c.State().Current)
}

func TestController_EndOfTrackNotWhilePaused(t *testing.T) {
	r := newRig(time.Minute, time.Minute)
	require.NoError(t, r.c.Select(0))
	require.NoError(t, r.c.TogglePlay())

	r.audio.pos = time.Minute
	p, err := r.c.Sample()
	require.NoError(t, err)
	assert.False(t, p.Advanced)
	assert.Equal(t, 0, r.c.State().Current)
}

func TestController_EndOfTrackNeedsDuration(t *testing.T) {
	r := newRig(0, time.Minute)
	require.NoError(t, r.c.Select(0))
	r.audio.pos = time.Hour
	p, err := r.c.Sample()
	require.NoError(t, err)
	assert.False(t, p.Advanced)
	assert.Equal(t, 0.0, p.Fraction)
}

func TestController_SampleProgress(t *testing.T) {
	r := newRig(4 * time.Minute)
	require.NoError(t, r.c.Select(0))
	r.audio.pos = 61 * time.Second

	p, err := r.c.Sample()
	require.NoError(t, err)
	assert.Equal(t, 61*time.Second, p.Position)
	assert.InDelta(t, 61.0/240, p.Fraction, 1e-9)
	assert.Equal(t, "01:01 / 04:00", p.Text)
}

func TestController_SeekClamps(t *testing.T) {
	dur := 200 * time.Second
	r := newRig(dur)
	require.NoError(t, r.c.Select(0))

	require.NoError(t, r.c.Seek(0))
	assert.Equal(t, time.Duration(0), r.audio.pos)

	require.NoError(t, r.c.Seek(1))
	assert.Equal(t, dur, r.audio.pos)

	require.NoError(t, r.c.Seek(-3))
	assert.Equal(t, time.Duration(0), r.audio.pos)

	require.NoError(t, r.c.Seek(7))
	assert.Equal(t, dur, r.audio.pos)

	require.NoError(t, r.c.Seek(0.25))
	assert.Equal(t, 50*time.Second, r.audio.pos)
}

func TestController_SeekWithoutDuration(t *testing.T) {
	r := newRig(0)
	require.NoError(t, r.c.Select(0))
	r.j.reset()
	assert.ErrorIs(t, r.c.Seek(0.5), ErrNoDuration)
	assert.Empty(t, r.j.events)
}

func TestController_RewindForward(t *testing.T) {
	dur := time.Minute
	r := newRig(dur, dur, dur)
	require.NoError(t, r.c.Select(1))

	r.audio.pos = 30 * time.Second
	require.NoError(t, r.c.Forward())
	assert.Equal(t, 40*time.Second, r.audio.pos)
	require.NoError(t, r.c.Rewind())
	assert.Equal(t, 30*time.Second, r.audio.pos)
	assert.Equal(t, 1, r.c.State().Current)

	// Exactly zero counts as past the start.
	r.audio.pos = 10 * time.Second
	require.NoError(t, r.c.Rewind())
	assert.Equal(t, 0, r.c.State().Current)

	r.audio.pos = 5 * time.Second
	require.NoError(t, r.c.Rewind())
	assert.Equal(t, 2, r.c.State().Current)

	r.audio.pos = 55 * time.Second
	require.NoError(t, r.c.Forward())
	assert.Equal(t, 0, r.c.State().Current)
}

func TestController_ForwardWithoutDurationSeeks(t *testing.T) {
	r := newRig(0, time.Minute)
	require.NoError(t, r.c.Select(0))
	r.audio.pos = time.Hour
	require.NoError(t, r.c.Forward())
	assert.Equal(t, 0, r.c.State().Current)
	assert.Equal(t, time.Hour+SeekStep, r.audio.pos)
}

func TestController_NextPreviousWrap(t *testing.T) {
	r := newRig(time.Minute, time.Minute, time.Minute)

	require.NoError(t, r.c.Next())
	assert.Equal(t, 0, r.c.State().Current)

	require.NoError(t, r.c.Previous())
	assert.Equal(t, 2, r.c.State().Current)

	require.NoError(t, r.c.Next())
	assert.Equal(t, 0, r.c.State().Current)
}

func TestController_ToggleMute(t *testing.T) {
	r := newRig(time.Minute)
	require.NoError(t, r.c.ToggleMute())
	assert.True(t, r.c.State().Muted)
	assert.True(t, r.audio.muted)

	r.audio.failOn = "mute"
	require.Error(t, r.c.ToggleMute())
	assert.True(t, r.c.State().Muted)
}

func TestController_VideoModeWithoutMatch(t *testing.T) {
	r := newRig(time.Minute)
	require.NoError(t, r.c.Select(0))

	err := r.c.SetMode(model.ModeVideo)
	assert.ErrorIs(t, err, ErrNoVideo)
	assert.Equal(t, model.ModeLyrics, r.c.State().Mode)
}

func TestController_VideoModeWithoutPlayer(t *testing.T) {
	lib := newLibrary(time.Minute)
	lib.videos = []string{"T0.mp4"}
	j := &journal{}
	c := New(lib, &fakeClock{name: "audio", j: j}, nil, zerolog.Nop())
	require.NoError(t, c.Select(0))

	assert.ErrorIs(t, c.SetMode(model.ModeVideo), ErrNoVideo)
	assert.Equal(t, model.ModeLyrics, c.State().Mode)
}

func TestController_VideoModeStartsAtAudioPosition(t *testing.T) {
	r := newRig(time.Minute)
	r.lib.videos = []string{"T0 (Official MV).mp4"}
	require.NoError(t, r.c.Select(0))
	r.audio.pos = 12 * time.Second
	r.j.reset()

	require.NoError(t, r.c.SetMode(model.ModeVideo))
	st := r.c.State()
	assert.Equal(t, model.ModeVideo, st.Mode)
	assert.Equal(t, "mv/T0 (Official MV).mp4", st.Video)
	assert.Equal(t, []string{"video.load mv/T0 (Official MV).mp4", "video.seek 12s", "video.play"}, r.j.events)

	r.j.reset()
	require.NoError(t, r.c.SetMode(model.ModeLyrics))
	assert.Equal(t, []string{"video.pause"}, r.j.events)
	assert.Equal(t, model.ModeLyrics, r.c.State().Mode)
}

func TestController_TogglePlaySyncsVideo(t *testing.T) {
	r := newRig(time.Minute)
	r.lib.videos = []string{"T0.mp4"}
	require.NoError(t, r.c.Select(0))
	require.NoError(t, r.c.SetMode(model.ModeVideo))
	require.NoError(t, r.c.TogglePlay())
	assert.False(t, r.video.playing)

	r.audio.pos = 20 * time.Second
	r.video.pos = 3 * time.Second
	r.j.reset()
	require.NoError(t, r.c.TogglePlay())
	assert.Equal(t, []string{"audio.play", "video.seek 20s", "video.play"}, r.j.events)
}

func TestController_CorrectIsOneWay(t *testing.T) {
	r := newRig(time.Minute)
	r.lib.videos = []string{"T0.mp4"}
	require.NoError(t, r.c.Select(0))
	require.NoError(t, r.c.SetMode(model.ModeVideo))

	r.audio.pos = 10 * time.Second
	r.video.pos = 10*time.Second + SyncTolerance
	corrected, err := r.c.Correct()
	require.NoError(t, err)
	assert.False(t, corrected)

	r.video.pos = 10*time.Second + SyncTolerance + time.Millisecond
	corrected, err = r.c.Correct()
	require.NoError(t, err)
	assert.True(t, corrected)
	assert.Equal(t, 10*time.Second, r.video.pos)
	assert.Equal(t, 10*time.Second, r.audio.pos)

	r.video.pos = 2 * time.Second
	_, err = r.c.Sample()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, r.video.pos)
	assert.Equal(t, 10*time.Second, r.audio.pos)
}

func TestController_SelectInVideoModeFallsBack(t *testing.T) {
	r := newRig(time.Minute, time.Minute)
	r.lib.videos = []string{"T0.mp4"}
	require.NoError(t, r.c.Select(0))
	require.NoError(t, r.c.SetMode(model.ModeVideo))

	require.NoError(t, r.c.Select(1))
	st := r.c.State()
	assert.Equal(t, model.ModeLyrics, st.Mode)
	assert.Empty(t, st.Video)
	assert.True(t, st.Playing)
}

func TestController_VideoLoadFailureKeepsAudio(t *testing.T) {
	r := newRig(time.Minute, time.Minute)
	r.lib.videos = []string{"T0.mp4", "T1.mp4"}
	require.NoError(t, r.c.Select(0))
	require.NoError(t, r.c.SetMode(model.ModeVideo))

	r.video.failOn = "load"
	require.NoError(t, r.c.Select(1))

	st := r.c.State()
	assert.Equal(t, 1, st.Current)
	assert.True(t, st.Playing)
	assert.True(t, r.audio.playing)
	assert.Equal(t, model.ModeLyrics, st.Mode)
	assert.Empty(t, st.Video)
}

func TestController_VideoPositionFailureFallsBack(t *testing.T) {
	r := newRig(time.Minute)
	r.lib.videos = []string{"T0.mp4"}
	require.NoError(t, r.c.Select(0))
	require.NoError(t, r.c.SetMode(model.ModeVideo))

	r.video.failOn = "position"
	r.audio.pos = 5 * time.Second
	for range 10 {
		_, err := r.c.Sample()
		require.NoError(t, err)
	}

	st := r.c.State()
	assert.Equal(t, model.ModeLyrics, st.Mode)
	assert.Empty(t, st.Video)
	assert.True(t, st.Playing)
	assert.True(t, r.audio.playing)
}

func TestController_VideoFailuresDuringPlayback(t *testing.T) {
	tests := []struct {
		name   string
		failOn string
		act    func(c *Controller) error
	}{
		{"seek", "seek", func(c *Controller) error { return c.Seek(0.5) }},
		{"pause on select", "pause", func(c *Controller) error { return c.Select(0) }},
		{"drift seek", "seek", func(c *Controller) error { _, err := c.Correct(); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(time.Minute)
			r.lib.videos = []string{"T0.mp4"}
			require.NoError(t, r.c.Select(0))
			require.NoError(t, r.c.SetMode(model.ModeVideo))
			r.audio.pos = 20 * time.Second

			r.video.failOn = tt.failOn
			require.NoError(t, tt.act(r.c))

			st := r.c.State()
			assert.Equal(t, model.ModeLyrics, st.Mode)
			assert.Empty(t, st.Video)
			assert.True(t, st.Playing)
		})
	}
}

func TestController_SetModeVideoFailureReported(t *testing.T) {
	r := newRig(time.Minute)
	r.lib.videos = []string{"T0.mp4"}
	require.NoError(t, r.c.Select(0))

	r.video.failOn = "play"
	err := r.c.SetMode(model.ModeVideo)
	assert.ErrorIs(t, err, ErrVideoFailed)
	assert.NotErrorIs(t, err, ErrNoVideo)

	st := r.c.State()
	assert.Equal(t, model.ModeLyrics, st.Mode)
	assert.True(t, st.Playing)

	r.video.failOn = "load"
	assert.ErrorIs(t, r.c.SetMode(model.ModeVideo), ErrVideoFailed)
	assert.Equal(t, model.ModeLyrics, r.c.State().Mode)
}

func TestController_VideoEndedAdvances(t *testing.T) {
	r := newRig(time.Minute, time.Minute)
	require.NoError(t, r.c.VideoEnded())
	assert.Equal(t, model.NoTrack, r.c.State().Current)

	require.NoError(t, r.c.Select(0))
	require.NoError(t, r.c.VideoEnded())
	assert.Equal(t, 1, r.c.State().Current)
}

func TestController_InvalidMode(t *testing.T) {
	r := newRig(time.Minute)
	assert.Error(t, r.c.SetMode(model.Mode("karaoke")))
}
