package player

import (
	"time"

	"github.com/ytget/yt-jukebox/internal/model"
)

// Clock is a media pipeline with a playback position.
type Clock interface {
	Load(path string) error
	Play() error
	Pause() error
	Position() (time.Duration, error)
	Seek(pos time.Duration) error
}

// AudioClock is the reference clock.
type AudioClock interface {
	Clock
	SetMuted(muted bool) error
}

// VideoClock follows the audio clock and never produces sound.
type VideoClock interface {
	Clock
}

// Library is the read side of the catalog the controller plays from.
type Library interface {
	Len() int
	Track(i int) (model.Track, error)
	AudioPath(i int) string
	VideoFor(title string) (string, bool)
}
