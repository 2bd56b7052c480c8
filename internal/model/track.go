package model

import (
	"fmt"
	"time"
)

// UnknownArtist is shown when a filename has no artist separator.
const UnknownArtist = "Unknown Artist"

// Track is one audio file of the library. Thumbnail and video are not stored:
// they are resolved by title on every lookup.
type Track struct {
	Index    int
	File     string // audio filename relative to the audio directory
	Artist   string
	Title    string
	Duration time.Duration // probed once at load time, 0 if unknown
}

// DisplayName returns "Artist - Title".
func (t Track) DisplayName() string {
	return t.Artist + " - " + t.Title
}

// FormatClock formats a position as mm:ss. Minutes are not wrapped at one hour.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
