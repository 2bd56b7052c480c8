package model

// Mode selects what the main panel shows while a track plays.
type Mode string

const (
	ModeLyrics Mode = "lyrics"
	ModeVideo  Mode = "video"
)

// String returns the string representation of Mode
func (m Mode) String() string {
	return string(m)
}

// Valid reports whether m is a known mode
func (m Mode) Valid() bool {
	return m == ModeLyrics || m == ModeVideo
}

// PlayState is the transport state derived from the selected track and the
// playing flag.
type PlayState string

const (
	PlayStateStopped PlayState = "stopped"
	PlayStatePlaying PlayState = "playing"
	PlayStatePaused  PlayState = "paused"
)

// String returns the string representation of PlayState
func (ps PlayState) String() string {
	return string(ps)
}

// NoTrack marks that nothing is selected.
const NoTrack = -1
