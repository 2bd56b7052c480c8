package player

// Package player implements the playback controller. Audio is the reference
// clock; an optional muted video clock follows it and is corrected one way
// when it drifts. Every operation returns an error and leaves state as it was
// at the point of failure.
