package media

// Package media talks to the actual media pipelines: mp3 playback through
// the beep speaker, music videos through an mpv process driven over its JSON
// IPC socket, and duration probing through ffprobe with a pure-Go mp3
// fallback.
