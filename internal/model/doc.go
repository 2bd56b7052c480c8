package model

// Package model defines domain data structures used across the app: library
// tracks, playback modes and states, download and conversion tasks, and
// playlist entities. Structures carry explicit state transitions so the UI
// only renders them.
