package carousel

// Package carousel holds the toolkit-independent state of the thumbnail
// strip and the curtain overlay. Widgets feed pointer deltas and timer ticks
// in and render whatever Bindings, Styles and Curtain.Y report.
