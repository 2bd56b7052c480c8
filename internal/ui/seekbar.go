package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// SeekBar is a progress bar that reports the fraction under a click
type SeekBar struct {
	widget.ProgressBar

	// OnSeek receives the clicked fraction in [0,1]
	OnSeek func(f float64)
}

// NewSeekBar creates a seek bar without a percentage label
func NewSeekBar() *SeekBar {
	b := &SeekBar{}
	b.TextFormatter = func() string { return "" }
	b.ExtendBaseWidget(b)
	return b
}

// Tapped implements fyne.Tappable
func (b *SeekBar) Tapped(ev *fyne.PointEvent) {
	if b.OnSeek == nil {
		return
	}
	b.OnSeek(SeekFraction(ev.Position.X, b.Size().Width))
}

// SeekFraction converts a click x over a bar of width w into [0,1]
func SeekFraction(x, w float32) float64 {
	if w <= 0 {
		return 0
	}
	return min(1, max(0, float64(x/w)))
}
