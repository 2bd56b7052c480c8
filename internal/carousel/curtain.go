package carousel

import (
	"time"
)

// CurtainDuration is the length of the snap animation
const CurtainDuration = 500 * time.Millisecond

// Curtain is a full-height overlay dragged vertically. Y is 0 when the
// curtain covers the window and -Height when it is rolled up. Animating
// between resting positions is left to the caller, which feeds frames
// back through Set.
type Curtain struct {
	Height float64

	y        float64
	dragging bool
}

// NewCurtain returns a rolled-up curtain
func NewCurtain(height float64) *Curtain {
	return &Curtain{Height: height, y: -height}
}

// Y returns the current top edge
func (c *Curtain) Y() float64 { return c.y }

// Open reports whether the curtain rests fully down
func (c *Curtain) Open() bool { return !c.dragging && c.y == 0 }

// Dragging reports whether a drag is in progress
func (c *Curtain) Dragging() bool { return c.dragging }

// Press starts a drag
func (c *Curtain) Press() {
	c.dragging = true
}

// Drag moves the curtain by dy, clamped to [-Height, 0]
func (c *Curtain) Drag(dy float64) {
	c.Set(c.y + dy)
}

// Set places the top edge at y, clamped to [-Height, 0]
func (c *Curtain) Set(y float64) {
	c.y = min(0, max(-c.Height, y))
}

// Release ends a drag and returns where to snap: up when more than half
// is rolled up, otherwise down.
func (c *Curtain) Release() float64 {
	c.dragging = false
	if c.y < -c.Height/2 {
		return -c.Height
	}
	return 0
}

// Toggle returns the resting position opposite the current one
func (c *Curtain) Toggle() float64 {
	if c.y < -c.Height/2 {
		return 0
	}
	return -c.Height
}
