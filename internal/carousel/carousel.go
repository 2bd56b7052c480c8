package carousel

import (
	"math"
	"time"
)

// Geometry and physics constants, in pixels and seconds.
const (
	SlotCount   = 5
	SlotWidth   = 130.0
	SlotSize    = 120.0
	CenterX     = 260.0
	CenterSlot  = 2
	SampleDT    = 0.05 // window a drag delta is assumed to span
	DecayDT     = 0.03
	DecayFactor = 0.92

	ReleaseVelocity = 15.0
	StopVelocity    = 3.0

	SnapEase      = 0.15
	SnapTolerance = 1.0
	SnapThreshold = 5.0
)

// Timer periods for the animation phases
const (
	DecayInterval  = 30 * time.Millisecond
	SettleInterval = 16 * time.Millisecond
)

// SlotPositions are the resting x coordinates of the slots.
var SlotPositions = [SlotCount]float64{0, 130, 260, 390, 520}

// Phase is the animation phase of the strip
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseDecaying
	PhaseSettling
)

func (p Phase) String() string {
	switch p {
	case PhaseDragging:
		return "dragging"
	case PhaseDecaying:
		return "decaying"
	case PhaseSettling:
		return "settling"
	default:
		return "idle"
	}
}

// Carousel maps five slots onto a circular catalog of n tracks.
//
// Slot s shows track (displayIndex + s) mod n. offset is the horizontal
// displacement of the whole strip and is kept within one slot width of zero
// by stepping displayIndex whenever it crosses a slot boundary.
type Carousel struct {
	n        int
	display  int
	offset   float64
	velocity float64
	phase    Phase
}

// New creates a carousel over n tracks
func New(n int) *Carousel {
	return &Carousel{n: max(n, 0)}
}

// Len returns the catalog size
func (c *Carousel) Len() int { return c.n }

// DisplayIndex returns the track bound to slot 0
func (c *Carousel) DisplayIndex() int { return c.display }

// Offset returns the current strip displacement
func (c *Carousel) Offset() float64 { return c.offset }

// Velocity returns the last sampled velocity in px/s
func (c *Carousel) Velocity() float64 { return c.velocity }

// Phase returns the animation phase
func (c *Carousel) Phase() Phase { return c.phase }

// Animating reports whether Tick should keep being called
func (c *Carousel) Animating() bool {
	return c.phase == PhaseDecaying || c.phase == PhaseSettling
}

// Interval returns the tick period for the current phase, 0 when idle
func (c *Carousel) Interval() time.Duration {
	switch c.phase {
	case PhaseDecaying:
		return DecayInterval
	case PhaseSettling:
		return SettleInterval
	default:
		return 0
	}
}

// Slot returns the track index bound to slot s, or -1 on an empty catalog.
func (c *Carousel) Slot(s int) int {
	if c.n == 0 {
		return -1
	}
	return wrap(c.display+s, c.n)
}

// Bindings recomputes the whole slot table.
func (c *Carousel) Bindings() [SlotCount]int {
	var b [SlotCount]int
	for s := range b {
		b[s] = c.Slot(s)
	}
	return b
}

// Press starts a drag and cancels any running animation.
func (c *Carousel) Press() {
	if c.n == 0 {
		return
	}
	c.phase = PhaseDragging
	c.velocity = 0
}

// Drag moves the strip by dx pixels.
func (c *Carousel) Drag(dx float64) {
	if c.n == 0 {
		return
	}
	c.phase = PhaseDragging
	c.offset += dx
	c.velocity = dx / SampleDT
	c.wrapOffset()
}

// Release ends a drag, entering decay when the strip was flicked.
func (c *Carousel) Release() {
	if c.n == 0 {
		return
	}
	if math.Abs(c.velocity) > ReleaseVelocity {
		c.phase = PhaseDecaying
		return
	}
	c.snap()
}

// Tick advances the running animation by one step. It returns whether the
// animation continues.
func (c *Carousel) Tick() bool {
	if c.n == 0 {
		c.phase = PhaseIdle
		return false
	}

	switch c.phase {
	case PhaseDecaying:
		if math.Abs(c.velocity) < StopVelocity {
			c.snap()
			return c.Animating()
		}
		c.offset += c.velocity * DecayDT
		c.velocity *= DecayFactor
		c.wrapOffset()
		return true
	case PhaseSettling:
		if math.Abs(c.offset) < SnapTolerance {
			c.offset = 0
			c.phase = PhaseIdle
			return false
		}
		c.offset += (0 - c.offset) * SnapEase
		return true
	default:
		return false
	}
}

// CenterOn binds track to the center slot and stops any animation.
func (c *Carousel) CenterOn(track int) {
	if c.n == 0 {
		return
	}
	c.display = wrap(track-CenterSlot, c.n)
	c.offset = 0
	c.velocity = 0
	c.phase = PhaseIdle
}

// SetLen replaces the catalog size, keeping displayIndex in range.
func (c *Carousel) SetLen(n int) {
	c.n = max(n, 0)
	c.offset = 0
	c.velocity = 0
	c.phase = PhaseIdle
	if c.n == 0 {
		c.display = 0
		return
	}
	c.display = wrap(c.display, c.n)
}

// snap rounds offset to whole slots, shifts displayIndex by them, and eases
// the residual toward zero.
func (c *Carousel) snap() {
	c.velocity = 0
	steps := math.Round(c.offset / SlotWidth)
	if steps != 0 {
		c.display = wrap(c.display-int(steps), c.n)
		c.offset -= steps * SlotWidth
	}
	if math.Abs(c.offset) > SnapThreshold {
		c.phase = PhaseSettling
		return
	}
	c.offset = 0
	c.phase = PhaseIdle
}

func (c *Carousel) wrapOffset() {
	for c.offset >= SlotWidth {
		c.offset -= SlotWidth
		c.display = wrap(c.display-1, c.n)
	}
	for c.offset <= -SlotWidth {
		c.offset += SlotWidth
		c.display = wrap(c.display+1, c.n)
	}
}

// wrap returns i mod n in [0, n)
func wrap(i, n int) int {
	return ((i % n) + n) % n
}
