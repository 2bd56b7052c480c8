package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-jukebox/internal/carousel"
)

// Curtain is the dimming overlay dragged down from the top edge. While it
// rests rolled up only its handle strip is reachable.
type Curtain struct {
	widget.BaseWidget

	state *carousel.Curtain
	shade  *canvas.Rectangle
	anim   *fyne.Animation
	moving bool
}

// NewCurtain creates a rolled-up curtain for a window of the given height
func NewCurtain(height float32) *Curtain {
	c := &Curtain{
		state: carousel.NewCurtain(float64(height)),
		shade: canvas.NewRectangle(ColorCurtain),
	}
	c.ExtendBaseWidget(c)
	return c
}

// Y returns the top edge of the overlay
func (c *Curtain) Y() float32 {
	return float32(c.state.Y())
}

// Toggle animates the curtain to the opposite resting position
func (c *Curtain) Toggle() {
	c.animateTo(c.state.Toggle())
}

// Lower animates the curtain down over the window
func (c *Curtain) Lower() {
	c.animateTo(0)
}

// Dragged implements fyne.Draggable
func (c *Curtain) Dragged(ev *fyne.DragEvent) {
	c.stopAnimation()
	c.state.Press()
	c.state.Drag(float64(ev.Dragged.DY))
	c.place()
}

// DragEnd implements fyne.Draggable
func (c *Curtain) DragEnd() {
	c.animateTo(c.state.Release())
}

// Tapped swallows taps so nothing under the lowered curtain reacts
func (c *Curtain) Tapped(*fyne.PointEvent) {}

func (c *Curtain) animateTo(target float64) {
	c.stopAnimation()
	from := c.state.Y()
	if from == target {
		c.place()
		return
	}
	c.moving = true
	c.anim = fyne.NewAnimation(carousel.CurtainDuration, func(f float32) {
		c.state.Set(from + (target-from)*float64(f))
		c.place()
		if f >= 1 {
			c.moving = false
		}
	})
	c.anim.Curve = fyne.AnimationEaseInOut
	c.anim.Start()
}

func (c *Curtain) stopAnimation() {
	c.moving = false
	if c.anim != nil {
		c.anim.Stop()
		c.anim = nil
	}
}

// setHeight follows window resizes, keeping a rolled-up curtain hidden
func (c *Curtain) setHeight(h float32) {
	if float64(h) == c.state.Height {
		return
	}
	rolledUp := c.state.Y() <= -c.state.Height/2
	c.state.Height = float64(h)
	if c.moving {
		return
	}
	if rolledUp {
		c.state.Set(-c.state.Height)
		return
	}
	c.state.Set(0)
}

func (c *Curtain) place() {
	c.Move(fyne.NewPos(0, c.Y()))
}

// CreateRenderer implements fyne.Widget
func (c *Curtain) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.shade)
}

// curtainHandle is the strip along the top edge that pulls the curtain down
type curtainHandle struct {
	widget.BaseWidget
	curtain *Curtain
	bar     *canvas.Rectangle
}

func newCurtainHandle(c *Curtain) *curtainHandle {
	h := &curtainHandle{curtain: c, bar: canvas.NewRectangle(ColorCardBorder)}
	h.ExtendBaseWidget(h)
	return h
}

// Dragged implements fyne.Draggable
func (h *curtainHandle) Dragged(ev *fyne.DragEvent) {
	h.curtain.Dragged(ev)
}

// DragEnd implements fyne.Draggable
func (h *curtainHandle) DragEnd() {
	h.curtain.DragEnd()
}

// DoubleTapped toggles the curtain
func (h *curtainHandle) DoubleTapped(*fyne.PointEvent) {
	h.curtain.Toggle()
}

func (h *curtainHandle) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(h.bar)
}

// curtainLayout places the overlay over the whole area at the curtain's Y
// and the handle along the top edge
type curtainLayout struct {
	curtain *Curtain
}

func (l *curtainLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	l.curtain.setHeight(size.Height)
	for _, o := range objects {
		switch o := o.(type) {
		case *Curtain:
			o.Resize(size)
			o.place()
		case *curtainHandle:
			o.Move(fyne.NewPos(0, 0))
			o.Resize(fyne.NewSize(size.Width, CurtainHandleHeight))
		}
	}
}

func (l *curtainLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(0, 0)
}
