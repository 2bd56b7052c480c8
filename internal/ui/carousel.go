package ui

import (
	"image"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-jukebox/internal/carousel"
)

// SlotSource supplies what the carousel draws for a track
type SlotSource interface {
	// Thumbnail returns nil when the track has no thumbnail
	Thumbnail(track int) image.Image
	Info(track int) (artist, title string)
}

// Carousel is the draggable five-slot thumbnail strip. Physics and slot
// binding live in carousel.Carousel; this widget feeds it drag deltas and
// draws the result.
type Carousel struct {
	widget.BaseWidget

	state    *carousel.Carousel
	source   SlotSource
	slots    [carousel.SlotCount]*carouselSlot
	info     *infoPopover
	anim     animator
	dragging bool

	// OnSelect is called when a slot is double-tapped
	OnSelect func(track int)
}

// NewCarousel creates a strip over n tracks
func NewCarousel(n int, source SlotSource) *Carousel {
	c := &Carousel{
		state:  carousel.New(n),
		source: source,
		info:   newInfoPopover(),
	}
	for s := range c.slots {
		c.slots[s] = newCarouselSlot(c, s)
	}
	c.ExtendBaseWidget(c)
	c.bindSlots()
	return c
}

// DisplayIndex returns the track bound to the leftmost slot
func (c *Carousel) DisplayIndex() int {
	return c.state.DisplayIndex()
}

// CenterOn moves track to the middle slot without animation
func (c *Carousel) CenterOn(track int) {
	c.anim.Stop()
	c.state.CenterOn(track)
	c.Refresh()
}

// SetLen replaces the number of tracks
func (c *Carousel) SetLen(n int) {
	c.anim.Stop()
	c.state.SetLen(n)
	c.Refresh()
}

// Dragged implements fyne.Draggable
func (c *Carousel) Dragged(ev *fyne.DragEvent) {
	if !c.dragging {
		c.dragging = true
		c.anim.Stop()
		c.info.hide()
		c.state.Press()
	}
	c.state.Drag(float64(ev.Dragged.DX))
	c.Refresh()
}

// DragEnd implements fyne.Draggable
func (c *Carousel) DragEnd() {
	c.dragging = false
	c.state.Release()
	c.Refresh()
	if c.state.Animating() {
		c.anim.Start(c.state.Interval(), c.step)
	}
}

func (c *Carousel) step() time.Duration {
	more := c.state.Tick()
	c.Refresh()
	if !more {
		return 0
	}
	return c.state.Interval()
}

// bindSlots reloads the images of slots whose track changed
func (c *Carousel) bindSlots() {
	bindings := c.state.Bindings()
	for s, slot := range c.slots {
		track := bindings[s]
		if track == slot.track && slot.bound {
			continue
		}
		slot.bind(track, c.thumbnail(track))
	}
}

func (c *Carousel) thumbnail(track int) image.Image {
	if track < 0 || c.source == nil {
		return nil
	}
	return c.source.Thumbnail(track)
}

func (c *Carousel) showInfo(slot *carouselSlot) {
	if c.dragging || slot.track < 0 || c.source == nil {
		return
	}
	artist, title := c.source.Info(slot.track)
	center := slot.Position().X + slot.Size().Width/2
	x := min(max(InfoMargin, center-InfoWidth/2), c.Size().Width-InfoWidth-InfoMargin)
	c.info.show(slot.index, artist, title, fyne.NewPos(x, InfoTop))
}

func (c *Carousel) hideInfo(slot *carouselSlot) {
	if c.info.slot == slot.index {
		c.info.hide()
	}
}

func (c *Carousel) selectSlot(slot *carouselSlot) {
	if slot.track < 0 || c.OnSelect == nil {
		return
	}
	c.OnSelect(slot.track)
}

// CreateRenderer implements fyne.Widget
func (c *Carousel) CreateRenderer() fyne.WidgetRenderer {
	objects := make([]fyne.CanvasObject, 0, len(c.slots)+1)
	for _, s := range c.slots {
		objects = append(objects, s)
	}
	objects = append(objects, c.info.box)
	return &carouselRenderer{c: c, objects: objects}
}

type carouselRenderer struct {
	c       *Carousel
	objects []fyne.CanvasObject
}

func (r *carouselRenderer) Layout(size fyne.Size) {
	strip := float32(carousel.SlotPositions[carousel.SlotCount-1] + carousel.SlotSize)
	left := (size.Width - strip) / 2

	for s, st := range r.c.state.Styles() {
		slot := r.c.slots[s]
		side := float32(carousel.SlotSize * st.Scale)
		inset := (float32(carousel.SlotSize) - side) / 2
		slot.Move(fyne.NewPos(left+float32(st.X)+inset, SlotTop+inset))
		slot.Resize(fyne.NewSquareSize(side))
		slot.applyStyle(st)
	}
	r.c.info.box.Resize(fyne.NewSize(InfoWidth, InfoHeight))
}

func (r *carouselRenderer) MinSize() fyne.Size {
	return fyne.NewSize(CarouselWidth, CarouselHeight)
}

func (r *carouselRenderer) Refresh() {
	r.c.bindSlots()
	r.Layout(r.c.Size())
	for _, s := range r.c.slots {
		s.Refresh()
	}
}

func (r *carouselRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *carouselRenderer) Destroy() {
	r.c.anim.Stop()
}

// carouselSlot is one thumbnail position of the strip
type carouselSlot struct {
	widget.BaseWidget

	owner *Carousel
	index int
	track int
	bound bool

	image  *canvas.Image
	empty  *canvas.Text
	border *canvas.Rectangle
}

func newCarouselSlot(owner *Carousel, index int) *carouselSlot {
	s := &carouselSlot{
		owner:  owner,
		index:  index,
		track:  -1,
		image:  canvas.NewImageFromImage(nil),
		empty:  canvas.NewText(NoImageText, color.White),
		border: canvas.NewRectangle(color.Transparent),
	}
	s.image.FillMode = canvas.ImageFillContain
	s.empty.Alignment = fyne.TextAlignCenter
	s.border.CornerRadius = 6
	s.ExtendBaseWidget(s)
	return s
}

func (s *carouselSlot) bind(track int, img image.Image) {
	s.track = track
	s.bound = true
	s.image.Image = img
	switch {
	case track < 0:
		s.Hide()
	case img == nil:
		s.Show()
		s.image.Hide()
		s.empty.Show()
	default:
		s.Show()
		s.image.Show()
		s.empty.Hide()
	}
	s.image.Refresh()
}

func (s *carouselSlot) applyStyle(st carousel.SlotStyle) {
	s.image.Translucency = 1 - st.Opacity
	s.border.StrokeColor = st.Border
	s.border.StrokeWidth = st.BorderWidth
}

// MouseIn implements desktop.Hoverable
func (s *carouselSlot) MouseIn(*desktop.MouseEvent) {
	s.owner.showInfo(s)
}

// MouseMoved implements desktop.Hoverable
func (s *carouselSlot) MouseMoved(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable
func (s *carouselSlot) MouseOut() {
	s.owner.hideInfo(s)
}

// DoubleTapped implements fyne.DoubleTappable
func (s *carouselSlot) DoubleTapped(*fyne.PointEvent) {
	s.owner.selectSlot(s)
}

// CreateRenderer implements fyne.Widget
func (s *carouselSlot) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(
		s.image,
		container.NewCenter(s.empty),
		s.border,
	))
}

// infoPopover shows artist and title above a hovered slot
type infoPopover struct {
	box    *fyne.Container
	back   *canvas.Rectangle
	artist *canvas.Text
	title  *canvas.Text
	fade   *fyne.Animation
	slot   int
}

func newInfoPopover() *infoPopover {
	p := &infoPopover{
		back:   canvas.NewRectangle(ColorInfoBack),
		artist: canvas.NewText("", ColorGold),
		title:  canvas.NewText("", color.White),
		slot:   -1,
	}
	p.back.CornerRadius = 8
	p.back.StrokeColor = ColorCardBorder
	p.back.StrokeWidth = 1
	p.artist.TextStyle = fyne.TextStyle{Bold: true}
	p.artist.TextSize = 14
	p.artist.Alignment = fyne.TextAlignCenter
	p.title.TextSize = 12
	p.title.Alignment = fyne.TextAlignCenter

	p.box = container.NewStack(p.back, container.NewCenter(container.NewVBox(p.artist, p.title)))
	p.box.Hide()
	return p
}

func (p *infoPopover) show(slot int, artist, title string, pos fyne.Position) {
	p.stop()
	p.slot = slot
	p.artist.Text = artist
	p.title.Text = title
	p.box.Move(pos)
	p.setAlpha(0)
	p.box.Show()

	p.fade = fyne.NewAnimation(InfoFadeDuration, p.setAlpha)
	p.fade.Curve = fyne.AnimationEaseOut
	p.fade.Start()
}

func (p *infoPopover) hide() {
	p.slot = -1
	if !p.box.Visible() {
		return
	}
	p.stop()
	p.fade = fyne.NewAnimation(InfoFadeDuration, func(f float32) {
		p.setAlpha(1 - f)
		if f >= 1 {
			p.box.Hide()
		}
	})
	p.fade.Curve = fyne.AnimationEaseOut
	p.fade.Start()
}

func (p *infoPopover) stop() {
	if p.fade != nil {
		p.fade.Stop()
		p.fade = nil
	}
}

func (p *infoPopover) setAlpha(f float32) {
	p.back.FillColor = scaleAlpha(ColorInfoBack, f)
	p.artist.Color = scaleAlpha(ColorGold, f)
	p.title.Color = scaleAlpha(color.NRGBA{R: 255, G: 255, B: 255, A: 255}, f)
	p.back.Refresh()
	p.artist.Refresh()
	p.title.Refresh()
}

func scaleAlpha(c color.NRGBA, f float32) color.NRGBA {
	c.A = uint8(float32(c.A) * min(max(f, 0), 1))
	return c
}
