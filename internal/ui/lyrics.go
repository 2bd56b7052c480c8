package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-jukebox/internal/model"
)

// LyricsPanel is the song card (thumbnail, artist, title, lyrics) and the
// blurred artwork background behind the whole window
type LyricsPanel struct {
	background *canvas.Image
	thumb      *canvas.Image
	noThumb    *canvas.Text
	artist     *canvas.Text
	title      *widget.Label
	lyrics     *widget.Entry

	card    *fyne.Container
	content *fyne.Container
	loc     *Localization
}

// NewLyricsPanel builds an empty panel
func NewLyricsPanel(loc *Localization) *LyricsPanel {
	p := &LyricsPanel{
		background: canvas.NewImageFromImage(nil),
		thumb:      canvas.NewImageFromImage(nil),
		noThumb:    canvas.NewText(NoImageText, ColorLyricsText),
		artist:     canvas.NewText("", ColorLyricsText),
		title:      widget.NewLabel(""),
		lyrics:     widget.NewMultiLineEntry(),
		loc:        loc,
	}
	p.background.FillMode = canvas.ImageFillStretch
	p.thumb.FillMode = canvas.ImageFillContain
	p.thumb.SetMinSize(fyne.NewSquareSize(CardThumbSize))
	p.noThumb.Alignment = fyne.TextAlignCenter
	p.artist.TextSize = 18
	p.artist.TextStyle = fyne.TextStyle{Bold: true}
	p.title.Wrapping = fyne.TextWrapWord
	p.lyrics.Wrapping = fyne.TextWrapWord
	p.lyrics.Disable()

	cardBack := canvas.NewRectangle(ColorCardBack)
	cardBack.StrokeColor = ColorCardBorder
	cardBack.StrokeWidth = 1
	cardBack.CornerRadius = CardCornerRound

	thumbBack := canvas.NewRectangle(ColorCardBack)
	thumbBack.CornerRadius = CardCornerRound
	thumbBox := container.NewStack(thumbBack, p.thumb, container.NewCenter(p.noThumb))

	lyricsBox := container.NewGridWrap(fyne.NewSize(CardWidth-CardThumbSize-40, LyricsHeight), p.lyrics)
	info := container.NewVBox(p.artist, p.title, lyricsBox)
	p.card = container.NewStack(cardBack, container.NewPadded(container.NewBorder(nil, nil, thumbBox, nil, info)))

	sized := container.NewGridWrap(fyne.NewSize(CardWidth, CardHeight), p.card)
	p.content = container.NewVBox(layout.NewSpacer(), container.NewCenter(sized), layout.NewSpacer())
	return p
}

// Content returns the song card
func (p *LyricsPanel) Content() fyne.CanvasObject {
	return p.content
}

// Background returns the full-window artwork image. It stays visible in
// video mode while the card is hidden.
func (p *LyricsPanel) Background() fyne.CanvasObject {
	return p.background
}

// Show sets the card to track with the given artwork. bg and thumb may be
// nil when the track has no thumbnail.
func (p *LyricsPanel) Show(track model.Track, bg, thumb image.Image) {
	p.artist.Text = track.Artist
	p.artist.Refresh()
	p.title.SetText(track.Title)
	p.lyrics.SetText("♪ " + track.Title + " ♪\n\n" + p.loc.GetText(KeyLyricsSample))

	p.background.Image = bg
	p.background.Refresh()

	p.thumb.Image = thumb
	if thumb == nil {
		p.thumb.Hide()
		p.noThumb.Show()
	} else {
		p.thumb.Show()
		p.noThumb.Hide()
	}
	p.thumb.Refresh()
}

// ShowEmpty clears the card for an empty library
func (p *LyricsPanel) ShowEmpty(bg image.Image) {
	p.artist.Text = ""
	p.artist.Refresh()
	p.title.SetText(p.loc.GetText(KeyEmptyLibrary))
	p.lyrics.SetText("")
	p.background.Image = bg
	p.background.Refresh()
	p.thumb.Image = nil
	p.thumb.Hide()
	p.noThumb.Show()
}
