package ui

import (
	"context"
	"errors"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-jukebox/internal/artwork"
	"github.com/ytget/yt-jukebox/internal/catalog"
	"github.com/ytget/yt-jukebox/internal/config"
	"github.com/ytget/yt-jukebox/internal/convert"
	"github.com/ytget/yt-jukebox/internal/download"
	"github.com/ytget/yt-jukebox/internal/model"
	"github.com/ytget/yt-jukebox/internal/platform"
	"github.com/ytget/yt-jukebox/internal/player"
)

// Deps bundles the services the player window drives
type Deps struct {
	Catalog    *catalog.Catalog
	Controller *player.Controller
	Artwork    *artwork.Cache
	Downloads  *download.Service
	Converter  *convert.Service
	Playlists  *platform.PlaylistService
	Tagger     *catalog.Tagger
	Settings   *config.Settings
	Log        zerolog.Logger
}

// RootUI represents the main player window
type RootUI struct {
	window       fyne.Window
	deps         Deps
	ctrl         *player.Controller
	source       librarySource
	localization *Localization
	log          zerolog.Logger

	carousel  *Carousel
	curtain   *Curtain
	lyrics    *LyricsPanel
	seekBar   *SeekBar
	timeLabel *widget.Label

	playBtn   *widget.Button
	muteBtn   *widget.Button
	songsBtn  *widget.Button
	lyricsBtn *widget.Button
	videoBtn  *widget.Button
	backBtn   *widget.Button
	videoNote *widget.Label
	videoView *fyne.Container
	fetch     *FetchPanel

	shown      int
	shownMode  model.Mode
	advancedAt time.Time
	stop       context.CancelFunc

	toastText  string
	toastUntil time.Time
}

// NewRootUI creates and initializes the player window
func NewRootUI(window fyne.Window, deps Deps) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(deps.Settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		deps:         deps,
		ctrl:         deps.Controller,
		localization: localization,
		log:          deps.Log.With().Str("component", "ui").Logger(),
		shown:        model.NoTrack,
		source: librarySource{
			cat:   deps.Catalog,
			cache: deps.Artwork,
			log:   deps.Log,
		},
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	if icon, err := LoadLogoResource(); err == nil {
		window.SetIcon(icon)
	}

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.lyrics = NewLyricsPanel(ui.localization)

	ui.carousel = NewCarousel(ui.deps.Catalog.Len(), ui.source)
	ui.carousel.OnSelect = ui.selectTrack

	ui.seekBar = NewSeekBar()
	ui.seekBar.OnSeek = func(f float64) {
		ui.report(ui.ctrl.Seek(f))
	}
	ui.timeLabel = widget.NewLabel(model.FormatClock(0) + " / " + model.FormatClock(0))
	ui.timeLabel.TextStyle = fyne.TextStyle{Monospace: true}

	rewind := widget.NewButtonWithIcon("", theme.MediaFastRewindIcon(), ui.onRewind)
	ui.playBtn = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
		ui.report(ui.ctrl.TogglePlay())
		ui.syncView()
	})
	forward := widget.NewButtonWithIcon("", theme.MediaFastForwardIcon(), ui.onForward)
	ui.muteBtn = widget.NewButtonWithIcon("", theme.VolumeUpIcon(), ui.onToggleMute)
	ui.songsBtn = widget.NewButtonWithIcon("", theme.ListIcon(), ui.onToggleSongs)

	ui.lyricsBtn = widget.NewButton(ui.localization.GetText(KeyLyrics), func() {
		ui.setMode(model.ModeLyrics)
	})
	ui.videoBtn = widget.NewButton(ui.localization.GetText(KeyMusicVideo), func() {
		ui.setMode(model.ModeVideo)
	})
	ui.backBtn = widget.NewButton(ui.localization.GetText(KeyBackToLyrics), func() {
		ui.setMode(model.ModeLyrics)
	})
	ui.backBtn.Importance = widget.HighImportance

	ui.videoNote = widget.NewLabel(ui.localization.GetText(KeyVideoPlaying))
	ui.videoNote.Alignment = fyne.TextAlignCenter
	ui.videoView = container.NewCenter(container.NewVBox(ui.videoNote, container.NewCenter(ui.backBtn)))
	ui.videoView.Hide()

	square := func(b *widget.Button) fyne.CanvasObject {
		return container.NewGridWrap(fyne.NewSquareSize(ControlButtonSize), b)
	}
	modeSize := fyne.NewSize(ModeButtonWidth, ModeButtonHeight)
	controls := container.NewHBox(
		square(rewind), square(ui.playBtn), square(forward), square(ui.muteBtn), square(ui.songsBtn),
		layout.NewSpacer(),
		container.NewGridWrap(modeSize, ui.lyricsBtn),
		container.NewGridWrap(modeSize, ui.videoBtn),
	)

	bottom := container.NewVBox(
		container.NewCenter(ui.carousel),
		container.NewBorder(nil, nil, nil, ui.timeLabel, ui.seekBar),
		controls,
	)
	body := container.NewBorder(nil, container.NewPadded(bottom), nil, nil,
		container.NewStack(ui.lyrics.Content(), ui.videoView))

	ui.curtain = NewCurtain(WindowHeight)
	overlay := container.New(&curtainLayout{curtain: ui.curtain}, ui.curtain, newCurtainHandle(ui.curtain))

	ui.window.SetContent(container.NewStack(ui.lyrics.Background(), body, overlay))
	ui.window.Canvas().SetOnTypedKey(ui.onKey)
	ui.log.Debug().Int("tracks", ui.deps.Catalog.Len()).Msg("UI setup completed")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	fetchItem := fyne.NewMenuItem(ui.localization.GetText(KeyFetch), ui.onShowFetch)
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	folderItem := fyne.NewMenuItem(ui.localization.GetText(KeyOpenFolder), func() {
		if err := platform.OpenInFileManager(ui.deps.Catalog.Library.Root); err != nil {
			ui.report(err)
		}
	})
	curtainItem := fyne.NewMenuItem(ui.localization.GetText(KeySongs), ui.onToggleSongs)
	playItem := fyne.NewMenuItem(ui.localization.GetText(KeyPlayPause), func() {
		ui.report(ui.ctrl.TogglePlay())
		ui.syncView()
	})
	rewindItem := fyne.NewMenuItem(ui.localization.GetText(KeyRewind), ui.onRewind)
	forwardItem := fyne.NewMenuItem(ui.localization.GetText(KeyForward), ui.onForward)
	muteItem := fyne.NewMenuItem(ui.localization.GetText(KeyMute), ui.onToggleMute)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), fetchItem, folderItem, settingsItem),
		fyne.NewMenu(ui.localization.GetText(KeyLibrary), playItem, rewindItem, forwardItem, muteItem, fyne.NewMenuItemSeparator(), curtainItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.deps.Settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.lyricsBtn.SetText(ui.localization.GetText(KeyLyrics))
	ui.videoBtn.SetText(ui.localization.GetText(KeyMusicVideo))
	ui.backBtn.SetText(ui.localization.GetText(KeyBackToLyrics))
	ui.videoNote.SetText(ui.localization.GetText(KeyVideoPlaying))
	ui.shown = model.NoTrack
	ui.syncView()
}

// Start restores preferences, selects the first track, drops the curtain
// and starts the progress sampler. Stop ends the sampler.
func (ui *RootUI) Start(ctx context.Context) {
	ctx, ui.stop = context.WithCancel(ctx)

	ui.report(ui.ctrl.SetMuted(ui.deps.Settings.GetMuted()))
	if ui.deps.Catalog.Len() > 0 {
		if ui.deps.Settings.GetMode() == model.ModeVideo {
			ui.report(ui.ctrl.SetMode(model.ModeVideo))
		}
		ui.selectTrack(0)
		ui.curtain.Lower()
	}
	ui.syncView()

	go ui.sampleLoop(ctx)
}

// Stop ends the sampler, any animation and a running organize pass
func (ui *RootUI) Stop() {
	if ui.stop != nil {
		ui.stop()
	}
	ui.carousel.anim.Stop()
	ui.curtain.stopAnimation()
	if ui.fetch != nil {
		ui.fetch.Close()
	}
}

// sampleLoop polls the reference clock while something plays. Its errors
// are logged only, once per distinct message.
func (ui *RootUI) sampleLoop(ctx context.Context) {
	ticker := time.NewTicker(player.SampleEvery)
	defer ticker.Stop()

	lastErr := ""
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if !ui.ctrl.State().Playing {
			continue
		}
		progress, err := ui.ctrl.Sample()
		switch {
		case err == nil:
			lastErr = ""
		case err.Error() != lastErr:
			lastErr = err.Error()
			ui.log.Warn().Err(err).Msg("sample failed")
		}
		fyne.Do(func() {
			ui.applyProgress(progress)
		})
	}
}

// applyProgress shows a sample. A track change or a video fallback inside
// Sample redraws the rest of the window.
func (ui *RootUI) applyProgress(p player.Progress) {
	ui.seekBar.SetValue(p.Fraction)
	ui.timeLabel.SetText(p.Text)
	if p.Advanced {
		ui.advancedAt = time.Now()
	}
	if p.Advanced || ui.ctrl.State().Mode != ui.shownMode {
		ui.syncView()
	}
}

// VideoEnded is wired to the video clock's end-of-file event. An advance
// the audio clock just made is not repeated.
func (ui *RootUI) VideoEnded() {
	fyne.Do(func() {
		if ui.ctrl.State().Mode != model.ModeVideo || time.Since(ui.advancedAt) < 2*player.EndTolerance {
			return
		}
		ui.report(ui.ctrl.VideoEnded())
		ui.syncView()
	})
}

// syncView redraws everything that depends on the controller state
func (ui *RootUI) syncView() {
	st := ui.ctrl.State()
	ui.shownMode = st.Mode

	if st.Playing {
		ui.playBtn.SetIcon(theme.MediaPauseIcon())
	} else {
		ui.playBtn.SetIcon(theme.MediaPlayIcon())
	}
	if st.Muted {
		ui.muteBtn.SetIcon(theme.VolumeMuteIcon())
	} else {
		ui.muteBtn.SetIcon(theme.VolumeUpIcon())
	}

	if st.Mode == model.ModeVideo && st.Video != "" {
		ui.lyrics.Content().Hide()
		ui.videoView.Show()
		ui.videoBtn.Importance = widget.HighImportance
		ui.lyricsBtn.Importance = widget.MediumImportance
	} else {
		ui.videoView.Hide()
		ui.lyrics.Content().Show()
		ui.lyricsBtn.Importance = widget.HighImportance
		ui.videoBtn.Importance = widget.MediumImportance
	}
	ui.lyricsBtn.Refresh()
	ui.videoBtn.Refresh()

	if st.Current == ui.shown {
		return
	}
	ui.shown = st.Current

	if st.Current == model.NoTrack {
		ui.lyrics.ShowEmpty(ui.source.background(model.NoTrack))
		return
	}
	ui.carousel.CenterOn(st.Current)
	thumb, _ := ui.source.thumbnail(st.Current, int(CardThumbSize))
	ui.lyrics.Show(st.Track, ui.source.background(st.Current), thumb)
	ui.seekBar.SetValue(0)
	ui.timeLabel.SetText(model.FormatClock(0) + " / " + model.FormatClock(st.Track.Duration))
}

// selectTrack plays track and folds the carousel away
func (ui *RootUI) selectTrack(track int) {
	ui.report(ui.ctrl.Select(track))
	ui.carousel.Hide()
	ui.syncView()
}

func (ui *RootUI) onRewind() {
	ui.report(ui.ctrl.Rewind())
	ui.syncView()
}

func (ui *RootUI) onForward() {
	ui.report(ui.ctrl.Forward())
	ui.syncView()
}

func (ui *RootUI) setMode(mode model.Mode) {
	ui.report(ui.ctrl.SetMode(mode))
	ui.deps.Settings.SetMode(ui.ctrl.State().Mode)
	ui.syncView()
}

func (ui *RootUI) onToggleMute() {
	ui.report(ui.ctrl.ToggleMute())
	ui.deps.Settings.SetMuted(ui.ctrl.State().Muted)
	ui.syncView()
}

func (ui *RootUI) onToggleSongs() {
	if ui.carousel.Visible() {
		ui.carousel.Hide()
		return
	}
	ui.carousel.Show()
}

func (ui *RootUI) onKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeySpace:
		ui.report(ui.ctrl.TogglePlay())
	case fyne.KeyLeft:
		ui.onRewind()
		return
	case fyne.KeyRight:
		ui.onForward()
		return
	case fyne.KeyPageUp:
		ui.report(ui.ctrl.Previous())
	case fyne.KeyPageDown:
		ui.report(ui.ctrl.Next())
	case fyne.KeyM:
		ui.onToggleMute()
		return
	default:
		return
	}
	ui.syncView()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.deps.Settings, ui.localization, func() {
		ui.localization.SetLanguage(ui.deps.Settings.GetLanguage())
		ui.deps.Downloads.SetFFmpegLocation(ui.deps.Settings.GetFFmpegLocation())
		ui.refreshUITexts()
		ui.createMenu()
	})
}

// onShowFetch opens the fetch panel, keeping its state between openings
func (ui *RootUI) onShowFetch() {
	if ui.fetch == nil {
		ui.fetch = NewFetchPanel(ui.window, ui.deps, ui.localization, ui.report)
	}
	ui.fetch.Show()
}

// report is the single error sink of the window. It logs and keeps the
// player usable; state stays as the failing operation left it. The user
// sees at most a short toast, never the error text.
func (ui *RootUI) report(err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, player.ErrNoDuration), errors.Is(err, player.ErrNoTrack), errors.Is(err, catalog.ErrEmptyCatalog):
		ui.log.Debug().Err(err).Msg("ignored")
	case errors.Is(err, player.ErrNoVideo):
		ui.log.Info().Err(err).Msg("no music video")
		ui.showToast(ui.localization.GetText(KeyNoVideo))
	case errors.Is(err, player.ErrVideoFailed):
		ui.log.Warn().Err(err).Msg("video dropped")
		ui.showToast(ui.localization.GetText(KeyVideoFailed))
	default:
		ui.log.Error().Err(err).Msg("operation failed")
		ui.showToast(ui.localization.GetText(KeyFailed))
	}
}

// showToast shows a transient message in the top-right corner. The same
// message is not repeated while its toast is still up.
func (ui *RootUI) showToast(message string) {
	now := time.Now()
	if message == ui.toastText && now.Before(ui.toastUntil) {
		return
	}
	ui.toastText, ui.toastUntil = message, now.Add(ErrorToastAutoHide)

	label := widget.NewLabel(IconMusic + " " + message)
	popup := widget.NewPopUp(label, ui.window.Canvas())

	canvasSize := ui.window.Canvas().Size()
	size := popup.MinSize()
	popup.ShowAtPosition(fyne.NewPos(canvasSize.Width-size.Width-InfoMargin, InfoMargin))

	time.AfterFunc(ErrorToastAutoHide, func() {
		fyne.Do(popup.Hide)
	})
}
