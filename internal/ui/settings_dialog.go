package ui

import (
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-jukebox/internal/config"
)

// SettingsDialog edits the persisted preferences
type SettingsDialog struct {
	settings     *config.Settings
	window       fyne.Window
	localization *Localization
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	libraryEntry   *widget.Entry
	ffmpegEntry    *widget.Entry
	maxParallel    *widget.Select
	languageSelect *widget.Select
	languageCodes  map[string]string // label -> code
}

// ShowSettingsDialog builds and shows the dialog. onSaved runs after the
// values were written.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, loc *Localization, onSaved func()) *SettingsDialog {
	sd := NewSettingsDialog(settings, window, loc)
	sd.onSaved = onSaved
	sd.Show()
	return sd
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, window fyne.Window, loc *Localization) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		window:       window,
		localization: loc,
	}
	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	loc := sd.localization

	sd.libraryEntry = widget.NewEntry()
	browse := widget.NewButton(loc.GetText(KeyBrowse), sd.onBrowseDirectory)
	libraryRow := container.NewBorder(nil, nil, nil, browse, sd.libraryEntry)

	sd.ffmpegEntry = widget.NewEntry()
	sd.ffmpegEntry.SetPlaceHolder("ffmpeg")

	parallel := make([]string, 0, config.MaxParallelLimit)
	for i := 1; i <= config.MaxParallelLimit; i++ {
		parallel = append(parallel, strconv.Itoa(i))
	}
	sd.maxParallel = widget.NewSelect(parallel, nil)

	sd.languageCodes = map[string]string{}
	var labels []string
	for code, label := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[label] = code
		labels = append(labels, label)
	}
	sort.Strings(labels)
	sd.languageSelect = widget.NewSelect(labels, nil)

	form := widget.NewForm(
		widget.NewFormItem(loc.GetText(KeyLibraryRoot), libraryRow),
		widget.NewFormItem(loc.GetText(KeyFFmpegLocation), sd.ffmpegEntry),
		widget.NewFormItem(loc.GetText(KeyMaxParallel), sd.maxParallel),
		widget.NewFormItem(loc.GetText(KeyLanguage), sd.languageSelect),
	)

	sd.dialog = dialog.NewCustomConfirm(
		loc.GetText(KeySettings),
		loc.GetText(KeySave),
		loc.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(500, 320))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.libraryEntry.SetText(sd.settings.GetLibraryRoot())
	sd.ffmpegEntry.SetText(sd.settings.GetFFmpegLocation())
	sd.maxParallel.SetSelected(strconv.Itoa(sd.settings.GetMaxParallelDownloads()))
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.libraryEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave writes the values. A new library folder only takes effect after
// a restart because the catalog is loaded once.
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	message := sd.localization.GetText(KeySettingsSaved)
	if root := sd.libraryEntry.Text; root != "" && root != sd.settings.GetLibraryRoot() {
		sd.settings.SetLibraryRoot(root)
		message += "\n" + sd.localization.GetText(KeyRestartRequired)
	}
	sd.settings.SetFFmpegLocation(sd.ffmpegEntry.Text)
	if n, err := strconv.Atoi(sd.maxParallel.Selected); err == nil {
		sd.settings.SetMaxParallelDownloads(n)
	}
	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), message, sd.window)
}
