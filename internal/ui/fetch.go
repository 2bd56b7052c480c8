package ui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-jukebox/internal/model"
	"github.com/ytget/yt-jukebox/internal/platform"
)

// FetchPanel downloads a playlist into the library and runs the
// maintenance steps that follow a fetch.
type FetchPanel struct {
	window       fyne.Window
	deps         Deps
	localization *Localization
	report       func(error)
	log          zerolog.Logger

	urlEntry      *widget.Entry
	notification  *widget.Label
	spinner       *widget.ProgressBarInfinite
	notifyBox     *fyne.Container
	missingList   *widget.List
	taskList      *widget.List
	convertCheck  *widget.Check
	reencodeCheck *widget.Check
	organizeBtn   *widget.Button
	dialog        dialog.Dialog

	missing     []*model.PlaylistEntry
	tasks       []model.DownloadTask
	conversions []model.ConversionTask

	stopOrganize context.CancelFunc
}

// NewFetchPanel creates the panel. report receives errors the panel cannot
// show inline.
func NewFetchPanel(window fyne.Window, deps Deps, loc *Localization, report func(error)) *FetchPanel {
	fp := &FetchPanel{
		window:       window,
		deps:         deps,
		localization: loc,
		report:       report,
		log:          deps.Log.With().Str("component", "fetch").Logger(),
	}
	fp.createUI()
	deps.Downloads.SetUpdateCallback(fp.onTaskUpdate)
	deps.Converter.SetUpdateCallback(fp.onConversionUpdate)
	return fp
}

// Close cancels a running organize pass. Call on the UI goroutine.
func (fp *FetchPanel) Close() {
	if fp.stopOrganize != nil {
		fp.stopOrganize()
	}
}

// Show opens the panel
func (fp *FetchPanel) Show() {
	fp.dialog.Show()
	fp.dialog.Resize(fyne.NewSize(FetchDialogWidth, FetchDialogHeight))
}

func (fp *FetchPanel) createUI() {
	loc := fp.localization

	fp.urlEntry = widget.NewEntry()
	fp.urlEntry.SetPlaceHolder(loc.GetText(KeyEnterURL))
	fp.urlEntry.SetText(fp.deps.Settings.GetPlaylistURL())

	check := widget.NewButton(loc.GetText(KeyCheckPlaylist), fp.onCheckPlaylist)
	audio := widget.NewButton(loc.GetText(KeyFetchAudio), func() { fp.onFetch(model.FetchAudio) })
	audio.Importance = widget.HighImportance
	video := widget.NewButton(loc.GetText(KeyFetchVideo), func() { fp.onFetch(model.FetchVideo) })

	fp.notification = widget.NewLabel("")
	fp.notification.Wrapping = fyne.TextWrapWord
	fp.spinner = widget.NewProgressBarInfinite()
	fp.spinner.Hide()
	fp.notifyBox = container.NewBorder(nil, nil, fp.spinner, nil, fp.notification)
	fp.notifyBox.Hide()

	fp.missingList = widget.NewList(
		func() int { return len(fp.missing) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(fp.missing[id].Title)
		},
	)

	fp.taskList = widget.NewList(
		func() int { return len(fp.tasks) + len(fp.conversions) },
		func() fyne.CanvasObject {
			return NewTaskRow(&model.DownloadTask{}, fp.localization)
		},
		fp.updateTaskRow,
	)

	fp.convertCheck = widget.NewCheck(loc.GetText(KeyConvert), nil)
	fp.reencodeCheck = widget.NewCheck(loc.GetText(KeyReencode), nil)
	fp.organizeBtn = widget.NewButton(loc.GetText(KeyOrganize), fp.onOrganize)
	tag := widget.NewButton(loc.GetText(KeyTag), fp.onTag)
	folder := widget.NewButton(loc.GetText(KeyOpenFolder), func() {
		if err := platform.OpenInFileManager(fp.deps.Catalog.Library.Root); err != nil {
			fp.notify(loc.GetText(KeyErrorOpenFolder)+": "+err.Error(), false)
		}
	})

	top := container.NewVBox(
		container.NewBorder(nil, nil, nil, check, fp.urlEntry),
		container.NewHBox(audio, video),
		fp.notifyBox,
	)
	bottom := container.NewHBox(fp.organizeBtn, fp.convertCheck, fp.reencodeCheck, tag, folder)
	lists := container.NewVSplit(
		container.NewBorder(widget.NewLabel(loc.GetText(KeyMissingEntries)), nil, nil, nil, fp.missingList),
		fp.taskList,
	)

	fp.dialog = dialog.NewCustom(loc.GetText(KeyFetch), loc.GetText(KeyClose),
		container.NewBorder(top, bottom, nil, nil, lists), fp.window)
}

// validateURL accepts only absolute http(s) URLs
func validateURL(input string) error {
	parsed, err := url.Parse(input)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

// enteredURL returns the trimmed, validated URL or reports why it is not usable
func (fp *FetchPanel) enteredURL() (string, bool) {
	text := strings.TrimSpace(fp.urlEntry.Text)
	if text == "" {
		fp.notify(fp.localization.GetText(KeyPleaseEnterURL), false)
		return "", false
	}
	if err := validateURL(text); err != nil {
		fp.notify(fp.localization.GetText(KeyInvalidURL)+": "+err.Error(), false)
		return "", false
	}
	fp.deps.Settings.SetPlaylistURL(text)
	return text, true
}

func (fp *FetchPanel) onCheckPlaylist() {
	link, ok := fp.enteredURL()
	if !ok {
		return
	}
	fp.notify(fp.localization.GetText(KeyParsingStarted), true)

	go func() {
		playlist, err := fp.deps.Playlists.ParsePlaylist(context.Background(), link)
		if err == nil {
			playlist.Mark(fp.deps.Catalog.HasTitle)
		}
		fyne.Do(func() {
			if err != nil {
				fp.log.Warn().Err(err).Str("url", link).Msg("playlist check failed")
				fp.notify(fp.localization.GetText(KeyParsingFailed)+": "+err.Error(), false)
				return
			}
			fp.missing = playlist.Missing()
			fp.missingList.Refresh()
			fp.notify(fmt.Sprintf("%s: %s (%d), %d %s",
				fp.localization.GetText(KeyPlaylistParsed), playlist.Title, playlist.Len(),
				len(fp.missing), fp.localization.GetText(KeyMissingEntries)), false)
		})
	}()
}

func (fp *FetchPanel) onFetch(preset model.FetchPreset) {
	link, ok := fp.enteredURL()
	if !ok {
		return
	}
	task, err := fp.deps.Downloads.AddTask(link, preset)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			fp.notify(fp.localization.GetText(KeyAlreadyInQueue), false)
			return
		}
		fp.notify(err.Error(), false)
		return
	}
	fp.log.Info().Str("task", task.ID).Str("preset", string(preset)).Msg("fetch queued")
	fp.tasks = fp.deps.Downloads.GetAllTasks()
	fp.taskList.Refresh()
	fp.notify(fp.localization.GetText(KeyTaskAdded), false)
}

// updateTaskRow fills a list row: fetch tasks first, then conversions
func (fp *FetchPanel) updateTaskRow(id widget.ListItemID, obj fyne.CanvasObject) {
	row := obj.(*TaskRow)
	if id < len(fp.tasks) {
		row.OnStop = fp.onStopTask
		row.UpdateTask(&fp.tasks[id])
		return
	}
	row.OnStop = fp.onStopConversion
	row.UpdateConversion(&fp.conversions[id-len(fp.tasks)])
}

func (fp *FetchPanel) onStopTask(id string) {
	if err := fp.deps.Downloads.StopTask(id); err != nil {
		fp.log.Debug().Err(err).Str("task", id).Msg("stop ignored")
	}
}

func (fp *FetchPanel) onStopConversion(id string) {
	if err := fp.deps.Converter.StopConversion(id); err != nil {
		fp.log.Debug().Err(err).Str("task", id).Msg("stop ignored")
	}
}

// onTaskUpdate runs on the download goroutines with a task snapshot
func (fp *FetchPanel) onTaskUpdate(task model.DownloadTask) {
	completed := task.Status == model.TaskStatusCompleted
	title := task.GetDisplayTitle()

	fyne.Do(func() {
		fp.tasks = fp.deps.Downloads.GetAllTasks()
		fp.taskList.Refresh()
		if !completed {
			return
		}
		fyne.CurrentApp().SendNotification(&fyne.Notification{
			Title:   fp.localization.GetText(KeyFetchCompleted),
			Content: title,
		})
		fp.notify(fp.localization.GetText(KeyFetchCompleted)+". "+fp.localization.GetText(KeyReloadRequired), false)
	})
}

// onConversionUpdate runs on the conversion goroutine with a task snapshot
func (fp *FetchPanel) onConversionUpdate(model.ConversionTask) {
	fyne.Do(func() {
		fp.conversions = fp.deps.Converter.GetAllTasks()
		fp.taskList.Refresh()
	})
}

// onOrganize moves thumbnails out of the video folder and optionally
// converts leftover webm/mkv videos to mp4. While it runs the button stops
// the pass.
func (fp *FetchPanel) onOrganize() {
	if fp.stopOrganize != nil {
		fp.stopOrganize()
		return
	}

	lib := fp.deps.Catalog.Library
	convertToo := fp.convertCheck.Checked
	fp.deps.Converter.SetReencode(fp.reencodeCheck.Checked)

	ctx, cancel := context.WithCancel(context.Background())
	fp.stopOrganize = cancel
	fp.organizeBtn.SetText(fp.localization.GetText(KeyStop))
	fp.notify(fp.localization.GetText(KeyOrganize)+"...", true)

	go func() {
		defer cancel()
		moved := 0
		report, err := platform.Organize(lib.Videos(), lib.Thumbnails(), fp.log)
		if err == nil {
			moved = len(report.Moved)
			err = report.Err()
		}
		summary := fmt.Sprintf("%s: %d", fp.localization.GetText(KeyOrganizeDone), moved)

		if convertToo && report != nil {
			converted, cerr := fp.deps.Converter.ConvertAll(ctx, lib.Videos())
			if cerr == nil {
				cerr = converted.Err()
			}
			if converted != nil {
				summary += fmt.Sprintf(", %s: %d", fp.localization.GetText(KeyConvert), len(converted.Converted))
			}
			if err == nil {
				err = cerr
			}
		}

		fyne.Do(func() {
			fp.stopOrganize = nil
			fp.organizeBtn.SetText(fp.localization.GetText(KeyOrganize))
			fp.notify(summary, false)
			if errors.Is(err, context.Canceled) {
				fp.log.Info().Msg("organize stopped")
				return
			}
			fp.report(err)
		})
	}()
}

func (fp *FetchPanel) onTag() {
	fp.notify(fp.localization.GetText(KeyTag)+"...", true)
	go func() {
		n, err := fp.deps.Tagger.TagAll(fp.deps.Catalog)
		fyne.Do(func() {
			fp.notify(fmt.Sprintf("%s: %d", fp.localization.GetText(KeyTagDone), n), false)
			fp.report(err)
		})
	}()
}

// notify shows message under the URL row. Call on the UI goroutine.
func (fp *FetchPanel) notify(message string, spinning bool) {
	fp.notification.SetText(message)
	if spinning {
		fp.spinner.Show()
	} else {
		fp.spinner.Hide()
	}
	fp.notifyBox.Show()
	fp.notifyBox.Refresh()
}
