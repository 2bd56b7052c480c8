package ui

import (
	"fmt"
	"image/color"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-jukebox/internal/model"
)

// TaskRow shows one fetch or conversion task: what it works on, its status
// and progress, and a stop button while it is still running.
type TaskRow struct {
	widget.BaseWidget

	view         rowView
	localization *Localization

	titleLabel    *widget.Label
	statusLabel   *widget.Label
	progressLabel *widget.Label
	speedEtaLabel *widget.Label
	filesLabel    *widget.Label
	stopBtn       *widget.Button

	// OnStop is called with the task ID when the stop button is pressed
	OnStop func(taskID string)
}

// rowView is what a row renders, filled from either task kind
type rowView struct {
	id      string
	title   string
	status  model.TaskStatus
	percent int
	detail  string // speed and ETA while running, the error after a failure
	files   int
}

// NewTaskRow creates a row for a fetch task
func NewTaskRow(task *model.DownloadTask, localization *Localization) *TaskRow {
	tr := &TaskRow{localization: localization}
	tr.ExtendBaseWidget(tr)
	tr.createUI()
	tr.UpdateTask(task)
	return tr
}

// UpdateTask shows a fetch task snapshot. Nil snapshots are ignored.
func (tr *TaskRow) UpdateTask(task *model.DownloadTask) {
	if task == nil {
		return
	}
	icon := IconMusic
	if task.Preset == model.FetchVideo {
		icon = IconVideo
	}
	v := rowView{
		id:      task.ID,
		title:   icon + " " + task.GetDisplayTitle(),
		status:  task.Status,
		percent: effectivePercent(task.Status, task.Percent, task.Progress),
		files:   task.Files,
	}
	switch task.Status {
	case model.TaskStatusRunning:
		v.detail = task.Speed
		if task.ETASec > 0 {
			if v.detail != "" {
				v.detail += MiddleDotSeparator
			}
			v.detail += task.GetETAString()
		}
	case model.TaskStatusError:
		v.detail = task.LastError
	}
	tr.show(v)
}

// UpdateConversion shows a conversion task snapshot. Nil snapshots are
// ignored.
func (tr *TaskRow) UpdateConversion(task *model.ConversionTask) {
	if task == nil {
		return
	}
	v := rowView{
		id:      task.ID,
		title:   IconConvert + " " + filepath.Base(task.InputPath),
		status:  task.Status,
		percent: effectivePercent(task.Status, task.Percent, task.Progress),
	}
	switch task.Status {
	case model.TaskStatusCompleted:
		v.detail = filepath.Base(task.OutputPath)
	case model.TaskStatusError:
		v.detail = task.LastError
	}
	tr.show(v)
}

func (tr *TaskRow) show(v rowView) {
	tr.view = v
	tr.updateLabels()
	tr.Refresh()
}

func (tr *TaskRow) createUI() {
	tr.titleLabel = widget.NewLabel("")
	tr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	tr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	tr.statusLabel = widget.NewLabel("")
	tr.statusLabel.Alignment = fyne.TextAlignTrailing
	tr.progressLabel = widget.NewLabel("")
	tr.progressLabel.Alignment = fyne.TextAlignTrailing
	tr.speedEtaLabel = widget.NewLabel("")
	tr.speedEtaLabel.TextStyle = fyne.TextStyle{Monospace: true}
	tr.speedEtaLabel.Truncation = fyne.TextTruncateEllipsis
	tr.filesLabel = widget.NewLabel("")
	tr.filesLabel.TextStyle = fyne.TextStyle{Italic: true}

	tr.stopBtn = widget.NewButton(tr.localization.GetText(KeyStop), func() {
		if tr.OnStop != nil {
			tr.OnStop(tr.view.id)
		}
	})
	tr.stopBtn.Importance = widget.DangerImportance
}

func (tr *TaskRow) updateLabels() {
	v := tr.view
	tr.titleLabel.SetText(v.title)

	switch v.status {
	case model.TaskStatusError:
		tr.statusLabel.Importance = widget.DangerImportance
		tr.statusLabel.SetText(IconError + " " + v.status.String())
	case model.TaskStatusCompleted:
		tr.statusLabel.Importance = widget.SuccessImportance
		tr.statusLabel.SetText(v.status.String())
	case model.TaskStatusRunning:
		tr.statusLabel.Importance = widget.HighImportance
		tr.statusLabel.SetText(IconPlay + " " + v.status.String())
	case model.TaskStatusPending:
		tr.statusLabel.Importance = widget.MediumImportance
		tr.statusLabel.SetText("⏳ " + v.status.String())
	case model.TaskStatusStopped, model.TaskStatusStopping:
		tr.statusLabel.Importance = widget.MediumImportance
		tr.statusLabel.SetText("⏹ " + v.status.String())
	default:
		tr.statusLabel.Importance = widget.MediumImportance
		tr.statusLabel.SetText(v.status.String())
	}

	if v.status == model.TaskStatusCompleted {
		tr.progressLabel.SetText("")
	} else {
		tr.progressLabel.SetText(fmt.Sprintf(ProgressLabelFormat, v.percent))
	}

	detail := v.detail
	if detail == "" && v.status == model.TaskStatusRunning {
		detail = DashPlaceholder
	}
	tr.speedEtaLabel.SetText(detail)

	if v.files > 0 {
		tr.filesLabel.SetText(fmt.Sprintf("%d ✓", v.files))
	} else {
		tr.filesLabel.SetText("")
	}

	if v.status.CanStop() {
		tr.stopBtn.Enable()
	} else {
		tr.stopBtn.Disable()
	}
}

// effectivePercent prefers the integer percent the tool reported and falls
// back to the fraction, never showing 0 once something has arrived.
func effectivePercent(status model.TaskStatus, percent int, progress float64) int {
	if status == model.TaskStatusCompleted {
		return 100
	}
	p := percent
	if p <= 0 && progress > 0 {
		p = int(progress*100 + 0.5)
		if p == 0 {
			p = 1
		}
	}
	return min(max(p, 0), 100)
}

// CreateRenderer creates the widget renderer
func (tr *TaskRow) CreateRenderer() fyne.WidgetRenderer {
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.Transparent)
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	info := container.NewVBox(
		fixedWidth(StatusLabelWidth, tr.statusLabel),
		container.NewHBox(
			fixedWidth(SpeedLabelWidth, tr.speedEtaLabel),
			fixedWidth(PercentLabelWidth, tr.progressLabel),
		),
	)
	right := container.NewBorder(nil, nil, nil, container.NewCenter(tr.stopBtn), info)
	left := container.NewVBox(tr.titleLabel, tr.filesLabel)

	return &taskRowRenderer{
		row:    tr,
		layout: container.NewVBox(container.NewBorder(nil, nil, nil, right, left), widget.NewSeparator()),
	}
}

type taskRowRenderer struct {
	row    *TaskRow
	layout *fyne.Container
}

func (r *taskRowRenderer) Layout(size fyne.Size) {
	r.layout.Resize(fyne.NewSize(max(size.Width, RowMinWidth), max(size.Height, RowMinHeight)))
}

func (r *taskRowRenderer) MinSize() fyne.Size {
	m := r.layout.MinSize()
	return fyne.NewSize(max(m.Width, RowMinWidth), max(m.Height, RowMinHeight))
}

func (r *taskRowRenderer) Refresh() {
	r.layout.Refresh()
}

func (r *taskRowRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.layout}
}

func (r *taskRowRenderer) Destroy() {}
