package ui

import (
	"sync/atomic"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-jukebox/internal/model"
)

func TestSeekFraction(t *testing.T) {
	tests := []struct {
		name string
		x, w float32
		want float64
	}{
		{"quarter", 50, 200, 0.25},
		{"start", 0, 200, 0},
		{"end", 200, 200, 1},
		{"left of bar", -5, 200, 0},
		{"right of bar", 250, 200, 1},
		{"zero width", 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SeekFraction(tt.x, tt.w), 1e-9)
		})
	}
}

func TestSeekBarTapped(t *testing.T) {
	test.NewTempApp(t)
	bar := NewSeekBar()
	bar.Resize(fyne.NewSize(400, 20))

	var got float64
	bar.OnSeek = func(f float64) { got = f }
	test.TapAt(bar, fyne.NewPos(100, 10))
	assert.InDelta(t, 0.25, got, 1e-6)
}

func TestCurtainDragClamps(t *testing.T) {
	test.NewTempApp(t)
	c := NewCurtain(600)
	t.Cleanup(c.stopAnimation)

	assert.Equal(t, float32(-600), c.Y())

	c.Dragged(&fyne.DragEvent{Dragged: fyne.Delta{DY: 1000}})
	assert.Equal(t, float32(0), c.Y())
	assert.Equal(t, float32(0), c.Position().Y)

	c.Dragged(&fyne.DragEvent{Dragged: fyne.Delta{DY: -200}})
	assert.Equal(t, float32(-200), c.Y())

	c.Dragged(&fyne.DragEvent{Dragged: fyne.Delta{DY: -1000}})
	assert.Equal(t, float32(-600), c.Y())
}

func TestCurtainReleaseSnaps(t *testing.T) {
	test.NewTempApp(t)
	c := NewCurtain(600)
	t.Cleanup(c.stopAnimation)

	c.Dragged(&fyne.DragEvent{Dragged: fyne.Delta{DY: 400}})
	c.DragEnd()
	assert.Eventually(t, func() bool { return c.Y() == 0 }, 2*time.Second, 10*time.Millisecond)

	c.Dragged(&fyne.DragEvent{Dragged: fyne.Delta{DY: -400}})
	c.DragEnd()
	assert.Eventually(t, func() bool { return c.Y() == -600 }, 2*time.Second, 10*time.Millisecond)
}

func TestCurtainToggleAndLower(t *testing.T) {
	test.NewTempApp(t)
	c := NewCurtain(600)
	t.Cleanup(c.stopAnimation)

	c.Lower()
	assert.Eventually(t, func() bool { return c.Y() == 0 && c.Position().Y == 0 }, 2*time.Second, 10*time.Millisecond)

	c.Toggle()
	assert.Eventually(t, func() bool { return c.Y() == -600 }, 2*time.Second, 10*time.Millisecond)

	c.Toggle()
	assert.Eventually(t, func() bool { return c.Y() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestCurtainFollowsResize(t *testing.T) {
	test.NewTempApp(t)
	c := NewCurtain(600)
	t.Cleanup(c.stopAnimation)

	c.setHeight(560)
	assert.Equal(t, float32(-560), c.Y())

	c.Dragged(&fyne.DragEvent{Dragged: fyne.Delta{DY: 1000}})
	c.setHeight(500)
	assert.Equal(t, float32(0), c.Y())
}

func TestCurtainLayoutKeepsHandleOnTop(t *testing.T) {
	test.NewTempApp(t)
	c := NewCurtain(600)
	h := newCurtainHandle(c)

	l := &curtainLayout{curtain: c}
	l.Layout([]fyne.CanvasObject{c, h}, fyne.NewSize(800, 600))

	assert.Equal(t, fyne.NewSize(800, 600), c.Size())
	assert.Equal(t, float32(-600), c.Position().Y)
	assert.Equal(t, float32(0), h.Position().Y)
	assert.Equal(t, CurtainHandleHeight, h.Size().Height)
}

func TestAnimatorRunsUntilDone(t *testing.T) {
	test.NewTempApp(t)

	var a animator
	var steps atomic.Int32
	a.Start(time.Millisecond, func() time.Duration {
		if steps.Add(1) == 3 {
			return 0
		}
		return time.Millisecond
	})

	assert.Eventually(t, func() bool { return !a.Running() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(3), steps.Load())
}

func TestAnimatorStop(t *testing.T) {
	test.NewTempApp(t)

	var a animator
	var steps atomic.Int32
	a.Start(time.Hour, func() time.Duration {
		steps.Add(1)
		return time.Hour
	})
	require.True(t, a.Running())

	a.Stop()
	assert.False(t, a.Running())
	assert.Zero(t, steps.Load())
}

func TestLocalization(t *testing.T) {
	l := NewLocalization()
	assert.Equal(t, "en", l.GetCurrentLanguage())
	assert.Equal(t, "Lyrics", l.GetText(KeyLyrics))

	l.SetLanguage("ko")
	assert.Equal(t, "가사", l.GetText(KeyLyrics))

	l.SetLanguage("fr")
	assert.Equal(t, "ko", l.GetCurrentLanguage())

	l.SetLanguage("system")
	assert.Equal(t, "en", l.GetCurrentLanguage())

	assert.Equal(t, "no_such_key", l.GetText("no_such_key"))
}

func TestLocalizationCoversEveryKey(t *testing.T) {
	l := NewLocalization()
	for key := range l.texts["en"] {
		assert.Contains(t, l.texts["ko"], key)
	}
	assert.Len(t, l.texts["ko"], len(l.texts["en"]))
}

func TestTaskRowReflectsTask(t *testing.T) {
	test.NewTempApp(t)
	task := &model.DownloadTask{
		ID:      "fetch-1",
		Preset:  model.FetchAudio,
		Status:  model.TaskStatusRunning,
		Title:   "Artist - Song",
		Percent: 42,
		Speed:   "1.2MiB/s",
		ETASec:  65,
		Files:   3,
	}
	row := NewTaskRow(task, NewLocalization())

	assert.Equal(t, IconMusic+" Artist - Song", row.titleLabel.Text)
	assert.Equal(t, "42%", row.progressLabel.Text)
	assert.Equal(t, "1.2MiB/s"+MiddleDotSeparator+"01:05", row.speedEtaLabel.Text)
	assert.Equal(t, "3 ✓", row.filesLabel.Text)
	assert.False(t, row.stopBtn.Disabled())

	var stopped string
	row.OnStop = func(id string) { stopped = id }
	test.Tap(row.stopBtn)
	assert.Equal(t, "fetch-1", stopped)

	done := *task
	done.Status = model.TaskStatusCompleted
	row.UpdateTask(&done)
	assert.Empty(t, row.progressLabel.Text)
	assert.True(t, row.stopBtn.Disabled())

	failed := *task
	failed.Status = model.TaskStatusError
	failed.LastError = "HTTP Error 403"
	row.UpdateTask(&failed)
	assert.Equal(t, "HTTP Error 403", row.speedEtaLabel.Text)
	assert.Contains(t, row.statusLabel.Text, IconError)
}

func TestTaskRowShowsConversion(t *testing.T) {
	test.NewTempApp(t)
	row := NewTaskRow(&model.DownloadTask{}, NewLocalization())

	var stopped string
	row.OnStop = func(id string) { stopped = id }
	row.UpdateConversion(&model.ConversionTask{
		ID:         "convert-1",
		InputPath:  "/lib/mv/Artist_Song.webm",
		OutputPath: "/lib/mv/Artist_Song.mp4",
		Status:     model.TaskStatusRunning,
		Progress:   0.5,
	})

	assert.Equal(t, IconConvert+" Artist_Song.webm", row.titleLabel.Text)
	assert.Equal(t, "50%", row.progressLabel.Text)
	assert.Equal(t, DashPlaceholder, row.speedEtaLabel.Text)
	assert.Empty(t, row.filesLabel.Text)
	test.Tap(row.stopBtn)
	assert.Equal(t, "convert-1", stopped)

	row.UpdateConversion(&model.ConversionTask{
		ID:         "convert-1",
		InputPath:  "/lib/mv/Artist_Song.webm",
		OutputPath: "/lib/mv/Artist_Song.mp4",
		Status:     model.TaskStatusCompleted,
	})
	assert.Equal(t, "Artist_Song.mp4", row.speedEtaLabel.Text)
	assert.True(t, row.stopBtn.Disabled())
}

func TestEffectivePercent(t *testing.T) {
	tests := []struct {
		name     string
		status   model.TaskStatus
		percent  int
		progress float64
		want     int
	}{
		{"reported", model.TaskStatusRunning, 30, 0, 30},
		{"from fraction", model.TaskStatusRunning, 0, 0.456, 46},
		{"tiny fraction", model.TaskStatusRunning, 0, 0.001, 1},
		{"nothing yet", model.TaskStatusPending, 0, 0, 0},
		{"clamped", model.TaskStatusRunning, 140, 0, 100},
		{"completed", model.TaskStatusCompleted, 0, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, effectivePercent(tt.status, tt.percent, tt.progress))
		})
	}
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, validateURL("https://www.youtube.com/playlist?list=PL123"))
	assert.NoError(t, validateURL("http://youtu.be/abc"))
	assert.Error(t, validateURL("ftp://example.com/list"))
	assert.Error(t, validateURL("youtube.com/playlist?list=PL123"))
	assert.Error(t, validateURL("https://"))
	assert.Error(t, validateURL("://bad"))
}

func TestJukeboxThemeIsDark(t *testing.T) {
	th := NewJukeboxTheme()
	assert.Equal(t, ColorGold, th.Color("primary", theme.VariantLight))
	assert.Equal(t, float32(3), th.Size("padding"))
}
