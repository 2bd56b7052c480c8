package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/ytget/yt-jukebox/internal/artwork"
	"github.com/ytget/yt-jukebox/internal/catalog"
	"github.com/ytget/yt-jukebox/internal/config"
	"github.com/ytget/yt-jukebox/internal/convert"
	"github.com/ytget/yt-jukebox/internal/download"
	"github.com/ytget/yt-jukebox/internal/log"
	"github.com/ytget/yt-jukebox/internal/media"
	"github.com/ytget/yt-jukebox/internal/model"
	"github.com/ytget/yt-jukebox/internal/platform"
	"github.com/ytget/yt-jukebox/internal/player"
	"github.com/ytget/yt-jukebox/internal/ui"
)

// runtimeEnv is what every command needs once flags are parsed
type runtimeEnv struct {
	app      fyne.App
	settings *config.Settings
	lib      platform.Library
	ffmpeg   string
	log      zerolog.Logger
}

// setup builds the logger and resolves the library. Flags override the
// stored preferences without replacing them.
func setup(cmd *cli.Command) (*runtimeEnv, error) {
	logger, err := log.New(cmd.String("log-level"), version)
	if nil != err {
		log.NewDefault(version).Error().Err(err).Msg("Invalid log level")
		return nil, exitCodeError(ExitUsage)
	}

	a := app.NewWithID(AppID)
	settings := config.NewSettings(a)

	lib := settings.Library()
	if root := cmd.String("root"); root != "" {
		lib = platform.Library{Root: root}
	}
	if err := lib.Ensure(); nil != err {
		return nil, fmt.Errorf("prepare library %s: %w", lib.Root, err)
	}

	ffmpeg := cmd.String("ffmpeg")
	if ffmpeg == "" {
		ffmpeg = settings.GetFFmpegLocation()
	}

	logger.Debug().Str("root", lib.Root).Str("ffmpeg", ffmpeg).Msg("Library resolved")
	return &runtimeEnv{
		app:      a,
		settings: settings,
		lib:      lib,
		ffmpeg:   ffmpeg,
		log:      logger,
	}, nil
}

func (e *runtimeEnv) prober() *media.Prober {
	return media.NewProber(media.ToolPath(e.ffmpeg, media.FFprobeCommand), e.log)
}

func (e *runtimeEnv) converter() *convert.Service {
	return convert.NewService(media.ToolPath(e.ffmpeg, media.FFmpegCommand), e.prober(), e.log)
}

func (e *runtimeEnv) loadCatalog(ctx context.Context, prober catalog.Prober) (*catalog.Catalog, error) {
	cat, err := catalog.Load(ctx, e.lib, prober, e.log)
	if nil != err {
		if cat == nil || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		e.log.Warn().Err(err).Msg("Catalog loaded with errors")
	}
	return cat, nil
}

func playAction(ctx context.Context, cmd *cli.Command) error {
	e, err := setup(cmd)
	if nil != err {
		return err
	}

	prober := e.prober()
	cat, err := e.loadCatalog(ctx, prober)
	if nil != err {
		return err
	}

	audio := media.NewAudioClock(e.log)
	defer func() {
		if err := audio.Close(); nil != err {
			e.log.Warn().Err(err).Msg("Close audio")
		}
	}()

	var video player.VideoClock
	mpv := startVideo(ctx, e.log)
	if mpv != nil {
		defer func() {
			if err := mpv.Close(); nil != err {
				e.log.Warn().Err(err).Msg("Close video player")
			}
		}()
		video = mpv
	}

	downloads := download.NewService(e.lib, e.settings.GetMaxParallelDownloads(), e.log)
	downloads.SetFFmpegLocation(e.ffmpeg)

	e.app.Settings().SetTheme(ui.NewJukeboxTheme())
	window := e.app.NewWindow(AppName)
	window.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))
	window.SetFixedSize(true)

	root := ui.NewRootUI(window, ui.Deps{
		Catalog:    cat,
		Controller: player.New(cat, audio, video, e.log),
		Artwork:    artwork.NewCache(artwork.DefaultCacheSize, e.log),
		Downloads:  downloads,
		Converter:  e.converter(),
		Playlists:  platform.NewPlaylistService(e.log),
		Tagger:     catalog.NewTagger(e.log),
		Settings:   e.settings,
		Log:        e.log,
	})
	if mpv != nil {
		mpv.SetOnEnd(root.VideoEnded)
	}

	root.Start(ctx)
	defer root.Stop()

	window.ShowAndRun()
	return nil
}

// startVideo launches mpv when it is installed. Video mode is unavailable
// otherwise; the player still works.
func startVideo(ctx context.Context, logger zerolog.Logger) *media.VideoClock {
	bin := media.ToolPath("", media.MPVCommand)
	if bin == "" {
		logger.Warn().Msg("mpv not found, music videos are disabled")
		return nil
	}
	mpv := media.NewVideoClock(bin, logger)
	if err := mpv.Start(ctx); nil != err {
		logger.Warn().Err(err).Msg("Video player unavailable")
		return nil
	}
	return mpv
}

func fetchAction(preset model.FetchPreset) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		link := cmd.Args().First()
		if link == "" {
			fmt.Fprintln(os.Stderr, "missing playlist URL")
			return exitCodeError(ExitUsage)
		}

		e, err := setup(cmd)
		if nil != err {
			return err
		}

		svc := download.NewService(e.lib, 1, e.log)
		svc.SetFFmpegLocation(e.ffmpeg)

		files := 0
		svc.SetUpdateCallback(func(t model.DownloadTask) {
			if t.Files != files {
				files = t.Files
				e.log.Info().Int("files", t.Files).Str("last", t.OutputPath).Msg("Saved")
				return
			}
			e.log.Debug().
				Str("status", t.Status.String()).
				Int("percent", t.Percent).
				Str("speed", t.Speed).
				Str("title", t.Title).
				Msg("Progress")
		})

		e.log.Info().Str("url", link).Str("preset", string(preset)).Msg("Fetch started")
		task, err := svc.Fetch(ctx, link, preset)
		if nil != err {
			if errors.Is(err, context.Canceled) {
				return err
			}
			e.log.Error().Err(err).Str("url", link).Msg("Fetch failed")
			return exitCodeError(ExitFailed)
		}

		e.log.Info().Int("files", task.Files).Dur("took", task.FinishedAt.Sub(task.StartedAt)).Msg("Fetch completed")
		return nil
	}
}

func organizeAction(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := setup(cmd)
	if nil != err {
		return err
	}

	report, err := platform.Organize(e.lib.Videos(), e.lib.Thumbnails(), e.log)
	if nil != err {
		return fmt.Errorf("organize: %w", err)
	}
	e.log.Info().Int("moved", len(report.Moved)).Int("deleted", len(report.Deleted)).Msg("Organize finished")
	failed := report.Err()

	if cmd.Bool("convert") {
		conv := e.converter()
		conv.SetKeepSource(cmd.Bool("keep-source"))
		conv.SetReencode(cmd.Bool("reencode"))
		conv.SetUpdateCallback(func(t model.ConversionTask) {
			if t.Status.IsFinished() {
				e.log.Info().
					Str("file", filepath.Base(t.InputPath)).
					Str("status", t.Status.String()).
					Str("error", t.LastError).
					Msg("Converted")
			}
		})
		converted, err := conv.ConvertAll(ctx, e.lib.Videos())
		if nil != err {
			return fmt.Errorf("convert: %w", err)
		}
		e.log.Info().
			Int("converted", len(converted.Converted)).
			Int("skipped", len(converted.Skipped)).
			Int("failed", len(converted.Failed)).
			Int("stopped", len(converted.Stopped)).
			Msg("Convert finished")
		failed = errors.Join(failed, converted.Err())
	}

	if nil != failed {
		e.log.Error().Err(failed).Msg("Some files failed")
		return exitCodeError(ExitPartial)
	}
	return nil
}

func tagAction(ctx context.Context, cmd *cli.Command) error {
	e, err := setup(cmd)
	if nil != err {
		return err
	}

	cat, err := e.loadCatalog(ctx, nil)
	if nil != err {
		return err
	}

	n, err := catalog.NewTagger(e.log).TagAll(cat)
	e.log.Info().Int("tagged", n).Int("tracks", cat.Len()).Msg("Tagging finished")
	if nil != err {
		e.log.Error().Err(err).Msg("Some files failed")
		return exitCodeError(ExitPartial)
	}
	return nil
}

func listAction(ctx context.Context, cmd *cli.Command) error {
	e, err := setup(cmd)
	if nil != err {
		return err
	}

	cat, err := e.loadCatalog(ctx, e.prober())
	if nil != err {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Artist", "Title", "Duration", "Thumbnail", "Video"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 28},
		{Number: 3, WidthMax: 40},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignCenter},
		{Number: 6, Align: text.AlignCenter},
	})

	mark := func(ok bool) string {
		if ok {
			return text.FgGreen.Sprint("✓")
		}
		return text.FgHiBlack.Sprint("-")
	}
	withVideo := 0
	for _, track := range cat.Tracks {
		_, hasThumb := cat.ThumbnailFor(track.Title)
		_, hasVideo := cat.VideoFor(track.Title)
		if hasVideo {
			withVideo++
		}
		t.AppendRow(table.Row{
			track.Index + 1,
			track.Artist,
			track.Title,
			model.FormatClock(track.Duration),
			mark(hasThumb),
			mark(hasVideo),
		})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d tracks", cat.Len()), "", "", fmt.Sprintf("%d videos", withVideo)})
	t.Render()
	return nil
}
