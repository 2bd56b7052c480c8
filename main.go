package main

import (
	"context"
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/ytget/yt-jukebox/internal/log"
	"github.com/ytget/yt-jukebox/internal/model"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.yt-jukebox"
	AppName = "YT Jukebox"
)

// Environment variables read by the flags
const (
	EnvRoot     = "JUKEBOX_ROOT"
	EnvLogLevel = "JUKEBOX_LOG_LEVEL"
	EnvFFmpeg   = "JUKEBOX_FFMPEG"
)

// Exit codes
const (
	ExitCanceled = 1
	ExitUsage    = 2
	ExitFailed   = 3
	ExitPartial  = 4
	ExitUnknown  = 10
)

func main() {
	logger := log.NewDefault(version)

	if err := godotenv.Load(); nil != err {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn().Err(err).Msg("load .env file")
		}
	} else {
		logger.Debug().Msg(".env file was loaded")
	}

	//nolint:exhaustruct
	app := &cli.Command{
		Name:           "yt-jukebox",
		Version:        version,
		Usage:          "Play a local YouTube music library and keep it in sync",
		Suggest:        true,
		DefaultCommand: "play",
		Flags: []cli.Flag{
			//nolint:exhaustruct
			&cli.StringFlag{
				Name:    "root",
				Usage:   "Library root holding music/, thumbnail/ and mv/",
				Sources: cli.EnvVars(EnvRoot),
			},
			//nolint:exhaustruct
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (trace, debug, info, warn, error)",
				Value:   log.DefaultLevel,
				Sources: cli.EnvVars(EnvLogLevel),
			},
			//nolint:exhaustruct
			&cli.StringFlag{
				Name:    "ffmpeg",
				Usage:   "ffmpeg binary or the directory holding ffmpeg and ffprobe",
				Sources: cli.EnvVars(EnvFFmpeg),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "Open the player window",
				Action: playAction,
			},
			{
				Name:  "fetch",
				Usage: "Download a playlist into the library",
				Commands: []*cli.Command{
					{
						Name:      "audio",
						Usage:     "Extract mp3 audio into music/",
						ArgsUsage: "<playlist-url>",
						Action:    fetchAction(model.FetchAudio),
					},
					{
						Name:      "video",
						Usage:     "Download mp4 music videos and thumbnails into mv/",
						ArgsUsage: "<playlist-url>",
						Action:    fetchAction(model.FetchVideo),
					},
				},
			},
			{
				Name:  "organize",
				Usage: "Move thumbnails out of mv/ and delete m4a leftovers",
				Flags: []cli.Flag{
					//nolint:exhaustruct
					&cli.BoolFlag{
						Name:  "convert",
						Usage: "Also convert webm and mkv videos to mp4",
					},
					//nolint:exhaustruct
					&cli.BoolFlag{
						Name:  "keep-source",
						Usage: "Keep the original video after converting",
					},
					//nolint:exhaustruct
					&cli.BoolFlag{
						Name:  "reencode",
						Usage: "Re-encode with libx264/aac instead of copying the video stream",
					},
				},
				Action: organizeAction,
			},
			{
				Name:   "tag",
				Usage:  "Write ID3 artist and title frames from the filenames",
				Action: tagAction,
			},
			{
				Name:   "list",
				Usage:  "Print the catalog with durations and matched assets",
				Action: listAction,
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); nil != err {
		if errors.Is(err, context.Canceled) {
			logger.Trace().Msg("Application was canceled")
			os.Exit(ExitCanceled)
		}

		var exitCode exitCodeError
		if errors.As(err, &exitCode) {
			os.Exit(int(exitCode))
		}

		logger.Error().Err(err).Msg("Application exited with error")
		os.Exit(ExitUnknown)
	}
}

type exitCodeError int

func (e exitCodeError) Error() string {
	return "error with exit code: " + strconv.Itoa(int(e))
}
