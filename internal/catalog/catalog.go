package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/yt-jukebox/internal/model"
	"github.com/ytget/yt-jukebox/internal/platform"
)

// ErrEmptyCatalog is returned when an operation needs at least one track.
var ErrEmptyCatalog = errors.New("catalog is empty")

// Listed extensions, compared case-insensitively
var (
	AudioExts     = []string{".mp3"}
	ThumbnailExts = []string{".webp", ".jpg", ".jpeg", ".png"}
	VideoExts     = []string{".mp4"}
)

// Prober reads the duration of a media file.
type Prober interface {
	Probe(ctx context.Context, path string) (time.Duration, error)
}

// Catalog is the immutable result of one library scan.
type Catalog struct {
	Library    platform.Library
	Audio      []string
	Thumbnails []string
	Videos     []string
	Tracks     []model.Track

	thumbs *Matcher
	videos *Matcher
}

// Empty returns a catalog with no entries.
func Empty(lib platform.Library, log zerolog.Logger) *Catalog {
	c := &Catalog{Library: lib}
	c.buildMatchers(log)
	return c
}

// Load lists the three library directories and probes every audio file.
// A missing audio directory returns an empty catalog together with the
// error so callers can log it and keep running. Missing thumbnail or video
// directories only leave that list empty. prober may be nil.
func Load(ctx context.Context, lib platform.Library, prober Prober, log zerolog.Logger) (*Catalog, error) {
	c := Empty(lib, log)

	audio, err := listDir(lib.Audio(), AudioExts)
	if err != nil {
		return c, fmt.Errorf("list audio: %w", err)
	}
	c.Audio = audio

	if c.Thumbnails, err = listDir(lib.Thumbnails(), ThumbnailExts); err != nil {
		log.Warn().Err(err).Str("dir", lib.Thumbnails()).Msg("thumbnail directory unavailable")
	}
	if c.Videos, err = listDir(lib.Videos(), VideoExts); err != nil {
		log.Warn().Err(err).Str("dir", lib.Videos()).Msg("video directory unavailable")
	}
	c.buildMatchers(log)

	c.Tracks = make([]model.Track, len(c.Audio))
	for i, name := range c.Audio {
		artist, title := ParseTrackName(name)
		c.Tracks[i] = model.Track{Index: i, File: name, Artist: artist, Title: title}
	}

	if prober != nil {
		if err := c.probe(ctx, prober, log); err != nil {
			return c, err
		}
	}

	log.Info().
		Int("audio", len(c.Audio)).
		Int("thumbnails", len(c.Thumbnails)).
		Int("videos", len(c.Videos)).
		Msg("catalog loaded")
	return c, nil
}

// probe fills durations in parallel. A failed probe leaves duration 0.
func (c *Catalog) probe(ctx context.Context, prober Prober, log zerolog.Logger) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := range c.Tracks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := c.AudioPath(i)
			d, err := prober.Probe(ctx, path)
			if err != nil {
				log.Warn().Err(err).Str("file", c.Tracks[i].File).Msg("duration probe failed")
				return nil
			}
			c.Tracks[i].Duration = d
			log.Debug().Str("file", c.Tracks[i].File).Str("duration", model.FormatClock(d)).Msg("probed")
			return nil
		})
	}
	return g.Wait()
}

func (c *Catalog) buildMatchers(log zerolog.Logger) {
	c.thumbs = NewMatcher("thumbnail", c.Thumbnails, false, log)
	c.videos = NewMatcher("video", c.Videos, true, log)
}

// Len returns the number of tracks
func (c *Catalog) Len() int {
	return len(c.Tracks)
}

// Track returns the track at index i
func (c *Catalog) Track(i int) (model.Track, error) {
	if len(c.Tracks) == 0 {
		return model.Track{}, ErrEmptyCatalog
	}
	if i < 0 || i >= len(c.Tracks) {
		return model.Track{}, fmt.Errorf("track index %d out of range [0, %d)", i, len(c.Tracks))
	}
	return c.Tracks[i], nil
}

// AudioPath returns the full path of the audio file of track i
func (c *Catalog) AudioPath(i int) string {
	return filepath.Join(c.Library.Audio(), c.Tracks[i].File)
}

// ThumbnailFor returns the full path of the thumbnail matching title
func (c *Catalog) ThumbnailFor(title string) (string, bool) {
	name, ok := c.thumbs.Match(title)
	if !ok {
		return "", false
	}
	return filepath.Join(c.Library.Thumbnails(), name), true
}

// VideoFor returns the full path of the music video matching title
func (c *Catalog) VideoFor(title string) (string, bool) {
	name, ok := c.videos.Match(title)
	if !ok {
		return "", false
	}
	return filepath.Join(c.Library.Videos(), name), true
}

// HasTitle reports whether any track has a matching title. Used to mark
// playlist entries already present in the library.
func (c *Catalog) HasTitle(title string) bool {
	needle := Normalize(title)
	if needle == "" {
		return false
	}
	return lo.ContainsBy(c.Tracks, func(t model.Track) bool {
		name := Normalize(t.Title)
		return name != "" && (strings.Contains(needle, name) || strings.Contains(name, needle))
	})
}

// listDir returns the sorted names of regular files in dir with one of exts
func listDir(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		if e.IsDir() {
			return "", false
		}
		return e.Name(), slices.Contains(exts, strings.ToLower(filepath.Ext(e.Name())))
	})
	slices.Sort(names)
	return names, nil
}
