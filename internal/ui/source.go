package ui

import (
	"image"

	"github.com/rs/zerolog"

	"github.com/ytget/yt-jukebox/internal/artwork"
	"github.com/ytget/yt-jukebox/internal/carousel"
	"github.com/ytget/yt-jukebox/internal/catalog"
)

// librarySource feeds the carousel from the catalog and the artwork cache
type librarySource struct {
	cat   *catalog.Catalog
	cache *artwork.Cache
	log   zerolog.Logger
}

func (s librarySource) Thumbnail(track int) image.Image {
	img, _ := s.thumbnail(track, int(carousel.SlotSize))
	return img
}

func (s librarySource) Info(track int) (string, string) {
	t, err := s.cat.Track(track)
	if err != nil {
		return "", ""
	}
	return t.Artist, t.Title
}

// thumbnail returns the scaled thumbnail of track and its path, or nil
// when no thumbnail matches or it cannot be decoded.
func (s librarySource) thumbnail(track, size int) (image.Image, string) {
	t, err := s.cat.Track(track)
	if err != nil {
		return nil, ""
	}
	path, ok := s.cat.ThumbnailFor(t.Title)
	if !ok {
		return nil, ""
	}
	img, err := s.cache.Thumbnail(path, size)
	if err != nil {
		s.log.Debug().Err(err).Str("file", path).Msg("thumbnail unavailable")
		return nil, path
	}
	return img, path
}

// background returns the blurred backdrop of track, or the placeholder
func (s librarySource) background(track int) image.Image {
	_, path := s.thumbnail(track, ThumbnailPixels)
	img, err := s.cache.Background(path, BackgroundWidth, BackgroundHeight)
	if err != nil {
		s.log.Debug().Err(err).Msg("background unavailable")
	}
	return img
}
