package artwork

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/karlseguin/ccache/v3"
	"github.com/rs/zerolog"
)

// Cache defaults
var (
	DefaultCacheSize int64 = 200
	DefaultTTL             = 1 * time.Hour
)

// Cache keeps rendered images keyed by file and size.
type Cache struct {
	c   *ccache.Cache[image.Image]
	mux sync.Mutex
	log zerolog.Logger
}

// NewCache creates a cache holding at most size images
func NewCache(size int64, log zerolog.Logger) *Cache {
	return &Cache{
		c: ccache.New(
			ccache.Configure[image.Image]().
				MaxSize(size).
				GetsPerPromote(3).
				ItemsToPrune(1),
		),
		log: log.With().Str("component", "artwork").Logger(),
	}
}

func (c *Cache) fetch(key string, render func() (image.Image, error)) (image.Image, error) {
	c.mux.Lock()
	defer c.mux.Unlock()

	item, err := c.c.Fetch(key, DefaultTTL, render)
	if err != nil {
		return nil, err
	}
	return item.Value(), nil
}

// Thumbnail returns the image at path scaled to fit size x size
func (c *Cache) Thumbnail(path string, size int) (image.Image, error) {
	key := fmt.Sprintf("thumb:%d:%s", size, path)
	img, err := c.fetch(key, func() (image.Image, error) {
		src, err := Decode(path)
		if err != nil {
			return nil, err
		}
		return Fit(src, size, size), nil
	})
	if err != nil {
		return nil, fmt.Errorf("thumbnail: %w", err)
	}
	return img, nil
}

// Background returns the blurred background for the image at path. An
// empty path or an unreadable image yields the placeholder and the error.
func (c *Cache) Background(path string, w, h int) (image.Image, error) {
	if path == "" {
		return Placeholder(w, h), nil
	}
	key := fmt.Sprintf("bg:%dx%d:%s", w, h, path)
	img, err := c.fetch(key, func() (image.Image, error) {
		src, err := Decode(path)
		if err != nil {
			return nil, err
		}
		return RenderBackground(src, w, h), nil
	})
	if err != nil {
		c.log.Warn().Err(err).Str("file", path).Msg("background fallback")
		return Placeholder(w, h), fmt.Errorf("background: %w", err)
	}
	return img, nil
}

// Clear drops every cached image
func (c *Cache) Clear() {
	c.c.Clear()
}
