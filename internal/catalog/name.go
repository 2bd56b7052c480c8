package catalog

import (
	"path/filepath"
	"strings"

	"github.com/ytget/yt-jukebox/internal/model"
)

// TitleSeparator splits the artist from the title in a filename
const TitleSeparator = "_"

// ParseTrackName splits a filename into artist and title on the first "_".
// Without a separator the artist is model.UnknownArtist.
func ParseTrackName(filename string) (artist, title string) {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	artist, title, found := strings.Cut(stem, TitleSeparator)
	if !found {
		return model.UnknownArtist, strings.TrimSpace(stem)
	}
	return strings.TrimSpace(artist), strings.TrimSpace(title)
}
