package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/bogem/id3v2"
	"github.com/rs/zerolog"
)

// Tagger writes ID3 artist and title frames derived from filenames.
type Tagger struct {
	log zerolog.Logger
}

// NewTagger creates a tagger
func NewTagger(log zerolog.Logger) *Tagger {
	return &Tagger{log: log.With().Str("component", "tagger").Logger()}
}

// TagFile sets TPE1 and TIT2 on the mp3 at path from its filename.
func (t *Tagger) TagFile(path, filename string) error {
	artist, title := ParseTrackName(filename)

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("open %s: %w", filename, err)
		}
		tag = id3v2.NewEmptyTag()
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetArtist(artist)
	tag.SetTitle(title)

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save %s: %w", filename, err)
	}
	t.log.Debug().Str("file", filename).Str("artist", artist).Str("title", title).Msg("tagged")
	return nil
}

// TagAll tags every track of c and returns the count written. Failures are
// joined; one bad file does not stop the rest.
func (t *Tagger) TagAll(c *Catalog) (int, error) {
	if c.Len() == 0 {
		return 0, ErrEmptyCatalog
	}

	var errs []error
	written := 0
	for i, tr := range c.Tracks {
		if err := t.TagFile(c.AudioPath(i), tr.File); err != nil {
			t.log.Warn().Err(err).Msg("tag failed")
			errs = append(errs, err)
			continue
		}
		written++
	}
	return written, errors.Join(errs...)
}
