package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-jukebox/internal/platform"
)

func TestTagger_TagAll(t *testing.T) {
	lib := platform.Library{Root: t.TempDir()}
	require.NoError(t, os.MkdirAll(lib.Audio(), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(lib.Audio(), "IU_Blueming.mp3"), []byte("frames"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(lib.Audio(), "Solo.mp3"), []byte("frames"), 0o644))

	c, err := Load(context.Background(), lib, nil, zerolog.Nop())
	require.NoError(t, err)

	n, err := NewTagger(zerolog.Nop()).TagAll(c)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	tag, err := id3v2.Open(filepath.Join(lib.Audio(), "IU_Blueming.mp3"), id3v2.Options{Parse: true})
	require.NoError(t, err)
	defer tag.Close()
	assert.Equal(t, "IU", tag.Artist())
	assert.Equal(t, "Blueming", tag.Title())

	solo, err := id3v2.Open(filepath.Join(lib.Audio(), "Solo.mp3"), id3v2.Options{Parse: true})
	require.NoError(t, err)
	defer solo.Close()
	assert.Equal(t, "Unknown Artist", solo.Artist())
}

func TestTagger_EmptyCatalog(t *testing.T) {
	c := Empty(platform.Library{Root: t.TempDir()}, zerolog.Nop())
	_, err := NewTagger(zerolog.Nop()).TagAll(c)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}
