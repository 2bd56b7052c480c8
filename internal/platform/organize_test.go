package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Minimal PNG signature followed by an IHDR chunk header
var pngHeader = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00,
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestOrganize(t *testing.T) {
	root := t.TempDir()
	lib := Library{Root: root}
	require.NoError(t, os.MkdirAll(lib.Videos(), 0o755))

	writeFile(t, filepath.Join(lib.Videos(), "IU_Blueming.mp4"), []byte("video"))
	writeFile(t, filepath.Join(lib.Videos(), "IU_Blueming.webp"), []byte("RIFF....WEBP"))
	writeFile(t, filepath.Join(lib.Videos(), "Palette.WEBP"), []byte("RIFF....WEBP"))
	writeFile(t, filepath.Join(lib.Videos(), "IU_Blueming.f140.m4a"), []byte("audio"))
	writeFile(t, filepath.Join(lib.Videos(), "cover"), pngHeader)
	writeFile(t, filepath.Join(lib.Videos(), "notes.txt"), []byte("plain text"))

	report, err := Organize(lib.Videos(), lib.Thumbnails(), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, report.Err())

	assert.ElementsMatch(t, []string{"IU_Blueming.webp", "Palette.WEBP", "cover.png"}, report.Moved)
	assert.Equal(t, []string{"IU_Blueming.f140.m4a"}, report.Deleted)

	assert.FileExists(t, filepath.Join(lib.Thumbnails(), "IU_Blueming.webp"))
	assert.FileExists(t, filepath.Join(lib.Thumbnails(), "cover.png"))
	assert.FileExists(t, filepath.Join(lib.Videos(), "IU_Blueming.mp4"))
	assert.FileExists(t, filepath.Join(lib.Videos(), "notes.txt"))
	assert.NoFileExists(t, filepath.Join(lib.Videos(), "IU_Blueming.f140.m4a"))
	assert.NoFileExists(t, filepath.Join(lib.Videos(), "IU_Blueming.webp"))
}

func TestOrganize_MissingVideoDir(t *testing.T) {
	_, err := Organize(filepath.Join(t.TempDir(), "nope"), t.TempDir(), zerolog.Nop())
	assert.Error(t, err)
}

func TestOrganize_PerFileErrorDoesNotAbort(t *testing.T) {
	root := t.TempDir()
	lib := Library{Root: root}
	require.NoError(t, os.MkdirAll(lib.Videos(), 0o755))
	require.NoError(t, os.MkdirAll(lib.Thumbnails(), 0o755))

	writeFile(t, filepath.Join(lib.Videos(), "a.webp"), []byte("x"))
	writeFile(t, filepath.Join(lib.Videos(), "b.webp"), []byte("x"))
	// A directory in the destination with the same name makes the move fail.
	require.NoError(t, os.MkdirAll(filepath.Join(lib.Thumbnails(), "a.webp", "inner"), 0o755))

	report, err := Organize(lib.Videos(), lib.Thumbnails(), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "a.webp", report.Errors[0].Name)
	assert.Equal(t, []string{"b.webp"}, report.Moved)
	assert.Error(t, report.Err())
}
