package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaylist_MarkAndMissing(t *testing.T) {
	p := NewPlaylist("PL123", "https://www.youtube.com/playlist?list=PL123")
	p.Add(&PlaylistEntry{VideoID: "a", Title: "Blueming", State: EntryUnknown})
	p.Add(&PlaylistEntry{VideoID: "b", Title: "Palette", State: EntryUnknown})
	p.Add(&PlaylistEntry{VideoID: "c", Title: "Celebrity", State: EntryUnknown})
	require.Equal(t, 3, p.Len())

	// Before marking every entry counts as missing.
	assert.Len(t, p.Missing(), 3)

	p.Mark(func(title string) bool { return strings.HasPrefix(title, "B") || title == "Celebrity" })

	missing := p.Missing()
	require.Len(t, missing, 1)
	assert.Equal(t, "b", missing[0].VideoID)
	assert.Equal(t, EntryInLibrary, p.Entries[0].State)
	assert.Equal(t, EntryMissing, p.Entries[1].State)
}
