package model

import (
	"time"
)

// EntryState tells whether a playlist entry already exists in the local library
type EntryState string

const (
	EntryUnknown   EntryState = "unknown"
	EntryMissing   EntryState = "missing"
	EntryInLibrary EntryState = "in library"
)

// PlaylistEntry is a single video of a remote playlist
type PlaylistEntry struct {
	VideoID  string
	Title    string
	Duration string
	URL      string
	State    EntryState
}

// Playlist is a remote YouTube playlist listed before a fetch
type Playlist struct {
	ID        string
	Title     string
	URL       string
	Entries   []*PlaylistEntry
	CreatedAt time.Time
}

// NewPlaylist creates an empty playlist for url
func NewPlaylist(id, url string) *Playlist {
	return &Playlist{
		ID:        id,
		URL:       url,
		Entries:   make([]*PlaylistEntry, 0),
		CreatedAt: time.Now(),
	}
}

// Add appends an entry
func (p *Playlist) Add(e *PlaylistEntry) {
	p.Entries = append(p.Entries, e)
}

// Len returns the number of entries
func (p *Playlist) Len() int {
	return len(p.Entries)
}

// Missing returns the entries not yet present in the library
func (p *Playlist) Missing() []*PlaylistEntry {
	var missing []*PlaylistEntry
	for _, e := range p.Entries {
		if e.State != EntryInLibrary {
			missing = append(missing, e)
		}
	}
	return missing
}

// Mark sets the state of every entry using present, which reports whether a
// title is already in the library.
func (p *Playlist) Mark(present func(title string) bool) {
	for _, e := range p.Entries {
		if present(e.Title) {
			e.State = EntryInLibrary
		} else {
			e.State = EntryMissing
		}
	}
}
