package player

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/yt-jukebox/internal/catalog"
	"github.com/ytget/yt-jukebox/internal/model"
)

// journal records clock calls in order across clocks
type journal struct {
	events []string
}

func (j *journal) add(format string, args ...any) {
	j.events = append(j.events, fmt.Sprintf(format, args...))
}

func (j *journal) reset() { j.events = nil }

type fakeClock struct {
	name    string
	j       *journal
	loaded  string
	playing bool
	pos     time.Duration
	muted   bool
	failOn  string
}

func (f *fakeClock) fail(op string) error {
	if f.failOn == op {
		return errors.New(f.name + " " + op + " failed")
	}
	return nil
}

func (f *fakeClock) Load(path string) error {
	if err := f.fail("load"); err != nil {
		return err
	}
	f.j.add("%s.load %s", f.name, path)
	f.loaded = path
	f.pos = 0
	f.playing = false
	return nil
}

func (f *fakeClock) Play() error {
	if err := f.fail("play"); err != nil {
		return err
	}
	f.j.add("%s.play", f.name)
	f.playing = true
	return nil
}

func (f *fakeClock) Pause() error {
	if err := f.fail("pause"); err != nil {
		return err
	}
	f.j.add("%s.pause", f.name)
	f.playing = false
	return nil
}

func (f *fakeClock) Position() (time.Duration, error) {
	return f.pos, f.fail("position")
}

func (f *fakeClock) Seek(pos time.Duration) error {
	if err := f.fail("seek"); err != nil {
		return err
	}
	f.j.add("%s.seek %s", f.name, pos)
	f.pos = pos
	return nil
}

func (f *fakeClock) SetMuted(muted bool) error {
	if err := f.fail("mute"); err != nil {
		return err
	}
	f.muted = muted
	return nil
}

type fakeLibrary struct {
	tracks []model.Track
	videos []string
}

func newLibrary(durations ...time.Duration) *fakeLibrary {
	l := &fakeLibrary{}
	for i, d := range durations {
		l.tracks = append(l.tracks, model.Track{
			Index:    i,
			File:     fmt.Sprintf("A_T%d.mp3", i),
			Artist:   "A",
			Title:    fmt.Sprintf("T%d", i),
			Duration: d,
		})
	}
	return l
}

func (l *fakeLibrary) Len() int { return len(l.tracks) }

func (l *fakeLibrary) Track(i int) (model.Track, error) {
	if len(l.tracks) == 0 {
		return model.Track{}, catalog.ErrEmptyCatalog
	}
	if i < 0 || i >= len(l.tracks) {
		return model.Track{}, fmt.Errorf("index %d out of range", i)
	}
	return l.tracks[i], nil
}

func (l *fakeLibrary) AudioPath(i int) string { return "music/" + l.tracks[i].File }

func (l *fakeLibrary) VideoFor(title string) (string, bool) {
	for _, v := range l.videos {
		if strings.Contains(v, title) {
			return "mv/" + v, true
		}
	}
	return "", false
}
