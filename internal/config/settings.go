package config

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"

	"github.com/ytget/yt-jukebox/internal/model"
	"github.com/ytget/yt-jukebox/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyLibraryRoot    = "library_root"
	KeyPlaylistURL    = "playlist_url"
	KeyFFmpegLocation = "ffmpeg_location"
	KeyMaxParallel    = "max_parallel_downloads"
	KeyMuted          = "muted"
	KeyMode           = "playback_mode"
	KeyLanguage       = "app_language"
)

// Default values
const (
	DefaultMaxParallel = 1
	DefaultMode        = model.ModeLyrics
	DefaultLanguage    = "system"
	DefaultMuted       = false
	MaxParallelLimit   = 4
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetLibraryRoot returns the configured library root, storing the default
// on first use.
func (s *Settings) GetLibraryRoot() string {
	dir := s.app.Preferences().String(KeyLibraryRoot)
	if dir == "" {
		defaultDir, err := platform.DefaultLibraryRoot()
		if err != nil {
			defaultDir = filepath.Join(os.TempDir(), platform.DefaultLibraryName)
		}
		s.SetLibraryRoot(defaultDir)
		return defaultDir
	}
	return dir
}

// SetLibraryRoot sets the library root
func (s *Settings) SetLibraryRoot(dir string) {
	s.app.Preferences().SetString(KeyLibraryRoot, dir)
}

// Library returns the library rooted at the configured directory
func (s *Settings) Library() platform.Library {
	return platform.Library{Root: s.GetLibraryRoot()}
}

// GetPlaylistURL returns the last playlist fetched, or ""
func (s *Settings) GetPlaylistURL() string {
	return s.app.Preferences().String(KeyPlaylistURL)
}

// SetPlaylistURL remembers the playlist URL
func (s *Settings) SetPlaylistURL(url string) {
	s.app.Preferences().SetString(KeyPlaylistURL, url)
}

// GetFFmpegLocation returns the ffmpeg binary or directory, "" for PATH
func (s *Settings) GetFFmpegLocation() string {
	return s.app.Preferences().String(KeyFFmpegLocation)
}

// SetFFmpegLocation sets the ffmpeg binary or directory
func (s *Settings) SetFFmpegLocation(path string) {
	s.app.Preferences().SetString(KeyFFmpegLocation, path)
}

// GetMaxParallelDownloads returns the maximum number of parallel downloads
func (s *Settings) GetMaxParallelDownloads() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelDownloads(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Settings) SetMaxParallelDownloads(count int) {
	s.app.Preferences().SetInt(KeyMaxParallel, min(max(count, 1), MaxParallelLimit))
}

// GetMuted returns whether playback starts muted
func (s *Settings) GetMuted() bool {
	return s.app.Preferences().BoolWithFallback(KeyMuted, DefaultMuted)
}

// SetMuted stores the mute state
func (s *Settings) SetMuted(muted bool) {
	s.app.Preferences().SetBool(KeyMuted, muted)
}

// GetMode returns the last playback mode. Unknown values read as lyrics.
func (s *Settings) GetMode() model.Mode {
	mode := model.Mode(s.app.Preferences().StringWithFallback(KeyMode, string(DefaultMode)))
	if !mode.Valid() {
		return DefaultMode
	}
	return mode
}

// SetMode stores the playback mode
func (s *Settings) SetMode(mode model.Mode) {
	if !mode.Valid() {
		mode = DefaultMode
	}
	s.app.Preferences().SetString(KeyMode, string(mode))
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ko":     "한국어",
	}
}
