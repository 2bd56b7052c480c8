package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// FetchPreset selects what a download task extracts from a playlist.
type FetchPreset string

const (
	// FetchAudio extracts mp3 audio into the music directory
	FetchAudio FetchPreset = "audio"
	// FetchVideo downloads mp4 music videos and their thumbnails into the mv directory
	FetchVideo FetchPreset = "video"
)

// Valid reports whether p is a known preset
func (p FetchPreset) Valid() bool {
	return p == FetchAudio || p == FetchVideo
}

// DownloadTask represents one yt-dlp run over a playlist or single video
type DownloadTask struct {
	ID         string
	URL        string
	Preset     FetchPreset
	Status     TaskStatus
	Progress   float64   // 0.0 to 1.0 of the current item
	Percent    int       // 0 to 100
	Speed      string    // human readable speed (e.g., "1.2MB/s")
	ETASec     int       // ETA in seconds, -1 if unknown
	LastError  string    // last error message if any
	OutputPath string    // last file written
	Files      int       // files finished so far
	StartedAt  time.Time // when download started
	FinishedAt time.Time // when download finished
	Title      string    // title of the item currently downloading
}

// ConversionTask represents a single ffmpeg conversion of a video into mp4
type ConversionTask struct {
	ID         string
	InputPath  string
	OutputPath string
	Status     TaskStatus
	Progress   float64 // 0.0 to 1.0
	Percent    int     // 0 to 100
	LastError  string  // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// GetETAString returns ETA formatted as hh:mm:ss, or "—" if unknown
func (dt *DownloadTask) GetETAString() string {
	if dt.ETASec <= 0 {
		return "—"
	}

	hours := dt.ETASec / 3600
	minutes := (dt.ETASec % 3600) / 60
	seconds := dt.ETASec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetDisplayTitle returns title, filename, or URL in order of preference
func (dt *DownloadTask) GetDisplayTitle() string {
	if dt.Title != "" && !strings.HasPrefix(dt.Title, "http") {
		return dt.Title
	}

	if dt.OutputPath != "" {
		filename := filepath.Base(filepath.ToSlash(strings.ReplaceAll(dt.OutputPath, "\\", "/")))
		if idx := strings.LastIndex(filename, "."); idx > 0 {
			filename = filename[:idx]
		}
		return filename
	}

	return dt.URL
}
