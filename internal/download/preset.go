package download

import (
	"fmt"
	"path/filepath"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/yt-jukebox/internal/model"
	"github.com/ytget/yt-jukebox/internal/platform"
)

// yt-dlp options of the presets
const (
	AudioFormatSelector = "bestaudio/best"
	AudioCodec          = "mp3"
	AudioQuality        = "0"

	VideoFormatSelector = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
	VideoContainer      = "mp4"

	ConcurrentFragments = 4
	OutputTemplate      = "%(title)s.%(ext)s"
)

// OutputFor returns the yt-dlp output template of preset inside lib.
func OutputFor(lib platform.Library, preset model.FetchPreset) (string, error) {
	switch preset {
	case model.FetchAudio:
		return filepath.Join(lib.Audio(), OutputTemplate), nil
	case model.FetchVideo:
		return filepath.Join(lib.Videos(), OutputTemplate), nil
	default:
		return "", fmt.Errorf("unknown preset %q", preset)
	}
}

// BuildCommand configures yt-dlp for preset. Filenames keep their spaces:
// the first "_" of a name separates artist from title.
func BuildCommand(lib platform.Library, preset model.FetchPreset, ffmpegLocation string) (*ytdlp.Command, error) {
	output, err := OutputFor(lib, preset)
	if err != nil {
		return nil, err
	}

	dl := ytdlp.New().
		YesPlaylist().
		NoWarnings().
		ConcurrentFragments(ConcurrentFragments).
		Output(output)

	switch preset {
	case model.FetchAudio:
		dl = dl.
			Format(AudioFormatSelector).
			ExtractAudio().
			AudioFormat(AudioCodec).
			AudioQuality(AudioQuality)
	case model.FetchVideo:
		dl = dl.
			Format(VideoFormatSelector).
			RecodeVideo(VideoContainer).
			WriteThumbnail().
			IgnoreErrors()
	}

	if ffmpegLocation != "" {
		dl = dl.FFmpegLocation(ffmpegLocation)
	}
	return dl, nil
}
