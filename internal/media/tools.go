package media

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// External tool names
const (
	FFmpegCommand  = "ffmpeg"
	FFprobeCommand = "ffprobe"
	MPVCommand     = "mpv"
)

// ToolPath resolves an executable. location may be empty (search PATH), a
// directory holding the tool, or the path of a sibling tool such as ffmpeg
// when name is ffprobe. It returns "" when nothing is found.
func ToolPath(location, name string) string {
	exe := name
	if runtime.GOOS == "windows" {
		exe += ".exe"
	}

	if location == "" {
		path, err := exec.LookPath(exe)
		if err != nil {
			return ""
		}
		return path
	}

	info, err := os.Stat(location)
	if err != nil {
		return ""
	}

	var candidate string
	switch {
	case info.IsDir():
		candidate = filepath.Join(location, exe)
	case strings.TrimSuffix(filepath.Base(location), filepath.Ext(location)) == name:
		return location
	default:
		candidate = filepath.Join(filepath.Dir(location), exe)
	}

	if _, err := os.Stat(candidate); err != nil {
		return ""
	}
	return candidate
}
