package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0o755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Library layout. Directory names are fixed.
const (
	AudioDir     = "music"
	ThumbnailDir = "thumbnail"
	VideoDir     = "mv"

	DefaultLibraryName = "yt-jukebox"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// Library resolves the fixed sub-directories of a library root.
type Library struct {
	Root string
}

// Audio returns the audio directory
func (l Library) Audio() string { return filepath.Join(l.Root, AudioDir) }

// Thumbnails returns the thumbnail directory
func (l Library) Thumbnails() string { return filepath.Join(l.Root, ThumbnailDir) }

// Videos returns the video directory
func (l Library) Videos() string { return filepath.Join(l.Root, VideoDir) }

// Ensure creates the root and its three sub-directories
func (l Library) Ensure() error {
	for _, dir := range []string{l.Audio(), l.Thumbnails(), l.Videos()} {
		if err := CreateDirectoryIfNotExists(dir); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// DefaultLibraryRoot returns ~/Music/yt-jukebox
func DefaultLibraryRoot() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Music", DefaultLibraryName), nil
}

// OpenInFileManager opens a directory in the system file manager
func OpenInFileManager(dir string) error {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return fmt.Errorf("directory does not exist: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, absPath).Run()
	case OSLinux:
		return openInManagerLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openInManagerLinux tries xdg-open and then the common file managers
func openInManagerLinux(dir string) error {
	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}
