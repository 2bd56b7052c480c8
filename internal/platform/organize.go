package platform

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
)

// Extensions handled by Organize
const (
	ThumbnailExt    = ".webp"
	IntermediateExt = ".m4a"
)

// Video and partial-download files are never sniffed
var organizeSkipExt = map[string]bool{
	".mp4": true, ".webm": true, ".mkv": true, ".part": true, ".ytdl": true,
}

// FileError is a failure for one file during Organize
type FileError struct {
	Name string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e FileError) Unwrap() error { return e.Err }

// OrganizeReport lists what Organize did
type OrganizeReport struct {
	Moved   []string
	Deleted []string
	Errors  []FileError
}

// Err joins every per-file error, nil when there were none
func (r *OrganizeReport) Err() error {
	errs := make([]error, 0, len(r.Errors))
	for _, e := range r.Errors {
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}

// Organize moves thumbnails written next to videos into thumbDir and deletes
// leftover m4a intermediates. Files whose extension says nothing are sniffed
// and moved when their content is an image. A failing file does not stop the
// rest; only an unreadable videoDir is returned as an error.
func Organize(videoDir, thumbDir string, log zerolog.Logger) (*OrganizeReport, error) {
	entries, err := os.ReadDir(videoDir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", videoDir, err)
	}
	if err := CreateDirectoryIfNotExists(thumbDir); err != nil {
		return nil, fmt.Errorf("create %s: %w", thumbDir, err)
	}

	report := &OrganizeReport{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		src := filepath.Join(videoDir, name)
		ext := strings.ToLower(filepath.Ext(name))

		switch {
		case ext == ThumbnailExt:
			if err := moveFile(src, filepath.Join(thumbDir, name)); err != nil {
				report.Errors = append(report.Errors, FileError{Name: name, Err: err})
				continue
			}
			report.Moved = append(report.Moved, name)
		case ext == IntermediateExt:
			if err := os.Remove(src); err != nil {
				report.Errors = append(report.Errors, FileError{Name: name, Err: err})
				continue
			}
			report.Deleted = append(report.Deleted, name)
		case organizeSkipExt[ext]:
		default:
			mtype, err := mimetype.DetectFile(src)
			if err != nil {
				report.Errors = append(report.Errors, FileError{Name: name, Err: err})
				continue
			}
			if !strings.HasPrefix(mtype.String(), "image/") {
				continue
			}
			dstName := name
			if ext == "" {
				dstName += mtype.Extension()
			}
			if err := moveFile(src, filepath.Join(thumbDir, dstName)); err != nil {
				report.Errors = append(report.Errors, FileError{Name: name, Err: err})
				continue
			}
			report.Moved = append(report.Moved, dstName)
		}
	}

	for _, fe := range report.Errors {
		log.Warn().Str("file", fe.Name).Err(fe.Err).Msg("organize failed for file")
	}
	log.Info().
		Int("moved", len(report.Moved)).
		Int("deleted", len(report.Deleted)).
		Int("errors", len(report.Errors)).
		Msg("organize finished")

	return report, nil
}

// moveFile renames src to dst, copying when the rename crosses devices
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
