// Package convert re-encodes downloaded music videos that yt-dlp left in a
// non-mp4 container into mp4 with ffmpeg, tracking progress per file.
package convert
