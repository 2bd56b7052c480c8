package download

// Package download runs yt-dlp (via github.com/lrstanley/go-ytdlp) over a
// playlist with one of two presets: mp3 audio into the music directory, or
// mp4 music videos with thumbnails into the mv directory. It manages task
// lifecycle, a parallelism limit, progress propagation and one retry.
