package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/yt-jukebox/internal/model"
)

// Timeout constants
const (
	DefaultPlaylistParseTimeout = 60 * time.Second
)

// URL parameters
const (
	PlaylistURLParam       = "list="
	PlaylistParamSeparator = "&"
)

// Default values
const (
	DefaultPlaylistTitle = "Untitled Playlist"
	DefaultDuration      = "Unknown"
	PlaylistSuffix       = " Playlist"
	MinPrefixLength      = 10
	MaxTitleLength       = 50
	TitleTruncateSuffix  = "..."
)

// YouTubeVideoURLTemplate builds a watch URL from a video ID
const YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"

// PlaylistItem is one raw item returned by a lister
type PlaylistItem struct {
	VideoID string
	Title   string
}

// ItemLister lists every item of a playlist by ID
type ItemLister func(ctx context.Context, playlistID string) ([]PlaylistItem, error)

// PlaylistService lists YouTube playlists through the pure-Go ytdlp client
type PlaylistService struct {
	timeout time.Duration
	list    ItemLister
	log     zerolog.Logger
}

// NewPlaylistService creates a playlist service backed by ytdlp
func NewPlaylistService(log zerolog.Logger) *PlaylistService {
	return &PlaylistService{
		timeout: DefaultPlaylistParseTimeout,
		list:    listWithYTDLP,
		log:     log.With().Str("component", "playlist").Logger(),
	}
}

// SetTimeout sets the timeout for playlist parsing
func (p *PlaylistService) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// SetLister replaces the item source
func (p *PlaylistService) SetLister(list ItemLister) {
	p.list = list
}

// ParsePlaylist validates url and lists the playlist entries
func (p *PlaylistService) ParsePlaylist(ctx context.Context, url string) (*model.Playlist, error) {
	playlistID, err := ExtractPlaylistID(url)
	if err != nil {
		return nil, err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	items, err := p.list(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	playlist := model.NewPlaylist(playlistID, url)
	for _, it := range items {
		if it.VideoID == "" {
			continue
		}
		playlist.Add(&model.PlaylistEntry{
			VideoID:  it.VideoID,
			Title:    it.Title,
			Duration: DefaultDuration,
			URL:      fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
			State:    model.EntryUnknown,
		})
	}
	playlist.Title = playlistTitle(playlist.Entries)

	p.log.Debug().Str("playlist", playlistID).Int("entries", playlist.Len()).Msg("playlist listed")
	return playlist, nil
}

// IsPlaylistURL reports whether url carries a list parameter
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistURLParam)
}

// ExtractPlaylistID extracts the playlist ID from a YouTube URL.
// Supported forms:
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&start_radio=1
//   - https://www.youtube.com/playlist?list=PLAYLIST_ID
func ExtractPlaylistID(url string) (string, error) {
	if !IsPlaylistURL(url) {
		return "", fmt.Errorf("invalid playlist URL format: %s", url)
	}

	_, playlistID, _ := strings.Cut(url, PlaylistURLParam)
	playlistID, _, _ = strings.Cut(playlistID, PlaylistParamSeparator)

	if playlistID == "" {
		return "", fmt.Errorf("empty playlist ID")
	}
	return playlistID, nil
}

func listWithYTDLP(ctx context.Context, playlistID string) ([]PlaylistItem, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}
	out := make([]PlaylistItem, 0, len(items))
	for _, it := range items {
		out = append(out, PlaylistItem{VideoID: it.VideoID, Title: it.Title})
	}
	return out, nil
}

// playlistTitle derives a title from the common prefix of the first two entries
func playlistTitle(entries []*model.PlaylistEntry) string {
	if len(entries) == 0 {
		return DefaultPlaylistTitle
	}
	if len(entries) > 1 {
		prefix := commonPrefix(entries[0].Title, entries[1].Title)
		if len(prefix) > MinPrefixLength {
			return strings.TrimSpace(prefix) + PlaylistSuffix
		}
	}

	first := entries[0].Title
	if len(first) > MaxTitleLength {
		first = first[:MaxTitleLength] + TitleTruncateSuffix
	}
	return first + PlaylistSuffix
}

func commonPrefix(s1, s2 string) string {
	n := min(len(s1), len(s2))
	for i := 0; i < n; i++ {
		if s1[i] != s2[i] {
			return s1[:i]
		}
	}
	return s1[:n]
}
