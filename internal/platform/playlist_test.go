package platform

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-jukebox/internal/model"
)

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
		wantErr  bool
	}{
		{"watch with list", "https://www.youtube.com/watch?v=VIDEO_ID&list=PL123&start_radio=1", "PL123", false},
		{"playlist page", "https://www.youtube.com/playlist?list=PL456", "PL456", false},
		{"no list param", "https://www.youtube.com/watch?v=VIDEO_ID", "", true},
		{"empty list", "https://www.youtube.com/playlist?list=", "", true},
		{"empty url", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ExtractPlaylistID(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestPlaylistService_ParsePlaylist(t *testing.T) {
	s := NewPlaylistService(zerolog.Nop())
	var gotID string
	s.SetLister(func(_ context.Context, id string) ([]PlaylistItem, error) {
		gotID = id
		return []PlaylistItem{
			{VideoID: "v1", Title: "K-Pop Essentials - IU Blueming"},
			{VideoID: "", Title: "private video"},
			{VideoID: "v2", Title: "K-Pop Essentials - IU Palette"},
		}, nil
	})

	pl, err := s.ParsePlaylist(context.Background(), "https://www.youtube.com/playlist?list=PLk")
	require.NoError(t, err)
	assert.Equal(t, "PLk", gotID)
	assert.Equal(t, "PLk", pl.ID)
	require.Equal(t, 2, pl.Len())
	assert.Equal(t, "https://www.youtube.com/watch?v=v1", pl.Entries[0].URL)
	assert.Equal(t, model.EntryUnknown, pl.Entries[0].State)
	assert.Equal(t, "K-Pop Essentials - IU"+PlaylistSuffix, pl.Title)
}

func TestPlaylistService_ParsePlaylistErrors(t *testing.T) {
	s := NewPlaylistService(zerolog.Nop())
	s.SetTimeout(time.Second)
	s.SetLister(func(context.Context, string) ([]PlaylistItem, error) {
		return nil, errors.New("network down")
	})

	_, err := s.ParsePlaylist(context.Background(), "https://www.youtube.com/watch?v=x")
	assert.Error(t, err)

	_, err = s.ParsePlaylist(context.Background(), "https://www.youtube.com/playlist?list=PL1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network down")
}

func TestPlaylistTitle(t *testing.T) {
	assert.Equal(t, DefaultPlaylistTitle, playlistTitle(nil))

	long := strings.Repeat("a", MaxTitleLength+5)
	got := playlistTitle([]*model.PlaylistEntry{{Title: long}})
	assert.Equal(t, strings.Repeat("a", MaxTitleLength)+TitleTruncateSuffix+PlaylistSuffix, got)

	got = playlistTitle([]*model.PlaylistEntry{{Title: "Song A"}, {Title: "Song B"}})
	assert.Equal(t, "Song A"+PlaylistSuffix, got)
}

func TestCommonPrefix(t *testing.T) {
	assert.Equal(t, "abc", commonPrefix("abcd", "abcx"))
	assert.Equal(t, "ab", commonPrefix("ab", "abc"))
	assert.Equal(t, "", commonPrefix("x", "y"))
}
