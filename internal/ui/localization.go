package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle        = "app_title"
	KeySettings        = "settings"
	KeyFile            = "file"
	KeyLanguage        = "language"
	KeyLibrary         = "library"
	KeyLibraryRoot     = "library_root"
	KeyFFmpegLocation  = "ffmpeg_location"
	KeyMaxParallel     = "max_parallel"
	KeySave            = "save"
	KeyCancel          = "cancel"
	KeyClose           = "close"
	KeyBrowse          = "browse"
	KeySettingsSaved   = "settings_saved"
	KeyRestartRequired = "restart_required"

	KeyLyrics       = "lyrics"
	KeyMusicVideo   = "music_video"
	KeyBackToLyrics = "back_to_lyrics"
	KeySongs        = "songs"
	KeyRewind       = "rewind"
	KeyForward      = "forward"
	KeyPlayPause    = "play_pause"
	KeyMute         = "mute"
	KeyLyricsSample = "lyrics_sample"
	KeyEmptyLibrary = "empty_library"
	KeyVideoPlaying = "video_playing"
	KeyNoVideo      = "no_video"
	KeyVideoFailed  = "video_failed"
	KeyFailed       = "failed"

	KeyFetch           = "fetch"
	KeyFetchAudio      = "fetch_audio"
	KeyFetchVideo      = "fetch_video"
	KeyCheckPlaylist   = "check_playlist"
	KeyOrganize        = "organize"
	KeyConvert         = "convert"
	KeyReencode        = "reencode"
	KeyTag             = "tag"
	KeyOpenFolder      = "open_folder"
	KeyStop            = "stop"
	KeyEnterURL        = "enter_url"
	KeyPleaseEnterURL  = "please_enter_url"
	KeyInvalidURL      = "invalid_url"
	KeyAlreadyInQueue  = "already_in_queue"
	KeyTaskAdded       = "task_added"
	KeyFetchCompleted  = "fetch_completed"
	KeyParsingStarted  = "parsing_started"
	KeyParsingFailed   = "parsing_failed"
	KeyPlaylistParsed  = "playlist_parsed"
	KeyMissingEntries  = "missing_entries"
	KeyOrganizeDone    = "organize_done"
	KeyTagDone         = "tag_done"
	KeyReloadRequired  = "reload_required"
	KeyErrorOpenFolder = "error_open_folder"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" selects English and unknown
// codes keep the current one.
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ko": "한국어",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:        "YT Jukebox",
		KeySettings:        "Settings",
		KeyFile:            "File",
		KeyLanguage:        "Language",
		KeyLibrary:         "Library",
		KeyLibraryRoot:     "Library Folder",
		KeyFFmpegLocation:  "FFmpeg Location",
		KeyMaxParallel:     "Max Parallel Downloads",
		KeySave:            "Save",
		KeyCancel:          "Cancel",
		KeyClose:           "Close",
		KeyBrowse:          "Browse",
		KeySettingsSaved:   "Settings saved successfully!",
		KeyRestartRequired: "Restart to load the new library folder.",

		KeyLyrics:       "Lyrics",
		KeyMusicVideo:   "Music Video",
		KeyBackToLyrics: "Back to Lyrics",
		KeySongs:        "Songs",
		KeyRewind:       "Rewind",
		KeyForward:      "Forward",
		KeyPlayPause:    "Play/Pause",
		KeyMute:         "Mute",
		KeyLyricsSample: "[Sample Lyrics]\nEnter lyrics here.\n\nExample:\nFirst verse...\nSecond verse...",
		KeyEmptyLibrary: "No songs in the library yet. Use Fetch to download a playlist.",
		KeyVideoPlaying: "Music video is playing in the video window.",
		KeyNoVideo:      "No music video for this song",
		KeyVideoFailed:  "Video playback failed, showing lyrics",
		KeyFailed:       "Something went wrong, see the log",

		KeyFetch:           "Fetch",
		KeyFetchAudio:      "Fetch Audio",
		KeyFetchVideo:      "Fetch Videos",
		KeyCheckPlaylist:   "Check Playlist",
		KeyOrganize:        "Organize",
		KeyConvert:         "Convert to MP4",
		KeyReencode:        "Re-encode",
		KeyTag:             "Write Tags",
		KeyOpenFolder:      "Open Folder",
		KeyStop:            "Stop",
		KeyEnterURL:        "Enter YouTube playlist URL (https://youtube.com/playlist?list=...)",
		KeyPleaseEnterURL:  "Please enter a URL",
		KeyInvalidURL:      "Invalid URL",
		KeyAlreadyInQueue:  "Already in queue",
		KeyTaskAdded:       "Fetch added to queue",
		KeyFetchCompleted:  "Fetch completed",
		KeyParsingStarted:  "Reading playlist...",
		KeyParsingFailed:   "Failed to read playlist",
		KeyPlaylistParsed:  "Playlist",
		KeyMissingEntries:  "missing from library",
		KeyOrganizeDone:    "Organize finished",
		KeyTagDone:         "Tagged files",
		KeyReloadRequired:  "Restart the player to pick up new files.",
		KeyErrorOpenFolder: "Error opening folder",
	}

	l.texts["ko"] = map[string]string{
		KeyAppTitle:        "YT 주크박스",
		KeySettings:        "설정",
		KeyFile:            "파일",
		KeyLanguage:        "언어",
		KeyLibrary:         "라이브러리",
		KeyLibraryRoot:     "라이브러리 폴더",
		KeyFFmpegLocation:  "FFmpeg 경로",
		KeyMaxParallel:     "최대 동시 다운로드",
		KeySave:            "저장",
		KeyCancel:          "취소",
		KeyClose:           "닫기",
		KeyBrowse:          "찾아보기",
		KeySettingsSaved:   "설정이 저장되었습니다!",
		KeyRestartRequired: "새 라이브러리 폴더는 다시 시작하면 적용됩니다.",

		KeyLyrics:       "가사",
		KeyMusicVideo:   "뮤직비디오",
		KeyBackToLyrics: "가사로 돌아가기",
		KeySongs:        "노래 목록",
		KeyRewind:       "되감기",
		KeyForward:      "빨리 감기",
		KeyPlayPause:    "재생/일시정지",
		KeyMute:         "음소거",
		KeyLyricsSample: "[샘플 가사]\n가사를 여기에 입력하세요.\n\n예시:\n첫 번째 구절...\n두 번째 구절...",
		KeyEmptyLibrary: "라이브러리에 노래가 없습니다. 가져오기로 재생목록을 내려받으세요.",
		KeyVideoPlaying: "뮤직비디오가 비디오 창에서 재생 중입니다.",
		KeyNoVideo:      "이 노래의 뮤직비디오가 없습니다",
		KeyVideoFailed:  "비디오 재생에 실패해 가사로 돌아갑니다",
		KeyFailed:       "문제가 발생했습니다. 로그를 확인하세요",

		KeyFetch:           "가져오기",
		KeyFetchAudio:      "음원 받기",
		KeyFetchVideo:      "뮤직비디오 받기",
		KeyCheckPlaylist:   "재생목록 확인",
		KeyOrganize:        "정리",
		KeyConvert:         "MP4로 변환",
		KeyReencode:        "다시 인코딩",
		KeyTag:             "태그 쓰기",
		KeyOpenFolder:      "폴더 열기",
		KeyStop:            "중지",
		KeyEnterURL:        "YouTube 재생목록 URL 입력 (https://youtube.com/playlist?list=...)",
		KeyPleaseEnterURL:  "URL을 입력하세요",
		KeyInvalidURL:      "잘못된 URL",
		KeyAlreadyInQueue:  "이미 대기열에 있습니다",
		KeyTaskAdded:       "대기열에 추가되었습니다",
		KeyFetchCompleted:  "가져오기 완료",
		KeyParsingStarted:  "재생목록을 읽는 중...",
		KeyParsingFailed:   "재생목록을 읽지 못했습니다",
		KeyPlaylistParsed:  "재생목록",
		KeyMissingEntries:  "라이브러리에 없음",
		KeyOrganizeDone:    "정리 완료",
		KeyTagDone:         "태그를 쓴 파일",
		KeyReloadRequired:  "새 파일을 보려면 플레이어를 다시 시작하세요.",
		KeyErrorOpenFolder: "폴더를 여는 중 오류",
	}
}
