package music

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Provider 歌词源类型
type Provider string

const (
	// ProviderGenius Genius 歌词库（带段落标注）
	ProviderGenius Provider = "genius"
	// ProviderLRCLib LRCLib 歌词库
	ProviderLRCLib Provider = "lrclib"
)

// GetProviderByName 根据名称获取歌词源类型
func GetProviderByName(name string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "genius":
		return ProviderGenius, nil
	case "lrclib", "lrc":
		return ProviderLRCLib, nil
	default:
		return "", fmt.Errorf("unknown provider name: %s", name)
	}
}

var logger = log.With().Str("component", "music-manager").Logger()

// Manager 歌词源管理器，按顺序回退
type Manager struct {
	providers []LyricsSource
}

var _ LyricsManager = (*Manager)(nil)

// NewManager 创建新的歌词源管理器
func NewManager(providers []LyricsSource) *Manager {
	if len(providers) == 0 {
		logger.Warn().Msg("No lyrics providers configured")
		return &Manager{}
	}

	logger.Info().
		Int("provider_count", len(providers)).
		Str("primary_provider", providers[0].GetProviderName()).
		Msg("Lyrics source manager initialized")

	return &Manager{providers: providers}
}

// failure 汇总所有歌词源的错误；全部为 ErrNotFound 时结果也是 ErrNotFound
type failure struct {
	lastErr  error
	notFound int
	total    int
}

func (f *failure) record(err error) {
	f.total++
	f.lastErr = err
	if errors.Is(err, ErrNotFound) {
		f.notFound++
	}
}

func (f *failure) err(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if f.total > 0 && f.notFound == f.total {
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	}
	return fmt.Errorf("%s, last error: %w", msg, f.lastErr)
}

// GetLyricsByInfo 根据歌曲信息直接获取歌词（封装搜索+获取歌词）
func (m *Manager) GetLyricsByInfo(ctx context.Context, title, artist string) (string, error) {
	if len(m.providers) == 0 {
		return "", fmt.Errorf("no lyrics providers available")
	}

	var f failure
	for i, provider := range m.providers {
		logger.Info().
			Str("title", title).
			Str("artist", artist).
			Str("provider", provider.GetProviderName()).
			Int("attempt", i+1).
			Int("total_providers", len(m.providers)).
			Msg("Trying to get lyrics")

		songID, err := provider.SearchSong(ctx, title, artist)
		if err != nil {
			logger.Warn().
				Str("provider", provider.GetProviderName()).
				Err(err).
				Msg("Provider search failed")
			f.record(err)
			continue
		}

		lyrics, err := provider.GetLyrics(ctx, songID)
		if err != nil {
			logger.Warn().
				Str("provider", provider.GetProviderName()).
				Str("song_id", songID).
				Err(err).
				Msg("Provider get lyrics failed")
			f.record(err)
			continue
		}

		if strings.TrimSpace(lyrics) == "" {
			logger.Warn().
				Str("provider", provider.GetProviderName()).
				Str("song_id", songID).
				Msg("Provider returned empty lyrics")
			f.record(fmt.Errorf("%s returned empty lyrics: %w", provider.GetProviderName(), ErrNotFound))
			continue
		}

		logger.Info().
			Str("title", title).
			Str("artist", artist).
			Str("provider", provider.GetProviderName()).
			Msg("Successfully got lyrics")
		return lyrics, nil
	}

	return "", f.err("all providers failed to get lyrics for '%s - %s'", title, artist)
}

// GetProviderNames 获取所有歌词源名称
func (m *Manager) GetProviderNames() []string {
	names := make([]string, len(m.providers))
	for i, provider := range m.providers {
		names[i] = provider.GetProviderName()
	}
	return names
}
