package lyrics

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"lyrics-sections/internal/config"
	"lyrics-sections/pkg/fileutil"
	"lyrics-sections/pkg/genius"
	"lyrics-sections/pkg/lrclib"
	"lyrics-sections/pkg/music"

	"github.com/rs/zerolog/log"
)

var (
	logger          = log.With().Str("component", "lyrics").Logger()
	unsafeFilename  = regexp.MustCompile(`[\\/:*?"<>|]`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	errEmptyRequest = errors.New("title must not be empty")
)

// Provider 获取并清洗原始歌词，带本地文件缓存
type Provider struct {
	cacheDir     string
	musicManager music.LyricsManager
}

// CreateManager 根据配置创建歌词源管理器，按 app.sources 顺序回退
func CreateManager(cfg *config.Config) *music.Manager {
	var sources []music.LyricsSource

	for _, name := range cfg.App.Sources {
		provider, err := music.GetProviderByName(name)
		if err != nil {
			logger.Warn().Err(err).Msg("Skipping unknown lyrics source")
			continue
		}

		switch provider {
		case music.ProviderGenius:
			if cfg.Genius.AccessToken == "" {
				logger.Warn().Msg("Genius access token missing, Genius source disabled")
				continue
			}
			sources = append(sources, genius.NewClient(cfg.Genius.AccessToken, cfg.Genius.BaseURL, cfg.App.RequestTimeout))
		case music.ProviderLRCLib:
			if !cfg.LRCLib.Enabled {
				continue
			}
			sources = append(sources, lrclib.NewClient(cfg.LRCLib.BaseURL, cfg.App.RequestTimeout))
		}
	}

	return music.NewManager(sources)
}

// NewProvider 创建歌词提供者，cacheDir 为空时不使用文件缓存
func NewProvider(cacheDir string, manager music.LyricsManager) (*Provider, error) {
	if manager == nil {
		return nil, fmt.Errorf("lyrics manager must not be nil")
	}
	if cacheDir != "" {
		if err := os.MkdirAll(cacheDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory %s: %w", cacheDir, err)
		}
	}
	return &Provider{
		cacheDir:     cacheDir,
		musicManager: manager,
	}, nil
}

// GetLyrics 返回清洗后的歌词文本，可直接交给段落解析器
func (p *Provider) GetLyrics(ctx context.Context, title, artist string) (string, error) {
	title = strings.TrimSpace(title)
	artist = strings.TrimSpace(artist)
	if title == "" {
		return "", errEmptyRequest
	}

	cacheFilepath := p.cachePath(title, artist)
	if cacheFilepath != "" {
		if cached, err := os.ReadFile(cacheFilepath); err == nil && len(cached) > 0 {
			logger.Info().Str("path", cacheFilepath).Msg("Cache HIT, loading raw lyrics")
			return genius.CleanLyrics(string(cached)), nil
		}
		logger.Info().Str("title", title).Str("artist", artist).Msg("Cache MISS, fetching from sources")
	}

	raw, err := p.musicManager.GetLyricsByInfo(ctx, title, artist)
	if err != nil {
		return "", fmt.Errorf("failed to get lyrics for '%s - %s': %w", title, artist, err)
	}

	if cacheFilepath != "" {
		if err := fileutil.WriteFileAtomic(cacheFilepath, []byte(raw), 0644); err != nil {
			logger.Error().Err(err).Str("path", cacheFilepath).Msg("Failed to write cache file")
		} else {
			logger.Info().Str("path", cacheFilepath).Msg("Saved raw lyrics to cache")
		}
	}

	return genius.CleanLyrics(raw), nil
}

// Sources 返回已配置的歌词源名称
func (p *Provider) Sources() []string {
	return p.musicManager.GetProviderNames()
}

func (p *Provider) cachePath(title, artist string) string {
	if p.cacheDir == "" {
		return ""
	}
	name := sanitizeFilename(title + "-" + artist)
	return filepath.Join(p.cacheDir, name+".txt")
}

func sanitizeFilename(name string) string {
	name = unsafeFilename.ReplaceAllString(name, "-")
	name = whitespaceRuns.ReplaceAllString(strings.TrimSpace(name), " ")
	return strings.ToLower(name)
}
