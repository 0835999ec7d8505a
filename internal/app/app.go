package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"lyrics-sections/internal/config"
	"lyrics-sections/internal/lyrics"
	"lyrics-sections/pkg/ai"
	"lyrics-sections/pkg/ai/gemini"
	"lyrics-sections/pkg/ai/openai"
	"lyrics-sections/pkg/genius"
	"lyrics-sections/pkg/redis"
	"lyrics-sections/pkg/sections"
	"lyrics-sections/pkg/translate"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// ErrMetadataUnavailable 未配置 Genius 访问令牌时无法查询元数据
	ErrMetadataUnavailable = errors.New("song metadata requires a Genius access token")
	// ErrMissingSinger 没有可用于未署名段落的默认演唱者
	ErrMissingSinger = errors.New("a default singer (artist) is required")
)

// LyricsFetcher 按歌名和艺人获取清洗后的歌词
type LyricsFetcher interface {
	GetLyrics(ctx context.Context, title, artist string) (string, error)
}

// MetadataFetcher 按 Genius ID 获取歌曲元数据
type MetadataFetcher interface {
	GetSongMetadata(ctx context.Context, songID string) (*genius.SongMetadata, error)
}

type App struct {
	cfg        *config.Config
	lyrics     LyricsFetcher
	metadata   MetadataFetcher
	translator sections.Translator
	parser     *sections.Parser
	verbose    *sections.Parser
	logger     zerolog.Logger
	runID      string
	closers    []io.Closer
}

// SetupLogging 设置 zerolog 的全局配置
func SetupLogging(debug bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// New 根据配置创建应用：歌词源、翻译器与段落解析器
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	provider, err := lyrics.NewProvider(cfg.App.CacheDir, lyrics.CreateManager(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create lyrics provider: %w", err)
	}

	var metadata MetadataFetcher
	if cfg.Genius.AccessToken != "" {
		metadata = genius.NewClient(cfg.Genius.AccessToken, cfg.Genius.BaseURL, cfg.App.RequestTimeout)
	}

	translator, closers, err := buildTranslator(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create translator: %w", err)
	}

	a := NewWithDeps(cfg, provider, metadata, translator)
	a.closers = closers
	a.logger.Info().Strs("sources", provider.Sources()).Msg("Lyrics sources configured")
	return a, nil
}

// NewWithDeps 使用给定的依赖创建应用
func NewWithDeps(cfg *config.Config, fetcher LyricsFetcher, metadata MetadataFetcher, translator sections.Translator) *App {
	runID := uuid.NewString()
	logger := log.With().Str("component", "app").Str("run_id", runID).Logger()

	opts := []sections.Option{
		sections.WithFuzzyThreshold(cfg.Sections.FuzzyThreshold),
		sections.WithLogger(log.With().Str("component", "sections").Str("run_id", runID).Logger()),
	}

	a := &App{
		cfg:        cfg,
		lyrics:     fetcher,
		metadata:   metadata,
		translator: translator,
		parser:     sections.NewParser(translator, opts...),
		verbose:    sections.NewParser(translator, append(opts, sections.WithVerbose(true))...),
		logger:     logger,
		runID:      runID,
	}

	logger.Info().
		Str("translate_provider", cfg.Translate.Provider).
		Float32("fuzzy_threshold", cfg.Sections.FuzzyThreshold).
		Bool("metadata", metadata != nil).
		Msg("Application initialized")
	return a
}

// buildTranslator 按 translate.provider 创建段落标题翻译器
func buildTranslator(ctx context.Context, cfg *config.Config) (sections.Translator, []io.Closer, error) {
	var (
		inner   translate.Translator
		closers []io.Closer
	)

	target := cfg.Translate.TargetLanguage

	switch cfg.Translate.Provider {
	case config.TranslateProviderNone, "":
		return translate.Identity, nil, nil

	case config.TranslateProviderTencent:
		tc, err := translate.NewTencent(cfg.Tencent.SecretID, cfg.Tencent.SecretKey, cfg.Tencent.Region, target)
		if err != nil {
			return nil, nil, err
		}
		inner = tc

	case config.TranslateProviderAI:
		if cfg.AI.APIKey == "" {
			return nil, nil, fmt.Errorf("ai.api_key is required for the ai translate provider")
		}
		var client ai.AiInterface
		if strings.EqualFold(cfg.AI.ModuleName, "gemini") {
			g, err := gemini.NewGemini(ctx, cfg.AI.APIKey, "")
			if err != nil {
				return nil, nil, err
			}
			closers = append(closers, g)
			client = g
		} else {
			client = openai.NewOpenAi(cfg.AI.APIKey, cfg.AI.ModuleName, cfg.AI.BaseURL)
		}
		inner = translate.NewAI(client, target)

	default:
		return nil, nil, fmt.Errorf("unknown translate provider %q", cfg.Translate.Provider)
	}

	if !cfg.Redis.Enabled {
		return inner, closers, nil
	}

	store, err := redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, translating without cache")
		return inner, closers, nil
	}
	closers = append(closers, store)
	return translate.NewCached(inner, store, target, cfg.Translate.CacheTTL), closers, nil
}

// RunID 返回本次运行的关联ID
func (a *App) RunID() string {
	return a.runID
}

// Split 获取歌曲歌词并按段落拆分
func (a *App) Split(ctx context.Context, title, artist string, verbose bool) (*sections.Result, error) {
	if strings.TrimSpace(artist) == "" {
		return nil, ErrMissingSinger
	}

	ctx, cancel := context.WithTimeout(ctx, 3*a.requestTimeout())
	defer cancel()

	a.logger.Info().Str("title", title).Str("artist", artist).Msg("Splitting song into sections")

	text, err := a.lyrics.GetLyrics(ctx, title, artist)
	if err != nil {
		return nil, err
	}
	return a.parse(ctx, text, artist, verbose)
}

// Parse 拆分调用方提供的歌词文本
func (a *App) Parse(ctx context.Context, text, singer string, verbose bool) (*sections.Result, error) {
	if strings.TrimSpace(singer) == "" {
		return nil, ErrMissingSinger
	}
	return a.parse(ctx, genius.CleanLyrics(text), singer, verbose)
}

func (a *App) parse(ctx context.Context, text, singer string, verbose bool) (*sections.Result, error) {
	parser := a.parser
	if verbose {
		parser = a.verbose
	}

	result, err := parser.Parse(ctx, text, singer)
	if err != nil {
		if errors.Is(err, sections.ErrNoSectionStructure) {
			a.logger.Info().Msg("Lyrics have no section structure")
		} else {
			a.logger.Error().Err(err).Msg("Failed to parse lyrics")
		}
		return nil, err
	}

	a.logger.Info().
		Int("sections", result.Len()).
		Int("diagnostics", len(result.Diagnostics)).
		Msg("Lyrics parsed")
	return result, nil
}

// Metadata 获取歌曲元数据
func (a *App) Metadata(ctx context.Context, songID string) (*genius.SongMetadata, error) {
	if a.metadata == nil {
		return nil, ErrMetadataUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, 2*a.requestTimeout())
	defer cancel()

	meta, err := a.metadata.GetSongMetadata(ctx, songID)
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata for song %s: %w", songID, err)
	}
	return meta, nil
}

// Close 释放翻译器等持有的连接
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *App) requestTimeout() time.Duration {
	if a.cfg.App.RequestTimeout > 0 {
		return a.cfg.App.RequestTimeout
	}
	return config.DefaultRequestTimeout
}
