package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	appName = "lyrics-sections"

	DefaultRequestTimeout = 10 * time.Second
	DefaultTranslateTTL   = 30 * 24 * time.Hour
	DefaultTargetLanguage = "en"
	DefaultServerAddr     = ":8080"
	DefaultFuzzyThreshold = 0 // fuzzy label matching is opt-in

	TranslateProviderNone    = "none"
	TranslateProviderTencent = "tencent"
	TranslateProviderAI      = "ai"
)

const (
	envGeniusAccessToken = "GENIUS_ACCESS_TOKEN"
	envTencentSecretID   = "TENCENTCLOUD_SECRET_ID"
	envTencentSecretKey  = "TENCENTCLOUD_SECRET_KEY"
	envAIAPIKey          = "AI_API_KEY"
	envRedisAddr         = "REDIS_ADDR"
	envRedisPassword     = "REDIS_PASSWORD"
	envConfigPath        = "LYRICS_SECTIONS_CONFIG"
)

var logger = log.With().Str("component", "config").Logger()

func getDefaultCacheDir() string {
	// 优先使用 XDG_CACHE_HOME 环境变量
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return appName + "_cache"
	}

	return filepath.Join(homeDir, ".cache", appName)
}

// TomlConfig TOML配置文件结构
type TomlConfig struct {
	App struct {
		CacheDir       string   `toml:"cache_dir"`
		RequestTimeout string   `toml:"request_timeout"`
		Sources        []string `toml:"sources"`
	} `toml:"app"`

	Genius struct {
		BaseURL     string `toml:"base_url"`
		AccessToken string `toml:"access_token"`
	} `toml:"genius"`

	LRCLib struct {
		Enabled *bool  `toml:"enabled"`
		BaseURL string `toml:"base_url"`
	} `toml:"lrclib"`

	Translate struct {
		Provider       string `toml:"provider"`
		TargetLanguage string `toml:"target_language"`
		CacheTTL       string `toml:"cache_ttl"`
	} `toml:"translate"`

	Tencent struct {
		SecretID  string `toml:"secret_id"`
		SecretKey string `toml:"secret_key"`
		Region    string `toml:"region"`
	} `toml:"tencent"`

	AI struct {
		ModuleName string `toml:"module_name"`
		APIKey     string `toml:"api_key"`
		BaseURL    string `toml:"base_url"` // for OpenAI
	} `toml:"ai"`

	Redis struct {
		Addr     string `toml:"addr"`
		Password string `toml:"password"`
		DB       int    `toml:"db"`
		Enabled  bool   `toml:"enabled"`
	} `toml:"redis"`

	Sections struct {
		FuzzyThreshold *float64 `toml:"fuzzy_threshold"`
	} `toml:"sections"`

	Server struct {
		Addr string `toml:"addr"`
	} `toml:"server"`
}

// AppConfig 应用配置
type AppConfig struct {
	CacheDir       string
	RequestTimeout time.Duration
	Sources        []string // 歌词源回退顺序
}

// GeniusConfig Genius API配置
type GeniusConfig struct {
	BaseURL     string
	AccessToken string
}

// LRCLibConfig LRCLib配置
type LRCLibConfig struct {
	Enabled bool
	BaseURL string
}

// TranslateConfig 段落标题翻译配置
type TranslateConfig struct {
	Provider       string
	TargetLanguage string
	CacheTTL       time.Duration
}

// TencentConfig 腾讯云机器翻译配置
type TencentConfig struct {
	SecretID  string
	SecretKey string
	Region    string
}

// AIConfig AI配置
type AIConfig struct {
	ModuleName string
	APIKey     string
	BaseURL    string
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Enabled  bool
}

// SectionsConfig 解析器配置
type SectionsConfig struct {
	FuzzyThreshold float32
}

// ServerConfig HTTP服务配置
type ServerConfig struct {
	Addr string
}

// Config 主配置结构
type Config struct {
	App       AppConfig
	Genius    GeniusConfig
	LRCLib    LRCLibConfig
	Translate TranslateConfig
	Tencent   TencentConfig
	AI        AIConfig
	Redis     RedisConfig
	Sections  SectionsConfig
	Server    ServerConfig
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		App: AppConfig{
			CacheDir:       getDefaultCacheDir(),
			RequestTimeout: DefaultRequestTimeout,
			Sources:        []string{"genius", "lrclib"},
		},
		Genius: GeniusConfig{
			BaseURL: "https://api.genius.com",
		},
		LRCLib: LRCLibConfig{
			Enabled: true,
			BaseURL: "https://lrclib.net/api",
		},
		Translate: TranslateConfig{
			Provider:       TranslateProviderNone,
			TargetLanguage: DefaultTargetLanguage,
			CacheTTL:       DefaultTranslateTTL,
		},
		Tencent: TencentConfig{
			Region: "ap-guangzhou",
		},
		AI: AIConfig{
			ModuleName: "gemini",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Sections: SectionsConfig{
			FuzzyThreshold: DefaultFuzzyThreshold,
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
	}
}

// GetConfigPath 获取配置文件路径
func GetConfigPath() string {
	if override := os.Getenv(envConfigPath); override != "" {
		return override
	}

	// 优先使用 XDG_CONFIG_HOME 环境变量
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		logger.Warn().Err(err).Msg("Cannot get user home directory")
		return "config.toml" // 回退到当前目录
	}

	return filepath.Join(homeDir, ".config", appName, "config.toml")
}

// loadTomlConfig 加载TOML配置文件，文件不存在时返回空配置
func loadTomlConfig(configPath string) (*TomlConfig, error) {
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		logger.Info().Str("path", configPath).Msg("Config file not found, using defaults")
		return &TomlConfig{}, nil
	}

	var config TomlConfig
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, err
	}

	logger.Info().Str("path", configPath).Msg("Loaded config")
	return &config, nil
}

// Load 加载 .env 与配置文件，出错时回退到默认配置；configPath 为空时使用默认路径
func Load(configPath string) *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn().Err(err).Msg("Failed to load .env file")
	}

	if configPath == "" {
		configPath = GetConfigPath()
	}

	config, err := LoadFile(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load config file, using default configuration")
		config = Default()
		applyEnv(config)
	}

	if config.Genius.AccessToken == "" {
		logger.Warn().Msgf("No Genius access token configured; set %s or genius.access_token in %s", envGeniusAccessToken, configPath)
	}

	return config
}

// LoadFile 从指定路径加载配置并叠加环境变量
func LoadFile(configPath string) (*Config, error) {
	tomlConfig, err := loadTomlConfig(configPath)
	if err != nil {
		return nil, err
	}

	config := Default()
	overlay(config, tomlConfig)
	applyEnv(config)
	return config, nil
}

// overlay 用TOML中的非空值覆盖默认值
func overlay(config *Config, tc *TomlConfig) {
	if tc.App.CacheDir != "" {
		config.App.CacheDir = tc.App.CacheDir
	}
	config.App.RequestTimeout = parseDuration("app.request_timeout", tc.App.RequestTimeout, config.App.RequestTimeout)
	if len(tc.App.Sources) > 0 {
		config.App.Sources = tc.App.Sources
	}

	if tc.Genius.BaseURL != "" {
		config.Genius.BaseURL = tc.Genius.BaseURL
	}
	if tc.Genius.AccessToken != "" {
		config.Genius.AccessToken = tc.Genius.AccessToken
	}

	if tc.LRCLib.Enabled != nil {
		config.LRCLib.Enabled = *tc.LRCLib.Enabled
	}
	if tc.LRCLib.BaseURL != "" {
		config.LRCLib.BaseURL = tc.LRCLib.BaseURL
	}

	if tc.Translate.Provider != "" {
		provider := strings.ToLower(tc.Translate.Provider)
		switch provider {
		case TranslateProviderNone, TranslateProviderTencent, TranslateProviderAI:
			config.Translate.Provider = provider
		default:
			logger.Warn().Str("provider", tc.Translate.Provider).Msg("Unknown translate.provider, translation disabled")
		}
	}
	if tc.Translate.TargetLanguage != "" {
		config.Translate.TargetLanguage = tc.Translate.TargetLanguage
	}
	config.Translate.CacheTTL = parseDuration("translate.cache_ttl", tc.Translate.CacheTTL, config.Translate.CacheTTL)

	if tc.Tencent.SecretID != "" {
		config.Tencent.SecretID = tc.Tencent.SecretID
	}
	if tc.Tencent.SecretKey != "" {
		config.Tencent.SecretKey = tc.Tencent.SecretKey
	}
	if tc.Tencent.Region != "" {
		config.Tencent.Region = tc.Tencent.Region
	}

	if tc.AI.ModuleName != "" {
		config.AI.ModuleName = tc.AI.ModuleName
	}
	if tc.AI.BaseURL != "" {
		config.AI.BaseURL = tc.AI.BaseURL
	}
	if tc.AI.APIKey != "" {
		config.AI.APIKey = tc.AI.APIKey
	}

	if tc.Redis.Addr != "" {
		config.Redis.Addr = tc.Redis.Addr
	}
	if tc.Redis.Password != "" {
		config.Redis.Password = tc.Redis.Password
	}
	if tc.Redis.DB != 0 {
		config.Redis.DB = tc.Redis.DB
	}
	config.Redis.Enabled = tc.Redis.Enabled

	if tc.Sections.FuzzyThreshold != nil {
		threshold := *tc.Sections.FuzzyThreshold
		if threshold < 0 || threshold > 1 {
			logger.Warn().Float64("fuzzy_threshold", threshold).Msg("fuzzy_threshold out of range [0,1], using default")
		} else {
			config.Sections.FuzzyThreshold = float32(threshold)
		}
	}

	if tc.Server.Addr != "" {
		config.Server.Addr = tc.Server.Addr
	}
}

// applyEnv 环境变量中的密钥优先于配置文件
func applyEnv(config *Config) {
	setFromEnv(&config.Genius.AccessToken, envGeniusAccessToken)
	setFromEnv(&config.Tencent.SecretID, envTencentSecretID)
	setFromEnv(&config.Tencent.SecretKey, envTencentSecretKey)
	setFromEnv(&config.AI.APIKey, envAIAPIKey)
	setFromEnv(&config.Redis.Addr, envRedisAddr)
	setFromEnv(&config.Redis.Password, envRedisPassword)
}

func setFromEnv(target *string, name string) {
	if value := os.Getenv(name); value != "" {
		*target = value
	}
}

func parseDuration(field, raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	duration, err := time.ParseDuration(raw)
	if err != nil || duration <= 0 {
		logger.Warn().Str("field", field).Str("value", raw).Msg("Invalid duration format, using default")
		return fallback
	}
	return duration
}
