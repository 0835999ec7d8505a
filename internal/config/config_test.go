package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{envGeniusAccessToken, envTencentSecretID, envTencentSecretKey, envAIAPIKey, envRedisAddr, envRedisPassword} {
		t.Setenv(name, "")
	}
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}

	if cfg.Translate.Provider != TranslateProviderNone {
		t.Errorf("expected translation disabled by default, got %q", cfg.Translate.Provider)
	}
	if !cfg.LRCLib.Enabled {
		t.Error("expected LRCLib to be enabled by default")
	}
	if cfg.Redis.Enabled {
		t.Error("expected Redis to be disabled by default")
	}
	if cfg.Sections.FuzzyThreshold != DefaultFuzzyThreshold {
		t.Errorf("expected fuzzy matching off by default, got %v", cfg.Sections.FuzzyThreshold)
	}
	if cfg.App.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("expected default request timeout, got %v", cfg.App.RequestTimeout)
	}
}

func TestLoadFileOverlay(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
[app]
cache_dir = "/tmp/lyrics-test"
request_timeout = "3s"

[genius]
access_token = "from-file"

[lrclib]
enabled = false

[translate]
provider = "Tencent"
target_language = "fr"
cache_ttl = "1h"

[tencent]
secret_id = "id"
secret_key = "key"

[redis]
enabled = true
db = 2

[sections]
fuzzy_threshold = 0.5

[server]
addr = ":9090"
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"cache_dir", cfg.App.CacheDir, "/tmp/lyrics-test"},
		{"request_timeout", cfg.App.RequestTimeout, 3 * time.Second},
		{"genius token", cfg.Genius.AccessToken, "from-file"},
		{"lrclib enabled", cfg.LRCLib.Enabled, false},
		{"provider", cfg.Translate.Provider, TranslateProviderTencent},
		{"target", cfg.Translate.TargetLanguage, "fr"},
		{"cache ttl", cfg.Translate.CacheTTL, time.Hour},
		{"tencent region default", cfg.Tencent.Region, "ap-guangzhou"},
		{"redis enabled", cfg.Redis.Enabled, true},
		{"redis db", cfg.Redis.DB, 2},
		{"fuzzy enabled", cfg.Sections.FuzzyThreshold, float32(0.5)},
		{"server addr", cfg.Server.Addr, ":9090"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadFileEnvOverridesSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv(envGeniusAccessToken, "from-env")
	t.Setenv(envAIAPIKey, "ai-key")

	path := writeConfig(t, `
[genius]
access_token = "from-file"
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if cfg.Genius.AccessToken != "from-env" {
		t.Errorf("expected env token to win, got %q", cfg.Genius.AccessToken)
	}
	if cfg.AI.APIKey != "ai-key" {
		t.Errorf("expected AI key from env, got %q", cfg.AI.APIKey)
	}
}

func TestLoadFileInvalidValues(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
[app]
request_timeout = "soon"

[translate]
provider = "babelfish"

[sections]
fuzzy_threshold = 4.2
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if cfg.App.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("expected invalid duration to fall back, got %v", cfg.App.RequestTimeout)
	}
	if cfg.Translate.Provider != TranslateProviderNone {
		t.Errorf("expected unknown provider to disable translation, got %q", cfg.Translate.Provider)
	}
	if cfg.Sections.FuzzyThreshold != DefaultFuzzyThreshold {
		t.Errorf("expected out-of-range threshold to fall back, got %v", cfg.Sections.FuzzyThreshold)
	}
}

func TestLoadFileMalformed(t *testing.T) {
	path := writeConfig(t, "[app\ncache_dir = ")
	if _, err := LoadFile(path); err == nil {
		t.Error("expected an error for malformed TOML")
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv(envConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := GetConfigPath(); got != filepath.Join("/xdg", "lyrics-sections", "config.toml") {
		t.Errorf("unexpected config path %q", got)
	}

	t.Setenv(envConfigPath, "/etc/custom.toml")
	if got := GetConfigPath(); got != "/etc/custom.toml" {
		t.Errorf("expected override path, got %q", got)
	}
}
