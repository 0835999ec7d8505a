package translate

import (
	"context"
	"time"
)

const cacheKeyPrefix = "lyrics-sections:translate:"

// DefaultCacheTTL 翻译结果缓存时间
const DefaultCacheTTL = 30 * 24 * time.Hour

// Store 缓存存储接口，pkg/redis.Client 实现了该接口
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// Cached 为翻译器加一层缓存；缓存读写失败不影响翻译
type Cached struct {
	inner  Translator
	store  Store
	target string
	ttl    time.Duration
}

var _ Translator = (*Cached)(nil)

// NewCached 创建带缓存的翻译器
func NewCached(inner Translator, store Store, target string, ttl time.Duration) *Cached {
	if target == "" {
		target = DefaultTarget
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cached{inner: inner, store: store, target: target, ttl: ttl}
}

func (c *Cached) key(text string) string {
	return cacheKeyPrefix + c.target + ":" + text
}

func (c *Cached) Translate(ctx context.Context, text string) (string, error) {
	key := c.key(text)

	cached, err := c.store.Get(ctx, key)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Translation cache read failed")
	} else if cached != "" {
		logger.Debug().Str("text", text).Msg("Translation cache HIT")
		return cached, nil
	}

	translated, err := c.inner.Translate(ctx, text)
	if err != nil {
		return "", err
	}

	if translated != "" {
		if err := c.store.SetWithExpiration(ctx, key, translated, c.ttl); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Translation cache write failed")
		}
	}
	return translated, nil
}
