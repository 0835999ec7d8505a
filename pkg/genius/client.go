package genius

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"lyrics-sections/pkg/music"

	"github.com/rs/zerolog/log"
)

const (
	DefaultBaseURL = "https://api.genius.com"
	userAgent      = "lyrics-sections/1.0"
)

var logger = log.With().Str("component", "genius").Logger()

// Client Genius 客户端
type Client struct {
	httpClient     *http.Client
	baseURL        string
	accessToken    string
	requestTimeout time.Duration
	maxRetries     int
	retryBackoff   time.Duration
}

var _ music.LyricsSource = (*Client)(nil)

// NewClient 创建新的 Genius 客户端
func NewClient(accessToken, baseURL string, requestTimeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if requestTimeout <= 0 {
		requestTimeout = 10 * time.Second
	}
	return &Client{
		httpClient:     &http.Client{Timeout: requestTimeout},
		baseURL:        strings.TrimRight(baseURL, "/"),
		accessToken:    accessToken,
		requestTimeout: requestTimeout,
		maxRetries:     3,
		retryBackoff:   500 * time.Millisecond,
	}
}

// GetProviderName 返回提供商名称
func (c *Client) GetProviderName() string {
	return "Genius"
}

// doRequestWithRetry 发送请求，网络错误和 5xx 时重试
func (c *Client) doRequestWithRetry(req *http.Request) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < max(c.maxRetries, 1); attempt++ {
		if attempt > 0 {
			logger.Info().Int("attempt", attempt+1).Int("max_retries", c.maxRetries).Str("url", req.URL.String()).Msg("Retrying request")
			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(time.Duration(attempt) * c.retryBackoff):
			}
		}

		resp, err := c.httpClient.Do(req.Clone(req.Context()))
		if err != nil {
			logger.Warn().Err(err).Int("attempt", attempt+1).Msg("Request failed")
			lastErr = err
			if req.Context().Err() != nil {
				return nil, fmt.Errorf("request canceled: %w", err)
			}
			continue
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			logger.Warn().Int("status", resp.StatusCode).Int("attempt", attempt+1).Msg("Request returned server error")
			resp.Body.Close()
			lastErr = fmt.Errorf("server returned status %d", resp.StatusCode)
			continue
		}
		return resp, nil
	}
	return nil, fmt.Errorf("request failed after %d attempts: %w", max(c.maxRetries, 1), lastErr)
}

// getJSON 请求 Genius API 并解码 JSON
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("genius %s: %w", path, music.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("genius API request %s failed with status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
