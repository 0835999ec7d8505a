package lrclib

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"lyrics-sections/pkg/music"

	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "https://lrclib.net/api"

var (
	logger          = log.With().Str("component", "lrclib").Logger()
	timestampPrefix = regexp.MustCompile(`(?m)^\[\d{2}:\d{2}(?:\.\d{1,3})?\]\s?`)
)

// Client LRCLib客户端
type Client struct {
	httpClient     *http.Client
	baseURL        string
	requestTimeout time.Duration
	maxRetries     int
	retryBackoff   time.Duration
}

var _ music.LyricsSource = (*Client)(nil)

// LRCLibResponse LRCLib API响应结构
type LRCLibResponse struct {
	ID           int    `json:"id"`
	TrackName    string `json:"trackName"`
	ArtistName   string `json:"artistName"`
	AlbumName    string `json:"albumName"`
	Duration     int    `json:"duration"`
	Instrumental bool   `json:"instrumental"`
	PlainLyrics  string `json:"plainLyrics"`
	SyncedLyrics string `json:"syncedLyrics"`
}

// LRCLibSearchResponse LRCLib API搜索响应（列表）
type LRCLibSearchResponse []LRCLibResponse

// NewClient 创建新的LRCLib客户端
func NewClient(baseURL string, requestTimeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if requestTimeout <= 0 {
		requestTimeout = 5 * time.Second
	}
	return &Client{
		httpClient:     &http.Client{Timeout: requestTimeout},
		baseURL:        strings.TrimRight(baseURL, "/"),
		requestTimeout: requestTimeout,
		maxRetries:     3,
		retryBackoff:   500 * time.Millisecond,
	}
}

// GetProviderName 返回提供商名称
func (c *Client) GetProviderName() string {
	return "LRCLib"
}

// SearchSong LRCLib 不需要单独的搜索步骤，直接返回查询参数作为"ID"
func (c *Client) SearchSong(ctx context.Context, title, artist string) (string, error) {
	return fmt.Sprintf("%s|%s", title, artist), nil
}

// GetLyrics 获取纯文本歌词
func (c *Client) GetLyrics(ctx context.Context, songID string) (string, error) {
	title, artist, found := strings.Cut(songID, "|")
	if !found {
		return "", fmt.Errorf("invalid song ID format: %s", songID)
	}

	results, err := c.search(ctx, title, artist)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", fmt.Errorf("no lyrics found for '%s - %s': %w", title, artist, music.ErrNotFound)
	}

	best := findBestMatch(results, title, artist)
	if best.PlainLyrics != "" {
		logger.Info().Str("title", best.TrackName).Str("artist", best.ArtistName).Msg("Selected plain lyrics")
		return best.PlainLyrics, nil
	}
	if best.SyncedLyrics != "" {
		logger.Info().Str("title", best.TrackName).Str("artist", best.ArtistName).Msg("Selected synced lyrics, stripping timestamps")
		return stripTimestamps(best.SyncedLyrics), nil
	}
	return "", fmt.Errorf("selected result has no lyrics for '%s - %s': %w", title, artist, music.ErrNotFound)
}

func (c *Client) search(ctx context.Context, title, artist string) (LRCLibSearchResponse, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("track_name", title)
	params.Set("artist_name", artist)
	searchURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	var resp *http.Response
	var err error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			logger.Info().Int("attempt", attempt).Int("max_retries", c.maxRetries).Msg("Retrying request")
			select {
			case <-timeoutCtx.Done():
				return nil, fmt.Errorf("request canceled: %w", timeoutCtx.Err())
			case <-time.After(time.Duration(attempt) * c.retryBackoff):
			}
		}

		req, reqErr := http.NewRequestWithContext(timeoutCtx, http.MethodGet, searchURL, nil)
		if reqErr != nil {
			return nil, fmt.Errorf("failed to create request: %w", reqErr)
		}
		req.Header.Set("User-Agent", "lyrics-sections/1.0")

		resp, err = c.httpClient.Do(req)
		if err == nil && resp.StatusCode == http.StatusOK {
			break
		}

		if err != nil {
			logger.Warn().Err(err).Int("attempt", attempt+1).Msg("Request failed")
		} else {
			logger.Warn().Int("status", resp.StatusCode).Int("attempt", attempt+1).Msg("Request returned non-OK status")
			resp.Body.Close()
		}

		if attempt == c.maxRetries {
			if err != nil {
				return nil, fmt.Errorf("request failed after %d attempts: %w", attempt+1, err)
			}
			return nil, fmt.Errorf("request failed after %d attempts with status %d", attempt+1, resp.StatusCode)
		}
	}
	defer resp.Body.Close()

	var results LRCLibSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	logger.Info().Int("results", len(results)).Str("title", title).Str("artist", artist).Msg("Search finished")
	return results, nil
}

// findBestMatch 优先标题和艺人都匹配的结果，其次只匹配标题，最后取第一个
func findBestMatch(responses LRCLibSearchResponse, targetTitle, targetArtist string) *LRCLibResponse {
	var titleMatch *LRCLibResponse
	for i := range responses {
		response := &responses[i]
		if response.Instrumental {
			continue
		}
		if !containsIgnoreCase(response.TrackName, targetTitle) {
			continue
		}
		if containsIgnoreCase(response.ArtistName, targetArtist) {
			return response
		}
		if titleMatch == nil {
			titleMatch = response
		}
	}
	if titleMatch != nil {
		return titleMatch
	}
	return &responses[0]
}

// stripTimestamps 去掉 LRC 行首时间戳，避免被当作段落标记
func stripTimestamps(synced string) string {
	return timestampPrefix.ReplaceAllString(synced, "")
}

// containsIgnoreCase 忽略大小写检查包含关系
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
