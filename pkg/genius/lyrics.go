package genius

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"lyrics-sections/pkg/music"

	"github.com/PuerkitoBio/goquery"
)

const (
	lyricsContainerSelector = `div[data-lyrics-container="true"]`
	excludedSelector        = `[data-exclude-from-selection="true"]`
)

// getSong 获取歌曲信息
func (c *Client) getSong(ctx context.Context, songID string) (*Song, error) {
	var songResp SongResponse
	if err := c.getJSON(ctx, "/songs/"+songID, &songResp); err != nil {
		return nil, err
	}
	if songResp.Response.Song.ID == 0 {
		return nil, fmt.Errorf("song %s: %w", songID, music.ErrNotFound)
	}
	return &songResp.Response.Song, nil
}

// GetLyrics 获取歌曲页面并提取原始歌词文本（未清洗）
func (c *Client) GetLyrics(ctx context.Context, songID string) (string, error) {
	song, err := c.getSong(ctx, songID)
	if err != nil {
		return "", err
	}
	if song.URL == "" {
		return "", fmt.Errorf("song %s has no page url: %w", songID, music.ErrNotFound)
	}
	logger.Info().Str("song_id", songID).Str("url", song.URL).Msg("Fetching lyrics page")

	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, song.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create lyrics page request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("lyrics page for song %s: %w", songID, music.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("lyrics page request failed with status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse lyrics page: %w", err)
	}

	lyrics := extractLyrics(doc)
	if strings.TrimSpace(lyrics) == "" {
		return "", fmt.Errorf("no lyrics container on page for song %s: %w", songID, music.ErrNotFound)
	}
	return lyrics, nil
}

// extractLyrics 从歌词容器中提取文本，<br> 转为换行
func extractLyrics(doc *goquery.Document) string {
	var parts []string
	doc.Find(lyricsContainerSelector).Each(func(i int, sel *goquery.Selection) {
		sel.Find(excludedSelector).Remove()
		sel.Find("br").ReplaceWithHtml("\n")
		parts = append(parts, sel.Text())
	})
	return strings.Join(parts, "\n")
}
