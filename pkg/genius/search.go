package genius

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"lyrics-sections/pkg/music"
)

// SearchSong 搜索歌曲，返回 Genius 歌曲ID
func (c *Client) SearchSong(ctx context.Context, title, artist string) (string, error) {
	query := strings.TrimSpace(title + " " + artist)
	logger.Info().Str("title", title).Str("artist", artist).Msg("Searching for song")

	var searchResp SearchResponse
	if err := c.getJSON(ctx, "/search?q="+url.QueryEscape(query), &searchResp); err != nil {
		return "", err
	}

	songID := findBestMatch(searchResp, title, artist)
	if songID == 0 {
		return "", fmt.Errorf("no matching song found for '%s' by '%s': %w", title, artist, music.ErrNotFound)
	}
	return strconv.Itoa(songID), nil
}

// findBestMatch 找到最佳匹配的歌曲
func findBestMatch(resp SearchResponse, targetTitle, targetArtist string) int {
	var firstTitleMatch int
	for _, hit := range resp.Response.Hits {
		if hit.Type != "song" {
			continue
		}
		song := hit.Result
		if !containsIgnoreCase(song.Title, targetTitle) {
			continue
		}
		if targetArtist == "" || containsIgnoreCase(song.PrimaryArtist.Name, targetArtist) {
			logger.Info().Str("title", song.Title).Str("artist", song.PrimaryArtist.Name).Int("id", song.ID).Msg("Found matching song")
			return song.ID
		}
		if firstTitleMatch == 0 {
			firstTitleMatch = song.ID
		}
	}

	// 没有歌手也匹配的结果时，退回到第一个标题匹配
	if firstTitleMatch != 0 {
		logger.Info().Int("id", firstTitleMatch).Msg("Using first title match")
	}
	return firstTitleMatch
}

// normalizeString 标准化字符串（转小写，去空格）
func normalizeString(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

// containsIgnoreCase 忽略大小写和空格的包含关系检查
func containsIgnoreCase(s1, s2 string) bool {
	norm1, norm2 := normalizeString(s1), normalizeString(s2)
	return strings.Contains(norm1, norm2) || strings.Contains(norm2, norm1)
}
