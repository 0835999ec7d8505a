package music

import (
	"context"
	"errors"
)

// ErrNotFound 歌词源中找不到匹配的歌曲或歌词
var ErrNotFound = errors.New("song not found")

// LyricsSource 歌词源通用接口
type LyricsSource interface {
	// SearchSong 搜索歌曲，返回歌曲ID
	SearchSong(ctx context.Context, title, artist string) (string, error)

	// GetLyrics 根据歌曲ID获取原始歌词文本
	GetLyrics(ctx context.Context, songID string) (string, error)

	// GetProviderName 获取歌词源名称
	GetProviderName() string
}

// LyricsManager 歌词源管理器接口，按顺序在多个歌词源之间回退
type LyricsManager interface {
	// GetLyricsByInfo 根据歌曲信息直接获取歌词（封装搜索+获取歌词）
	GetLyricsByInfo(ctx context.Context, title, artist string) (string, error)

	// GetProviderNames 按回退顺序返回歌词源名称
	GetProviderNames() []string
}
