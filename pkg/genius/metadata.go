package genius

import (
	"context"
	"strconv"
)

// GetSongMetadata 根据 Genius ID 获取歌曲元数据
func (c *Client) GetSongMetadata(ctx context.Context, songID string) (*SongMetadata, error) {
	song, err := c.getSong(ctx, songID)
	if err != nil {
		return nil, err
	}

	writers := make([]string, 0, len(song.WriterArtists))
	for _, artist := range song.WriterArtists {
		writers = append(writers, artist.Name)
	}
	if len(writers) == 0 {
		writers = []string{song.PrimaryArtist.Name}
	}

	return &SongMetadata{
		GeniusID:      strconv.Itoa(song.ID),
		Title:         song.Title,
		Artist:        song.PrimaryArtist.Name,
		Language:      song.Language,
		WriterArtists: writers,
	}, nil
}
