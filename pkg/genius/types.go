package genius

// Artist Genius 艺人
type Artist struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Song Genius 歌曲
type Song struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	URL           string   `json:"url"`
	Language      string   `json:"language"`
	PrimaryArtist Artist   `json:"primary_artist"`
	WriterArtists []Artist `json:"writer_artists"`
}

// SearchResponse Genius 搜索API响应
type SearchResponse struct {
	Response struct {
		Hits []struct {
			Type   string `json:"type"`
			Result Song   `json:"result"`
		} `json:"hits"`
	} `json:"response"`
}

// SongResponse Genius 歌曲API响应
type SongResponse struct {
	Response struct {
		Song Song `json:"song"`
	} `json:"response"`
}

// SongMetadata 歌曲元数据
type SongMetadata struct {
	GeniusID      string   `json:"genius_id"`
	Title         string   `json:"title"`
	Artist        string   `json:"artist"`
	Language      string   `json:"language"`
	WriterArtists []string `json:"writer_artists"`
}
