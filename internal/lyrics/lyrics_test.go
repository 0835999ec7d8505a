package lyrics

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"lyrics-sections/internal/config"
	"lyrics-sections/pkg/music"
)

type mockManager struct {
	lyrics string
	err    error
	calls  int
}

func (m *mockManager) GetProviderNames() []string { return []string{"mock"} }

func (m *mockManager) GetLyricsByInfo(ctx context.Context, title, artist string) (string, error) {
	m.calls++
	return m.lyrics, m.err
}

const rawLyrics = "[Verse 1]\nline one\nYou might also like[Chorus]\nhook\n3Embed"

func TestGetLyricsCleansAndCaches(t *testing.T) {
	cacheDir := t.TempDir()
	manager := &mockManager{lyrics: rawLyrics}
	provider, err := NewProvider(cacheDir, manager)
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}

	want := "[Verse 1]\nline one\n[Chorus]\nhook"

	for i := 0; i < 2; i++ {
		got, err := provider.GetLyrics(context.Background(), "Blinding Lights", "The Weeknd")
		if err != nil {
			t.Fatalf("GetLyrics returned error: %v", err)
		}
		if got != want {
			t.Errorf("call %d: got %q, want %q", i+1, got, want)
		}
	}

	if manager.calls != 1 {
		t.Errorf("expected the second call to hit the cache, manager called %d times", manager.calls)
	}

	cached, err := os.ReadFile(filepath.Join(cacheDir, "blinding lights-the weeknd.txt"))
	if err != nil {
		t.Fatalf("expected cache file: %v", err)
	}
	if string(cached) != rawLyrics {
		t.Errorf("expected raw lyrics in cache, got %q", cached)
	}
}

func TestGetLyricsWithoutCache(t *testing.T) {
	manager := &mockManager{lyrics: "[Intro]\nhey"}
	provider, err := NewProvider("", manager)
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := provider.GetLyrics(context.Background(), "Song", "Artist"); err != nil {
			t.Fatalf("GetLyrics returned error: %v", err)
		}
	}
	if manager.calls != 2 {
		t.Errorf("expected every call to reach the manager, got %d", manager.calls)
	}
}

func TestGetLyricsNotFound(t *testing.T) {
	manager := &mockManager{err: fmt.Errorf("all providers failed: %w", music.ErrNotFound)}
	provider, err := NewProvider(t.TempDir(), manager)
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}

	_, err = provider.GetLyrics(context.Background(), "Unknown", "Nobody")
	if !errors.Is(err, music.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSources(t *testing.T) {
	provider, err := NewProvider("", &mockManager{})
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}
	if got := provider.Sources(); len(got) != 1 || got[0] != "mock" {
		t.Errorf("unexpected sources %v", got)
	}
}

func TestGetLyricsEmptyTitle(t *testing.T) {
	provider, err := NewProvider("", &mockManager{})
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}
	if _, err := provider.GetLyrics(context.Background(), "  ", "Artist"); err == nil {
		t.Error("expected an error for an empty title")
	}
}

func TestNewProviderNilManager(t *testing.T) {
	if _, err := NewProvider("", nil); err == nil {
		t.Error("expected an error for a nil manager")
	}
}

func TestCreateManager(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		lrc     bool
		sources []string
		want    []string
	}{
		{"both sources", "token", true, nil, []string{"Genius", "LRCLib"}},
		{"genius only", "token", false, nil, []string{"Genius"}},
		{"lrclib only", "", true, nil, []string{"LRCLib"}},
		{"custom order", "token", true, []string{"lrc", "Genius", "netease"}, []string{"LRCLib", "Genius"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Genius.AccessToken = tt.token
			cfg.LRCLib.Enabled = tt.lrc
			if tt.sources != nil {
				cfg.App.Sources = tt.sources
			}

			got := CreateManager(cfg).GetProviderNames()
			if len(got) != len(tt.want) {
				t.Fatalf("got providers %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("provider %d: got %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	got := sanitizeFilename(`AC/DC: Back  in "Black"?`)
	if got != "ac-dc- back in -black--" {
		t.Errorf("unexpected filename %q", got)
	}
}
