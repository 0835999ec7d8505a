package genius

import (
	"regexp"
	"strings"
)

var (
	// "You might also like" 推荐块紧贴在段落标记之前
	promoBeforeHeader = regexp.MustCompile(`You might also like\[`)
	embedFooter       = regexp.MustCompile(`\d*Embed\s*$`)
	newlineRuns       = regexp.MustCompile(`\n+`)
)

// CleanLyrics prepares scraped lyrics for section parsing: promotional text
// directly before a header is dropped, every header starts on its own line,
// blank lines are collapsed and the result is trimmed.
func CleanLyrics(raw string) string {
	lyrics := strings.ReplaceAll(raw, "\r\n", "\n")
	lyrics = embedFooter.ReplaceAllString(lyrics, "")
	lyrics = promoBeforeHeader.ReplaceAllString(lyrics, "\n[")
	lyrics = strings.ReplaceAll(lyrics, "[", "\n[")
	lyrics = newlineRuns.ReplaceAllString(lyrics, "\n")
	return strings.TrimSpace(lyrics)
}
