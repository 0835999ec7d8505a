package sections

import "strings"

// repeatCache remembers the content of the first closed section of each
// repeatable base type. Later closures never overwrite it.
type repeatCache struct {
	firstSeen map[string]string
}

func newRepeatCache() *repeatCache {
	return &repeatCache{firstSeen: make(map[string]string, len(repeatable))}
}

// remember records content for base if base is repeatable and has not been closed before.
func (c *repeatCache) remember(base, content string) {
	if !repeatable[base] {
		return
	}
	if _, ok := c.firstSeen[base]; ok {
		return
	}
	c.firstSeen[base] = content
}

// recall returns the cached content for base when the header at lines[i] has no
// lyrics transcribed beneath it, i.e. the next line is blank, another header or missing.
func (c *repeatCache) recall(base string, lines []string, i int) (string, bool) {
	if !repeatable[base] {
		return "", false
	}

	next := ""
	if i+1 < len(lines) {
		next = lines[i+1]
	}
	if strings.TrimSpace(next) != "" {
		if _, isHeader := classifyLine(next); !isHeader {
			return "", false
		}
	}

	content := c.firstSeen[base]
	return content, content != ""
}
