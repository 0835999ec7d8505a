package sections

import (
	"regexp"
	"strings"
)

var headerPattern = regexp.MustCompile(`^\[(.*?)\]`)

// classifyLine reports whether line is a section header and, if so, returns the
// text between the brackets. Lines are trimmed before matching.
func classifyLine(line string) (string, bool) {
	match := headerPattern.FindStringSubmatch(strings.TrimSpace(line))
	if match == nil {
		return "", false
	}
	return strings.TrimSpace(match[1]), true
}

// splitLines splits text into lines the way the lyrics sources deliver them:
// CRLF is treated as LF and a single trailing newline does not produce an empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
