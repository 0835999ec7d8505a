package sections

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var numericSuffixPattern = regexp.MustCompile(`\d+$`)

type header struct {
	translated string   // translated, title-cased label before canonicalization
	base       string   // standard name, or translated label when non-standard
	suffix     string   // trailing digits from the header text, e.g. "2"
	name       string   // base + suffix
	singers    []string // never empty
	standard   bool
}

// splitSingers separates "Chorus: A & B" into the label part and the singer list.
func splitSingers(text, defaultSinger string) (string, []string) {
	label, singerPart, found := strings.Cut(text, ":")
	if !found {
		return strings.TrimSpace(text), []string{defaultSinger}
	}

	var singers []string
	for _, name := range strings.Split(singerPart, "&") {
		if name = strings.TrimSpace(name); name != "" {
			singers = append(singers, name)
		}
	}
	if len(singers) == 0 {
		singers = []string{defaultSinger}
	}
	return strings.TrimSpace(label), singers
}

// splitSuffix extracts a trailing run of digits from label.
func splitSuffix(label string) (string, string) {
	loc := numericSuffixPattern.FindStringIndex(label)
	if loc == nil {
		return label, ""
	}
	return strings.TrimSpace(label[:loc[0]]), label[loc[0]:]
}

func (p *Parser) normalizeHeader(ctx context.Context, caser cases.Caser, text, defaultSinger string) (header, error) {
	label, singers := splitSingers(text, defaultSinger)
	base, suffix := splitSuffix(label)

	if base != "" {
		translated, err := p.translator.Translate(ctx, base)
		if err != nil {
			return header{}, &TranslationError{Label: base, Err: err}
		}
		translated = strings.TrimSpace(translated)
		if translated == "" {
			return header{}, &TranslationError{Label: base}
		}
		base = caser.String(translated)
	}

	h := header{translated: base, suffix: suffix, singers: singers}
	h.base, h.standard = canonicalize(base, p.fuzzyThreshold)
	h.name = strings.TrimSpace(caser.String(h.base) + " " + suffix)
	return h, nil
}
