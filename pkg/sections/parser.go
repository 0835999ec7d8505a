package sections

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"lyrics-sections/pkg/translate"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Parser splits cleaned lyrics into labelled sections. A Parser holds no
// per-call state and may be shared between goroutines as long as its
// Translator is safe for concurrent use.
type Parser struct {
	translator     Translator
	logger         zerolog.Logger
	fuzzyThreshold float32
	verbose        bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for diagnostics and verbose reports.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithFuzzyThreshold enables snapping a misspelled label to a standard name
// when their Jaro-Winkler similarity reaches threshold. Zero, the default,
// keeps such labels as-is and reports them as non-standard.
func WithFuzzyThreshold(threshold float32) Option {
	return func(p *Parser) {
		p.fuzzyThreshold = threshold
	}
}

// WithVerbose logs every finalized section.
func WithVerbose(verbose bool) Option {
	return func(p *Parser) {
		p.verbose = verbose
	}
}

// NewParser creates a Parser. A nil translator leaves labels untranslated.
func NewParser(translator Translator, opts ...Option) *Parser {
	if translator == nil {
		translator = translate.Identity
	}
	p := &Parser{
		translator: translator,
		logger:     log.With().Str("component", "sections").Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// state is everything one Parse call mutates.
type state struct {
	result  *Result
	repeats *repeatCache

	open    bool
	key     string
	base    string
	singers []string
	content []string

	counters map[string]int  // occurrences per assembled section name
	issued   map[string]bool // keys already handed out
}

func newState() *state {
	return &state{
		result:   &Result{},
		repeats:  newRepeatCache(),
		counters: make(map[string]int),
		issued:   make(map[string]bool),
	}
}

// close records the open section if it collected any lines.
func (s *state) close() {
	if !s.open || len(s.content) == 0 {
		return
	}
	content := strings.Join(s.content, " ")
	s.result.add(Section{
		Key:     s.key,
		Base:    s.base,
		Content: content,
		Singers: append([]string(nil), s.singers...),
	})
	s.repeats.remember(s.base, content)
}

// assignKey returns a key for name that has not been issued yet. The first
// occurrence keeps name; later ones become "<first word> <n>" with n from 2.
func (s *state) assignKey(name string) string {
	count, seen := s.counters[name]
	if !seen && !s.issued[name] {
		s.counters[name] = 1
		s.issued[name] = true
		return name
	}
	if !seen {
		count = 1
	}

	first := name
	if fields := strings.Fields(name); len(fields) > 0 {
		first = fields[0]
	}

	var key string
	for {
		count++
		key = strings.TrimSpace(first + " " + strconv.Itoa(count))
		if !s.issued[key] {
			break
		}
	}
	s.counters[name] = count
	s.issued[key] = true
	return key
}

// Parse splits lyrics into sections. Lines before the first header are
// discarded. defaultSinger is attributed to sections whose header names no
// singer. ErrNoSectionStructure is returned when nothing could be recorded.
func (p *Parser) Parse(ctx context.Context, lyrics, defaultSinger string) (*Result, error) {
	caser := cases.Title(language.Und)
	lines := splitLines(lyrics)
	s := newState()

	for i, line := range lines {
		text, isHeader := classifyLine(line)
		if !isHeader {
			s.content = append(s.content, line)
			continue
		}

		s.close()

		h, err := p.normalizeHeader(ctx, caser, text, defaultSinger)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize header %q: %w", text, err)
		}
		if !h.standard {
			p.reportNonStandard(s.result, h.translated)
		}

		s.content = nil
		if cached, ok := s.repeats.recall(h.base, lines, i); ok {
			s.content = []string{cached}
		}

		s.open = true
		s.key = s.assignKey(h.name)
		s.base = h.base
		s.singers = h.singers
	}
	s.close()

	if s.result.Len() == 0 {
		p.logger.Info().Msg("The provided lyrics do not contain information about sections")
		return nil, ErrNoSectionStructure
	}

	if p.verbose {
		for _, section := range s.result.Sections {
			p.logger.Info().
				Str("section", section.Key).
				Str("content", section.Content).
				Strs("singers", section.Singers).
				Msg("Section")
		}
	}
	return s.result, nil
}

func (p *Parser) reportNonStandard(result *Result, label string) {
	result.Diagnostics = append(result.Diagnostics, Diagnostic{
		Kind:    DiagnosticNonStandardLabel,
		Label:   label,
		Message: fmt.Sprintf("Paragraph name '%s' is not a standard section name", label),
	})
	p.logger.Warn().Str("label", label).Msg("Non-standard section name")
}
