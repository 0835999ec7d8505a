package translate

import (
	"context"
	"fmt"
	"strings"

	"lyrics-sections/pkg/ai"
)

var languageNames = map[string]string{
	"en": "English",
	"zh": "Simplified Chinese",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"ja": "Japanese",
	"ko": "Korean",
	"pt": "Portuguese",
}

func formatTranslateLabel(text, target string) string {
	language, ok := languageNames[target]
	if !ok {
		language = target
	}
	return fmt.Sprintf(`Translate the following song section label into %s. Song section labels are words such as "Intro", "Verse", "Pre-Chorus", "Chorus", "Post-Chorus", "Bridge" or "Outro". Reply with the translation only, without quotes, punctuation or markdown. Label: %s`, language, text)
}

// AI 通过大模型翻译段落标签
type AI struct {
	client ai.AiInterface
	target string
}

var _ Translator = (*AI)(nil)

// NewAI 创建基于大模型的翻译器
func NewAI(client ai.AiInterface, target string) *AI {
	if target == "" {
		target = DefaultTarget
	}
	return &AI{client: client, target: target}
}

func (a *AI) Translate(ctx context.Context, text string) (string, error) {
	resp, err := a.client.HandleText(ctx, formatTranslateLabel(text, a.target))
	if err != nil {
		return "", fmt.Errorf("%s failed to translate %q: %w", a.client.Name(), text, err)
	}

	resp = strings.TrimSpace(resp)
	if line, _, found := strings.Cut(resp, "\n"); found {
		resp = line
	}
	resp = strings.Trim(resp, "\"'`*. ")
	return resp, nil
}
