// Package translate provides the header-label translators used by the section
// parser: Tencent Cloud TMT, an LLM backed translator and a Redis memoizer.
package translate

import (
	"context"

	"github.com/rs/zerolog/log"
)

// DefaultTarget 标准段落名称所用的语言
const DefaultTarget = "en"

var logger = log.With().Str("component", "translate").Logger()

// Translator 文本翻译接口
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Func 将普通函数适配为 Translator
type Func func(ctx context.Context, text string) (string, error)

func (f Func) Translate(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Identity 原样返回文本
var Identity Translator = Func(func(_ context.Context, text string) (string, error) {
	return text, nil
})
