package ai

import "context"

// AiInterface 大模型文本接口
type AiInterface interface {
	Name() string
	HandleText(ctx context.Context, msg string) (string, error)
}
