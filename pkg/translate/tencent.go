package translate

import (
	"context"
	"errors"
	"fmt"

	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/profile"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/regions"
	tmt "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/tmt/v20180321"
)

// tmtAPI 腾讯云机器翻译中用到的接口，便于测试替换
type tmtAPI interface {
	LanguageDetectWithContext(ctx context.Context, request *tmt.LanguageDetectRequest) (*tmt.LanguageDetectResponse, error)
	TextTranslateWithContext(ctx context.Context, request *tmt.TextTranslateRequest) (*tmt.TextTranslateResponse, error)
}

// Tencent 基于腾讯云 TMT 的翻译器
type Tencent struct {
	client tmtAPI
	target string
}

var _ Translator = (*Tencent)(nil)

// NewTencent 创建腾讯云翻译客户端
func NewTencent(secretID, secretKey, region, target string) (*Tencent, error) {
	if secretID == "" || secretKey == "" {
		return nil, errors.New("tencent cloud credentials are not configured")
	}
	if region == "" {
		region = regions.Guangzhou
	}
	if target == "" {
		target = DefaultTarget
	}

	credential := common.NewCredential(secretID, secretKey)

	cpf := profile.NewClientProfile()
	cpf.HttpProfile.ReqMethod = "POST"
	cpf.HttpProfile.ReqTimeout = 10 // seconds
	cpf.HttpProfile.Endpoint = "tmt.tencentcloudapi.com"

	client, err := tmt.NewClient(credential, region, cpf)
	if err != nil {
		logger.Error().Err(err).Msg("new tencent tmt client error")
		return nil, fmt.Errorf("failed to create tencent tmt client: %w", err)
	}

	return &Tencent{client: client, target: target}, nil
}

// Translate 检测语言，若已是目标语言则原样返回，否则翻译
func (t *Tencent) Translate(ctx context.Context, text string) (string, error) {
	projectID := int64(0)

	detect := tmt.NewLanguageDetectRequest()
	detect.Text = common.StringPtr(text)
	detect.ProjectId = &projectID
	detected, err := t.client.LanguageDetectWithContext(ctx, detect)
	if err != nil {
		return "", fmt.Errorf("failed to detect language of %q: %w", text, err)
	}
	if detected.Response == nil || detected.Response.Lang == nil {
		return "", fmt.Errorf("empty language detection response for %q", text)
	}

	lang := *detected.Response.Lang
	if lang == t.target {
		return text, nil
	}

	request := tmt.NewTextTranslateRequest()
	request.Source = common.StringPtr(lang)
	request.Target = common.StringPtr(t.target)
	request.SourceText = common.StringPtr(text)
	request.ProjectId = &projectID

	response, err := t.client.TextTranslateWithContext(ctx, request)
	if err != nil {
		logger.Error().Err(err).Str("text", text).Msg("failed to send request")
		return "", fmt.Errorf("failed to translate %q: %w", text, err)
	}
	if response.Response == nil || response.Response.TargetText == nil {
		return "", fmt.Errorf("empty translation response for %q", text)
	}

	logger.Debug().Str("source", lang).Str("text", text).Str("translated", *response.Response.TargetText).Msg("Translated label")
	return *response.Response.TargetText, nil
}
