package llm

import (
	"context"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/DriftingBoats/wework-ark-bot/internal/config"
)

type anthropicProvider struct {
	client anthropic.Client
	model  string
	cfg    config.LLMConfig
	logger *zap.Logger
}

func newAnthropic(cfg config.LLMConfig, timeout time.Duration, logger *zap.Logger) *anthropicProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultAnthropicModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &anthropicProvider{
		client: anthropic.NewClient(opts...),
		model:  model,
		cfg:    cfg,
		logger: logger,
	}
}

func (a *anthropicProvider) Name() string { return ProviderAnthropic }

func (a *anthropicProvider) Complete(ctx context.Context, req Request) (string, error) {
	req = withDefaults(req, a.cfg)
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: req.MaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	// temperature only; top_p is not sent
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(clamp(req.Temperature, 0, 1))
	}
	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		a.logger.Error("anthropic message failed", zap.String("model", a.model), zap.Error(err))
		return "", err
	}
	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
