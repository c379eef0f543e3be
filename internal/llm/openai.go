package llm

import (
	"context"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/DriftingBoats/wework-ark-bot/internal/config"
)

// chatCompletions talks to any OpenAI-compatible endpoint; Volcengine ARK
// exposes one under /api/v3.
type chatCompletions struct {
	client openai.Client
	cfg    config.LLMConfig
	logger *zap.Logger
}

func newChatCompletions(cfg config.LLMConfig, timeout time.Duration, logger *zap.Logger) *chatCompletions {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(base, "/")+"/"))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &chatCompletions{
		client: openai.NewClient(opts...),
		cfg:    cfg,
		logger: logger,
	}
}

func (c *chatCompletions) Name() string {
	if c.cfg.Provider == "" {
		return ProviderArk
	}
	return strings.ToLower(c.cfg.Provider)
}

func (c *chatCompletions) Complete(ctx context.Context, req Request) (string, error) {
	req = withDefaults(req, c.cfg)
	params := openai.ChatCompletionNewParams{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
		MaxTokens: openai.Int(req.MaxTokens),
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.TopP > 0 {
		params.TopP = openai.Float(req.TopP)
	}
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		c.logger.Error("chat completion failed", zap.String("provider", c.Name()), zap.Error(err))
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}
