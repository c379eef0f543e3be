// Package llm wraps the chat-completion providers used for generated copy.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/DriftingBoats/wework-ark-bot/internal/config"
)

const (
	ProviderArk       = "ark"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	defaultAnthropicModel = "claude-3-5-haiku-latest"
	defaultTimeout        = 30 * time.Second
)

var ErrEmptyCompletion = errors.New("llm returned no content")

type Request struct {
	Prompt      string
	MaxTokens   int64
	Temperature float64
	TopP        float64
}

// Provider produces a single completion for a prompt.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

// New builds the provider named in cfg. A missing API key yields a nil
// provider and no error; callers treat that as "generated copy disabled".
func New(cfg config.LLMConfig, logger *zap.Logger) (Provider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, nil
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderArk, ProviderOpenAI:
		if strings.TrimSpace(cfg.BaseURL) == "" && !strings.EqualFold(cfg.Provider, ProviderOpenAI) {
			return nil, fmt.Errorf("llm: base_url required for provider %q", cfg.Provider)
		}
		if strings.TrimSpace(cfg.Model) == "" {
			return nil, fmt.Errorf("llm: model required for provider %q", cfg.Provider)
		}
		return newChatCompletions(cfg, timeout, logger), nil
	case ProviderAnthropic:
		return newAnthropic(cfg, timeout, logger), nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}

func withDefaults(req Request, cfg config.LLMConfig) Request {
	if req.MaxTokens <= 0 {
		req.MaxTokens = 200
	}
	if req.Temperature <= 0 {
		req.Temperature = cfg.Temperature
	}
	if req.TopP <= 0 {
		req.TopP = cfg.TopP
	}
	return req
}
