package config

import (
	"strings"

	"github.com/caarlos0/env/v11"
)

// Credentials mirrors the unprefixed environment variables older deployments
// already export. Any non-empty value wins over the viper-loaded config.
type Credentials struct {
	WebhookURL      string `env:"WEBHOOK_URL"`
	WeatherAPIKey   string `env:"WEATHER_API_KEY"`
	City            string `env:"CITY"`
	TianAPIKey      string `env:"TIANAPI_KEY"`
	ArkAPIKey       string `env:"ARK_API_KEY"`
	ArkBaseURL      string `env:"ARK_BASE_URL"`
	ArkModel        string `env:"ARK_MODEL"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	FortuneLinkURL  string `env:"FORTUNE_LINK_URL"`
	RedisAddr       string `env:"REDIS_ADDR"`
	DatabaseURL     string `env:"DATABASE_URL"`
}

func applyCredentials(cfg *Config) error {
	var c Credentials
	if err := env.Parse(&c); err != nil {
		return err
	}
	overlay(&cfg.Webhook.URL, c.WebhookURL)
	overlay(&cfg.Weather.APIKey, c.WeatherAPIKey)
	overlay(&cfg.Weather.City, c.City)
	overlay(&cfg.TianAPI.APIKey, c.TianAPIKey)
	overlay(&cfg.Message.FortuneLinkURL, c.FortuneLinkURL)
	overlay(&cfg.Cache.RedisAddr, c.RedisAddr)
	overlay(&cfg.DB.DSN, c.DatabaseURL)

	// ARK credentials only apply to the ark provider; an explicit anthropic
	// key switches the provider when none was configured.
	if strings.EqualFold(cfg.LLM.Provider, "anthropic") {
		overlay(&cfg.LLM.APIKey, c.AnthropicAPIKey)
		return nil
	}
	overlay(&cfg.LLM.APIKey, c.ArkAPIKey)
	overlay(&cfg.LLM.BaseURL, c.ArkBaseURL)
	overlay(&cfg.LLM.Model, c.ArkModel)
	if strings.TrimSpace(cfg.LLM.APIKey) == "" && strings.TrimSpace(c.AnthropicAPIKey) != "" {
		cfg.LLM.Provider = "anthropic"
		cfg.LLM.APIKey = strings.TrimSpace(c.AnthropicAPIKey)
		cfg.LLM.BaseURL = ""
		cfg.LLM.Model = ""
	}
	return nil
}

func overlay(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
