package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Retry   RetryConfig   `mapstructure:"retry"`
	Weather WeatherConfig `mapstructure:"weather"`
	TianAPI TianAPIConfig `mapstructure:"tianapi"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Webhook WebhookConfig `mapstructure:"webhook"`
	Mirrors MirrorsConfig `mapstructure:"mirrors"`
	Cron    CronConfig    `mapstructure:"cron"`
	DB      DBConfig      `mapstructure:"db"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Message MessageConfig `mapstructure:"message"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	Timezone string `mapstructure:"timezone"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type CacheConfig struct {
	Backend       string        `mapstructure:"backend"`
	WeatherTTL    time.Duration `mapstructure:"weather_ttl"`
	FortuneTTL    time.Duration `mapstructure:"fortune_ttl"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	RedisPrefix   string        `mapstructure:"redis_prefix"`
}

type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	BaseDelay   time.Duration `mapstructure:"base_delay"`
}

type WeatherConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	City    string        `mapstructure:"city"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type TianAPIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LLMConfig struct {
	Provider    string        `mapstructure:"provider"`
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Temperature float64       `mapstructure:"temperature"`
	TopP        float64       `mapstructure:"top_p"`
}

type WebhookConfig struct {
	URL       string        `mapstructure:"url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	MaxLength int           `mapstructure:"max_length"`
}

type MirrorsConfig struct {
	SlackWebhookURL  string `mapstructure:"slack_webhook_url"`
	TelegramBotToken string `mapstructure:"telegram_bot_token"`
	TelegramChatID   int64  `mapstructure:"telegram_chat_id"`
}

type CronConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	DailySend string `mapstructure:"daily_send"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type MessageConfig struct {
	FortuneLinkURL string `mapstructure:"fortune_link_url"`
	SkipWeekends   bool   `mapstructure:"skip_weekends"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	setDefaults(v)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := applyCredentials(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.timezone", "Asia/Shanghai")
	v.SetDefault("server.http_addr", ":5000")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)

	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.weather_ttl", "1h")
	v.SetDefault("cache.fortune_ttl", "12h")
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.redis_prefix", "wework-bot:")

	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.base_delay", "1s")

	v.SetDefault("weather.base_url", "https://restapi.amap.com")
	v.SetDefault("weather.api_key", "")
	v.SetDefault("weather.city", "上海")
	v.SetDefault("weather.timeout", "10s")

	v.SetDefault("tianapi.base_url", "https://apis.tianapi.com")
	v.SetDefault("tianapi.api_key", "")
	v.SetDefault("tianapi.timeout", "10s")

	v.SetDefault("llm.provider", "ark")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "https://ark.cn-beijing.volces.com/api/v3")
	v.SetDefault("llm.model", "deepseek-v3-250324")
	v.SetDefault("llm.timeout", "30s")
	v.SetDefault("llm.temperature", 0.95)
	v.SetDefault("llm.top_p", 0.9)

	v.SetDefault("webhook.url", "")
	v.SetDefault("webhook.timeout", "10s")
	v.SetDefault("webhook.max_length", 4000)

	v.SetDefault("mirrors.slack_webhook_url", "")
	v.SetDefault("mirrors.telegram_bot_token", "")
	v.SetDefault("mirrors.telegram_chat_id", 0)

	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.daily_send", "0 30 9 * * MON-FRI")

	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 2)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "Asia/Shanghai")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "24h")

	v.SetDefault("message.fortune_link_url", "http://localhost:5000")
	v.SetDefault("message.skip_weekends", true)
}
