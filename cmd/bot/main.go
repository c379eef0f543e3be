package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/DriftingBoats/wework-ark-bot/internal/auth"
	"github.com/DriftingBoats/wework-ark-bot/internal/bot"
	"github.com/DriftingBoats/wework-ark-bot/internal/cache"
	"github.com/DriftingBoats/wework-ark-bot/internal/client/amap"
	"github.com/DriftingBoats/wework-ark-bot/internal/client/tianapi"
	"github.com/DriftingBoats/wework-ark-bot/internal/config"
	cronrunner "github.com/DriftingBoats/wework-ark-bot/internal/cron"
	"github.com/DriftingBoats/wework-ark-bot/internal/db"
	"github.com/DriftingBoats/wework-ark-bot/internal/handler"
	"github.com/DriftingBoats/wework-ark-bot/internal/llm"
	"github.com/DriftingBoats/wework-ark-bot/internal/logger"
	"github.com/DriftingBoats/wework-ark-bot/internal/notify"
	"github.com/DriftingBoats/wework-ark-bot/internal/repository"
	gormrepository "github.com/DriftingBoats/wework-ark-bot/internal/repository/gorm"
	"github.com/DriftingBoats/wework-ark-bot/internal/retry"
)

func main() {
	cfgPath := os.Getenv("BOT_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("BOT_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, using Asia/Shanghai", zap.String("timezone", cfg.App.Timezone), zap.Error(err))
		loc = time.FixedZone("CST", 8*3600)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := cache.New(openCacheBackend(ctx, cfg.Cache, logger),
		cache.WithTTLs(cache.TTLTable{
			cache.TypeWeather: cfg.Cache.WeatherTTL,
			cache.TypeFortune: cfg.Cache.FortuneTTL,
		}),
		cache.WithLogger(logger),
	)

	policy := retry.NewPolicy(cfg.Retry.MaxAttempts, cfg.Retry.BaseDelay, logger)
	weatherClient := amap.New(cfg.Weather.BaseURL, cfg.Weather.APIKey, cfg.Weather.Timeout, policy)
	tianClient := tianapi.New(cfg.TianAPI.BaseURL, cfg.TianAPI.APIKey, cfg.TianAPI.Timeout, policy)

	provider, err := llm.New(cfg.LLM, logger)
	if err != nil {
		logger.Warn("llm disabled", zap.Error(err))
	}

	notifier := notify.NewNotifier(
		notify.NewWeWorkSender(cfg.Webhook.URL, cfg.Webhook.Timeout, policy),
		cfg.Webhook.MaxLength,
		logger,
		buildMirrors(cfg.Mirrors, logger)...,
	)

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	var deliveries repository.DeliveryRepository = repository.NewMemoryDeliveries(500)
	if dbConn != nil {
		if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
			logger.Warn("failed to set timezone", zap.Error(err))
		}
		if err := db.AutoMigrate(dbConn); err != nil {
			logger.Fatal("auto-migrate failed", zap.Error(err))
		}
		deliveries = gormrepository.New(dbConn.Gorm)
		logger.Info("delivery log stored in postgres")
	}

	b := bot.New(bot.Deps{
		Cache:      store,
		Weather:    weatherClient,
		Almanac:    tianClient,
		LLM:        provider,
		Notifier:   notifier,
		Deliveries: deliveries,
		Logger:     logger,
	}, bot.Options{
		City:           cfg.Weather.City,
		Location:       loc,
		FortuneLinkURL: cfg.Message.FortuneLinkURL,
		SkipWeekends:   cfg.Message.SkipWeekends,
	})
	logStatus(logger, b.Status())

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	jwt := auth.JWT{Secret: []byte(cfg.Auth.JWTSecret), TokenTTL: cfg.Auth.TokenTTL}
	if !jwt.Enabled() {
		logger.Warn("auth.jwt_secret not set, message endpoints are unauthenticated")
	}
	engine := handler.NewRouter(handler.RouterDeps{
		Bot:     b,
		DB:      dbConn,
		JWT:     jwt,
		Logger:  logger,
		Started: time.Now(),
	})

	if cfg.Cron.Enabled {
		cronRunner := cronrunner.New(logger, ctx, loc)
		id, err := cronRunner.Add("daily_send", cfg.Cron.DailySend, func(ctx context.Context) {
			b.RunDaily(ctx)
		})
		if err != nil {
			logger.Fatal("invalid cron.daily_send", zap.String("spec", cfg.Cron.DailySend), zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
		logger.Info("daily send scheduled", zap.String("spec", cfg.Cron.DailySend), zap.Time("next", cronRunner.Next(id)))
	} else {
		logger.Info("cron disabled, daily send must be triggered via POST /api/message/send-daily")
	}

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

// openCacheBackend returns nil for the in-memory backend. A configured but
// unreachable Redis also falls back to memory.
func openCacheBackend(ctx context.Context, cfg config.CacheConfig, logger *zap.Logger) cache.Backend {
	if !strings.EqualFold(cfg.Backend, "redis") {
		return nil
	}
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		logger.Warn("cache.backend=redis without cache.redis_addr, using memory")
		return nil
	}
	rb := cache.NewRedisBackend(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, cfg.RedisPrefix)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rb.Ping(pingCtx); err != nil {
		logger.Warn("redis unreachable, using memory cache", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		_ = rb.Close()
		return nil
	}
	logger.Info("cache backed by redis", zap.String("addr", cfg.RedisAddr))
	return rb
}

func buildMirrors(cfg config.MirrorsConfig, logger *zap.Logger) []notify.Sender {
	var out []notify.Sender
	if u := strings.TrimSpace(cfg.SlackWebhookURL); u != "" {
		out = append(out, notify.SlackMirror{WebhookURL: u})
	}
	if strings.TrimSpace(cfg.TelegramBotToken) != "" {
		tm, err := notify.NewTelegramMirror(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			logger.Warn("telegram mirror disabled", zap.Error(err))
		} else {
			out = append(out, tm)
		}
	}
	return out
}

func logStatus(logger *zap.Logger, s bot.Status) {
	logger.Info("bot configured",
		zap.Bool("webhook", s.Webhook),
		zap.Bool("weather_api", s.Weather),
		zap.Bool("tianapi", s.TianAPI),
		zap.String("llm", s.LLM),
		zap.String("city", s.City),
		zap.String("timezone", s.Timezone),
	)
}
