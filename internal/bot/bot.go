// Package bot composes weather, almanac, horoscope and generated copy into
// chat messages. Every resource goes through the same chain: cache, then the
// remote provider, then a local placeholder. Callers always get a value.
package bot

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/DriftingBoats/wework-ark-bot/internal/cache"
	"github.com/DriftingBoats/wework-ark-bot/internal/client"
	"github.com/DriftingBoats/wework-ark-bot/internal/client/amap"
	"github.com/DriftingBoats/wework-ark-bot/internal/client/tianapi"
	"github.com/DriftingBoats/wework-ark-bot/internal/llm"
	"github.com/DriftingBoats/wework-ark-bot/internal/notify"
	"github.com/DriftingBoats/wework-ark-bot/internal/repository"
)

const (
	DefaultCity     = "上海"
	DefaultTimezone = "Asia/Shanghai"
	dateLayout      = "2006-01-02"
)

type WeatherSource interface {
	Configured() bool
	Live(ctx context.Context, city string) (amap.Live, error)
	Forecast(ctx context.Context, city string) (amap.Forecast, error)
}

type AlmanacSource interface {
	Configured() bool
	Lunar(ctx context.Context) (tianapi.Lunar, error)
	Star(ctx context.Context, astro string) ([]tianapi.StarItem, error)
}

type Deliverer interface {
	Configured() bool
	Deliver(ctx context.Context, text string) notify.Result
}

type Deps struct {
	Cache      *cache.Store
	Weather    WeatherSource
	Almanac    AlmanacSource
	LLM        llm.Provider
	Notifier   Deliverer
	Deliveries repository.DeliveryRepository
	Logger     *zap.Logger

	// Now and Intn default to the wall clock and math/rand.
	Now  func() time.Time
	Intn func(n int) int
}

type Options struct {
	City           string
	Location       *time.Location
	FortuneLinkURL string
	SkipWeekends   bool
}

type Bot struct {
	cache      *cache.Store
	weather    WeatherSource
	almanac    AlmanacSource
	llm        llm.Provider
	notifier   Deliverer
	deliveries repository.DeliveryRepository
	logger     *zap.Logger
	now        func() time.Time
	intn       func(n int) int
	opts       Options

	warned sync.Map
}

func New(deps Deps, opts Options) *Bot {
	b := &Bot{
		cache:      deps.Cache,
		weather:    deps.Weather,
		almanac:    deps.Almanac,
		llm:        deps.LLM,
		notifier:   deps.Notifier,
		deliveries: deps.Deliveries,
		logger:     deps.Logger,
		now:        deps.Now,
		intn:       deps.Intn,
		opts:       opts,
	}
	if b.cache == nil {
		b.cache = cache.New(nil)
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	if b.now == nil {
		b.now = time.Now
	}
	if b.intn == nil {
		b.intn = rand.IntN
	}
	if strings.TrimSpace(b.opts.City) == "" {
		b.opts.City = DefaultCity
	}
	if b.opts.Location == nil {
		loc, err := time.LoadLocation(DefaultTimezone)
		if err != nil {
			loc = time.FixedZone("CST", 8*3600)
		}
		b.opts.Location = loc
	}
	return b
}

// City is the default city used when a request names none.
func (b *Bot) City() string { return b.opts.City }

func (b *Bot) localNow() time.Time { return b.now().In(b.opts.Location) }

func (b *Bot) today() string { return b.localNow().Format(dateLayout) }

func (b *Bot) weatherReady() bool { return b.weather != nil && b.weather.Configured() }

func (b *Bot) almanacReady() bool { return b.almanac != nil && b.almanac.Configured() }

// resolve returns the cached value under key, else the primary result, else
// the fallback. Whatever is returned on a miss is cached under typ. A nil
// primary means the provider has no credentials.
func resolve[T any](ctx context.Context, b *Bot, resource, key string, typ cache.ResourceType, primary func(context.Context) (T, error), fallback func() T) T {
	var cached T
	if b.cache.Get(ctx, key, &cached) {
		b.logger.Debug("cache hit", zap.String("key", key))
		return cached
	}
	if primary == nil {
		b.warnMissingKey(resource)
	} else {
		v, err := primary(ctx)
		if err == nil {
			b.cache.Set(ctx, key, v, typ)
			return v
		}
		if errors.Is(err, client.ErrMissingKey) {
			b.warnMissingKey(resource)
		} else {
			b.logger.Warn("primary source failed, using fallback",
				zap.String("resource", resource),
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
	v := fallback()
	b.cache.Set(ctx, key, v, typ)
	return v
}

func (b *Bot) warnMissingKey(resource string) {
	if _, loaded := b.warned.LoadOrStore(resource, struct{}{}); loaded {
		return
	}
	b.logger.Warn("api key not configured, using fallback content", zap.String("resource", resource))
}

func pick[T any](intn func(int) int, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[intn(len(items))]
}

func between(intn func(int) int, r indexRange) int {
	return r.lo + intn(r.hi-r.lo+1)
}

// Status reports which integrations are configured.
type Status struct {
	Webhook  bool   `json:"webhook"`
	Weather  bool   `json:"weather_api"`
	TianAPI  bool   `json:"tianapi"`
	LLM      string `json:"llm"`
	City     string `json:"city"`
	Timezone string `json:"timezone"`
}

func (b *Bot) Status() Status {
	s := Status{
		Webhook:  b.notifier != nil && b.notifier.Configured(),
		Weather:  b.weatherReady(),
		TianAPI:  b.almanacReady(),
		City:     b.opts.City,
		Timezone: b.opts.Location.String(),
	}
	if b.llm != nil {
		s.LLM = b.llm.Name()
	}
	return s
}
