package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/DriftingBoats/wework-ark-bot/internal/models"
	"github.com/DriftingBoats/wework-ark-bot/internal/notify"
	"github.com/DriftingBoats/wework-ark-bot/internal/repository"
)

const (
	KindDaily   = "daily"
	KindManual  = "manual"
	KindWeather = "weather"
	KindFortune = "fortune"
	KindLunch   = "lunch"

	DefaultFortuneLink = "http://localhost:5000"
	closingLine        = "祝大家今天也要开心摸鱼哦~ 🐟✨"
)

// IsWorkday reports whether t falls on Monday through Friday.
func IsWorkday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// DailyMessage composes the morning message. It returns ("", false) on
// weekends when weekend skipping is enabled.
func (b *Bot) DailyMessage(ctx context.Context) (string, bool) {
	now := b.localNow()
	if b.opts.SkipWeekends && !IsWorkday(now) {
		return "", false
	}
	weekday := WeekdayName(now.Weekday())

	weather := b.Weather(ctx, "")
	fortune := b.AlmanacText(ctx)
	encourage := b.Encouragement(ctx, weekday)
	lunch := b.Lunch(ctx, weather)

	link := b.opts.FortuneLinkURL
	if link == "" {
		link = DefaultFortuneLink
	}
	return fmt.Sprintf("💼 %s\n\n🔮 今日运势（<a href=\"%s\">查看详情</a>）\n%s\n\n🌤️ %s\n\n🍽️ 午餐推荐：%s\n\n%s",
		encourage, link, fortune, weather, lunch, closingLine), true
}

// Deliver sends text through the notifier and records the attempt.
func (b *Bot) Deliver(ctx context.Context, kind, text string) notify.Result {
	var res notify.Result
	if b.notifier == nil {
		res = notify.Result{Content: notify.Sanitize(text, 0), Err: notify.ErrNoWebhook}
		b.logger.Error("webhook url not configured")
	} else {
		res = b.notifier.Deliver(ctx, text)
	}
	status := models.DeliveryStatusFailed
	if res.Sent {
		status = models.DeliveryStatusSent
	}
	b.record(ctx, kind, status, res.Content, res.Err, res.Mirrors)
	return res
}

// Send posts an arbitrary message and reports success.
func (b *Bot) Send(ctx context.Context, text string) bool {
	return b.Deliver(ctx, KindManual, text).Sent
}

type DailyOutcome struct {
	Skipped bool
	Message string
	Result  notify.Result
}

// RunDaily composes and posts the daily message. Weekends are recorded as
// skipped without touching the webhook.
func (b *Bot) RunDaily(ctx context.Context) DailyOutcome {
	b.logger.Info("daily send started")
	msg, ok := b.DailyMessage(ctx)
	if !ok {
		b.logger.Info("weekend, daily send skipped")
		b.record(ctx, KindDaily, models.DeliveryStatusSkipped, "", nil, nil)
		return DailyOutcome{Skipped: true}
	}
	res := b.Deliver(ctx, KindDaily, msg)
	if res.Sent {
		b.logger.Info("daily send succeeded")
	} else {
		b.logger.Error("daily send failed", zap.Error(res.Err))
	}
	return DailyOutcome{Message: msg, Result: res}
}

// SendDaily reports whether a daily message was delivered. Skipped
// weekends report false.
func (b *Bot) SendDaily(ctx context.Context) bool {
	return b.RunDaily(ctx).Result.Sent
}

func (b *Bot) SendWeather(ctx context.Context) (string, notify.Result) {
	w := b.Weather(ctx, "")
	return w, b.Deliver(ctx, KindWeather, "🌤️ 天气播报\n\n"+w)
}

func (b *Bot) SendFortune(ctx context.Context) (string, notify.Result) {
	f := b.AlmanacText(ctx)
	return f, b.Deliver(ctx, KindFortune, "📅 今日运势\n\n"+f)
}

func (b *Bot) SendLunch(ctx context.Context) (string, notify.Result) {
	l := b.Lunch(ctx, b.Weather(ctx, ""))
	return l, b.Deliver(ctx, KindLunch, "🍽️ 午餐推荐\n\n"+l)
}

// History lists recorded deliveries, newest first.
func (b *Bot) History(ctx context.Context, params repository.ListDeliveriesParams) ([]models.DeliveryRecord, error) {
	if b.deliveries == nil {
		return []models.DeliveryRecord{}, nil
	}
	return b.deliveries.ListDeliveries(ctx, params)
}

func (b *Bot) record(ctx context.Context, kind, status, content string, sendErr error, mirrors map[string]string) {
	if b.deliveries == nil {
		return
	}
	rec := &models.DeliveryRecord{
		ID:        uuid.New(),
		Kind:      kind,
		Channel:   "wework",
		Status:    status,
		Content:   content,
		CreatedAt: b.now().UTC(),
	}
	if sendErr != nil {
		rec.Error = sendErr.Error()
	}
	if len(mirrors) > 0 {
		if raw, err := json.Marshal(mirrors); err == nil {
			rec.Mirrors = datatypes.JSON(raw)
		}
	}
	// outlives request cancellation, bounded
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := b.deliveries.InsertDelivery(rctx, rec); err != nil {
		b.logger.Warn("delivery record failed", zap.String("kind", kind), zap.Error(err))
	}
}
