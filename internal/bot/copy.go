package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/DriftingBoats/wework-ark-bot/internal/llm"
)

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "周一",
	time.Tuesday:   "周二",
	time.Wednesday: "周三",
	time.Thursday:  "周四",
	time.Friday:    "周五",
	time.Saturday:  "周六",
	time.Sunday:    "周日",
}

// WeekdayName returns the Chinese short name, e.g. 周一.
func WeekdayName(d time.Weekday) string { return weekdayNames[d] }

// Encouragement returns a one-liner to get people to work on weekday (周一..周五).
// Generated copy is never cached.
func (b *Bot) Encouragement(ctx context.Context, weekday string) string {
	style := fmt.Sprintf(pick(b.intn, encouragementStyles), weekday)
	prompt := style + "。\n\n" + fmt.Sprintf(encouragementRules, weekday)
	if out, ok := b.generate(ctx, "encouragement", llm.Request{Prompt: prompt, MaxTokens: 100, Temperature: 0.95, TopP: 0.9}); ok {
		return out
	}
	pool, ok := encouragementPool[weekday]
	if !ok {
		pool = defaultEncouragement
	}
	return pick(b.intn, pool)
}

// Lunch recommends takeaway based on the weather line.
func (b *Bot) Lunch(ctx context.Context, weatherInfo string) string {
	style := fmt.Sprintf(pick(b.intn, lunchStyles), weatherInfo)
	prompt := style + "。\n\n" + lunchRules
	if out, ok := b.generate(ctx, "lunch", llm.Request{Prompt: prompt, MaxTokens: 150, Temperature: 0.95, TopP: 0.9}); ok {
		return out
	}
	for _, p := range lunchPools {
		for _, kw := range p.keywords {
			if strings.Contains(weatherInfo, kw) {
				return pick(b.intn, p.items)
			}
		}
	}
	return pick(b.intn, lunchDefault)
}

func (b *Bot) generate(ctx context.Context, what string, req llm.Request) (string, bool) {
	if b.llm == nil {
		b.warnMissingKey("llm")
		return "", false
	}
	out, err := b.llm.Complete(ctx, req)
	if err != nil {
		b.logger.Warn("generated copy unavailable, using fallback", zap.String("kind", what), zap.Error(err))
		return "", false
	}
	return out, true
}
