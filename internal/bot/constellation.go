package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/DriftingBoats/wework-ark-bot/internal/cache"
	"github.com/DriftingBoats/wework-ark-bot/internal/client/tianapi"
)

// Constellation returns today's structured horoscope for sign.
func (b *Bot) Constellation(ctx context.Context, sign Sign) Horoscope {
	today := b.today()
	var primary func(context.Context) (Horoscope, error)
	if b.almanacReady() {
		primary = func(ctx context.Context) (Horoscope, error) {
			items, err := b.almanac.Star(ctx, sign.Astro)
			if err != nil {
				return Horoscope{}, err
			}
			return horoscopeFromItems(sign, today, items), nil
		}
	}
	return resolve(ctx, b, "constellation", cache.Key("constellation", sign.Astro, today), cache.TypeFortune, primary, func() Horoscope {
		return Horoscope{
			Sign:    sign.Name,
			Astro:   sign.Astro,
			Date:    today,
			Summary: pick(b.intn, horoscopeSummaries),
			Indices: HoroscopeIndices{
				Comprehensive: between(b.intn, comprehensiveRange),
				Love:          between(b.intn, loveRange),
				Work:          between(b.intn, workRange),
				Money:         between(b.intn, moneyRange),
				Health:        between(b.intn, healthRange),
			},
			Lucky: HoroscopeLucky{
				Color:     pick(b.intn, luckyColors),
				Number:    pick(b.intn, luckyNumbers),
				Time:      pick(b.intn, luckyTimes),
				NobleSign: pick(b.intn, nobleSigns),
			},
			Advice:   pick(b.intn, horoscopeAdvices),
			Fallback: true,
		}
	})
}

// ConstellationText returns the chat-ready horoscope block for sign.
func (b *Bot) ConstellationText(ctx context.Context, sign Sign) string {
	today := b.today()
	var primary func(context.Context) (string, error)
	if b.almanacReady() {
		primary = func(ctx context.Context) (string, error) {
			items, err := b.almanac.Star(ctx, sign.Astro)
			if err != nil {
				return "", err
			}
			return formatHoroscope(sign, today, items), nil
		}
	}
	return resolve(ctx, b, "constellation", cache.Key("constellation_text", sign.Astro, today), cache.TypeFortune, primary, func() string {
		return fmt.Sprintf(pick(b.intn, horoscopeTextPool), sign.Name)
	})
}

type starFields struct {
	comprehensive, love, work, money, health string
	color, number, noble, summary, time, advice string
}

func collectStar(items []tianapi.StarItem) starFields {
	var f starFields
	for _, it := range items {
		switch strings.TrimSpace(it.Type) {
		case "综合指数":
			f.comprehensive = it.Content
		case "爱情指数":
			f.love = it.Content
		case "工作指数":
			f.work = it.Content
		case "财运指数":
			f.money = it.Content
		case "健康指数":
			f.health = it.Content
		case "幸运颜色":
			f.color = it.Content
		case "幸运数字":
			f.number = it.Content
		case "贵人星座":
			f.noble = it.Content
		case "今日概述":
			f.summary = it.Content
		case "幸运时间":
			f.time = it.Content
		case "今日建议":
			f.advice = it.Content
		}
	}
	return f
}

func horoscopeFromItems(sign Sign, date string, items []tianapi.StarItem) Horoscope {
	f := collectStar(items)
	return Horoscope{
		Sign:    sign.Name,
		Astro:   sign.Astro,
		Date:    date,
		Summary: f.summary,
		Indices: HoroscopeIndices{
			Comprehensive: ExtractNumber(f.comprehensive),
			Love:          ExtractNumber(f.love),
			Work:          ExtractNumber(f.work),
			Money:         ExtractNumber(f.money),
			Health:        ExtractNumber(f.health),
		},
		Lucky: HoroscopeLucky{
			Color:     f.color,
			Number:    f.number,
			Time:      f.time,
			NobleSign: f.noble,
		},
		Advice: f.advice,
	}
}

func formatHoroscope(sign Sign, date string, items []tianapi.StarItem) string {
	f := collectStar(items)
	lines := []string{
		fmt.Sprintf("⭐ %s今日运势", sign.Name),
		"📅 日期：" + date,
	}
	add := func(prefix, v string) {
		if strings.TrimSpace(v) != "" {
			lines = append(lines, prefix+v)
		}
	}
	add("📝 今日概述：", f.summary)
	add("🌟 综合指数：", f.comprehensive)
	add("💕 爱情指数：", f.love)
	add("💼 工作指数：", f.work)
	add("💰 财运指数：", f.money)
	add("🏥 健康指数：", f.health)
	add("🎨 幸运颜色：", f.color)
	add("🔢 幸运数字：", f.number)
	add("🤝 贵人星座：", f.noble)
	return strings.Join(lines, "\n")
}
