package bot

import (
	"context"
	"strings"

	"github.com/DriftingBoats/wework-ark-bot/internal/cache"
	"github.com/DriftingBoats/wework-ark-bot/internal/client/tianapi"
)

const (
	lunarPending   = "农历信息获取中..."
	defaultFitness = "无特别宜事"
	defaultTaboo   = "无特别忌事"
)

// Almanac returns today's structured almanac.
func (b *Bot) Almanac(ctx context.Context) AlmanacRecord {
	today := b.today()
	var primary func(context.Context) (AlmanacRecord, error)
	if b.almanacReady() {
		primary = func(ctx context.Context) (AlmanacRecord, error) {
			l, err := b.almanac.Lunar(ctx)
			if err != nil {
				return AlmanacRecord{}, err
			}
			return almanacFromLunar(l), nil
		}
	}
	return resolve(ctx, b, "almanac", cache.Key("almanac", today), cache.TypeFortune, primary, func() AlmanacRecord {
		return AlmanacRecord{
			Date: AlmanacDate{
				GregorianDate:  today,
				LunarDate:      lunarPending,
				LunarFormatted: lunarPending,
			},
			Fortune: AlmanacFortune{
				Fitness: pick(b.intn, fitnessPool),
				Taboo:   pick(b.intn, tabooPool),
			},
			Fallback: true,
		}
	})
}

// AlmanacText returns the short 农历/宜/忌 block used in the daily message.
func (b *Bot) AlmanacText(ctx context.Context) string {
	today := b.today()
	var primary func(context.Context) (string, error)
	if b.almanacReady() {
		primary = func(ctx context.Context) (string, error) {
			var rec AlmanacRecord
			if b.cache.Get(ctx, cache.Key("almanac", today), &rec) && !rec.Fallback {
				return formatAlmanac(rec), nil
			}
			l, err := b.almanac.Lunar(ctx)
			if err != nil {
				return "", err
			}
			return formatAlmanac(almanacFromLunar(l)), nil
		}
	}
	return resolve(ctx, b, "almanac", cache.Key("almanac_text", today), cache.TypeFortune, primary, func() string {
		return pick(b.intn, almanacTextPool)
	})
}

func almanacFromLunar(l tianapi.Lunar) AlmanacRecord {
	return AlmanacRecord{
		Date: AlmanacDate{
			GregorianDate:  l.GregorianDate,
			LunarDate:      l.LunarDate,
			LunarDay:       l.LunarDay,
			LunarFormatted: FormatLunarDate(l.LunarDate, l.LunarDay),
			LunarMonthName: l.LunarMonthName,
			YearGanzhi:     l.TianGanDiZhiYear,
			MonthGanzhi:    l.TianGanDiZhiMonth,
			DayGanzhi:      l.TianGanDiZhiDay,
			ShengXiao:      l.ShengXiao,
		},
		Festival: AlmanacFestival{
			LunarFestival: l.LunarFestival,
			Festival:      l.Festival,
			JieQi:         l.JieQi,
		},
		Fortune: AlmanacFortune{
			Fitness:  orDefault(l.Fitness, defaultFitness),
			Taboo:    orDefault(l.Taboo, defaultTaboo),
			ShenWei:  l.ShenWei,
			TaiShen:  l.TaiShen,
			ChongSha: l.ChongSha,
			SuiSha:   l.SuiSha,
			XingSu:   l.XingSu,
			JianShen: l.JianShen,
			PengZu:   l.PengZu,
		},
		Wuxing: AlmanacWuxing{
			Jiazi:   l.WuxingJiazi,
			NaYear:  l.WuxingNaYear,
			NaMonth: l.WuxingNaMonth,
		},
	}
}

// formatAlmanac omits 彭祖百忌.
func formatAlmanac(rec AlmanacRecord) string {
	lines := make([]string, 0, 4)
	if rec.Date.LunarDate != "" && rec.Date.LunarDay != "" {
		lines = append(lines, "🌝 农历："+FormatLunarDate(rec.Date.LunarDate, rec.Date.LunarDay))
	} else {
		lines = append(lines, "🌝 农历：信息获取中...")
	}
	lines = append(lines, "✅ 宜："+orDefault(rec.Fortune.Fitness, defaultFitness))
	lines = append(lines, "❌ 忌："+orDefault(rec.Fortune.Taboo, defaultTaboo))
	if tip := SimplifyChongSha(rec.Fortune.ChongSha); tip != "" {
		lines = append(lines, "⚡ 今日提醒："+tip)
	}
	return strings.Join(lines, "\n")
}
