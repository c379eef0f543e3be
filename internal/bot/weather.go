package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/DriftingBoats/wework-ark-bot/internal/cache"
	"github.com/DriftingBoats/wework-ark-bot/internal/client/amap"
)

var errNoWeather = errors.New("weather: neither live nor forecast data available")

// Weather returns today's weather line for city (default city when empty).
func (b *Bot) Weather(ctx context.Context, city string) string {
	city = b.cityOr(city)
	var primary func(context.Context) (string, error)
	if b.weatherReady() {
		primary = func(ctx context.Context) (string, error) { return b.fetchWeather(ctx, city) }
	}
	return resolve(ctx, b, "weather", cache.Key("weather", city), cache.TypeWeather, primary, func() string {
		c := pick(b.intn, weatherPool)
		return fmt.Sprintf("今日%s天气：%s %s，%s", city, c.Condition, c.Temp, c.Desc)
	})
}

// CurrentWeather returns the live observation straight from the provider.
// When that is unavailable it falls back to Weather and reports live=false.
func (b *Bot) CurrentWeather(ctx context.Context, city string) (text string, live bool) {
	city = b.cityOr(city)
	if b.weatherReady() {
		l, err := b.weather.Live(ctx, city)
		if err == nil {
			if s := formatLive(l, city); s != "" {
				return s, true
			}
		}
	}
	return b.Weather(ctx, city), false
}

// ForecastWeather returns today's high/low line. It has no placeholder: an
// error means the provider is unconfigured or failed.
func (b *Bot) ForecastWeather(ctx context.Context, city string) (string, error) {
	city = b.cityOr(city)
	if !b.weatherReady() {
		return "", errors.New("weather forecast requires a weather api key")
	}
	f, err := b.weather.Forecast(ctx, city)
	if err != nil {
		return "", err
	}
	s := formatForecast(f)
	if s == "" {
		return "", errNoWeather
	}
	return s, nil
}

func (b *Bot) fetchWeather(ctx context.Context, city string) (string, error) {
	var current, forecast string
	if l, err := b.weather.Live(ctx, city); err == nil {
		current = formatLive(l, city)
	} else {
		b.logger.Debug("live weather unavailable", zap.String("city", city), zap.Error(err))
	}
	if f, err := b.weather.Forecast(ctx, city); err == nil {
		forecast = formatForecast(f)
	} else {
		b.logger.Debug("forecast weather unavailable", zap.String("city", city), zap.Error(err))
	}
	return composeWeather(current, forecast)
}

func composeWeather(current, forecast string) (string, error) {
	switch {
	case current != "" && forecast != "":
		return current + "，" + forecast, nil
	case current != "":
		return current, nil
	case forecast != "":
		return forecast, nil
	}
	return "", errNoWeather
}

func formatLive(l amap.Live, city string) string {
	name := orDefault(l.City, city)
	out := fmt.Sprintf("今日%s天气：%s %s°C", name, orDefault(l.Weather, "未知"), orDefault(l.Temperature, "未知"))
	var details []string
	if l.WindDirection != "" && l.WindPower != "" {
		details = append(details, fmt.Sprintf("%s风%s级", l.WindDirection, l.WindPower))
	}
	if l.Humidity != "" {
		details = append(details, fmt.Sprintf("湿度%s%%", l.Humidity))
	}
	if len(details) > 0 {
		out += "，" + strings.Join(details, " ")
	}
	return out
}

func formatForecast(f amap.Forecast) string {
	if len(f.Casts) == 0 {
		return ""
	}
	today := f.Casts[0]
	if today.DayTemp == "" || today.NightTemp == "" {
		return ""
	}
	out := fmt.Sprintf("最高%s°C/最低%s°C", today.DayTemp, today.NightTemp)
	if today.DayWeather != "" && today.NightWeather != "" && today.DayWeather != today.NightWeather {
		out += fmt.Sprintf("（白天%s/夜间%s）", today.DayWeather, today.NightWeather)
	}
	return out
}

func (b *Bot) cityOr(city string) string {
	if c := strings.TrimSpace(city); c != "" {
		return c
	}
	return b.opts.City
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
