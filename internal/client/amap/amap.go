// Package amap talks to the AMap (高德) weather REST API.
package amap

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DriftingBoats/wework-ark-bot/internal/client"
	"github.com/DriftingBoats/wework-ark-bot/internal/retry"
)

const (
	provider       = "amap"
	DefaultBaseURL = "https://restapi.amap.com"
	weatherPath    = "/v3/weather/weatherInfo"
)

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	Retry   retry.Policy
}

// Live is the "实况" observation block.
type Live struct {
	Province      string `json:"province"`
	City          string `json:"city"`
	Weather       string `json:"weather"`
	Temperature   string `json:"temperature"`
	WindDirection string `json:"winddirection"`
	WindPower     string `json:"windpower"`
	Humidity      string `json:"humidity"`
	ReportTime    string `json:"reporttime"`
}

// Cast is one day of the "预报" block.
type Cast struct {
	Date         string `json:"date"`
	Week         string `json:"week"`
	DayWeather   string `json:"dayweather"`
	NightWeather string `json:"nightweather"`
	DayTemp      string `json:"daytemp"`
	NightTemp    string `json:"nighttemp"`
}

type Forecast struct {
	City  string `json:"city"`
	Casts []Cast `json:"casts"`
}

type liveWire struct {
	Province      client.FlexString `json:"province"`
	City          client.FlexString `json:"city"`
	Weather       client.FlexString `json:"weather"`
	Temperature   client.FlexString `json:"temperature"`
	WindDirection client.FlexString `json:"winddirection"`
	WindPower     client.FlexString `json:"windpower"`
	Humidity      client.FlexString `json:"humidity"`
	ReportTime    client.FlexString `json:"reporttime"`
}

type castWire struct {
	Date         client.FlexString `json:"date"`
	Week         client.FlexString `json:"week"`
	DayWeather   client.FlexString `json:"dayweather"`
	NightWeather client.FlexString `json:"nightweather"`
	DayTemp      client.FlexString `json:"daytemp"`
	NightTemp    client.FlexString `json:"nighttemp"`
}

type response struct {
	Status    client.FlexString `json:"status"`
	Info      client.FlexString `json:"info"`
	InfoCode  client.FlexString `json:"infocode"`
	Lives     []liveWire        `json:"lives"`
	Forecasts []struct {
		City  client.FlexString `json:"city"`
		Casts []castWire        `json:"casts"`
	} `json:"forecasts"`
}

func New(baseURL, apiKey string, timeout time.Duration, policy retry.Policy) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  strings.TrimSpace(apiKey),
		HTTP:    &http.Client{Timeout: timeout},
		Retry:   policy,
	}
}

func (c *Client) Configured() bool {
	return c != nil && strings.TrimSpace(c.APIKey) != ""
}

// Live returns current conditions for city.
func (c *Client) Live(ctx context.Context, city string) (Live, error) {
	resp, err := c.fetch(ctx, city, "base")
	if err != nil {
		return Live{}, err
	}
	if resp.Status.String() != "1" || len(resp.Lives) == 0 {
		return Live{}, apiError(resp, "missing lives")
	}
	w := resp.Lives[0]
	return Live{
		Province:      w.Province.String(),
		City:          w.City.String(),
		Weather:       w.Weather.String(),
		Temperature:   w.Temperature.String(),
		WindDirection: w.WindDirection.String(),
		WindPower:     w.WindPower.String(),
		Humidity:      w.Humidity.String(),
		ReportTime:    w.ReportTime.String(),
	}, nil
}

// Forecast returns the multi-day forecast for city, today first.
func (c *Client) Forecast(ctx context.Context, city string) (Forecast, error) {
	resp, err := c.fetch(ctx, city, "all")
	if err != nil {
		return Forecast{}, err
	}
	if resp.Status.String() != "1" || len(resp.Forecasts) == 0 || len(resp.Forecasts[0].Casts) == 0 {
		return Forecast{}, apiError(resp, "missing forecasts")
	}
	f := resp.Forecasts[0]
	out := Forecast{City: f.City.String(), Casts: make([]Cast, 0, len(f.Casts))}
	for _, w := range f.Casts {
		out.Casts = append(out.Casts, Cast{
			Date:         w.Date.String(),
			Week:         w.Week.String(),
			DayWeather:   w.DayWeather.String(),
			NightWeather: w.NightWeather.String(),
			DayTemp:      w.DayTemp.String(),
			NightTemp:    w.NightTemp.String(),
		})
	}
	return out, nil
}

func (c *Client) fetch(ctx context.Context, city, extensions string) (response, error) {
	if !c.Configured() {
		return response{}, client.ErrMissingKey
	}
	q := url.Values{}
	q.Set("key", c.APIKey)
	q.Set("city", strings.TrimSpace(city))
	q.Set("extensions", extensions)
	return retry.Do(ctx, c.Retry, func(ctx context.Context) (response, error) {
		var out response
		err := client.GetJSON(ctx, c.HTTP, provider, c.BaseURL, weatherPath, q, &out)
		return out, err
	})
}

func apiError(resp response, fallback string) error {
	msg := resp.Info.String()
	if msg == "" || strings.EqualFold(msg, "OK") {
		msg = fallback
	}
	return &client.APIError{Provider: provider, Code: resp.InfoCode.String(), Message: msg}
}
