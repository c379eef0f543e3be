// Package tianapi talks to the TianAPI (天行数据) almanac and horoscope endpoints.
package tianapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DriftingBoats/wework-ark-bot/internal/client"
	"github.com/DriftingBoats/wework-ark-bot/internal/retry"
)

const (
	provider       = "tianapi"
	DefaultBaseURL = "https://apis.tianapi.com"
	lunarPath      = "/lunar/index"
	starPath       = "/star/index"
	codeOK         = "200"
)

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	Retry   retry.Policy
}

// Lunar is the 老黄历 result for one day.
type Lunar struct {
	GregorianDate     string `json:"gregoriandate"`
	LunarDate         string `json:"lunardate"`
	LunarDay          string `json:"lunarday"`
	LunarFestival     string `json:"lunar_festival"`
	Festival          string `json:"festival"`
	Fitness           string `json:"fitness"`
	Taboo             string `json:"taboo"`
	ShenWei           string `json:"shenwei"`
	TaiShen           string `json:"taishen"`
	ChongSha          string `json:"chongsha"`
	SuiSha            string `json:"suisha"`
	WuxingJiazi       string `json:"wuxingjiazi"`
	WuxingNaYear      string `json:"wuxingnayear"`
	WuxingNaMonth     string `json:"wuxingnamonth"`
	XingSu            string `json:"xingsu"`
	PengZu            string `json:"pengzu"`
	JianShen          string `json:"jianshen"`
	TianGanDiZhiYear  string `json:"tiangandizhiyear"`
	TianGanDiZhiMonth string `json:"tiangandizhimonth"`
	TianGanDiZhiDay   string `json:"tiangandizhiday"`
	LunarMonthName    string `json:"lmonthname"`
	ShengXiao         string `json:"shengxiao"`
	JieQi             string `json:"jieqi"`
}

// StarItem is one "type: content" line of a horoscope.
type StarItem struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type envelope struct {
	Code   client.FlexString `json:"code"`
	Msg    string            `json:"msg"`
	Result json.RawMessage   `json:"result"`
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

// Lunar fetches today's almanac.
func (c *Client) Lunar(ctx context.Context) (Lunar, error) {
	raw, err := c.call(ctx, lunarPath, nil)
	if err != nil {
		return Lunar{}, err
	}
	var out Lunar
	if err := json.Unmarshal(raw, &out); err != nil {
		return Lunar{}, &client.APIError{Provider: provider, Message: "malformed result: " + err.Error()}
	}
	return out, nil
}

// Star fetches today's horoscope for an English sign identifier (aries, leo, ...).
func (c *Client) Star(ctx context.Context, astro string) ([]StarItem, error) {
	q := url.Values{}
	q.Set("astro", strings.ToLower(strings.TrimSpace(astro)))
	raw, err := c.call(ctx, starPath, q)
	if err != nil {
		return nil, err
	}
	var result struct {
		List []StarItem `json:"list"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &client.APIError{Provider: provider, Message: "malformed result: " + err.Error()}
	}
	if result.List == nil {
		return nil, &client.APIError{Provider: provider, Message: "missing result.list"}
	}
	return result.List, nil
}

func (c *Client) call(ctx context.Context, path string, extra url.Values) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, client.ErrMissingKey
	}
	q := url.Values{}
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("key", c.APIKey)
	env, err := retry.Do(ctx, c.Retry, func(ctx context.Context) (envelope, error) {
		var out envelope
		err := client.GetJSON(ctx, c.HTTP, provider, c.BaseURL, path, q, &out)
		return out, err
	})
	if err != nil {
		return nil, err
	}
	if env.Code.String() != codeOK {
		msg := env.Msg
		if msg == "" {
			msg = "unknown error"
		}
		return nil, &client.APIError{Provider: provider, Code: env.Code.String(), Message: msg}
	}
	if len(env.Result) == 0 || string(env.Result) == "null" {
		return nil, &client.APIError{Provider: provider, Code: env.Code.String(), Message: "missing result"}
	}
	return env.Result, nil
}
