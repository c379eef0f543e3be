package bot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DriftingBoats/wework-ark-bot/internal/cache"
	"github.com/DriftingBoats/wework-ark-bot/internal/client/amap"
	"github.com/DriftingBoats/wework-ark-bot/internal/client/tianapi"
	"github.com/DriftingBoats/wework-ark-bot/internal/llm"
	"github.com/DriftingBoats/wework-ark-bot/internal/models"
	"github.com/DriftingBoats/wework-ark-bot/internal/notify"
	"github.com/DriftingBoats/wework-ark-bot/internal/repository"
	"github.com/DriftingBoats/wework-ark-bot/internal/retry"
)

// 2026-10-16 is a Friday.
var friday = time.Date(2026, 10, 16, 9, 30, 0, 0, time.FixedZone("CST", 8*3600))

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func noSleep() retry.Policy {
	p := retry.DefaultPolicy()
	p.Sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return p
}

type stubServer struct {
	*httptest.Server
	calls atomic.Int64
}

func newStub(t *testing.T, status int, body func(r *http.Request) string) *stubServer {
	t.Helper()
	s := &stubServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body(r)))
	}))
	t.Cleanup(s.Close)
	return s
}

type harness struct {
	bot   *Bot
	clock *fakeClock
	store *cache.Store
	repo  *repository.MemoryDeliveries
}

func newHarness(t *testing.T, deps Deps, opts Options) *harness {
	t.Helper()
	clk := &fakeClock{t: friday}
	store := cache.New(cache.NewMemoryBackend(), cache.WithClock(clk.Now))
	repo := repository.NewMemoryDeliveries(50)
	deps.Cache = store
	deps.Now = clk.Now
	if deps.Intn == nil {
		deps.Intn = func(n int) int { return 0 }
	}
	if deps.Deliveries == nil {
		deps.Deliveries = repo
	}
	if opts.Location == nil {
		opts.Location = friday.Location()
	}
	return &harness{bot: New(deps, opts), clock: clk, store: store, repo: repo}
}

func TestWeather_LiveFromStub(t *testing.T) {
	srv := newStub(t, http.StatusOK, func(r *http.Request) string {
		return `{"status":1,"lives":[{"city":"TestCity","weather":"Clear","temperature":25}]}`
	})
	h := newHarness(t, Deps{Weather: amap.New(srv.URL, "k", time.Second, noSleep())}, Options{})

	got := h.bot.Weather(context.Background(), "TestCity")
	if !strings.Contains(got, "TestCity") || !strings.Contains(got, "25") {
		t.Fatalf("weather=%q", got)
	}
	if strings.Contains(got, "，最高") {
		t.Fatalf("forecast missing from stub but composed: %q", got)
	}

	var cached string
	if !h.store.Get(context.Background(), cache.Key("weather", "TestCity"), &cached) || cached != got {
		t.Fatalf("cached=%q want %q", cached, got)
	}

	calls := srv.calls.Load()
	h.clock.Advance(59 * time.Minute)
	if again := h.bot.Weather(context.Background(), "TestCity"); again != got {
		t.Fatalf("second fetch=%q want %q", again, got)
	}
	if srv.calls.Load() != calls {
		t.Fatalf("calls=%d want %d", srv.calls.Load(), calls)
	}
}

func TestWeather_LiveAndForecastComposed(t *testing.T) {
	srv := newStub(t, http.StatusOK, func(r *http.Request) string {
		if r.URL.Query().Get("extensions") == "all" {
			return `{"status":"1","forecasts":[{"city":"上海","casts":[{"date":"2026-10-16","dayweather":"晴","nightweather":"多云","daytemp":"26","nighttemp":"18"}]}]}`
		}
		return `{"status":"1","lives":[{"city":"上海","weather":"晴","temperature":"23","winddirection":"东","windpower":"≤3","humidity":"60"}]}`
	})
	h := newHarness(t, Deps{Weather: amap.New(srv.URL, "k", time.Second, noSleep())}, Options{})

	got := h.bot.Weather(context.Background(), "")
	want := "今日上海天气：晴 23°C，东风≤3级 湿度60%，最高26°C/最低18°C（白天晴/夜间多云）"
	if got != want {
		t.Fatalf("weather=%q\nwant    %q", got, want)
	}
}

func TestWeather_FallbackCachedWithWeatherTTL(t *testing.T) {
	srv := newStub(t, http.StatusInternalServerError, func(r *http.Request) string { return `{}` })
	h := newHarness(t, Deps{Weather: amap.New(srv.URL, "k", time.Second, noSleep())}, Options{City: "杭州"})
	ctx := context.Background()

	first := h.bot.Weather(ctx, "")
	if !strings.HasPrefix(first, "今日杭州天气：") {
		t.Fatalf("fallback=%q", first)
	}
	callsAfterFirst := srv.calls.Load()
	if callsAfterFirst == 0 {
		t.Fatalf("primary never called")
	}

	h.clock.Advance(30 * time.Minute)
	if second := h.bot.Weather(ctx, ""); second != first {
		t.Fatalf("second=%q want cached %q", second, first)
	}
	if srv.calls.Load() != callsAfterFirst {
		t.Fatalf("cache hit still called remote")
	}

	h.clock.Advance(31 * time.Minute)
	_ = h.bot.Weather(ctx, "")
	if srv.calls.Load() == callsAfterFirst {
		t.Fatalf("expired weather entry should refetch")
	}
}

func TestWeather_NoKeyNeverCallsRemote(t *testing.T) {
	srv := newStub(t, http.StatusOK, func(r *http.Request) string { return `{}` })
	h := newHarness(t, Deps{Weather: amap.New(srv.URL, "", time.Second, noSleep())}, Options{})

	got := h.bot.Weather(context.Background(), "")
	if got != "今日上海天气：晴天 25°C，阳光明媚" {
		t.Fatalf("got=%q", got)
	}
	if srv.calls.Load() != 0 {
		t.Fatalf("remote called without key")
	}
}

func TestComposeWeather(t *testing.T) {
	if s, err := composeWeather("a", "b"); err != nil || s != "a，b" {
		t.Fatalf("both: %q %v", s, err)
	}
	if s, _ := composeWeather("a", ""); s != "a" {
		t.Fatalf("live only: %q", s)
	}
	if s, _ := composeWeather("", "b"); s != "b" {
		t.Fatalf("forecast only: %q", s)
	}
	if _, err := composeWeather("", ""); !errors.Is(err, errNoWeather) {
		t.Fatalf("none: err=%v", err)
	}
}

const lunarBody = `{"code":200,"msg":"success","result":{
	"gregoriandate":"2024-02-19","lunardate":"2024-01-10","lunarday":"初十",
	"fitness":"祭祀.祈福","taboo":"动土","chongsha":"冲猴(壬申)煞北",
	"tiangandizhiyear":"甲辰","shengxiao":"龙","jieqi":"雨水"}}`

func TestAlmanac_NoKeyFallback(t *testing.T) {
	h := newHarness(t, Deps{Almanac: tianapi.New("http://127.0.0.1:1", "", time.Second, noSleep())}, Options{})

	rec := h.bot.Almanac(context.Background())
	if !rec.Fallback || rec.Fortune.Fitness == "" || rec.Fortune.Taboo == "" {
		t.Fatalf("rec=%+v", rec)
	}
	if rec.Date.GregorianDate != "2026-10-16" {
		t.Fatalf("date=%q", rec.Date.GregorianDate)
	}

	h.clock.Advance(11 * time.Hour)
	var cached AlmanacRecord
	if !h.store.Get(context.Background(), cache.Key("almanac", "2026-10-16"), &cached) {
		t.Fatalf("fallback should live for the fortune ttl")
	}
}

func TestAlmanac_FromStub(t *testing.T) {
	srv := newStub(t, http.StatusOK, func(r *http.Request) string { return lunarBody })
	h := newHarness(t, Deps{Almanac: tianapi.New(srv.URL, "k", time.Second, noSleep())}, Options{})
	ctx := context.Background()

	rec := h.bot.Almanac(ctx)
	if rec.Fallback || rec.Date.LunarFormatted != "甲辰年正月初十" || rec.Fortune.Fitness != "祭祀.祈福" {
		t.Fatalf("rec=%+v", rec)
	}

	text := h.bot.AlmanacText(ctx)
	want := "🌝 农历：甲辰年正月初十\n✅ 宜：祭祀.祈福\n❌ 忌：动土\n⚡ 今日提醒：属猴的朋友今天要低调一些"
	if text != want {
		t.Fatalf("text=%q", text)
	}
	if srv.calls.Load() != 1 {
		t.Fatalf("text should reuse the cached record, calls=%d", srv.calls.Load())
	}
}

func TestAlmanac_APIErrorFallsBack(t *testing.T) {
	srv := newStub(t, http.StatusOK, func(r *http.Request) string { return `{"code":250,"msg":"数据返回为空"}` })
	h := newHarness(t, Deps{Almanac: tianapi.New(srv.URL, "k", time.Second, noSleep())}, Options{})

	text := h.bot.AlmanacText(context.Background())
	if text != almanacTextPool[0] {
		t.Fatalf("text=%q", text)
	}
	if srv.calls.Load() != 1 {
		t.Fatalf("api errors are not retried, calls=%d", srv.calls.Load())
	}
}

func TestConstellation_FromStub(t *testing.T) {
	srv := newStub(t, http.StatusOK, func(r *http.Request) string {
		if r.URL.Query().Get("astro") != "leo" {
			t.Errorf("astro=%q", r.URL.Query().Get("astro"))
		}
		return `{"code":200,"msg":"success","result":{"list":[
			{"type":"综合指数","content":"85%"},{"type":"爱情指数","content":"70%"},
			{"type":"幸运颜色","content":"金色"},{"type":"今日概述","content":"状态在线"},
			{"type":"贵人星座","content":"白羊座"}]}}`
	})
	h := newHarness(t, Deps{Almanac: tianapi.New(srv.URL, "k", time.Second, noSleep())}, Options{})
	leo, _ := NormalizeSign("狮子座")

	hs := h.bot.Constellation(context.Background(), leo)
	if hs.Sign != "狮子座" || hs.Indices.Comprehensive != 85 || hs.Indices.Love != 70 || hs.Lucky.Color != "金色" {
		t.Fatalf("horoscope=%+v", hs)
	}
	text := h.bot.ConstellationText(context.Background(), leo)
	if !strings.Contains(text, "⭐ 狮子座今日运势") || !strings.Contains(text, "🌟 综合指数：85%") {
		t.Fatalf("text=%q", text)
	}
}

func TestConstellation_FallbackRanges(t *testing.T) {
	h := newHarness(t, Deps{Intn: func(n int) int { return n - 1 }}, Options{})
	aries, _ := NormalizeSign("Aries")

	hs := h.bot.Constellation(context.Background(), aries)
	if !hs.Fallback || hs.Sign != "白羊座" {
		t.Fatalf("hs=%+v", hs)
	}
	if hs.Indices.Comprehensive != 90 || hs.Indices.Money != 85 || hs.Indices.Health != 92 {
		t.Fatalf("indices=%+v", hs.Indices)
	}
}

type stubLLM struct {
	out string
	err error
}

func (s stubLLM) Name() string { return "stub" }
func (s stubLLM) Complete(ctx context.Context, req llm.Request) (string, error) {
	return s.out, s.err
}

func TestEncouragement(t *testing.T) {
	h := newHarness(t, Deps{LLM: stubLLM{out: "又是元气满满的周五"}}, Options{})
	if got := h.bot.Encouragement(context.Background(), "周五"); got != "又是元气满满的周五" {
		t.Fatalf("got=%q", got)
	}

	h = newHarness(t, Deps{LLM: stubLLM{err: errors.New("timeout")}}, Options{})
	if got := h.bot.Encouragement(context.Background(), "周一"); got != encouragementPool["周一"][0] {
		t.Fatalf("got=%q", got)
	}
	if got := h.bot.Encouragement(context.Background(), "周日"); got != defaultEncouragement[0] {
		t.Fatalf("got=%q", got)
	}
}

func TestLunch_WeatherKeywords(t *testing.T) {
	h := newHarness(t, Deps{}, Options{})
	cases := map[string]string{
		"今日上海天气：晴 25°C":  lunchPools[0].items[0],
		"今日上海天气：小雨 18°C": lunchPools[1].items[0],
		"今日上海天气：多云":      lunchPools[2].items[0],
		"今日上海天气：大风":      lunchPools[3].items[0],
		"今日上海天气：雾":       lunchDefault[0],
	}
	for weather, want := range cases {
		if got := h.bot.Lunch(context.Background(), weather); got != want {
			t.Fatalf("%s: got=%q want %q", weather, got, want)
		}
	}
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (f *fakeNotifier) Configured() bool { return true }
func (f *fakeNotifier) Deliver(ctx context.Context, text string) notify.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	if f.fail {
		return notify.Result{Content: text, Err: errors.New("errcode 93000")}
	}
	return notify.Result{Sent: true, Content: text}
}

func TestDailyMessage_Workday(t *testing.T) {
	h := newHarness(t, Deps{}, Options{FortuneLinkURL: "https://bot.example.com", SkipWeekends: true})

	msg, ok := h.bot.DailyMessage(context.Background())
	if !ok {
		t.Fatalf("friday should produce a message")
	}
	for _, part := range []string{
		"💼 " + encouragementPool["周五"][0],
		`<a href="https://bot.example.com">查看详情</a>`,
		"🌤️ 今日上海天气：晴天 25°C，阳光明媚",
		"🍽️ 午餐推荐：" + lunchPools[0].items[0],
		closingLine,
	} {
		if !strings.Contains(msg, part) {
			t.Fatalf("message missing %q:\n%s", part, msg)
		}
	}
}

func TestDailyMessage_WeekendSkipped(t *testing.T) {
	n := &fakeNotifier{}
	h := newHarness(t, Deps{Notifier: n}, Options{SkipWeekends: true})
	h.clock.Advance(24 * time.Hour)

	if msg, ok := h.bot.DailyMessage(context.Background()); ok || msg != "" {
		t.Fatalf("saturday: msg=%q ok=%v", msg, ok)
	}
	out := h.bot.RunDaily(context.Background())
	if !out.Skipped || len(n.sent) != 0 {
		t.Fatalf("out=%+v sent=%d", out, len(n.sent))
	}
	recs, _ := h.repo.ListDeliveries(context.Background(), repository.ListDeliveriesParams{})
	if len(recs) != 1 || recs[0].Status != models.DeliveryStatusSkipped {
		t.Fatalf("recs=%+v", recs)
	}
}

func TestSend_RecordsDelivery(t *testing.T) {
	n := &fakeNotifier{}
	h := newHarness(t, Deps{Notifier: n}, Options{SkipWeekends: true})
	ctx := context.Background()

	if !h.bot.Send(ctx, "hello") {
		t.Fatalf("send failed")
	}
	if !h.bot.SendDaily(ctx) {
		t.Fatalf("daily send failed")
	}
	n.fail = true
	if h.bot.Send(ctx, "again") {
		t.Fatalf("failed delivery reported success")
	}

	recs, _ := h.bot.History(ctx, repository.ListDeliveriesParams{})
	if len(recs) != 3 {
		t.Fatalf("records=%d want 3", len(recs))
	}
	var failed int
	for _, r := range recs {
		if r.Status == models.DeliveryStatusFailed {
			failed++
			if r.Error == "" {
				t.Fatalf("failed record without error")
			}
		}
	}
	if failed != 1 {
		t.Fatalf("failed=%d want 1", failed)
	}
}

func TestSend_NoNotifier(t *testing.T) {
	h := newHarness(t, Deps{}, Options{})
	res := h.bot.Deliver(context.Background(), KindManual, "x")
	if res.Sent || !errors.Is(res.Err, notify.ErrNoWebhook) {
		t.Fatalf("res=%+v", res)
	}
}

func TestStatus(t *testing.T) {
	h := newHarness(t, Deps{
		Weather: amap.New("", "wk", time.Second, noSleep()),
		Almanac: tianapi.New("", "", time.Second, noSleep()),
		LLM:     stubLLM{},
	}, Options{City: "北京"})
	s := h.bot.Status()
	if !s.Weather || s.TianAPI || s.Webhook || s.LLM != "stub" || s.City != "北京" {
		t.Fatalf("status=%+v", s)
	}
}
