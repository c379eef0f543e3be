package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DriftingBoats/wework-ark-bot/internal/auth"
	"github.com/DriftingBoats/wework-ark-bot/internal/bot"
	"github.com/DriftingBoats/wework-ark-bot/internal/notify"
	"github.com/DriftingBoats/wework-ark-bot/internal/repository"
)

var cst = time.FixedZone("CST", 8*3600)

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) Configured() bool { return true }
func (f *fakeNotifier) Deliver(ctx context.Context, text string) notify.Result {
	f.sent = append(f.sent, text)
	if f.err != nil {
		return notify.Result{Content: text, Err: f.err}
	}
	return notify.Result{Sent: true, Content: text}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
}

type testServer struct {
	engine *gin.Engine
	notif  *fakeNotifier
}

func newTestServer(t *testing.T, now time.Time, jwt auth.JWT) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	n := &fakeNotifier{}
	b := bot.New(bot.Deps{
		Notifier:   n,
		Deliveries: repository.NewMemoryDeliveries(20),
		Now:        func() time.Time { return now },
		Intn:       func(int) int { return 0 },
	}, bot.Options{City: "上海", Location: cst, SkipWeekends: true})
	return &testServer{engine: NewRouter(RouterDeps{Bot: b, JWT: jwt}), notif: n}
}

func (s *testServer) do(t *testing.T, method, path, body string, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

// Friday 2026-10-16 09:30 CST.
var friday = time.Date(2026, 10, 16, 9, 30, 0, 0, cst)

func TestHealth(t *testing.T) {
	s := newTestServer(t, friday, auth.JWT{})
	w, env := s.do(t, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK || env.Code != 0 {
		t.Fatalf("status=%d env=%+v", w.Code, env)
	}
	if !strings.Contains(string(env.Data), `"webhook":"configured"`) || !strings.Contains(string(env.Data), `"weather_api":"not_configured"`) {
		t.Fatalf("data=%s", env.Data)
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Fatalf("request id header missing")
	}

	w, _ = s.do(t, http.MethodGet, "/readyz", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "disabled") {
		t.Fatalf("readyz=%d %s", w.Code, w.Body.String())
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t, friday, auth.JWT{})
	w, _ := s.do(t, http.MethodGet, "/healthz", "", RequestIDHeader, "abc-123")
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("request id=%q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, friday, auth.JWT{})
	w, _ := s.do(t, http.MethodOptions, "/api/message/send", "")
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("preflight=%d %v", w.Code, w.Header())
	}
}

func TestWeather(t *testing.T) {
	s := newTestServer(t, friday, auth.JWT{})
	_, env := s.do(t, http.MethodGet, "/api/weather?city=北京", "")
	var data struct {
		Weather string `json:"weather"`
		City    string `json:"city"`
	}
	_ = json.Unmarshal(env.Data, &data)
	if data.City != "北京" || !strings.HasPrefix(data.Weather, "今日北京天气：") {
		t.Fatalf("data=%+v", data)
	}

	_, env = s.do(t, http.MethodGet, "/api/weather/current", "")
	if !strings.Contains(string(env.Data), `"source":"fallback"`) {
		t.Fatalf("current=%s", env.Data)
	}

	w, _ := s.do(t, http.MethodGet, "/api/weather/forecast", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("forecast without key: status=%d", w.Code)
	}
}

func TestFortune(t *testing.T) {
	s := newTestServer(t, friday, auth.JWT{})
	_, env := s.do(t, http.MethodGet, "/api/fortune", "")
	var rec bot.AlmanacRecord
	if err := json.Unmarshal(env.Data, &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !rec.Fallback || rec.Fortune.Fitness == "" || rec.Date.GregorianDate != "2026-10-16" {
		t.Fatalf("rec=%+v", rec)
	}

	_, env = s.do(t, http.MethodGet, "/api/fortune?format=text", "")
	if !strings.Contains(string(env.Data), "fortune_text") {
		t.Fatalf("text=%s", env.Data)
	}

	w, _ := s.do(t, http.MethodGet, "/api/fortune?format=xml", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad format: status=%d", w.Code)
	}

	_, env = s.do(t, http.MethodGet, "/api/fortune/simple", "")
	if !strings.Contains(string(env.Data), `"fitness"`) || env.Meta["date"] != "2026-10-16" {
		t.Fatalf("simple=%s meta=%v", env.Data, env.Meta)
	}
}

func TestConstellation(t *testing.T) {
	s := newTestServer(t, friday, auth.JWT{})

	w, env := s.do(t, http.MethodGet, "/api/constellation", "")
	if w.Code != http.StatusBadRequest || env.Meta["available_signs"] == nil {
		t.Fatalf("missing sign: status=%d meta=%v", w.Code, env.Meta)
	}
	w, _ = s.do(t, http.MethodGet, "/api/constellation?sign=dragon", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad sign: status=%d", w.Code)
	}

	_, env = s.do(t, http.MethodGet, "/api/constellation?sign=Leo", "")
	var hs bot.Horoscope
	_ = json.Unmarshal(env.Data, &hs)
	if hs.Sign != "狮子座" || hs.Indices.Comprehensive < 60 || hs.Indices.Comprehensive > 90 {
		t.Fatalf("horoscope=%+v", hs)
	}

	_, env = s.do(t, http.MethodGet, "/api/constellation/list", "")
	if env.Meta["total"] != float64(12) {
		t.Fatalf("list meta=%v", env.Meta)
	}
}

func TestConstellationBatch(t *testing.T) {
	s := newTestServer(t, friday, auth.JWT{})

	_, env := s.do(t, http.MethodPost, "/api/constellation/batch", `{"signs":["白羊座","taurus"]}`)
	var out map[string]bot.Horoscope
	_ = json.Unmarshal(env.Data, &out)
	if len(out) != 2 || out["金牛座"].Astro != "taurus" {
		t.Fatalf("batch=%s", env.Data)
	}

	w, _ := s.do(t, http.MethodPost, "/api/constellation/batch", `{"signs":["白羊座","龙座"]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid sign: status=%d", w.Code)
	}
	w, _ = s.do(t, http.MethodPost, "/api/constellation/batch", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty: status=%d", w.Code)
	}
}

func TestSend(t *testing.T) {
	s := newTestServer(t, friday, auth.JWT{})

	w, _ := s.do(t, http.MethodPost, "/api/message/send", `{"message":""}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty message: status=%d", w.Code)
	}

	w, env := s.do(t, http.MethodPost, "/api/message/send", `{"message":"hello"}`)
	if w.Code != http.StatusOK || len(s.notif.sent) != 1 || s.notif.sent[0] != "hello" {
		t.Fatalf("send: status=%d env=%+v sent=%v", w.Code, env, s.notif.sent)
	}

	s.notif.err = errors.New("errcode 93000")
	w, env = s.do(t, http.MethodPost, "/api/message/send", `{"message":"again"}`)
	if w.Code != http.StatusInternalServerError || !strings.Contains(env.Message, "93000") {
		t.Fatalf("failed send: status=%d env=%+v", w.Code, env)
	}

	_, env = s.do(t, http.MethodGet, "/api/message/history?status=failed", "")
	if env.Meta["count"] != float64(1) {
		t.Fatalf("history meta=%v", env.Meta)
	}
}

func TestSendDaily_WeekendSkipped(t *testing.T) {
	s := newTestServer(t, friday.Add(24*time.Hour), auth.JWT{})
	w, env := s.do(t, http.MethodPost, "/api/message/send-daily", "")
	if w.Code != http.StatusOK || !strings.Contains(string(env.Data), `"skipped":true`) {
		t.Fatalf("status=%d data=%s", w.Code, env.Data)
	}
	if len(s.notif.sent) != 0 {
		t.Fatalf("weekend send reached the webhook")
	}
}

func TestSendDaily_Workday(t *testing.T) {
	s := newTestServer(t, friday, auth.JWT{})
	w, _ := s.do(t, http.MethodPost, "/api/message/send-daily", "")
	if w.Code != http.StatusOK || len(s.notif.sent) != 1 || !strings.Contains(s.notif.sent[0], "午餐推荐") {
		t.Fatalf("status=%d sent=%v", w.Code, s.notif.sent)
	}

	w, env := s.do(t, http.MethodGet, "/api/message/preview-daily", "")
	if w.Code != http.StatusOK || !strings.Contains(string(env.Data), "message_content") {
		t.Fatalf("preview=%s", env.Data)
	}
	if len(s.notif.sent) != 1 {
		t.Fatalf("preview must not send")
	}
}

func TestSendRequiresTokenWhenConfigured(t *testing.T) {
	j := auth.JWT{Secret: []byte("s3cret")}
	s := newTestServer(t, friday, j)

	w, _ := s.do(t, http.MethodPost, "/api/message/send-weather", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status=%d", w.Code)
	}
	tok, _, err := j.Sign(auth.Claims{Role: "operator"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	w, env := s.do(t, http.MethodPost, "/api/message/send-weather", "", "Authorization", "Bearer "+tok)
	if w.Code != http.StatusOK || !strings.Contains(string(env.Data), "weather_info") {
		t.Fatalf("with token: status=%d env=%+v", w.Code, env)
	}

	w, _ = s.do(t, http.MethodGet, "/api/message/templates", "")
	if w.Code != http.StatusOK {
		t.Fatalf("read endpoints stay open: status=%d", w.Code)
	}
}

func TestInfo(t *testing.T) {
	s := newTestServer(t, friday, auth.JWT{})
	_, env := s.do(t, http.MethodGet, "/api/endpoints", "")
	if env.Meta["total"] != float64(len(endpoints)) {
		t.Fatalf("meta=%v", env.Meta)
	}
	_, env = s.do(t, http.MethodGet, "/api/version", "")
	if !strings.Contains(string(env.Data), Version) {
		t.Fatalf("version=%s", env.Data)
	}
}
