package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/DriftingBoats/wework-ark-bot/internal/retry"
)

var ErrNoWebhook = errors.New("webhook url not configured")

// WeWorkSender posts text messages to a WeWork group robot webhook.
type WeWorkSender struct {
	URL   string
	HTTP  *http.Client
	Retry retry.Policy
}

type weworkText struct {
	Content string `json:"content"`
}

type weworkPayload struct {
	MsgType string     `json:"msgtype"`
	Text    weworkText `json:"text"`
}

type weworkResponse struct {
	ErrCode *int   `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// RejectedError is returned when the robot answers 2xx with a non-zero errcode.
type RejectedError struct {
	ErrCode int
	ErrMsg  string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("wework rejected message: errcode=%d errmsg=%s", e.ErrCode, e.ErrMsg)
}

type httpError struct {
	StatusCode int
}

func (e *httpError) Error() string {
	return "webhook http status " + http.StatusText(e.StatusCode)
}

func NewWeWorkSender(url string, timeout time.Duration, policy retry.Policy) *WeWorkSender {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WeWorkSender{
		URL:   strings.TrimSpace(url),
		HTTP:  &http.Client{Timeout: timeout},
		Retry: policy,
	}
}

func (s *WeWorkSender) Name() string { return "wework" }

func (s *WeWorkSender) Configured() bool {
	return s != nil && s.URL != ""
}

// Send delivers text as-is. Success requires HTTP 2xx and errcode 0.
func (s *WeWorkSender) Send(ctx context.Context, text string) error {
	if !s.Configured() {
		return ErrNoWebhook
	}
	b, err := json.Marshal(weworkPayload{MsgType: "text", Text: weworkText{Content: text}})
	if err != nil {
		return err
	}
	client := s.HTTP
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := retry.Do(ctx, s.Retry, func(ctx context.Context) (weworkResponse, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(b))
		if err != nil {
			return weworkResponse{}, err
		}
		req.Header.Set("Content-Type", "application/json")
		res, err := client.Do(req)
		if err != nil {
			return weworkResponse{}, err
		}
		defer func() { _ = res.Body.Close() }()
		body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
		if err != nil {
			return weworkResponse{}, err
		}
		if res.StatusCode < 200 || res.StatusCode >= 300 {
			return weworkResponse{}, &httpError{StatusCode: res.StatusCode}
		}
		var out weworkResponse
		if err := json.Unmarshal(body, &out); err != nil {
			return weworkResponse{}, fmt.Errorf("wework decode: %w", err)
		}
		return out, nil
	})
	if err != nil {
		return err
	}
	if resp.ErrCode == nil {
		return &RejectedError{ErrCode: -1, ErrMsg: "missing errcode"}
	}
	if *resp.ErrCode != 0 {
		return &RejectedError{ErrCode: *resp.ErrCode, ErrMsg: resp.ErrMsg}
	}
	return nil
}
