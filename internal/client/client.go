// Package client holds the plumbing shared by the third-party data providers.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrMissingKey is returned when a provider is called without credentials.
var ErrMissingKey = errors.New("api key not configured")

// APIError reports an application-level failure embedded in an otherwise
// well-formed response. It is never retried.
type APIError struct {
	Provider string
	Code     string
	Message  string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("%s error (code: %s): %s", e.Provider, e.Code, e.Message)
}

// HTTPError captures a non-2xx response.
type HTTPError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s http %d: %s", e.Provider, e.StatusCode, e.Body)
}

const maxBody = 2 << 20

// GetJSON issues a GET to base+path with query and decodes the JSON body
// into dst. Transport errors are returned untouched so callers can classify
// them; decode failures and non-2xx statuses are not transient.
func GetJSON(ctx context.Context, hc *http.Client, provider, base, path string, query url.Values, dst any) error {
	u, err := BuildURL(base, path, query)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{Provider: provider, StatusCode: resp.StatusCode, Body: truncate(strings.TrimSpace(string(b)), 256)}
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("%s decode: %w", provider, err)
	}
	return nil
}

func BuildURL(base, path string, query url.Values) (string, error) {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return "", errors.New("base url is empty")
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

// FlexString decodes JSON strings and numbers alike. Upstream APIs are not
// consistent about quoting numeric fields.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == "" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = FlexString(v)
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		*f = FlexString(s)
		return nil
	}
	// arrays and objects (e.g. AMap's empty [] for missing fields) read as empty
	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		*f = ""
		return nil
	}
	*f = FlexString(s)
	return nil
}

func (f FlexString) String() string { return string(f) }

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
