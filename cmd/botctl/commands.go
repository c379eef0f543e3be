package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/DriftingBoats/wework-ark-bot/internal/auth"
	"github.com/DriftingBoats/wework-ark-bot/internal/cli/client"
	"github.com/DriftingBoats/wework-ark-bot/internal/cli/output"
)

type cliContext struct {
	Ctx     context.Context
	APIBase string
	Token   string
	Output  output.Format
	Stdout  io.Writer
}

func usage(w io.Writer) {
	fmt.Fprint(w, `botctl <command> [flags]

Global Flags:
  --api-base    bot API base URL (env: BOTCTL_API_BASE)
  --token       bearer token (env: BOTCTL_TOKEN)
  --output      text|json (default text)

Commands:
  preview                      render today's daily message without sending
  send-daily                   compose and send the daily message
  send --message <text>        send a custom message
  weather [--city <name>]      show the weather line
  fortune [--format text]      show today's almanac
  constellation --sign <sign>  show a horoscope
  history [--kind] [--status] [--limit]
                               list recorded deliveries
  token --secret <s> [--ttl]   mint a bearer token (env: BOT_AUTH_JWT_SECRET)
`)
}

func dispatch(app cliContext, args []string) error {
	if len(args) == 0 {
		usage(os.Stderr)
		return errors.New("missing command")
	}
	switch args[0] {
	case "preview":
		return app.call(http.MethodGet, "/api/message/preview-daily", nil)
	case "send-daily":
		return app.call(http.MethodPost, "/api/message/send-daily", nil)
	case "send":
		return sendCmd(app, args[1:])
	case "weather":
		return weatherCmd(app, args[1:])
	case "fortune":
		return fortuneCmd(app, args[1:])
	case "constellation":
		return constellationCmd(app, args[1:])
	case "history":
		return historyCmd(app, args[1:])
	case "token":
		return tokenCmd(app, args[1:])
	case "help", "-h", "--help":
		usage(app.Stdout)
		return nil
	default:
		usage(os.Stderr)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func (app cliContext) call(method, path string, body any) error {
	c := &client.Client{BaseURL: app.APIBase, Token: app.Token}
	resp, err := c.Call(app.Ctx, method, path, body)
	if err != nil {
		return err
	}
	if app.Output == output.FormatJSON {
		return output.Write(app.Stdout, app.Output, resp)
	}
	var data any
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			return err
		}
	}
	if data == nil {
		data = map[string]any{"message": resp.Message}
	}
	return output.Write(app.Stdout, app.Output, data)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("botctl "+name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func sendCmd(app cliContext, args []string) error {
	fs := newFlagSet("send")
	message := fs.String("message", "", "message text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*message) == "" {
		return errors.New("--message required")
	}
	return app.call(http.MethodPost, "/api/message/send", map[string]string{"message": *message})
}

func weatherCmd(app cliContext, args []string) error {
	fs := newFlagSet("weather")
	city := fs.String("city", "", "city name (default: server city)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path := "/api/weather"
	if c := strings.TrimSpace(*city); c != "" {
		path += "?city=" + url.QueryEscape(c)
	}
	return app.call(http.MethodGet, path, nil)
}

func fortuneCmd(app cliContext, args []string) error {
	fs := newFlagSet("fortune")
	format := fs.String("format", "text", "structured|text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return app.call(http.MethodGet, "/api/fortune?format="+url.QueryEscape(*format), nil)
}

func constellationCmd(app cliContext, args []string) error {
	fs := newFlagSet("constellation")
	sign := fs.String("sign", "", "sign, English or Chinese (leo, 狮子座)")
	format := fs.String("format", "text", "structured|text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*sign) == "" {
		return errors.New("--sign required")
	}
	q := url.Values{}
	q.Set("sign", strings.TrimSpace(*sign))
	q.Set("format", *format)
	return app.call(http.MethodGet, "/api/constellation?"+q.Encode(), nil)
}

func historyCmd(app cliContext, args []string) error {
	fs := newFlagSet("history")
	kind := fs.String("kind", "", "daily|manual|weather|fortune|lunch")
	status := fs.String("status", "", "sent|failed|skipped")
	limit := fs.Int("limit", 20, "max records")
	if err := fs.Parse(args); err != nil {
		return err
	}
	q := url.Values{}
	q.Set("limit", fmt.Sprint(*limit))
	if v := strings.TrimSpace(*kind); v != "" {
		q.Set("kind", v)
	}
	if v := strings.TrimSpace(*status); v != "" {
		q.Set("status", v)
	}
	return app.call(http.MethodGet, "/api/message/history?"+q.Encode(), nil)
}

func tokenCmd(app cliContext, args []string) error {
	fs := newFlagSet("token")
	secret := fs.String("secret", "", "shared jwt secret (env: BOT_AUTH_JWT_SECRET)")
	ttl := fs.Duration("ttl", auth.DefaultTTL, "token lifetime")
	role := fs.String("role", "operator", "role claim")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s := strings.TrimSpace(*secret)
	if s == "" {
		s = strings.TrimSpace(os.Getenv("BOT_AUTH_JWT_SECRET"))
	}
	if s == "" {
		return errors.New("--secret or BOT_AUTH_JWT_SECRET required")
	}
	tok, exp, err := auth.JWT{Secret: []byte(s), TokenTTL: *ttl}.Sign(auth.Claims{Role: *role})
	if err != nil {
		return err
	}
	if app.Output == output.FormatJSON {
		return output.Write(app.Stdout, app.Output, map[string]any{"token": tok, "expires_at": exp.Format(time.RFC3339)})
	}
	_, err = fmt.Fprintln(app.Stdout, tok)
	return err
}
