package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/DriftingBoats/wework-ark-bot/internal/cli/output"
)

func main() {
	var (
		apiBase = flag.String("api-base", "", "bot API base URL (env: BOTCTL_API_BASE, default http://localhost:5000)")
		token   = flag.String("token", "", "bearer token (env: BOTCTL_TOKEN)")
		outFmt  = flag.String("output", "text", "output format: text|json")
	)
	flag.Usage = func() { usage(os.Stderr) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage(os.Stderr)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cliContext{
		Ctx:     ctx,
		APIBase: firstNonEmpty(*apiBase, os.Getenv("BOTCTL_API_BASE"), "http://localhost:5000"),
		Token:   firstNonEmpty(*token, os.Getenv("BOTCTL_TOKEN")),
		Output:  output.Format(strings.TrimSpace(*outFmt)),
		Stdout:  os.Stdout,
	}
	if err := dispatch(app, args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
