// Package notify delivers chat messages to the WeWork group webhook and any
// configured mirror channels.
package notify

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const mirrorTimeout = 5 * time.Second

// Result describes one delivery. Content is the sanitized text that was sent.
type Result struct {
	Sent    bool
	Content string
	Err     error
	Mirrors map[string]string
}

type Notifier struct {
	primary   Sender
	mirrors   []Sender
	maxLength int
	logger    *zap.Logger
}

func NewNotifier(primary Sender, maxLength int, logger *zap.Logger, mirrors ...Sender) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	ms := make([]Sender, 0, len(mirrors))
	for _, m := range mirrors {
		if m != nil {
			ms = append(ms, m)
		}
	}
	return &Notifier{primary: primary, mirrors: ms, maxLength: maxLength, logger: logger}
}

// Deliver sanitizes text and posts it. Only the primary channel decides
// Sent; mirror failures are reported in Mirrors and logged.
func (n *Notifier) Deliver(ctx context.Context, text string) Result {
	res := Result{Content: Sanitize(text, n.maxLength)}
	if !configured(n.primary) {
		res.Err = ErrNoWebhook
		n.logger.Error("webhook url not configured")
		return res
	}
	if err := n.primary.Send(ctx, res.Content); err != nil {
		res.Err = err
		n.logger.Error("message send failed", zap.String("channel", n.primary.Name()), zap.Error(err))
		return res
	}
	res.Sent = true
	n.logger.Info("message sent", zap.String("channel", n.primary.Name()), zap.Int("runes", len([]rune(res.Content))))

	if len(n.mirrors) > 0 {
		res.Mirrors = make(map[string]string, len(n.mirrors))
	}
	for _, m := range n.mirrors {
		mctx, cancel := context.WithTimeout(ctx, mirrorTimeout)
		err := m.Send(mctx, res.Content)
		cancel()
		if err != nil {
			res.Mirrors[m.Name()] = err.Error()
			n.logger.Warn("mirror send failed", zap.String("channel", m.Name()), zap.Error(err))
			continue
		}
		res.Mirrors[m.Name()] = "ok"
	}
	return res
}

// Configured reports whether the primary channel can send.
func (n *Notifier) Configured() bool {
	return n != nil && configured(n.primary)
}

func configured(s Sender) bool {
	if s == nil {
		return false
	}
	if c, ok := s.(interface{ Configured() bool }); ok {
		return c.Configured()
	}
	return true
}

// Send reports whether the primary delivery succeeded.
func (n *Notifier) Send(ctx context.Context, text string) bool {
	return n.Deliver(ctx, text).Sent
}
