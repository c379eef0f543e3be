package notify

import (
	"context"
	"errors"
	"strings"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
	"github.com/slack-go/slack"
)

// Sender is a single delivery channel.
type Sender interface {
	Name() string
	Send(ctx context.Context, text string) error
}

// SlackMirror copies messages to a Slack incoming webhook.
type SlackMirror struct {
	WebhookURL string
}

func (s SlackMirror) Name() string { return "slack" }

func (s SlackMirror) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(s.WebhookURL) == "" {
		return errors.New("slack webhook url missing")
	}
	return slack.PostWebhookContext(ctx, s.WebhookURL, &slack.WebhookMessage{Text: text})
}

// TelegramMirror copies messages to a Telegram chat through a bot.
type TelegramMirror struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramMirror(botToken string, chatID int64) (*TelegramMirror, error) {
	if strings.TrimSpace(botToken) == "" || chatID == 0 {
		return nil, errors.New("missing bot_token/chat_id")
	}
	bot, err := telego.NewBot(strings.TrimSpace(botToken), telego.WithDiscardLogger())
	if err != nil {
		return nil, err
	}
	return &TelegramMirror{bot: bot, chatID: chatID}, nil
}

func (t *TelegramMirror) Name() string { return "telegram" }

func (t *TelegramMirror) Send(ctx context.Context, text string) error {
	_, err := t.bot.SendMessage(ctx, tu.Message(tu.ID(t.chatID), text))
	return err
}
