package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"jobscout/internal/domain/digest"
)

// Telegram posts a compact digest message to a single chat. Telegram
// accepts only a small HTML subset, so the message is built here
// instead of reusing the email body.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram: bot token is required")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("telegram: chat id is required")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: init bot: %w", err)
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) Name() string {
	return "telegram"
}

func (t *Telegram) Send(_ context.Context, d digest.Digest) error {
	msg := tgbotapi.NewMessage(t.chatID, digestMessage(d))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram: sending digest: %w", err)
	}
	return nil
}

func digestMessage(d digest.Digest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", html.EscapeString(d.Subject()))

	if d.Empty() {
		b.WriteString("\nNo new positions this run.")
		return b.String()
	}

	for _, g := range d.Groups {
		fmt.Fprintf(&b, "\n<b>%s</b>\n", html.EscapeString(g.Company))
		for _, p := range g.Postings {
			fmt.Fprintf(&b, "• <a href=\"%s\">%s</a>", p.URL, html.EscapeString(p.Title))
			if p.Location != "" {
				fmt.Fprintf(&b, " (%s)", html.EscapeString(p.Location))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

var _ Notifier = (*Telegram)(nil)
