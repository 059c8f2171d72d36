package alert

//go:generate mockgen -source=telegram.go -destination=../mocks/alerter.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
	"go.uber.org/zap"

	"github.com/toannghia/vietlott-ai-analyzer/internal/logger"
)

// Alerter delivers operational alerts. Implementations must be safe to
// call with missing credentials; an unconfigured alerter is a no-op.
type Alerter interface {
	Send(ctx context.Context, message string)
}

// TelegramAlerter sends alerts to a Telegram chat
type TelegramAlerter struct {
	bot    *telego.Bot
	chatID int64
}

// NewTelegramAlerter builds an alerter for the given bot credentials.
// Empty credentials produce a disabled alerter rather than an error, so
// callers never have to branch on configuration.
func NewTelegramAlerter(botToken string, chatID int64) (*TelegramAlerter, error) {
	if botToken == "" || chatID == 0 {
		return &TelegramAlerter{}, nil
	}

	bot, err := telego.NewBot(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &TelegramAlerter{bot: bot, chatID: chatID}, nil
}

// Enabled reports whether alerts will actually be delivered
func (a *TelegramAlerter) Enabled() bool {
	return a.bot != nil
}

// Send delivers a message to the configured chat. Delivery failures are
// logged and swallowed; an alert must never fail the cycle it reports on.
func (a *TelegramAlerter) Send(ctx context.Context, message string) {
	if a.bot == nil {
		return
	}

	_, err := a.bot.SendMessage(ctx, tu.Message(tu.ID(a.chatID), message))
	if err != nil {
		logger.WarnCtx(ctx, "failed to send telegram alert", zap.Error(err))
	}
}
