package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// Notifier defines the interface for a Telegram notifier.
type Notifier interface {
	SendMessage(text string) error
}

// Config holds the bot credentials and the target chat.
type Config struct {
	BotToken string
	ChatID   int64
	// MessagesPerSecond paces sends to one chat. Zero means one per second.
	MessagesPerSecond float64
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// client is an implementation of Notifier.
type client struct {
	bot     sender
	chatID  int64
	limiter *rate.Limiter
}

// NewClient creates a new Telegram notifier client.
func NewClient(cfg Config) (Notifier, error) {
	if cfg.BotToken == "" {
		return nil, errors.New("telegram bot token is required")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return newClient(bot, cfg), nil
}

func newClient(bot sender, cfg Config) *client {
	perSecond := cfg.MessagesPerSecond
	if perSecond <= 0 {
		perSecond = 1
	}
	return &client{
		bot:     bot,
		chatID:  cfg.ChatID,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// SendMessage sends a Markdown message to the configured Telegram chat.
func (c *client) SendMessage(text string) error {
	if err := c.limiter.Wait(context.Background()); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}
