package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"restaurant-till/config"
)

// Bot is the Telegram front-end for a Till.
type Bot struct {
	api  *tgbotapi.BotAPI
	till *Till
	log  *zap.Logger
}

func New(cfg *config.Config, till *Till, log *zap.Logger) (*Bot, error) {
	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("TOKEN not set")
	}
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	return &Bot{api: api, till: till, log: log}, nil
}

func (b *Bot) setBotCommands() error {
	cfg := tgbotapi.SetMyCommandsConfig{
		Commands: []tgbotapi.BotCommand{
			{Command: "start", Description: "Welcome and opening hours"},
			{Command: "menu", Description: "Show the menu"},
			{Command: "order", Description: "Add items to the order"},
			{Command: "cancel", Description: "Remove items from the order"},
			{Command: "total", Description: "Current order total"},
			{Command: "hours", Description: "Opening hours"},
		},
	}
	_, err := b.api.Request(cfg)
	return err
}

// Start long-polls for updates until ctx is done.
func (b *Bot) Start(ctx context.Context) {
	if err := b.setBotCommands(); err != nil {
		b.log.Warn("set bot commands", zap.Error(err))
	}
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	b.log.Info("bot started", zap.String("username", b.api.Self.UserName))
	for {
		select {
		case <-ctx.Done():
			b.log.Info("bot stopping")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	text := strings.TrimSpace(msg.Text)
	if !strings.HasPrefix(text, "/") {
		return
	}
	b.log.Debug("command", zap.Int64("user_id", msg.From.ID), zap.String("text", text))
	b.send(msg.Chat.ID, b.till.Handle(ctx, msg.Chat.ID, msg.From.ID, text))
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
