// cmd/bot/main.go
package main

import (
	"context"
	"creator-yield/internal/bot"
	"creator-yield/internal/config"
	"creator-yield/internal/counter"
	"creator-yield/internal/logging"
	"creator-yield/internal/storage"
	"creator-yield/internal/storage/memory"
	"creator-yield/internal/storage/postgres"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	cfg := config.MustLoad()
	logger := logging.New(cfg.Logging)

	if cfg.Telegram.Token == "" {
		logger.Error("TELEGRAM_BOT_TOKEN not set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store storage.Storage = memory.NewStorage()
	if !cfg.DB.InMemory() {
		pg, err := postgres.Connect(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Error("Failed to connect to DB", "error", err)
			os.Exit(1)
		}
		store = pg
	}
	defer store.Close()

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		logger.Error("Не удалось инициализировать Telegram бота", "error", err)
		os.Exit(1)
	}
	logger.Info("Bot started", "username", api.Self.UserName)

	responder := bot.NewResponder(counter.New(store))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			api.StopReceivingUpdates()
			logger.Info("Bot stopped")
			return
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			var fromID int64
			if update.Message.From != nil {
				fromID = update.Message.From.ID
			}
			logger.Info("📥 Получено сообщение", "user_id", fromID, "text", update.Message.Text)

			msg := tgbotapi.NewMessage(update.Message.Chat.ID, responder.Reply(ctx, update.Message.Text))
			msg.ParseMode = tgbotapi.ModeMarkdown
			if _, err := api.Send(msg); err != nil {
				logger.Warn("send failed", "chat_id", update.Message.Chat.ID, "error", err)
			}
		}
	}
}
