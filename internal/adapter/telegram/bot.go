package telegram

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"deepseek-telegram-bot/internal/config"
)

type Bot struct {
	api        *tgbotapi.BotAPI
	dispatcher *Dispatcher
}

func NewBot(cfg config.Config, conv Conversations) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:        api,
		dispatcher: NewDispatcher(api, conv, cfg),
	}, nil
}

func (b *Bot) Run(ctx context.Context) error {
	if err := b.dispatcher.RegisterCommands(); err != nil {
		log.Printf("failed to set bot commands: %v", err)
	} else {
		log.Printf("bot commands set")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	log.Printf("bot started as @%s, polling for messages", b.api.Self.UserName)

	defer b.dispatcher.Wait()
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.dispatcher.Dispatch(ctx, update)
		}
	}
}
