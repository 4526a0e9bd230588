package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"deepseek-telegram-bot/internal/adapter/httpapi"
	"deepseek-telegram-bot/internal/adapter/memory"
	"deepseek-telegram-bot/internal/adapter/openai"
	"deepseek-telegram-bot/internal/adapter/telegram"
	"deepseek-telegram-bot/internal/config"
	"deepseek-telegram-bot/internal/usecase/chat"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if len(cfg.AuthorizedUserIDs) == 0 {
		log.Printf("AUTHORIZED_ACCOUNTS is empty, every user will be rejected")
	}

	client := openai.NewClient(cfg.DeepSeekKey, cfg.BaseURL)
	store := memory.NewStore()
	chatSvc := chat.NewService(store, client, cfg)

	bot, err := telegram.NewBot(cfg, chatSvc)
	if err != nil {
		log.Fatalf("failed to init telegram bot: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.HealthAddr != "" {
		health := httpapi.NewServer(cfg.HealthAddr, cfg.Model)
		go func() {
			if err := health.Run(ctx); err != nil {
				log.Printf("health endpoint stopped: %v", err)
			}
		}()
	}

	if err := bot.Run(ctx); err != nil {
		if ctx.Err() != nil {
			log.Printf("shutdown: %v", err)
			return
		}
		log.Fatalf("bot stopped with error: %v", err)
	}
}
