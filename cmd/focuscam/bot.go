package main

import (
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"focus-cam/internal/api/telegram"
)

// NewBotCmd запускает Telegram-бота проверки снимков.
func NewBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot that assesses and uploads photos",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.TelegramToken == "" {
				return errors.New("TELEGRAM_TOKEN is required")
			}

			a, err := buildApp(cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.close(); err != nil {
					log.Printf("Close error: %v", err)
				}
			}()

			bot, err := telegram.NewBot(cfg.TelegramToken, a.container.UserService, a.container.InspectionService)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log.Println("Bot is running...")
			return bot.Run(ctx)
		},
	}
}
