package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"nlu-router/config"
	_ "nlu-router/docs" // Swagger docs
	"nlu-router/internal/bootstrap"
	"nlu-router/internal/dialog"
	tgDelivery "nlu-router/internal/dialog/delivery/telegram"
	"nlu-router/internal/httpserver"
	"nlu-router/internal/middleware"
	recognizerHTTP "nlu-router/internal/recognizer/delivery/http"
	"nlu-router/internal/recognizer/usecase"
	"nlu-router/internal/routing"
	"nlu-router/pkg/telegram"
)

// @title       NLU Router API
// @description Intent recognition with per-conversation context and dialog routing.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := bootstrap.Logger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting NLU Router...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Engine: %s, context store: %s", cfg.Engine.Kind, cfg.ContextStore.Driver)

	// 3. Recognition engine
	eng, err := bootstrap.NewEngine(cfg, logger)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize engine: %v", err)
		return
	}
	if cfg.Engine.ModelPath != "" {
		if err := eng.Model.Load(ctx, cfg.Engine.ModelPath); err != nil {
			logger.Warnf(ctx, "Model not loaded from %s, every turn will be unrecognized: %v", cfg.Engine.ModelPath, err)
		} else {
			logger.Infof(ctx, "Model loaded from %s", cfg.Engine.ModelPath)
		}
	}

	// 4. Context store
	repo, err := bootstrap.NewContextStore(ctx, cfg, logger)
	if err != nil {
		logger.Errorf(ctx, "Failed to open context store: %v", err)
		return
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Warnf(ctx, "Failed to close context store: %v", err)
		}
	}()

	// 5. Recognizer
	recognizerUC, err := usecase.New(eng.Guard, repo, logger, cfg.Recognizer.Threshold)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize recognizer: %v", err)
		return
	}

	// 6. Telegram chat host (optional)
	var telegramHandler tgDelivery.Handler
	if cfg.Telegram.BotToken != "" {
		telegramBot := telegram.NewBot(cfg.Telegram.BotToken)

		host, err := dialog.New(tgDelivery.NewSender(telegramBot), logger, dialog.Options{
			StateTTL:  cfg.Dialog.StateTTL,
			StateSize: cfg.Dialog.StateSize,
		})
		if err != nil {
			logger.Errorf(ctx, "Failed to initialize dialog host: %v", err)
			return
		}
		if err := registerDialogs(host); err != nil {
			logger.Errorf(ctx, "Failed to register dialogs: %v", err)
			return
		}
		routing.New(recognizerUC, routing.Hooks{}, logger).
			SetRouting(host, cfg.Recognizer.Routing.Activate, cfg.Recognizer.Routing.Threshold)

		telegramHandler = tgDelivery.New(logger, host, telegramBot)

		if cfg.Telegram.WebhookURL != "" {
			if whErr := telegramBot.SetWebhook(ctx, cfg.Telegram.WebhookURL, cfg.Telegram.SecretToken); whErr != nil {
				logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
			} else {
				logger.Infof(ctx, "Telegram webhook registered at %s", cfg.Telegram.WebhookURL)
			}
		}
	} else {
		logger.Warn(ctx, "Telegram skipped: TELEGRAM_BOT_TOKEN is missing")
	}

	// 7. HTTP Server
	mw := middleware.New(logger, middleware.Config{
		SecretToken:     cfg.Telegram.SecretToken,
		AllowedIPs:      cfg.Webhook.AllowedIPs,
		RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
		AdminToken:      cfg.HTTPServer.AdminToken,
	})
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:            logger,
		Port:              cfg.HTTPServer.Port,
		Mode:              cfg.HTTPServer.Mode,
		Environment:       cfg.Environment.Name,
		Middleware:        mw,
		TelegramHandler:   telegramHandler,
		RecognizerHandler: recognizerHTTP.New(logger, recognizerUC, repo),
		Checkers:          map[string]httpserver.Checker{"context_store": repo},
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
