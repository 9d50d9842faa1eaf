package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/vbonduro/showmyfood/internal/advice"
	"github.com/vbonduro/showmyfood/internal/analyzer"
	"github.com/vbonduro/showmyfood/internal/bot"
	"github.com/vbonduro/showmyfood/internal/config"
	"github.com/vbonduro/showmyfood/internal/db"
	"github.com/vbonduro/showmyfood/internal/facts"
	"github.com/vbonduro/showmyfood/internal/logging"
	"github.com/vbonduro/showmyfood/internal/nutrition"
	"github.com/vbonduro/showmyfood/internal/render"
	"github.com/vbonduro/showmyfood/internal/session"
	"github.com/vbonduro/showmyfood/internal/store"
	"github.com/vbonduro/showmyfood/internal/vision"
	claudevision "github.com/vbonduro/showmyfood/internal/vision/claude"
	ollamavision "github.com/vbonduro/showmyfood/internal/vision/ollama"
	openaivision "github.com/vbonduro/showmyfood/internal/vision/openai"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// The catalog is loaded once at startup; the database is not touched
	// again while the bot runs.
	nutritionTable, err := store.NewNutritionStore(database).LoadTable(ctx)
	if err != nil {
		logger.Error("failed to load nutrition catalog", "error", err)
		return
	}
	factTable, err := store.NewFactStore(database).LoadTable(ctx)
	if err != nil {
		logger.Error("failed to load fact catalog", "error", err)
		return
	}
	quotes, err := store.NewQuoteStore(database).LoadQuotes(ctx)
	if err != nil {
		logger.Error("failed to load quotes", "error", err)
		return
	}
	logger.Info("catalog loaded",
		"dishes", len(nutritionTable.Dishes),
		"fact_groups", len(factTable.Groups),
		"quotes", len(quotes))

	var generator facts.Generator
	if cfg.PerplexityKey != "" {
		logger.Info("external fact provider enabled", "model", cfg.PerplexityModel)
		generator = facts.NewPerplexityGenerator(cfg.PerplexityKey, cfg.PerplexityModel)
	}

	renderer, err := render.NewCardRenderer()
	if err != nil {
		logger.Error("failed to initialize card renderer", "error", err)
		return
	}

	sessions := session.NewStore(cfg.SessionTimeout, logger)
	go sessions.Run(ctx, cfg.SweepInterval)

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		logger.Error("failed to connect to telegram", "error", err)
		return
	}
	logger.Info("authorized on telegram", "username", api.Self.UserName)

	b := bot.New(bot.Deps{
		API:      api,
		Sessions: sessions,
		Analyzer: analyzer.New(
			nutrition.New(nutritionTable),
			facts.NewAggregator(factTable, generator, logger),
			newClassifier(cfg, logger),
			logger,
		),
		Renderer: renderer,
		Advice:   advice.New(quotes),
		Logger:   logger,
	})

	u := tgbotapi.NewUpdate(0)
	u.Timeout = bot.PollTimeoutSeconds
	updates := api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		api.StopReceivingUpdates()
	}()

	logger.Info("bot started")
	b.Run(ctx, updates)
	logger.Info("bot stopped")
}

func newClassifier(cfg *config.Config, logger *slog.Logger) vision.Classifier {
	switch cfg.VisionBackend {
	case "openai":
		logger.Info("using OpenAI vision backend", "model", cfg.OpenAIModel)
		return openaivision.NewClassifier(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	case "claude":
		logger.Info("using Claude vision backend", "model", cfg.ClaudeModel)
		return claudevision.NewClassifier(cfg.ClaudeAPIKey, cfg.ClaudeModel)
	case "ollama":
		logger.Info("using Ollama vision backend", "model", cfg.OllamaModel)
		return ollamavision.NewClassifier(cfg.OllamaHost, cfg.OllamaModel)
	default:
		logger.Info("using stub vision backend")
		return vision.NewStubClassifier()
	}
}
