package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mimicry-labs/personad/internal/ai"
	"github.com/mimicry-labs/personad/internal/api"
	"github.com/mimicry-labs/personad/internal/config"
	"github.com/mimicry-labs/personad/internal/events"
	"github.com/mimicry-labs/personad/internal/kv"
	"github.com/mimicry-labs/personad/internal/service"
	"github.com/mimicry-labs/personad/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("personad starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Session storage: Postgres when configured, in-process otherwise.
	var backing kv.Store
	if cfg.DatabaseURL != "" {
		pg, err := kv.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		if err := pg.Migrate(ctx); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
		backing = pg
		slog.Info("database connected")
	} else {
		backing = kv.NewMemory()
		slog.Warn("no DATABASE_URL — sessions held in process memory")
	}
	sessions := session.NewStore(backing, cfg.SessionTTL)

	// Inference backend.
	var client ai.Client
	switch cfg.AIBackend {
	case "workers":
		if cfg.CFAccountID == "" || cfg.CFAPIToken == "" {
			slog.Error("CF_ACCOUNT_ID and CF_API_TOKEN are required for the workers backend")
			os.Exit(1)
		}
		client = ai.NewWorkersAI(cfg.CFAccountID, cfg.CFAPIToken)
		slog.Info("workers ai client ready", "model", cfg.Model)
	case "ollama":
		client = ai.NewOllama(cfg.OllamaHost)
		slog.Info("ollama client ready", "host", cfg.OllamaHost, "model", cfg.Model)
	default:
		slog.Error("unknown AI_BACKEND", "backend", cfg.AIBackend)
		os.Exit(1)
	}

	// Event publisher (optional — personad works without a broker).
	var publisher *events.Publisher
	if cfg.NatsURL != "" {
		var err error
		publisher, err = events.NewPublisher(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured — running without lifecycle events")
	}

	chat := service.New(sessions, client, publisher, cfg.Model, slog.Default())

	srv := api.NewServer(chat, slog.Default(), api.Options{
		Port:           cfg.Port,
		AllowedOrigins: cfg.AllowedOrigins,
		StrictCORS:     cfg.StrictCORS,
	})
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("personad ready", "port", cfg.Port, "ttl", cfg.SessionTTL)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("personad stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
