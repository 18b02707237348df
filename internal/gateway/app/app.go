package app

import (
	"context"
	"fmt"
	"time"

	"contextify/internal/conversation"
	"contextify/internal/gateway/config"
	"contextify/internal/gateway/handler"
	"contextify/internal/gateway/middleware"
	"contextify/internal/gateway/server"
	"contextify/internal/llm"
	"contextify/internal/transcribe"
)

const janitorInterval = 10 * time.Minute

type App struct {
	server *server.Server
	client llm.Client
	cancel context.CancelFunc
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	base, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize model client: %w", err)
	}
	client := llm.Wrap(base,
		llm.WithLogging(nil),
		llm.RateLimit(float64(cfg.LLMRPS), cfg.LLMBurst),
	)

	speech, err := transcribe.NewGemini(ctx, cfg.GeminiAPIKey, cfg.TranscribeModel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize transcriber: %w", err)
	}
	transcriber, err := transcribe.NewCache(speech, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize transcript cache: %w", err)
	}

	// Dependencies
	store := conversation.NewStore()
	appCtx, cancel := context.WithCancel(context.Background())
	store.StartJanitor(appCtx, janitorInterval, cfg.SessionIdleTTL)

	svc := conversation.NewService(store, client, transcriber)

	// Routing & Server
	h := handler.New(svc, cfg.MaxUploadBytes)
	limiter := middleware.NewRateLimiter(cfg.APIRateLimit, time.Minute)
	mux := server.NewMux(h, limiter)
	srv := server.New(cfg.Port, mux)

	return &App{
		server: srv,
		client: client,
		cancel: cancel,
	}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.cancel()
	err := a.server.Shutdown(ctx)
	if cerr := a.client.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
