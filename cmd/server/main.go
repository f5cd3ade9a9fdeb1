package main

import (
	"context"
	"log"

	"github.com/naveenreddy007/jira-llm-web/internal/config"
	"github.com/naveenreddy007/jira-llm-web/internal/handler"
	"github.com/naveenreddy007/jira-llm-web/internal/logger"
	"github.com/naveenreddy007/jira-llm-web/internal/service/jira"
	"github.com/naveenreddy007/jira-llm-web/internal/service/llm"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	h, err := buildHandler(context.Background(), cfg)
	if err != nil {
		logger.GetLogger().Fatal("failed to build handler", zap.Error(err))
	}

	logger.GetLogger().Info("starting server", zap.String("port", cfg.Port))
	if err := h.Router().Run(":" + cfg.Port); err != nil {
		logger.GetLogger().Fatal("server error", zap.Error(err))
	}
}

func buildHandler(ctx context.Context, cfg *config.Config) (*handler.APIHandler, error) {
	jiraClient := jira.NewClient()

	// A missing or broken LLM configuration disables the LLM routes
	// but keeps the Jira browsing surface up.
	llmClient, err := llm.NewFromConfig(cfg)
	if err != nil {
		logger.GetLogger().Warn("LLM service unavailable, LLM features disabled", zap.Error(err))
		llmClient = nil
	}

	tokenStore, err := newTokenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return handler.New(cfg, jiraClient, llmClient, tokenStore), nil
}
