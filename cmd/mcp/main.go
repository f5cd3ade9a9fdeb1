package main

import (
	"fmt"
	"log"

	"github.com/naveenreddy007/jira-llm-web/internal/config"
	"github.com/naveenreddy007/jira-llm-web/internal/logger"
	"github.com/naveenreddy007/jira-llm-web/internal/model"
	"github.com/naveenreddy007/jira-llm-web/internal/query"
	"github.com/naveenreddy007/jira-llm-web/internal/service/jira"
	"github.com/naveenreddy007/jira-llm-web/internal/service/llm"
	mcpserver "github.com/naveenreddy007/jira-llm-web/internal/service/mcp-server"
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

	// The MCP server runs headless on service credentials
	if cfg.DefaultJiraURL == "" || cfg.DefaultJiraToken == "" {
		log.Fatal("DEFAULT_JIRA_URL and DEFAULT_JIRA_TOKEN are required for the MCP server")
	}
	creds := model.Credentials{
		BaseURL: cfg.DefaultJiraURL,
		Token:   cfg.DefaultJiraToken,
	}

	jiraClient := jira.NewClient()

	var pipeline *query.Pipeline
	llmClient, err := llm.NewFromConfig(cfg)
	if err != nil {
		logger.GetLogger().Warn("LLM service unavailable, jira_nl_query tool disabled", zap.Error(err))
	} else {
		pipeline = query.NewDefaultPipeline(llmClient, jiraClient)
	}

	server, err := mcpserver.NewServer(mcpserver.Deps{
		Jira:     jiraClient,
		Pipeline: pipeline,
		Creds:    creds,
	})
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	fmt.Println("Starting Jira LLM MCP server...")
	if err := mcpserver.Serve(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
