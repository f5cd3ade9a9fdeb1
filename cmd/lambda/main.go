package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/naveenreddy007/jira-llm-web/internal/config"
	"github.com/naveenreddy007/jira-llm-web/internal/handler"
	"github.com/naveenreddy007/jira-llm-web/internal/logger"
	"github.com/naveenreddy007/jira-llm-web/internal/service/jira"
	"github.com/naveenreddy007/jira-llm-web/internal/service/llm"
	"go.uber.org/zap"
)

var ginLambda *ginadapter.GinLambda

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	llmClient, err := llm.NewFromConfig(cfg)
	if err != nil {
		logger.GetLogger().Warn("LLM service unavailable, LLM features disabled", zap.Error(err))
		llmClient = nil
	}

	tokenStore, err := newTokenStore(context.Background(), cfg)
	if err != nil {
		logger.GetLogger().Fatal("failed to build token store", zap.Error(err))
	}

	h := handler.New(cfg, jira.NewClient(), llmClient, tokenStore)
	ginLambda = ginadapter.New(h.Router())
}

func handleRequest(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	defer logger.Sync()
	lambda.Start(handleRequest)
}
