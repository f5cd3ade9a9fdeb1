package main

import (
	"context"
	"encoding/base64"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/naveenreddy007/jira-llm-web/internal/config"
	"github.com/naveenreddy007/jira-llm-web/internal/logger"
	"github.com/naveenreddy007/jira-llm-web/internal/storage"
)

// newTokenStore picks S3-backed storage when a bucket is configured,
// otherwise the in-memory store.
func newTokenStore(ctx context.Context, cfg *config.Config) (storage.TokenStore, error) {
	if cfg.TokenBucketName == "" {
		logger.GetLogger().Info("no token bucket configured, using in-memory token store")
		return storage.NewMemoryTokenStore(), nil
	}

	encryptKey, err := base64.StdEncoding.DecodeString(cfg.TokenEncryptKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode TOKEN_ENCRYPT_KEY: %w", err)
	}
	if len(encryptKey) != 32 {
		return nil, fmt.Errorf("TOKEN_ENCRYPT_KEY must decode to 32 bytes, got %d", len(encryptKey))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return storage.NewS3TokenStore(s3.NewFromConfig(awsCfg), cfg.TokenBucketName, encryptKey), nil
}
