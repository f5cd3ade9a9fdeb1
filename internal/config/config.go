package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment represents the running environment of the application
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// Config holds all configuration for the application
type Config struct {
	// Environment is the current running environment (development, production, test)
	Environment Environment

	// Port the HTTP server listens on
	Port string

	// LLM configuration. Provider selects the completion backend:
	// "azure" uses the Azure OpenAI SDK, anything else is treated as an
	// OpenAI-compatible HTTP endpoint (openai, deepseek, self-hosted).
	LLMProvider string
	LLMAPIBase  string // chat-completions endpoint URL for HTTP providers
	LLMAPIKey   string
	LLMModel    string

	// Azure OpenAI configuration, required when LLMProvider is "azure"
	AzureOpenAIKey        string
	AzureOpenAIEndpoint   string
	AzureOpenAIDeployment string

	// S3 configuration for the personal access token store. Optional:
	// when TokenBucketName is empty the in-memory store is used.
	TokenBucketName string
	TokenEncryptKey string // base64-encoded 32-byte AES key

	// Service credentials for headless entrypoints (MCP server)
	DefaultJiraURL   string
	DefaultJiraToken string

	// Log level
	LogLevel string
}

var (
	// instance holds the singleton config instance
	instance *Config
)

// Get returns the singleton config instance
func Get() *Config {
	if instance == nil {
		panic("config not initialized")
	}
	return instance
}

// Load creates a new Config instance from environment variables. A .env
// file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment: Environment(getEnvOrDefault("APP_ENV", string(Development))),
		Port:        getEnvOrDefault("PORT", "8080"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),

		LLMProvider: getEnvOrDefault("LLM_PROVIDER", "deepseek"),
		LLMAPIBase:  getEnvOrDefault("LLM_API_URL", "https://api.deepseek.com/v1/chat/completions"),
		LLMModel:    getEnvOrDefault("LLM_MODEL", "deepseek-chat"),

		AzureOpenAIKey:        os.Getenv("AZURE_OPENAI_KEY"),
		AzureOpenAIEndpoint:   os.Getenv("AZURE_OPENAI_ENDPOINT"),
		AzureOpenAIDeployment: os.Getenv("AZURE_OPENAI_DEPLOYMENT"),

		TokenBucketName: os.Getenv("TOKEN_BUCKET_NAME"),
		TokenEncryptKey: os.Getenv("TOKEN_ENCRYPT_KEY"),

		DefaultJiraURL:   os.Getenv("DEFAULT_JIRA_URL"),
		DefaultJiraToken: os.Getenv("DEFAULT_JIRA_TOKEN"),
	}

	// The API key may arrive under several names depending on the provider
	cfg.LLMAPIKey = firstNonEmpty(
		os.Getenv("LLM_API_KEY"),
		os.Getenv("DEEPSEEK_API_KEY"),
		os.Getenv("OPENAI_API_KEY"),
	)

	var missingVars []string
	if cfg.LLMProvider == "azure" {
		requiredVars := map[string]string{
			"AZURE_OPENAI_KEY":        cfg.AzureOpenAIKey,
			"AZURE_OPENAI_ENDPOINT":   cfg.AzureOpenAIEndpoint,
			"AZURE_OPENAI_DEPLOYMENT": cfg.AzureOpenAIDeployment,
		}
		for env, val := range requiredVars {
			if val == "" {
				missingVars = append(missingVars, env)
			}
		}
	} else if cfg.LLMAPIKey == "" {
		missingVars = append(missingVars, "LLM_API_KEY")
	}

	if cfg.TokenBucketName != "" && cfg.TokenEncryptKey == "" {
		missingVars = append(missingVars, "TOKEN_ENCRYPT_KEY")
	}

	if len(missingVars) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	// Store the instance
	instance = cfg

	return cfg, nil
}

// getEnvOrDefault returns the value of the environment variable or a default value
func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
