package llm

import (
	"context"
	"fmt"

	"github.com/naveenreddy007/jira-llm-web/internal/config"
)

// CompletionService is the single round-trip contract every LLM-backed
// component depends on. Implementations return a *CompletionError for
// any transport, status or parse failure.
type CompletionService interface {
	Complete(ctx context.Context, prompt string, opts ...Option) (string, error)
}

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 1000
)

type completionOptions struct {
	systemPrompt string
	temperature  float64
	maxTokens    int
}

// Option customizes a single completion call
type Option func(*completionOptions)

// WithSystemPrompt adds a system-role message ahead of the user prompt
func WithSystemPrompt(prompt string) Option {
	return func(o *completionOptions) { o.systemPrompt = prompt }
}

// WithTemperature overrides the default sampling temperature (0.7)
func WithTemperature(t float64) Option {
	return func(o *completionOptions) { o.temperature = t }
}

// WithMaxTokens overrides the default completion budget (1000)
func WithMaxTokens(n int) Option {
	return func(o *completionOptions) { o.maxTokens = n }
}

func applyOptions(opts []Option) completionOptions {
	o := completionOptions{
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// CompletionError describes a failed completion round trip. Exactly one
// of StatusCode/Err is meaningful: StatusCode for a non-200 response
// (with a truncated body), Err for transport and parse failures.
type CompletionError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *CompletionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("completion request failed: %v", e.Err)
	}
	return fmt.Sprintf("completion API returned status %d: %s", e.StatusCode, e.Body)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

// NewFromConfig builds the completion service selected by configuration.
// "azure" uses the Azure OpenAI SDK; every other provider is assumed to
// speak the OpenAI-compatible chat-completions HTTP protocol.
func NewFromConfig(cfg *config.Config) (CompletionService, error) {
	switch cfg.LLMProvider {
	case "azure":
		return NewAzureClient(cfg.AzureOpenAIEndpoint, cfg.AzureOpenAIKey, cfg.AzureOpenAIDeployment)
	default:
		if cfg.LLMAPIBase == "" {
			return nil, fmt.Errorf("no API URL configured for LLM provider %q", cfg.LLMProvider)
		}
		return NewClient(cfg.LLMAPIBase, cfg.LLMAPIKey, cfg.LLMModel), nil
	}
}
