package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/naveenreddy007/jira-llm-web/internal/logger"
	"github.com/naveenreddy007/jira-llm-web/internal/service/llm"
	"go.uber.org/zap"
)

// FallbackJQL matches every ticket. It is the translator's substitute
// query when the completion call fails, so the pipeline can still show
// something downstream instead of failing outright.
const FallbackJQL = "project IS NOT EMPTY"

const translatePromptFormat = `Convert this natural language request to a valid Jira JQL query:
REQUEST: %s

A reminder about JQL:
- Use AND, OR, NOT for logical operators
- For string fields, use = "Value" (with quotes)
- For dates, use operators like >=, <=, =
- Common fields: project, status, priority, assignee, reporter, created, updated
- For in-progress tickets: status = "In Progress"
- For high priority: priority = "High" OR priority = "Highest"

Respond ONLY with the valid JQL query, nothing else.`

// Translator turns a free-text request into a JQL string
type Translator struct {
	llm llm.CompletionService
}

// NewTranslator creates a translator over the given completion service
func NewTranslator(svc llm.CompletionService) *Translator {
	return &Translator{llm: svc}
}

// Translate converts the request to JQL. The returned query is always
// non-empty: when the completion call fails (or yields nothing usable)
// the fallback match-all query is returned together with the underlying
// error, so the caller can record the degradation without blocking the
// pipeline on it.
func (t *Translator) Translate(ctx context.Context, request string) (string, error) {
	prompt := fmt.Sprintf(translatePromptFormat, request)

	completion, err := t.llm.Complete(ctx, prompt)
	if err != nil {
		logger.GetLogger().Error("failed to generate JQL query", zap.Error(err))
		return FallbackJQL, err
	}

	jql := strings.TrimSpace(completion)
	if jql == "" {
		logger.GetLogger().Warn("JQL translation returned empty query, using fallback")
		return FallbackJQL, fmt.Errorf("translation returned an empty query")
	}

	logger.GetLogger().Debug("generated JQL query", zap.String("jql", jql))
	return jql, nil
}
