package query

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/naveenreddy007/jira-llm-web/internal/logger"
	"github.com/naveenreddy007/jira-llm-web/internal/model"
	"github.com/naveenreddy007/jira-llm-web/internal/service/llm"
	"go.uber.org/zap"
)

// maxTicketsForAnalysis bounds the prompt size: only the first N
// tickets of a result page are serialized for the model.
const maxTicketsForAnalysis = 15

const analyzePromptFormat = `Analyze these Jira tickets based on the natural language request: "%s"

Total matching tickets: %d
Tickets sample (showing %d of %d):
%s

Provide:
1. Summary of findings - What patterns do you see across these tickets?
2. Key insights - What's important to notice about these tickets?
3. Recommendations - What actions should be taken based on this data?

Format your response in HTML with appropriate headings (h3, h4) and paragraphs.`

// Analyzer turns a set of tickets plus the original request into a
// human-readable analysis.
type Analyzer struct {
	llm llm.CompletionService
}

// NewAnalyzer creates an analyzer over the given completion service
func NewAnalyzer(svc llm.CompletionService) *Analyzer {
	return &Analyzer{llm: svc}
}

// Analyze produces an HTML analysis of the tickets. The returned string
// is always renderable: when the completion call fails an inline error
// block is substituted and the underlying error is returned alongside
// it so the caller can record the degradation.
func (a *Analyzer) Analyze(ctx context.Context, request string, tickets []model.Ticket, total int) (string, error) {
	sample := tickets
	if len(sample) > maxTicketsForAnalysis {
		sample = sample[:maxTicketsForAnalysis]
	}

	serialized, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		// Tickets are plain data; this should not happen
		return analysisErrorHTML(err), err
	}

	prompt := fmt.Sprintf(analyzePromptFormat, request, total, len(sample), total, string(serialized))

	analysis, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		logger.GetLogger().Error("failed to generate analysis", zap.Error(err))
		return analysisErrorHTML(err), err
	}

	logger.GetLogger().Debug("generated analysis", zap.Int("length", len(analysis)))
	return analysis, nil
}

func analysisErrorHTML(err error) string {
	return fmt.Sprintf("<h3>Analysis Error</h3><p>Unable to generate analysis: %v</p>", err)
}
