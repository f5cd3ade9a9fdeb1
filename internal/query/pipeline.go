package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/naveenreddy007/jira-llm-web/internal/logger"
	"github.com/naveenreddy007/jira-llm-web/internal/model"
	"github.com/naveenreddy007/jira-llm-web/internal/service/jira"
	"github.com/naveenreddy007/jira-llm-web/internal/service/llm"
	"go.uber.org/zap"
)

// TranslatorService turns free text into JQL; the query must be
// non-empty even on error (fallback query).
type TranslatorService interface {
	Translate(ctx context.Context, request string) (string, error)
}

// AnalyzerService turns tickets into a renderable analysis; the string
// must be renderable even on error (inline error block).
type AnalyzerService interface {
	Analyze(ctx context.Context, request string, tickets []model.Ticket, total int) (string, error)
}

// Searcher executes a JQL query. *jira.Client satisfies this.
type Searcher interface {
	Search(ctx context.Context, creds model.Credentials, jql string, maxResults int) (*jira.SearchResult, error)
}

// Pipeline runs a natural-language request end to end: translate to
// JQL, execute the search, analyze the results. The stages are strictly
// sequential; only a search failure terminates the run early.
type Pipeline struct {
	translator TranslatorService
	searcher   Searcher
	analyzer   AnalyzerService
	maxResults int
}

// NewPipeline wires explicitly supplied stages, mainly for tests
func NewPipeline(t TranslatorService, s Searcher, a AnalyzerService) *Pipeline {
	return &Pipeline{
		translator: t,
		searcher:   s,
		analyzer:   a,
		maxResults: jira.DefaultMaxResults,
	}
}

// NewDefaultPipeline wires the standard translator and analyzer over
// the given completion service and searcher.
func NewDefaultPipeline(svc llm.CompletionService, s Searcher) *Pipeline {
	return NewPipeline(NewTranslator(svc), s, NewAnalyzer(svc))
}

// Process handles one request/response cycle. The result always carries
// the JQL that was attempted, so a search failure stays diagnosable.
func (p *Pipeline) Process(ctx context.Context, creds model.Credentials, request string) *model.QueryResult {
	var warnings []string

	// Stage 1: translate. Never fails outright; a completion failure
	// degrades to the fallback query and is recorded as a warning.
	jql, terr := p.translator.Translate(ctx, request)
	if terr != nil {
		warnings = append(warnings, fmt.Sprintf("translation degraded to fallback query: %v", terr))
	}

	// Stage 2: execute. A failure here is terminal: there is no safe
	// substitute for ticket data, so analysis is skipped entirely.
	searchResult, err := p.searcher.Search(ctx, creds, jql, p.maxResults)
	if err != nil {
		logger.GetLogger().Error("query execution failed", zap.String("jql", jql), zap.Error(err))

		var qe *jira.QueryError
		if errors.As(err, &qe) && qe.Err == nil {
			return model.FailureResult(jql,
				fmt.Sprintf("Query failed with status %d", qe.StatusCode),
				qe.Body)
		}
		return model.FailureResult(jql, fmt.Sprintf("Error executing query: %v", err), "")
	}

	// Stage 3: analyze. Never fails outright; a completion failure
	// degrades to an inline error block.
	analysis, aerr := p.analyzer.Analyze(ctx, request, searchResult.Tickets, searchResult.Total)
	if aerr != nil {
		warnings = append(warnings, fmt.Sprintf("analysis degraded to error text: %v", aerr))
	}

	result := model.SuccessResult(jql, searchResult.Tickets, searchResult.Total, analysis)
	if len(warnings) > 0 {
		result.Degraded = true
		result.Warnings = warnings
	}
	return result
}
