package query

import (
	"context"
	"errors"

	"github.com/naveenreddy007/jira-llm-web/internal/model"
	"github.com/naveenreddy007/jira-llm-web/internal/service/jira"
	"github.com/naveenreddy007/jira-llm-web/internal/service/llm"
)

// fakeCompletion is an in-process CompletionService recording every prompt
type fakeCompletion struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeCompletion) Complete(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// scriptedCompletion returns a fixed sequence of responses, one per call
type scriptedCompletion struct {
	responses []string
	calls     int
}

func (f *scriptedCompletion) Complete(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	if f.calls >= len(f.responses) {
		return "", errors.New("no scripted response left")
	}
	resp := f.responses[f.calls]
	f.calls++
	return resp, nil
}

type fakeTranslator struct {
	jql   string
	err   error
	calls int
}

func (f *fakeTranslator) Translate(context.Context, string) (string, error) {
	f.calls++
	return f.jql, f.err
}

type fakeSearcher struct {
	result  *jira.SearchResult
	err     error
	calls   int
	lastJQL string
	lastMax int
}

func (f *fakeSearcher) Search(_ context.Context, _ model.Credentials, jql string, maxResults int) (*jira.SearchResult, error) {
	f.calls++
	f.lastJQL = jql
	f.lastMax = maxResults
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeAnalyzer struct {
	analysis    string
	err         error
	calls       int
	lastTickets []model.Ticket
	lastTotal   int
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ string, tickets []model.Ticket, total int) (string, error) {
	f.calls++
	f.lastTickets = tickets
	f.lastTotal = total
	return f.analysis, f.err
}

func strPtr(s string) *string { return &s }

func makeTickets(keys ...string) []model.Ticket {
	tickets := make([]model.Ticket, 0, len(keys))
	for _, key := range keys {
		tickets = append(tickets, model.Ticket{
			Key:     key,
			Summary: "Summary of " + key,
			Status:  strPtr("Open"),
		})
	}
	return tickets
}
