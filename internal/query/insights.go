package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/naveenreddy007/jira-llm-web/internal/model"
	"github.com/naveenreddy007/jira-llm-web/internal/service/llm"
)

// chatSystemPrompt frames the assistant for free-text questions about
// Jira data.
const chatSystemPrompt = `You are a helpful Jira assistant that answers questions about Jira projects and tickets.
If you have Jira ticket data available, use it to answer the question. If not, explain that you don't have the data needed.`

// Insights generates per-ticket LLM content: a short summary, a
// category label and a suggested reply, plus free-text chat answers
// grounded in recent tickets.
type Insights struct {
	llm llm.CompletionService
}

// NewInsights creates an insights generator over the completion service
func NewInsights(svc llm.CompletionService) *Insights {
	return &Insights{llm: svc}
}

// TicketInsights bundles the three per-ticket completions
type TicketInsights struct {
	Summary            string `json:"summary"`
	Category           string `json:"category"`
	ResponseSuggestion string `json:"response_suggestion"`
}

// SummarizeTicket produces a 2-3 sentence summary of the issue
func (i *Insights) SummarizeTicket(ctx context.Context, issue *model.JiraIssue) (string, error) {
	prompt := fmt.Sprintf(`Please provide a concise summary of this Jira ticket:

Title: %s
Description: %s
Status: %s
Priority: %s
Reporter: %s

Provide a 2-3 sentence summary that captures the key points.`,
		issue.Fields.Summary,
		issue.Fields.Description,
		namedOrUnknown(issue.Fields.Status),
		namedOrUnknown(issue.Fields.Priority),
		userOrUnknown(issue.Fields.Reporter),
	)

	return i.llm.Complete(ctx, prompt)
}

// CategorizeTicket labels the issue with one of a fixed category set
func (i *Insights) CategorizeTicket(ctx context.Context, issue *model.JiraIssue) (string, error) {
	prompt := fmt.Sprintf(`Based on the information below, categorize this Jira ticket into one of the following:
- Bug
- Feature Request
- Documentation
- Support Request
- Infrastructure
- Security Issue

Title: %s
Description: %s

Reply ONLY with the category name, nothing else.`,
		issue.Fields.Summary,
		issue.Fields.Description,
	)

	category, err := i.llm.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(category), nil
}

// SuggestResponse drafts a reply the assignee could post on the ticket
func (i *Insights) SuggestResponse(ctx context.Context, issue *model.JiraIssue) (string, error) {
	prompt := fmt.Sprintf(`Please draft a helpful, professional response to this Jira ticket:

Title: %s
Description: %s
Status: %s
Priority: %s

The response should acknowledge the issue, provide next steps if possible, and maintain a helpful tone.`,
		issue.Fields.Summary,
		issue.Fields.Description,
		namedOrUnknown(issue.Fields.Status),
		namedOrUnknown(issue.Fields.Priority),
	)

	return i.llm.Complete(ctx, prompt)
}

// ChatAnswer answers a free-text question, grounding the model in the
// supplied recent tickets when there are any.
func (i *Insights) ChatAnswer(ctx context.Context, question string, tickets []model.Ticket) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "User question: %s\n\n", question)

	if len(tickets) > 0 {
		sb.WriteString("Here are some recent Jira tickets:\n\n")
		for _, t := range tickets {
			status := "Unknown"
			if t.Status != nil {
				status = *t.Status
			}
			fmt.Fprintf(&sb, "- %s: %s (Status: %s)\n", t.Key, t.Summary, status)
		}
	} else {
		sb.WriteString("No Jira tickets were found to provide context for your question.")
	}

	return i.llm.Complete(ctx, sb.String(), llm.WithSystemPrompt(chatSystemPrompt))
}

func namedOrUnknown(n *model.JiraNamed) string {
	if n == nil {
		return "Unknown"
	}
	return n.Name
}

func userOrUnknown(u *model.JiraUser) string {
	if u == nil {
		return "Unknown"
	}
	return u.DisplayName
}
