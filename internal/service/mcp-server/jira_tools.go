package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/naveenreddy007/jira-llm-web/internal/service/jira"
)

// registerJiraTools registers all Jira-related tools with the server
func registerJiraTools(s *server.MCPServer, deps Deps) error {
	// Get Jira issue tool
	getIssueTool := mcp.NewTool("jira_get_issue",
		mcp.WithDescription("Get details of a specific Jira issue"),
		mcp.WithString("issue_key",
			mcp.Required(),
			mcp.Description("Jira issue key (e.g., 'DEMO-1')"),
		),
	)

	// Search Jira tool
	searchTool := mcp.NewTool("jira_search",
		mcp.WithDescription("Search Jira issues using JQL"),
		mcp.WithString("jql",
			mcp.Required(),
			mcp.Description("JQL query string"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of results to return"),
		),
	)

	// Natural-language query tool: translate, execute, analyze
	nlQueryTool := mcp.NewTool("jira_nl_query",
		mcp.WithDescription("Answer a natural-language question about Jira tickets: translates it to JQL, runs the search and returns an analysis of the results"),
		mcp.WithString("request",
			mcp.Required(),
			mcp.Description("The question or request in plain language"),
		),
	)

	// Register tools with handlers
	s.AddTool(getIssueTool, handleGetIssue(deps))
	s.AddTool(searchTool, handleSearch(deps))
	if deps.Pipeline != nil {
		s.AddTool(nlQueryTool, handleNLQuery(deps))
	}

	return nil
}

func handleGetIssue(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		issueKey, ok := request.Params.Arguments["issue_key"].(string)
		if !ok || issueKey == "" {
			return nil, fmt.Errorf("invalid issue_key parameter")
		}

		issue, err := deps.Jira.GetIssue(ctx, deps.Creds, issueKey)
		if err != nil {
			return nil, fmt.Errorf("failed to get issue %s: %w", issueKey, err)
		}

		jsonResult, err := json.Marshal(issue)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}

		return mcp.NewToolResultText(string(jsonResult)), nil
	}
}

func handleSearch(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jql, ok := request.Params.Arguments["jql"].(string)
		if !ok || jql == "" {
			return nil, fmt.Errorf("invalid jql parameter")
		}

		maxResults := jira.DefaultMaxResults
		if m, ok := request.Params.Arguments["max_results"].(float64); ok {
			maxResults = int(m)
		}

		result, err := deps.Jira.Search(ctx, deps.Creds, jql, maxResults)
		if err != nil {
			return nil, fmt.Errorf("search failed: %w", err)
		}

		jsonResult, err := json.Marshal(map[string]any{
			"jql":     jql,
			"tickets": result.Tickets,
			"total":   result.Total,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}

		return mcp.NewToolResultText(string(jsonResult)), nil
	}
}

func handleNLQuery(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		nlRequest, ok := request.Params.Arguments["request"].(string)
		if !ok || nlRequest == "" {
			return nil, fmt.Errorf("invalid request parameter")
		}

		result := deps.Pipeline.Process(ctx, deps.Creds, nlRequest)

		jsonResult, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}

		return mcp.NewToolResultText(string(jsonResult)), nil
	}
}
