package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/naveenreddy007/jira-llm-web/internal/logger"
	"github.com/naveenreddy007/jira-llm-web/internal/model"
	"go.uber.org/zap"
)

const (
	// DefaultMaxResults bounds a JQL search when the caller does not
	DefaultMaxResults = 50

	searchTimeout  = 15 * time.Second
	requestTimeout = 10 * time.Second

	bodySnippetLimit = 500
)

// QueryError describes a failed Jira search. StatusCode/Body are set
// for a non-200 response; Err for network and decode failures. The
// bearer token is never part of either.
type QueryError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *QueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("error executing query: %v", e.Err)
	}
	return fmt.Sprintf("query failed with status %d", e.StatusCode)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// SearchResult is a page of flattened tickets plus the server-side
// match count, which may exceed len(Tickets).
type SearchResult struct {
	Tickets []model.Ticket
	Total   int
}

// Client is a Jira REST API client. It holds no credentials: every call
// takes them explicitly so one client serves all sessions.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new Jira client
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{},
	}
}

// TestConnection verifies the credentials against the server info
// endpoint and returns the server description on success.
func (c *Client) TestConnection(ctx context.Context, creds model.Credentials) (*model.ServerInfo, error) {
	var info model.ServerInfo
	if err := c.getJSON(ctx, creds, "/rest/api/2/serverInfo", requestTimeout, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ListProjects fetches all projects visible to the credentials
func (c *Client) ListProjects(ctx context.Context, creds model.Credentials) ([]model.JiraProject, error) {
	var projects []model.JiraProject
	if err := c.getJSON(ctx, creds, "/rest/api/2/project", requestTimeout, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetIssue fetches a single issue by key
func (c *Client) GetIssue(ctx context.Context, creds model.Credentials, issueKey string) (*model.JiraIssue, error) {
	var issue model.JiraIssue
	path := "/rest/api/2/issue/" + url.PathEscape(issueKey)
	if err := c.getJSON(ctx, creds, path, requestTimeout, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// ProjectTickets fetches the most recently created tickets of a project
func (c *Client) ProjectTickets(ctx context.Context, creds model.Credentials, projectKey string, maxResults int) ([]model.Ticket, error) {
	jql := fmt.Sprintf("project = %s ORDER BY created DESC", projectKey)
	result, err := c.Search(ctx, creds, jql, maxResults)
	if err != nil {
		return nil, err
	}
	return result.Tickets, nil
}

// Search executes a JQL query against the search endpoint. It is a
// single-shot request: no retries, the caller owns any retry policy.
// Failures come back as a *QueryError.
func (c *Client) Search(ctx context.Context, creds model.Credentials, jql string, maxResults int) (*SearchResult, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	params := url.Values{}
	params.Set("jql", jql)
	params.Set("maxResults", strconv.Itoa(maxResults))
	searchURL := creds.BaseURL + "/rest/api/2/search?" + params.Encode()

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	logger.GetLogger().Debug("executing JQL query", zap.String("jql", jql), zap.Int("max_results", maxResults))

	resp, err := c.do(ctx, creds, searchURL)
	if err != nil {
		return nil, &QueryError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &QueryError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		logger.GetLogger().Error("JQL query failed",
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(string(body), bodySnippetLimit)))
		return nil, &QueryError{
			StatusCode: resp.StatusCode,
			Body:       truncate(string(body), bodySnippetLimit),
		}
	}

	var search model.JiraSearchResponse
	if err := json.Unmarshal(body, &search); err != nil {
		return nil, &QueryError{Err: fmt.Errorf("failed to unmarshal response: %w", err)}
	}

	return &SearchResult{
		Tickets: model.FlattenIssues(search.Issues),
		Total:   search.Total,
	}, nil
}

// getJSON issues an authenticated GET and decodes the 200 response into out
func (c *Client) getJSON(ctx context.Context, creds model.Credentials, path string, timeout time.Duration, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.do(ctx, creds, creds.BaseURL+path)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request to %s failed: status %d, body: %s",
			path, resp.StatusCode, truncate(string(body), bodySnippetLimit))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// do builds and sends an authenticated GET request. Error text must
// never carry the token, only the URL path being requested.
func (c *Client) do(ctx context.Context, creds model.Credentials, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+creds.Token)
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
