package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/naveenreddy007/jira-llm-web/internal/model"
	"github.com/naveenreddy007/jira-llm-web/internal/query"
	"github.com/naveenreddy007/jira-llm-web/internal/service/jira"
)

// Deps are the live services the tools run against. Creds are the
// service credentials the MCP process was started with; MCP clients
// never supply their own.
type Deps struct {
	Jira     *jira.Client
	Pipeline *query.Pipeline
	Creds    model.Credentials
}

// NewServer creates a new MCP server instance
func NewServer(deps Deps) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		"jira llm web",
		"1.0.0",
	)

	// Add Jira tools
	if err := registerJiraTools(s, deps); err != nil {
		return nil, err
	}

	return s, nil
}

// Serve starts the MCP server over stdio
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
