package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/naveenreddy007/jira-llm-web/internal/config"
	"github.com/naveenreddy007/jira-llm-web/internal/logger"
	"github.com/naveenreddy007/jira-llm-web/internal/query"
	"github.com/naveenreddy007/jira-llm-web/internal/service/jira"
	"github.com/naveenreddy007/jira-llm-web/internal/service/llm"
	"github.com/naveenreddy007/jira-llm-web/internal/storage"
)

// APIHandler owns the JSON API surface. All dependencies are injected
// so tests can swap in fakes; llmClient may be nil when no completion
// provider is configured, in which case the LLM routes degrade the way
// the status endpoint reports.
type APIHandler struct {
	cfg        *config.Config
	jiraClient *jira.Client
	llmClient  llm.CompletionService
	pipeline   *query.Pipeline
	insights   *query.Insights
	sessions   *storage.SessionStore
	tokenStore storage.TokenStore
}

// New builds the handler and its derived services
func New(cfg *config.Config, jiraClient *jira.Client, llmClient llm.CompletionService, tokenStore storage.TokenStore) *APIHandler {
	h := &APIHandler{
		cfg:        cfg,
		jiraClient: jiraClient,
		llmClient:  llmClient,
		sessions:   storage.NewSessionStore(storage.DefaultSessionTTL),
		tokenStore: tokenStore,
	}
	if llmClient != nil {
		h.pipeline = query.NewDefaultPipeline(llmClient, jiraClient)
		h.insights = query.NewInsights(llmClient)
	}
	return h
}

// Router builds the gin engine with all routes and middleware attached
func (h *APIHandler) Router() *gin.Engine {
	if h.cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(logger.GinLogMiddleware(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/login", h.HandleLogin)
	api.POST("/logout", h.HandleLogout)

	authed := api.Group("")
	authed.Use(h.RequireSession())
	{
		authed.GET("/projects", h.HandleListProjects)
		authed.GET("/projects/:key/tickets", h.HandleProjectTickets)
		authed.GET("/tickets/:key", h.HandleGetTicket)
		authed.GET("/tickets/:key/insights", h.HandleTicketInsights)

		authed.POST("/query", h.HandleQuery)
		authed.POST("/chat", h.HandleChat)
		authed.POST("/token", h.HandleSetupPersonalToken)

		authed.GET("/llm/status", h.HandleLLMStatus)
		authed.GET("/diagnostics", h.HandleDiagnostics)
	}

	return r
}

// llmAvailable reports whether a completion provider is configured
func (h *APIHandler) llmAvailable() bool {
	return h.llmClient != nil
}
