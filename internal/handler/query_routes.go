package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/naveenreddy007/jira-llm-web/internal/logger"
	"github.com/naveenreddy007/jira-llm-web/internal/model"
	"go.uber.org/zap"
)

// QueryRequest is a natural-language query over the session's Jira data
type QueryRequest struct {
	Request string `json:"request" binding:"required"`
}

// ChatRequest is a free-text question for the Jira assistant
type ChatRequest struct {
	Question string `json:"question" binding:"required"`
}

// chatContextTickets bounds how many recent tickets ground a chat answer
const chatContextTickets = 5

// HandleQuery runs the translate-execute-analyze pipeline for one
// request and returns the terminal QueryResult shape.
func (h *APIHandler) HandleQuery(c *gin.Context) {
	if !h.llmAvailable() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "LLM service is not configured"})
		return
	}

	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request is required"})
		return
	}

	creds := credentialsFrom(c)
	result := h.pipeline.Process(c.Request.Context(), creds, req.Request)

	c.JSON(http.StatusOK, result)
}

// HandleChat answers a free-text question, grounded in a handful of
// recent tickets from the session's first project. Jira lookups are
// best-effort: if they fail the model is told there is no data.
func (h *APIHandler) HandleChat(c *gin.Context) {
	if !h.llmAvailable() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "LLM service is not configured"})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	creds := credentialsFrom(c)
	ctx := c.Request.Context()

	tickets := h.recentTickets(c, creds)

	answer, err := h.insights.ChatAnswer(ctx, req.Question, tickets)
	if err != nil {
		logger.GetLogger().Error("chat answer failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{
			"question": req.Question,
			"response": "I'm sorry, but I encountered an error while processing your request.",
			"error":    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"question":       req.Question,
		"response":       answer,
		"tickets_found":  len(tickets),
		"context_loaded": len(tickets) > 0,
	})
}

// recentTickets fetches up to chatContextTickets recent tickets from
// the first visible project, falling back to an unfiltered search.
func (h *APIHandler) recentTickets(c *gin.Context, creds model.Credentials) []model.Ticket {
	ctx := c.Request.Context()

	projects, err := h.jiraClient.ListProjects(ctx, creds)
	if err != nil {
		logger.GetLogger().Warn("failed to fetch projects for chat context", zap.Error(err))
	}

	if len(projects) > 0 {
		tickets, err := h.jiraClient.ProjectTickets(ctx, creds, projects[0].Key, chatContextTickets)
		if err == nil {
			return tickets
		}
		logger.GetLogger().Warn("failed to fetch project tickets for chat context",
			zap.String("project", projects[0].Key), zap.Error(err))
	}

	// Fall back to the most recent tickets across all projects
	result, err := h.jiraClient.Search(ctx, creds, "ORDER BY created DESC", chatContextTickets)
	if err != nil {
		logger.GetLogger().Warn("fallback ticket search for chat context failed", zap.Error(err))
		return nil
	}
	return result.Tickets
}
