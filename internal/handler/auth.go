package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/naveenreddy007/jira-llm-web/internal/logger"
	"github.com/naveenreddy007/jira-llm-web/internal/model"
	"github.com/naveenreddy007/jira-llm-web/internal/storage"
	"go.uber.org/zap"
)

const sessionCookieName = "session_id"

// LoginRequest carries the Jira server URL and personal access token
type LoginRequest struct {
	JiraURL string `json:"jira_url" binding:"required"`
	Token   string `json:"pat" binding:"required"`
}

// HandleLogin validates the supplied credentials against the Jira
// server info endpoint and opens a session on success.
func (h *APIHandler) HandleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "jira_url and pat are required"})
		return
	}

	creds := model.Credentials{
		BaseURL: strings.TrimRight(strings.TrimSpace(req.JiraURL), "/"),
		Token:   strings.TrimSpace(req.Token),
	}

	info, err := h.jiraClient.TestConnection(c.Request.Context(), creds)
	if err != nil {
		logger.GetLogger().Warn("jira connection test failed",
			zap.String("jira_url", creds.BaseURL), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "connection failed, check your Jira details"})
		return
	}

	sess := h.sessions.Create(creds)
	c.SetCookie(sessionCookieName, sess.ID, int(storage.DefaultSessionTTL.Seconds()), "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"status":       "connected",
		"jira_url":     creds.BaseURL,
		"server_title": info.ServerTitle,
		"version":      info.Version,
	})
}

// HandleLogout closes the session, if any
func (h *APIHandler) HandleLogout(c *gin.Context) {
	if id, err := c.Cookie(sessionCookieName); err == nil {
		h.sessions.Delete(id)
	}
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
