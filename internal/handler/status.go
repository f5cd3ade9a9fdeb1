package handler

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
)

// HandleLLMStatus probes the completion provider with a one-shot test
// prompt and reports the outcome.
func (h *APIHandler) HandleLLMStatus(c *gin.Context) {
	if !h.llmAvailable() {
		c.JSON(http.StatusOK, gin.H{
			"status":  "unavailable",
			"message": "LLM service is not configured or failed to initialize.",
		})
		return
	}

	testResponse, err := h.llmClient.Complete(c.Request.Context(), "Hello, this is a test message.")
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  "error",
			"message": "LLM service encountered an error: " + err.Error(),
		})
		return
	}

	if len(testResponse) > 50 {
		testResponse = testResponse[:50] + "..."
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "available",
		"message":       "LLM service is working correctly.",
		"test_response": testResponse,
	})
}

// HandleDiagnostics reports runtime and configuration state for the
// session, without ever echoing credentials.
func (h *APIHandler) HandleDiagnostics(c *gin.Context) {
	creds := credentialsFrom(c)

	c.JSON(http.StatusOK, gin.H{
		"go_version":     runtime.Version(),
		"environment":    h.cfg.Environment,
		"llm_available":  h.llmAvailable(),
		"llm_provider":   h.cfg.LLMProvider,
		"llm_model":      h.cfg.LLMModel,
		"jira_connected": creds.BaseURL != "",
		"jira_url":       creds.BaseURL,
	})
}
