package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/naveenreddy007/jira-llm-web/internal/logger"
	"go.uber.org/zap"
)

// TokenRequest stores a personal access token for a pre-provisioned user
type TokenRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Token  string `json:"token" binding:"required"`
}

// HandleSetupPersonalToken handles the POST request to /api/token
func (h *APIHandler) HandleSetupPersonalToken(c *gin.Context) {
	if h.tokenStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "token storage is not configured"})
		return
	}

	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().Error("invalid token request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and token are required"})
		return
	}

	if err := validateToken(req.Token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.tokenStore.SetToken(c.Request.Context(), req.UserID, req.Token); err != nil {
		logger.GetLogger().Error("failed to store token", zap.String("user_id", req.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Token successfully stored",
	})
}

func validateToken(token string) error {
	// Validate token format
	if len(token) < 8 {
		return fmt.Errorf("token must be at least 8 characters long")
	}
	return nil
}
