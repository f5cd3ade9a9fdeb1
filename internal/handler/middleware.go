package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/naveenreddy007/jira-llm-web/internal/model"
)

const credentialsKey = "credentials"

// RequireSession resolves the session cookie to Jira credentials and
// rejects unauthenticated requests before any pipeline work happens.
func (h *APIHandler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		sess, ok := h.sessions.Get(id)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired, please log in again"})
			return
		}
		c.Set(credentialsKey, sess.Credentials)
		c.Next()
	}
}

// credentialsFrom returns the credentials RequireSession stored on the context
func credentialsFrom(c *gin.Context) model.Credentials {
	creds, _ := c.Get(credentialsKey)
	if v, ok := creds.(model.Credentials); ok {
		return v
	}
	return model.Credentials{}
}
