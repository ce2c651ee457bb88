package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/lostfound-server/internal/logger"
	"github.com/dtroode/lostfound-server/internal/model"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderUserID        = "X-User-Id"

	bearerPrefix = "Bearer "
)

// Identify resolves the acting user of a request. A bearer token wins over
// the X-User-Id header; requests without either pass through anonymously.
type Identify struct {
	tokenManager   model.TokenManager
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewIdentify creates a new Identify middleware instance.
func NewIdentify(tokenManager model.TokenManager, contextManager model.ContextManager, logger *logger.Logger) *Identify {
	return &Identify{tokenManager: tokenManager, contextManager: contextManager, logger: logger}
}

// Handle stores the resolved user ID in the request context.
func (m *Identify) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, verified, ok := m.resolve(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid access token"})
			return
		}

		switch {
		case verified:
			c.Request = c.Request.WithContext(m.contextManager.SetVerifiedUserIDToContext(c.Request.Context(), userID))
		case userID != "":
			c.Request = c.Request.WithContext(m.contextManager.SetUserIDToContext(c.Request.Context(), userID))
		}

		c.Next()
	}
}

func (m *Identify) resolve(c *gin.Context) (string, bool, bool) {
	if header := c.GetHeader(HeaderAuthorization); header != "" {
		if !strings.HasPrefix(header, bearerPrefix) {
			return "", false, false
		}

		userID, err := m.tokenManager.ParseAccessToken(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
		if err != nil || userID == "" {
			reason := "empty subject"
			if err != nil {
				reason = err.Error()
			}
			m.logger.Info("Identify middleware: rejected access token",
				"path", c.Request.URL.Path,
				"error", reason)
			return "", false, false
		}
		return userID, true, true
	}

	return strings.TrimSpace(c.GetHeader(HeaderUserID)), false, true
}
