package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/toannghia/vietlott-ai-analyzer/internal/logger"
)

// AuthConfig holds authentication configuration
type AuthConfig struct {
	APIKeys []string
}

// HasValidAPIKey reports whether the request carries a configured API
// key, either as "Authorization: ApiKey <key>" or the X-API-Key header
func HasValidAPIKey(c *gin.Context, cfg AuthConfig) bool {
	key := extractAPIKey(c)
	if key == "" {
		return false
	}
	for _, valid := range cfg.APIKeys {
		if valid != "" && key == valid {
			return true
		}
	}
	return false
}

// APIKeyAuth returns a gin middleware that rejects requests without a
// configured API key
func APIKeyAuth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(cfg.APIKeys) == 0 {
			logger.Warn("API key auth rejected request, no keys configured",
				zap.String("path", c.Request.URL.Path))
			abortUnauthorized(c, "no API keys configured")
			return
		}
		if !HasValidAPIKey(c, cfg) {
			logger.Warn("API key authentication failed",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()))
			abortUnauthorized(c, "invalid or missing API key")
			return
		}
		c.Next()
	}
}

func extractAPIKey(c *gin.Context) string {
	if key := c.GetHeader("X-API-Key"); key != "" {
		return key
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "apikey") {
		return parts[1]
	}
	return ""
}

func abortUnauthorized(c *gin.Context, details string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "unauthorized",
			"message": "Authentication failed",
			"details": details,
		},
	})
}
