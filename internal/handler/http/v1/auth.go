package v1

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/geo_safety_system/internal/config"
	"github.com/sirupsen/logrus"
)

const (
	userIDHeader  = "X-User-ID"
	userIDCtxKey  = "user_id"
	maxUserIDSize = 128
)

// APIKeyAuthMiddleware - middleware для аутентификации по API-ключу
func APIKeyAuthMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			// Проверяем также заголовок Authorization: Bearer
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				apiKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if apiKey == "" {
			log.Warn("API key missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}

		isValid := false
		for _, key := range cfg.APIKeys {
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1 {
				isValid = true
				break
			}
		}

		if !isValid {
			log.Warn("Invalid API key provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		c.Next()
	}
}

// UserIdentityMiddleware извлекает идентификатор вызывающего из X-User-ID.
// Выпуск и проверка идентификатора - забота шлюза перед сервисом.
func UserIdentityMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(userIDHeader))
		if userID == "" {
			log.Warn("User identity missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user identity required"})
			return
		}
		if len(userID) > maxUserIDSize {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "user identity too long"})
			return
		}

		c.Set(userIDCtxKey, userID)
		c.Next()
	}
}

// CurrentUserID возвращает идентификатор, выставленный UserIdentityMiddleware
func CurrentUserID(c *gin.Context) string {
	return c.GetString(userIDCtxKey)
}
