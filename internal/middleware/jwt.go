package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fintrack/internal/utils"
)

// ContextUserID is the gin context key holding the authenticated user's id.
const ContextUserID = "userID"

// JWTAuthMiddleware validates bearer tokens and stores the user id in the
// request context for the handlers.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"type":   "unauthorized",
				"title":  "Unauthorized",
				"status": http.StatusUnauthorized,
				"detail": "missing or invalid Authorization header",
			})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseJWT(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"type":   "unauthorized",
				"title":  "Unauthorized",
				"status": http.StatusUnauthorized,
				"detail": "invalid or expired token",
			})
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// UserID reads the authenticated user id set by JWTAuthMiddleware.
func UserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
