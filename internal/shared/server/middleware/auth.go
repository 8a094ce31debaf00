package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tramites-backend/internal/shared/auth"
	"tramites-backend/internal/shared/server/respond"
)

const (
	userIDKey   = "userId"
	userNameKey = "userName"
	userRoleKey = "userRole"
)

// Auth validates JWTs and stores identity in context. In dev-like
// environments an X-User-Id header is accepted as a fallback identity.
func Auth(env string) gin.HandlerFunc {
	devLike := env == "dev" || env == "local"

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}

		if c.Request.URL.Path == "/api/v1/health" {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))

		if authHeader != "" {
			if !strings.HasPrefix(authHeader, "Bearer ") {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
			if token == "" {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			claims, err := auth.VerifyJWT(token)
			if err != nil {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			c.Set(userIDKey, claims.Sub)
			if claims.Name != "" {
				c.Set(userNameKey, claims.Name)
			}
			if claims.RoleID != 0 {
				c.Set(userRoleKey, claims.RoleID)
			}
			c.Next()
			return
		}

		if devLike {
			if headerID := strings.TrimSpace(c.GetHeader("X-User-Id")); headerID != "" {
				c.Set(userIDKey, headerID)
				c.Next()
				return
			}
		}

		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// NumericUserID parses the context user ID as a numeric actor identifier.
func NumericUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(UserIDFromContext(c), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
