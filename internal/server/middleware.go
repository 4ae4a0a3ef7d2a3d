package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	model "player-auction/internal/models"
	"player-auction/utils"
)

// UserResolver resolves a bearer token to an account. Satisfied by
// auth.Service.
type UserResolver interface {
	UserFromToken(token string) (model.User, error)
}

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// AuthRequired validates the Authorization bearer token and stores the
// resolved user in the request context under "currentUser". The domain
// core never reads this; handlers pass identities as explicit arguments.
func AuthRequired(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, errMissingToken, "missing bearer token")
			c.Abort()
			return
		}

		user, err := resolver.UserFromToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, err, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set("currentUser", user)
		c.Next()
	}
}

// RequireRole rejects callers whose account does not hold the given role.
// Must run after AuthRequired.
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := c.Get("currentUser")
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, errMissingToken, "not authenticated")
			c.Abort()
			return
		}
		if user := value.(model.User); user.Role != role {
			utils.JSONError(c, http.StatusForbidden, errForbidden, "insufficient role")
			utils.Warn("RequireRole: insufficient role", map[string]any{
				"username": user.Username,
				"role":     string(user.Role),
				"required": string(role),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
