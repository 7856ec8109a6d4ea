package middleware

import (
	"jewelry-backend/internal/shared/response"
	"jewelry-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// AdminCookieName is the httpOnly cookie carrying the admin session token.
const AdminCookieName = "admin_token"

// Context keys set by AdminAuth for downstream handlers.
const (
	ContextAdminEmail = "adminEmail"
)

// AdminAuth guards mutating admin operations behind the session cookie.
//
// Missing cookie -> 401. Present but invalid, expired or malformed -> 401.
// Valid but without the admin flag -> 403. Only when every check passes
// does control reach the wrapped handler.
func AdminAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AdminCookieName)
		if err != nil || token == "" {
			response.Unauthorized(c, "not authenticated")
			c.Abort()
			return
		}

		claims, err := manager.ValidateToken(token)
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		if !claims.IsAdmin {
			response.Forbidden(c, "admin access required")
			c.Abort()
			return
		}

		c.Set(ContextAdminEmail, claims.Email)
		c.Next()
	}
}
