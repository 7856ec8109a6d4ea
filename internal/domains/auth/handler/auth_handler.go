package handler

import (
	"net/http"

	"jewelry-backend/internal/domains/auth"
	"jewelry-backend/internal/shared/middleware"
	"jewelry-backend/internal/shared/response"
	"jewelry-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// Handler exposes the admin session endpoints. The session token rides
// in an httpOnly cookie; clients never see it in a response body.
type Handler struct {
	service    auth.AuthService
	tokens     *jwt.Manager
	production bool
}

func NewHandler(service auth.AuthService, tokens *jwt.Manager, environment string) *Handler {
	return &Handler{
		service:    service,
		tokens:     tokens,
		production: environment == "production",
	}
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, identity, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		response.Unauthorized(c, auth.ErrInvalidCredentials.Error())
		return
	}

	h.setSessionCookie(c, token, int(h.tokens.TTL().Seconds()))
	response.Success(c, http.StatusOK, gin.H{"user": identity})
}

// Logout handles POST /api/auth/logout. Clearing the cookie is the whole
// logout; tokens are not tracked server side.
func (h *Handler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	response.Success(c, http.StatusOK, gin.H{"loggedOut": true})
}

// Me handles GET /api/auth/me: the identity behind the session cookie,
// or 401 when there is none.
func (h *Handler) Me(c *gin.Context) {
	token, err := c.Cookie(middleware.AdminCookieName)
	if err != nil {
		response.Unauthorized(c, "not authenticated")
		return
	}

	claims, err := h.tokens.ValidateToken(token)
	if err != nil {
		response.Unauthorized(c, "invalid session")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": auth.Identity{Email: claims.Email, IsAdmin: claims.IsAdmin},
	})
}

// setSessionCookie matches the storefront's cross-site deployment: the
// admin panel and the API live on different origins in production, so
// the cookie needs SameSite=None there (which requires Secure). Local
// development keeps Lax over plain HTTP.
func (h *Handler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	sameSite := http.SameSiteLaxMode
	if h.production {
		sameSite = http.SameSiteNoneMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(middleware.AdminCookieName, token, maxAge, "/", "", h.production, true)
}
