package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/users-generator-api/internal/models"
	"github.com/users-generator-api/internal/service"
	"github.com/users-generator-api/internal/validation"
)

// AuthHandler handles login and token lifecycle endpoints
type AuthHandler struct {
	services *service.Services
	log      zerolog.Logger
}

func NewAuthHandler(services *service.Services, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// loginRequest accepts either a username or an email in Username
type loginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Authenticate handles POST /auth
func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondValidation(c, validation.FromBindError(err, &req))
		return
	}

	token, err := h.services.Auth.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": token})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		respondError(c, h.log, models.ErrUnauthenticated)
		return
	}

	if err := h.services.Auth.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		respondError(c, h.log, models.ErrUnauthenticated)
		return
	}

	token, err := h.services.Auth.Refresh(c.Request.Context(), claims)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": token})
}
