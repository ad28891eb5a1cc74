package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ecoindus/site-backend-go/internal/auth"
	"github.com/ecoindus/site-backend-go/internal/models"
	"github.com/ecoindus/site-backend-go/pkg/response"
)

// AuthHandler exchanges the admin key for a token
type AuthHandler struct {
	issuer *auth.Issuer
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(issuer *auth.Issuer) *AuthHandler {
	return &AuthHandler{issuer: issuer}
}

// IssueToken handles POST /api/auth/token
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req models.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "admin_key is required", err)
		return
	}

	token, expiresAt, err := h.issuer.Login(req.AdminKey)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidAdminKey) {
			response.Unauthorized(c, "Invalid admin key")
			return
		}
		response.InternalError(c, "Failed to issue token", err)
		return
	}

	response.Success(c, models.TokenResponse{Token: token, ExpiresAt: expiresAt})
}
