package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ecoindus/site-backend-go/internal/auth"
	"github.com/ecoindus/site-backend-go/pkg/response"
)

// ClaimsKey is the gin context key holding the verified token subject
const ClaimsKey = "authSubject"

// RequireToken rejects requests without a valid bearer token
func RequireToken(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Unauthorized(c, "Missing bearer token")
			return
		}

		claims, err := issuer.Verify(token)
		if err != nil {
			_ = c.Error(err)
			response.Unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ClaimsKey, claims.Subject)
		c.Next()
	}
}
