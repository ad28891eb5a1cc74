package models

import "time"

// TokenRequest is the body of POST /api/auth/token
type TokenRequest struct {
	AdminKey string `json:"admin_key" binding:"required"`
}

// TokenResponse carries an admin JWT
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
