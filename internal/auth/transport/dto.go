// Package transport defines the auth module's request and response shapes.
package transport

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginResponse carries a signed access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// LogoutResponse confirms the session has ended. Tokens are stateless, so the
// client discards its copy; the call exists to close the audit trail.
type LogoutResponse struct {
	Message string `json:"message"`
}
