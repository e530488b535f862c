package auth

// LoginRequest represents the request body for POST /v1/auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a successful password sign-in.
// The session token also travels as an HttpOnly cookie.
type LoginResponse struct {
	Token string     `json:"token"`
	User  MeResponse `json:"user"`
}
