package auth

// MeResponse is the response for GET /v1/auth/me.
// Returns the identity carried by the session token.
type MeResponse struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	Theme        string `json:"theme,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
}
