package system

// InstallStateResponse is the response for GET /v1/system/install-state
type InstallStateResponse struct {
	NeedsFirstUser bool `json:"needsFirstUser"`
}

// FirstUserRequest represents the request body for POST /v1/system/first-user.
// The created user is always an admin.
type FirstUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// FirstUserResponse confirms the bootstrap.
type FirstUserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
