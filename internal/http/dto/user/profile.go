package user

// ProfileResponse is the response for GET /v1/user/self
type ProfileResponse struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"role"`
	Theme        string `json:"theme"`
	ProfileImage string `json:"profile_image,omitempty"`
	HasPassword  bool   `json:"has_password"`
	CreatedAt    string `json:"created_at"`
}

// UpdateProfileRequest represents the request body for PATCH /v1/user/self.
// Nil fields are left untouched.
type UpdateProfileRequest struct {
	Username     *string `json:"username,omitempty"`
	Email        *string `json:"email,omitempty"`
	Theme        *string `json:"theme,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
	// Password sets a new local password (argon2id re-hash).
	Password *string `json:"password,omitempty"`
}
