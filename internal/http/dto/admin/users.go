package admin

// UserResponse is the admin view of a user.
type UserResponse struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"role"`
	Theme        string `json:"theme"`
	ProfileImage string `json:"profile_image,omitempty"`
	HasPassword  bool   `json:"has_password"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// ListUsersResponse is the response for GET /v1/admin/users
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}

// CreateUserRequest represents the request body for POST /v1/admin/users
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
}

// UpdateUserRequest represents the request body for PATCH /v1/admin/users/{id}.
// Nil fields are left untouched.
type UpdateUserRequest struct {
	Username     *string `json:"username,omitempty"`
	Email        *string `json:"email,omitempty"`
	Password     *string `json:"password,omitempty"`
	Role         *string `json:"role,omitempty"`
	Theme        *string `json:"theme,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
}
