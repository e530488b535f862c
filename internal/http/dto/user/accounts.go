package user

// LinkedAccountResponse is one row of GET /v1/user/self/accounts.
// Label and Picture come from the claims cached at link time.
type LinkedAccountResponse struct {
	ID       string `json:"id"`
	Provider string `json:"provider"`
	Label    string `json:"label,omitempty"`
	Picture  string `json:"picture,omitempty"`
	LinkedAt string `json:"linked_at"`
}

// LinkedAccountsResponse is the response for GET /v1/user/self/accounts
type LinkedAccountsResponse struct {
	Accounts []LinkedAccountResponse `json:"accounts"`
}
