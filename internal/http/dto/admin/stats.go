package admin

// StatsResponse is the response for GET /v1/admin/stats
type StatsResponse struct {
	UserCount  int64 `json:"user_count"`
	AdminCount int64 `json:"admin_count"`
}
