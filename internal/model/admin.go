package model

import "time"

type GetUsersRequest struct {
	Offset int    `json:"offset" form:"offset"`
	Limit  int    `json:"limit" form:"limit"`
	Q      string `json:"q" form:"q"`
}

type GetUsersResponse struct {
	Users []User `json:"users"`
	Total int64  `json:"total"`
}

type PromoteUserRequest struct {
	UserID string `json:"user_id"`
}

type PromoteUserResponse struct{}

type RecomputeRanksRequest struct{}

type RecomputeRanksResponse struct {
	UpdatedUsers int64 `json:"updated_users"`
}

type PlatformStat struct {
	Platform    string `json:"platform"`
	TotalShares int64  `json:"total_shares"`
	TotalPoints int64  `json:"total_points"`
}

type GetPlatformStatsRequest struct{}

type GetPlatformStatsResponse struct {
	Platforms   []PlatformStat `json:"platforms"`
	TotalShares int64          `json:"total_shares"`
}

type GetDashboardRequest struct{}

type DashboardOverview struct {
	TotalUsers             int64 `json:"total_users"`
	TotalShares            int64 `json:"total_shares"`
	TotalPointsDistributed int64 `json:"total_points_distributed"`
	SharesToday            int64 `json:"shares_today"`
	PointsToday            int64 `json:"points_today"`
	NewUsersLast7Days      int64 `json:"new_users_last_7_days"`
}

type PlatformBreakdownItem struct {
	Platform    string  `json:"platform"`
	TotalShares int64   `json:"total_shares"`
	TotalPoints int64   `json:"total_points"`
	Percentage  float64 `json:"percentage"`
}

type RankImprovementSummary struct {
	ImprovedUsers      int64   `json:"improved_users"`
	AverageImprovement float64 `json:"average_improvement"`
	BestImprovement    int64   `json:"best_improvement"`
}

type GetDashboardResponse struct {
	Overview          DashboardOverview       `json:"overview"`
	PlatformBreakdown []PlatformBreakdownItem `json:"platform_breakdown"`
	RankImprovement   RankImprovementSummary  `json:"rank_improvement"`
}

type GetShareHistoryRequest struct {
	UserID   string `json:"user_id" form:"user_id"`
	Platform string `json:"platform" form:"platform"`
	Offset   int    `json:"offset" form:"offset"`
	Limit    int    `json:"limit" form:"limit"`
}

type AdminShareHistoryItem struct {
	ShareID      string    `json:"share_id"`
	UserID       string    `json:"user_id"`
	UserName     string    `json:"user_name"`
	Platform     string    `json:"platform"`
	PointsEarned int64     `json:"points_earned"`
	CreatedAt    time.Time `json:"created_at"`
}

type GetShareHistoryResponse struct {
	Shares []AdminShareHistoryItem `json:"shares"`
	Total  int64                   `json:"total"`
}
