package model

import "time"

type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Role        string    `json:"role,omitempty"`
	IsActive    bool      `json:"is_active"`
	TotalPoints int64     `json:"total_points"`
	SharesCount int64     `json:"shares_count"`
	DefaultRank int64     `json:"default_rank,omitempty"`
	CurrentRank int64     `json:"current_rank,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}

type UpdateUserRequest struct {
	Name string `json:"name"`
}

type UpdateUserResponse struct{}

type GetMyRankRequest struct{}

type GetMyRankResponse struct {
	RankInfo RankInfo `json:"rank_info"`
}

type RankInfo struct {
	UserID           string  `json:"user_id"`
	Name             string  `json:"name"`
	TotalPoints      int64   `json:"total_points"`
	DefaultRank      int64   `json:"default_rank"`
	CurrentRank      int64   `json:"current_rank"`
	RankImprovement  int64   `json:"rank_improvement"`
	Percentile       float64 `json:"percentile"`
	PointsToNextRank int64   `json:"points_to_next_rank"`
	TotalUsers       int64   `json:"total_users"`
}
