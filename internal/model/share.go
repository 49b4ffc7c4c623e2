package model

import "time"

type ShareRequest struct {
	Platform string `json:"platform"`
}

type ShareResponse struct {
	ShareID      string    `json:"share_id,omitempty"`
	Platform     string    `json:"platform"`
	PointsEarned int64     `json:"points_earned"`
	TotalPoints  int64     `json:"total_points"`
	NewRank      int64     `json:"new_rank,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	Message      string    `json:"message"`
}

type ShareHistoryItem struct {
	ShareID      string    `json:"share_id"`
	Platform     string    `json:"platform"`
	PointsEarned int64     `json:"points_earned"`
	CreatedAt    time.Time `json:"created_at"`
}

type GetMyShareHistoryRequest struct{}

type GetMyShareHistoryResponse struct {
	Shares      []ShareHistoryItem `json:"shares"`
	TotalPoints int64              `json:"total_points"`
}
