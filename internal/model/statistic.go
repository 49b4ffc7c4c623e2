package model

type LeaderboardEntry struct {
	Rank            int64  `json:"rank"`
	UserID          string `json:"user_id"`
	Name            string `json:"name"`
	Points          int64  `json:"points"`
	SharesCount     int64  `json:"shares_count"`
	DefaultRank     int64  `json:"default_rank"`
	RankImprovement int64  `json:"rank_improvement"`
}

type GetLeaderboardRequest struct {
	Page  int `json:"page" form:"page"`
	Limit int `json:"limit" form:"limit"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

type GetLeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Pagination  Pagination         `json:"pagination"`
}

type GetLeaderboardAroundMeRequest struct {
	Range int `json:"range" form:"range"`
}

type AroundMeEntry struct {
	Rank          int64  `json:"rank"`
	Name          string `json:"name"`
	Points        int64  `json:"points"`
	IsCurrentUser bool   `json:"is_current_user"`
}

type GetLeaderboardAroundMeResponse struct {
	SurroundingUsers []AroundMeEntry `json:"surrounding_users"`
	YourStats        RankInfo        `json:"your_stats"`
}

type GetTopPerformersRequest struct {
	Limit int `json:"limit" form:"limit"`
}

type TopPerformer struct {
	Rank        int64  `json:"rank"`
	Name        string `json:"name"`
	Points      int64  `json:"points"`
	SharesCount int64  `json:"shares_count"`
}

type GetTopPerformersResponse struct {
	TopPerformers []TopPerformer `json:"top_performers"`
}
