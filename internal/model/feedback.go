package model

import "time"

type SubmitFeedbackRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`

	BiggestHurdle      string `json:"biggest_hurdle"`
	BiggestHurdleOther string `json:"biggest_hurdle_other"`
	PrimaryMotivation  string `json:"primary_motivation"`
	TimeConsumingPart  string `json:"time_consuming_part"`
	ProfessionalFear   string `json:"professional_fear"`

	MonetizationConsiderations string `json:"monetization_considerations"`
	ProfessionalLegacy         string `json:"professional_legacy"`
	PlatformImpact             string `json:"platform_impact"`
}

type SubmitFeedbackResponse struct {
	FeedbackID string `json:"feedback_id"`
	Message    string `json:"message"`
}

type GetFeedbackListRequest struct {
	Q                 string `json:"q" form:"q"`
	BiggestHurdle     string `json:"biggest_hurdle" form:"biggest_hurdle"`
	PrimaryMotivation string `json:"primary_motivation" form:"primary_motivation"`
	TimeConsumingPart string `json:"time_consuming_part" form:"time_consuming_part"`
	ProfessionalFear  string `json:"professional_fear" form:"professional_fear"`
	Offset            int    `json:"offset" form:"offset"`
	Limit             int    `json:"limit" form:"limit"`
}

type Feedback struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id,omitempty"`
	UserName string `json:"user_name,omitempty"`
	Email    string `json:"email"`
	Name     string `json:"name"`

	BiggestHurdle      string `json:"biggest_hurdle"`
	BiggestHurdleOther string `json:"biggest_hurdle_other,omitempty"`
	PrimaryMotivation  string `json:"primary_motivation,omitempty"`
	TimeConsumingPart  string `json:"time_consuming_part,omitempty"`
	ProfessionalFear   string `json:"professional_fear"`

	MonetizationConsiderations string `json:"monetization_considerations,omitempty"`
	ProfessionalLegacy         string `json:"professional_legacy,omitempty"`
	PlatformImpact             string `json:"platform_impact"`

	CreatedAt time.Time `json:"created_at"`
}

type GetFeedbackListResponse struct {
	Feedback []Feedback `json:"feedback"`
	Total    int64      `json:"total"`
}

type GetFeedbackStatsRequest struct{}

type GetFeedbackStatsResponse struct {
	TotalResponses      int64            `json:"total_responses"`
	ByBiggestHurdle     map[string]int64 `json:"by_biggest_hurdle"`
	ByPrimaryMotivation map[string]int64 `json:"by_primary_motivation"`
	ByTimeConsumingPart map[string]int64 `json:"by_time_consuming_part"`
	ByProfessionalFear  map[string]int64 `json:"by_professional_fear"`
	ResponsesLast7Days  int64            `json:"responses_last_7_days"`
	ResponsesLast30Days int64            `json:"responses_last_30_days"`
	FirstResponseAt     *time.Time       `json:"first_response_at,omitempty"`
	LatestResponseAt    *time.Time       `json:"latest_response_at,omitempty"`
}
