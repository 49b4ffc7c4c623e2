package domain

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shareboost/backend/internal/common"
	"github.com/shareboost/backend/internal/entity"
	"github.com/shareboost/backend/internal/model"
	"github.com/shareboost/backend/internal/repository"
	"github.com/shareboost/backend/pkg/enum"
	"github.com/shareboost/backend/pkg/errorx"
	"github.com/shareboost/backend/pkg/xcontext"
)

type FeedbackDomain interface {
	Submit(ctx context.Context, req *model.SubmitFeedbackRequest) (*model.SubmitFeedbackResponse, error)
	GetFeedbackList(ctx context.Context, req *model.GetFeedbackListRequest) (*model.GetFeedbackListResponse, error)
	GetFeedbackStats(ctx context.Context, req *model.GetFeedbackStatsRequest) (*model.GetFeedbackStatsResponse, error)
}

type feedbackDomain struct {
	feedbackRepo repository.FeedbackRepository
	roleVerifier *common.GlobalRoleVerifier
}

func NewFeedbackDomain(
	feedbackRepo repository.FeedbackRepository,
	userRepo repository.UserRepository,
) *feedbackDomain {
	return &feedbackDomain{
		feedbackRepo: feedbackRepo,
		roleVerifier: common.NewGlobalRoleVerifier(userRepo),
	}
}

// Submit records a survey response. Submissions are accepted from both
// authenticated users and anonymous visitors.
func (d *feedbackDomain) Submit(ctx context.Context, req *model.SubmitFeedbackRequest) (*model.SubmitFeedbackResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Name must not be empty")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, errorx.New(errorx.BadRequest, "Email must not be empty")
	}

	if req.PlatformImpact == "" {
		return nil, errorx.New(errorx.BadRequest, "Platform impact must not be empty")
	}

	hurdle, err := enum.ToEnum[entity.BiggestHurdle](req.BiggestHurdle)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid biggest hurdle %s", req.BiggestHurdle)
	}

	fear, err := enum.ToEnum[entity.ProfessionalFear](req.ProfessionalFear)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid professional fear %s", req.ProfessionalFear)
	}

	feedback := &entity.Feedback{
		Base:                       entity.Base{ID: uuid.NewString()},
		Email:                      email,
		Name:                       req.Name,
		BiggestHurdle:              hurdle,
		BiggestHurdleOther:         req.BiggestHurdleOther,
		ProfessionalFear:           fear,
		MonetizationConsiderations: req.MonetizationConsiderations,
		ProfessionalLegacy:         req.ProfessionalLegacy,
		PlatformImpact:             req.PlatformImpact,
	}

	if req.PrimaryMotivation != "" {
		motivation, err := enum.ToEnum[entity.PrimaryMotivation](req.PrimaryMotivation)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid primary motivation %s", req.PrimaryMotivation)
		}

		feedback.PrimaryMotivation = motivation
	}

	if req.TimeConsumingPart != "" {
		part, err := enum.ToEnum[entity.TimeConsumingPart](req.TimeConsumingPart)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid time consuming part %s", req.TimeConsumingPart)
		}

		feedback.TimeConsumingPart = part
	}

	if userID := xcontext.RequestUserID(ctx); userID != "" {
		feedback.UserID = sql.NullString{String: userID, Valid: true}
	}

	if r := xcontext.HTTPRequest(ctx); r != nil {
		feedback.IPAddress = clientIP(r)
		feedback.UserAgent = r.UserAgent()
	}

	if err := d.feedbackRepo.Create(ctx, feedback); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create feedback: %v", err)
		return nil, errorx.Unknown
	}

	common.PromCounters[common.FeedbackSubmittedTotal].WithLabelValues().Inc()

	return &model.SubmitFeedbackResponse{
		FeedbackID: feedback.ID,
		Message:    "Feedback submitted successfully. Thank you for your valuable insights!",
	}, nil
}

func (d *feedbackDomain) GetFeedbackList(
	ctx context.Context, req *model.GetFeedbackListRequest,
) (*model.GetFeedbackListResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	cfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = cfg.DefaultLimit
	}

	if req.Limit < 1 || req.Limit > cfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Expected limit in [1, %d]", cfg.MaxLimit)
	}

	filter := repository.GetListFeedbackFilter{
		Q:      req.Q,
		Offset: req.Offset,
		Limit:  req.Limit,
	}

	if req.BiggestHurdle != "" {
		hurdle, err := enum.ToEnum[entity.BiggestHurdle](req.BiggestHurdle)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid biggest hurdle %s", req.BiggestHurdle)
		}

		filter.BiggestHurdle = hurdle
	}

	if req.PrimaryMotivation != "" {
		motivation, err := enum.ToEnum[entity.PrimaryMotivation](req.PrimaryMotivation)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid primary motivation %s", req.PrimaryMotivation)
		}

		filter.PrimaryMotivation = motivation
	}

	if req.TimeConsumingPart != "" {
		part, err := enum.ToEnum[entity.TimeConsumingPart](req.TimeConsumingPart)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid time consuming part %s", req.TimeConsumingPart)
		}

		filter.TimeConsumingPart = part
	}

	if req.ProfessionalFear != "" {
		fear, err := enum.ToEnum[entity.ProfessionalFear](req.ProfessionalFear)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid professional fear %s", req.ProfessionalFear)
		}

		filter.ProfessionalFear = fear
	}

	records, err := d.feedbackRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get feedback list: %v", err)
		return nil, errorx.Unknown
	}

	total, err := d.feedbackRepo.Count(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count feedback: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetFeedbackListResponse{Feedback: []model.Feedback{}, Total: total}
	for i := range records {
		resp.Feedback = append(resp.Feedback, convertFeedback(&records[i]))
	}

	return resp, nil
}

func (d *feedbackDomain) GetFeedbackStats(
	ctx context.Context, req *model.GetFeedbackStatsRequest,
) (*model.GetFeedbackStatsResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	total, err := d.feedbackRepo.Count(ctx, repository.GetListFeedbackFilter{})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count feedback: %v", err)
		return nil, errorx.Unknown
	}

	counts, err := d.feedbackRepo.CategoryCounts(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get feedback category counts: %v", err)
		return nil, errorx.Unknown
	}

	now := time.Now()
	last7, err := d.feedbackRepo.CountSince(ctx, now.AddDate(0, 0, -7))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count recent feedback: %v", err)
		return nil, errorx.Unknown
	}

	last30, err := d.feedbackRepo.CountSince(ctx, now.AddDate(0, 0, -30))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count recent feedback: %v", err)
		return nil, errorx.Unknown
	}

	first, latest, err := d.feedbackRepo.SubmissionTimeRange(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get feedback time range: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetFeedbackStatsResponse{
		TotalResponses:      total,
		ByBiggestHurdle:     counts.ByBiggestHurdle,
		ByPrimaryMotivation: counts.ByPrimaryMotivation,
		ByTimeConsumingPart: counts.ByTimeConsumingPart,
		ByProfessionalFear:  counts.ByProfessionalFear,
		ResponsesLast7Days:  last7,
		ResponsesLast30Days: last30,
	}

	if !first.IsZero() {
		resp.FirstResponseAt = &first
		resp.LatestResponseAt = &latest
	}

	return resp, nil
}

func convertFeedback(feedback *entity.Feedback) model.Feedback {
	converted := model.Feedback{
		ID:                         feedback.ID,
		Email:                      feedback.Email,
		Name:                       feedback.Name,
		BiggestHurdle:              string(feedback.BiggestHurdle),
		BiggestHurdleOther:         feedback.BiggestHurdleOther,
		PrimaryMotivation:          string(feedback.PrimaryMotivation),
		TimeConsumingPart:          string(feedback.TimeConsumingPart),
		ProfessionalFear:           string(feedback.ProfessionalFear),
		MonetizationConsiderations: feedback.MonetizationConsiderations,
		ProfessionalLegacy:         feedback.ProfessionalLegacy,
		PlatformImpact:             feedback.PlatformImpact,
		CreatedAt:                  feedback.CreatedAt,
	}

	if feedback.UserID.Valid {
		converted.UserID = feedback.UserID.String
	}

	if feedback.User != nil {
		converted.UserName = feedback.User.Name
	}

	return converted
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		ip, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(ip)
	}

	return r.RemoteAddr
}
