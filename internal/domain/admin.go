package domain

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/shareboost/backend/internal/common"
	"github.com/shareboost/backend/internal/domain/ranking"
	"github.com/shareboost/backend/internal/entity"
	"github.com/shareboost/backend/internal/model"
	"github.com/shareboost/backend/internal/repository"
	"github.com/shareboost/backend/pkg/enum"
	"github.com/shareboost/backend/pkg/errorx"
	"github.com/shareboost/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type AdminDomain interface {
	GetUsers(ctx context.Context, req *model.GetUsersRequest) (*model.GetUsersResponse, error)
	PromoteUser(ctx context.Context, req *model.PromoteUserRequest) (*model.PromoteUserResponse, error)
	RecomputeRanks(ctx context.Context, req *model.RecomputeRanksRequest) (*model.RecomputeRanksResponse, error)
	GetDashboard(ctx context.Context, req *model.GetDashboardRequest) (*model.GetDashboardResponse, error)
	GetPlatformStats(ctx context.Context, req *model.GetPlatformStatsRequest) (*model.GetPlatformStatsResponse, error)
	GetShareHistory(ctx context.Context, req *model.GetShareHistoryRequest) (*model.GetShareHistoryResponse, error)
}

type adminDomain struct {
	userRepo       repository.UserRepository
	shareEventRepo repository.ShareEventRepository
	rankingEngine  ranking.Engine
	roleVerifier   *common.GlobalRoleVerifier
}

func NewAdminDomain(
	userRepo repository.UserRepository,
	shareEventRepo repository.ShareEventRepository,
	rankingEngine ranking.Engine,
) *adminDomain {
	return &adminDomain{
		userRepo:       userRepo,
		shareEventRepo: shareEventRepo,
		rankingEngine:  rankingEngine,
		roleVerifier:   common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *adminDomain) GetUsers(ctx context.Context, req *model.GetUsersRequest) (*model.GetUsersResponse, error) {
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

	filter := repository.GetListUserFilter{
		Q:      req.Q,
		Offset: req.Offset,
		Limit:  req.Limit,
	}

	users, err := d.userRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	total, err := d.userRepo.Count(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count users: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetUsersResponse{Users: []model.User{}, Total: total}
	for i := range users {
		resp.Users = append(resp.Users, convertUser(&users[i], true))
	}

	return resp, nil
}

func (d *adminDomain) PromoteUser(ctx context.Context, req *model.PromoteUserRequest) (*model.PromoteUserResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.RoleSuperAdmin); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if user.IsAdmin() {
		return nil, errorx.New(errorx.AlreadyExists, "User is already an admin")
	}

	if err := d.userRepo.UpdateRole(ctx, req.UserID, entity.RoleAdmin); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update role of user %s: %v", req.UserID, err)
		return nil, errorx.Unknown
	}

	// The promoted user leaves the ranked population, which shifts
	// everyone below them. Reconcile immediately.
	if _, err := d.rankingEngine.UpdateAllRanks(ctx); err != nil {
		return nil, err
	}

	return &model.PromoteUserResponse{}, nil
}

func (d *adminDomain) RecomputeRanks(ctx context.Context, req *model.RecomputeRanksRequest) (*model.RecomputeRanksResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	updated, err := d.rankingEngine.UpdateAllRanks(ctx)
	if err != nil {
		return nil, err
	}

	return &model.RecomputeRanksResponse{UpdatedUsers: updated}, nil
}

func (d *adminDomain) GetDashboard(ctx context.Context, req *model.GetDashboardRequest) (*model.GetDashboardResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	totalUsers, err := d.userRepo.Count(ctx, repository.GetListUserFilter{})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count users: %v", err)
		return nil, errorx.Unknown
	}

	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	today, err := d.shareEventRepo.StatsSince(ctx, startOfDay)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get today share stats: %v", err)
		return nil, errorx.Unknown
	}

	newUsers, err := d.userRepo.CountCreatedSince(ctx, now.AddDate(0, 0, -7))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count new users: %v", err)
		return nil, errorx.Unknown
	}

	stats, err := d.shareEventRepo.PlatformStats(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get platform stats: %v", err)
		return nil, errorx.Unknown
	}

	improvement, err := d.userRepo.RankImprovementStats(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get rank improvement stats: %v", err)
		return nil, errorx.Unknown
	}

	var allShares, allPoints int64
	for _, stat := range stats {
		allShares += stat.TotalShares
		allPoints += stat.TotalPoints
	}

	breakdown := []model.PlatformBreakdownItem{}
	for _, stat := range stats {
		percentage := 0.0
		if allShares > 0 {
			percentage = math.Round(float64(stat.TotalShares)/float64(allShares)*1000) / 10
		}

		breakdown = append(breakdown, model.PlatformBreakdownItem{
			Platform:    string(stat.Platform),
			TotalShares: stat.TotalShares,
			TotalPoints: stat.TotalPoints,
			Percentage:  percentage,
		})
	}

	return &model.GetDashboardResponse{
		Overview: model.DashboardOverview{
			TotalUsers:             totalUsers,
			TotalShares:            allShares,
			TotalPointsDistributed: allPoints,
			SharesToday:            today.TotalShares,
			PointsToday:            today.TotalPoints,
			NewUsersLast7Days:      newUsers,
		},
		PlatformBreakdown: breakdown,
		RankImprovement: model.RankImprovementSummary{
			ImprovedUsers:      improvement.ImprovedUsers,
			AverageImprovement: improvement.AverageImprovement,
			BestImprovement:    improvement.BestImprovement,
		},
	}, nil
}

func (d *adminDomain) GetPlatformStats(ctx context.Context, req *model.GetPlatformStatsRequest) (*model.GetPlatformStatsResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	stats, err := d.shareEventRepo.PlatformStats(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get platform stats: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetPlatformStatsResponse{Platforms: []model.PlatformStat{}}
	for _, stat := range stats {
		resp.TotalShares += stat.TotalShares
		resp.Platforms = append(resp.Platforms, model.PlatformStat{
			Platform:    string(stat.Platform),
			TotalShares: stat.TotalShares,
			TotalPoints: stat.TotalPoints,
		})
	}

	return resp, nil
}

func (d *adminDomain) GetShareHistory(ctx context.Context, req *model.GetShareHistoryRequest) (*model.GetShareHistoryResponse, error) {
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

	filter := repository.GetListShareEventFilter{
		UserID: req.UserID,
		Offset: req.Offset,
		Limit:  req.Limit,
	}

	if req.Platform != "" {
		platform, err := enum.ToEnum[entity.Platform](req.Platform)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid platform %s", req.Platform)
		}

		filter.Platform = platform
	}

	events, err := d.shareEventRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get share events: %v", err)
		return nil, errorx.Unknown
	}

	total, err := d.shareEventRepo.Count(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count share events: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetShareHistoryResponse{Shares: []model.AdminShareHistoryItem{}, Total: total}
	for _, event := range events {
		resp.Shares = append(resp.Shares, model.AdminShareHistoryItem{
			ShareID:      event.ID,
			UserID:       event.UserID,
			UserName:     event.User.Name,
			Platform:     string(event.Platform),
			PointsEarned: event.PointsEarned,
			CreatedAt:    event.CreatedAt,
		})
	}

	return resp, nil
}
