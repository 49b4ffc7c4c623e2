package domain

import (
	"context"

	"github.com/shareboost/backend/internal/domain/leaderboard"
	"github.com/shareboost/backend/internal/domain/ranking"
	"github.com/shareboost/backend/internal/model"
	"github.com/shareboost/backend/internal/repository"
	"github.com/shareboost/backend/pkg/errorx"
	"github.com/shareboost/backend/pkg/xcontext"
)

type StatisticDomain interface {
	GetLeaderboard(ctx context.Context, req *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	GetLeaderboardAroundMe(ctx context.Context, req *model.GetLeaderboardAroundMeRequest) (*model.GetLeaderboardAroundMeResponse, error)
	GetTopPerformers(ctx context.Context, req *model.GetTopPerformersRequest) (*model.GetTopPerformersResponse, error)
}

type statisticDomain struct {
	userRepo         repository.UserRepository
	rankingEngine    ranking.Engine
	leaderboardCache leaderboard.Cache
}

func NewStatisticDomain(
	userRepo repository.UserRepository,
	rankingEngine ranking.Engine,
	leaderboardCache leaderboard.Cache,
) *statisticDomain {
	return &statisticDomain{
		userRepo:         userRepo,
		rankingEngine:    rankingEngine,
		leaderboardCache: leaderboardCache,
	}
}

func (d *statisticDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	cfg := xcontext.Configs(ctx).ApiServer
	if req.Page < 1 {
		req.Page = 1
	}

	if req.Limit == 0 {
		req.Limit = cfg.DefaultLimit
	}

	if req.Limit < 1 || req.Limit > cfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Expected limit in [1, %d]", cfg.MaxLimit)
	}

	totalUsers, err := d.userRepo.CountNonAdmin(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count users: %v", err)
		return nil, errorx.Unknown
	}

	pagination := model.Pagination{
		Page:  req.Page,
		Limit: req.Limit,
		Total: totalUsers,
		Pages: (totalUsers + int64(req.Limit) - 1) / int64(req.Limit),
	}

	if entries, ok := d.leaderboardCache.Get(ctx, req.Page, req.Limit); ok {
		return &model.GetLeaderboardResponse{
			Leaderboard: entries,
			Pagination:  pagination,
		}, nil
	}

	offset := (req.Page - 1) * req.Limit
	users, err := d.userRepo.GetRankedList(ctx, offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get ranked users: %v", err)
		return nil, errorx.Unknown
	}

	entries := []model.LeaderboardEntry{}
	for i, user := range users {
		// The displayed rank is the position in the total order, not the
		// persisted current rank, so a page is internally consistent even
		// while a reconciliation is pending.
		rank := int64(offset + i + 1)

		defaultRank := rank
		if user.DefaultRank.Valid {
			defaultRank = user.DefaultRank.Int64
		}

		entries = append(entries, model.LeaderboardEntry{
			Rank:            rank,
			UserID:          user.ID,
			Name:            user.Name,
			Points:          user.TotalPoints,
			SharesCount:     user.SharesCount,
			DefaultRank:     defaultRank,
			RankImprovement: defaultRank - rank,
		})
	}

	d.leaderboardCache.Set(ctx, req.Page, req.Limit, entries)

	return &model.GetLeaderboardResponse{
		Leaderboard: entries,
		Pagination:  pagination,
	}, nil
}

func (d *statisticDomain) GetLeaderboardAroundMe(
	ctx context.Context, req *model.GetLeaderboardAroundMeRequest,
) (*model.GetLeaderboardAroundMeResponse, error) {
	if req.Range <= 0 {
		req.Range = 2
	}

	if req.Range > 10 {
		return nil, errorx.New(errorx.BadRequest, "Expected range in [1, 10]")
	}

	rankInfo, err := d.rankingEngine.GetUserRankInfo(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	offset := int(rankInfo.CurrentRank) - req.Range - 1
	if offset < 0 {
		offset = 0
	}

	users, err := d.userRepo.GetRankedList(ctx, offset, 2*req.Range+1)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get ranked users: %v", err)
		return nil, errorx.Unknown
	}

	surrounding := []model.AroundMeEntry{}
	for i, user := range users {
		surrounding = append(surrounding, model.AroundMeEntry{
			Rank:          int64(offset + i + 1),
			Name:          user.Name,
			Points:        user.TotalPoints,
			IsCurrentUser: user.ID == rankInfo.UserID,
		})
	}

	return &model.GetLeaderboardAroundMeResponse{
		SurroundingUsers: surrounding,
		YourStats:        *rankInfo,
	}, nil
}

func (d *statisticDomain) GetTopPerformers(
	ctx context.Context, req *model.GetTopPerformersRequest,
) (*model.GetTopPerformersResponse, error) {
	cfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = cfg.DefaultLimit
	}

	if req.Limit < 1 || req.Limit > cfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Expected limit in [1, %d]", cfg.MaxLimit)
	}

	users, err := d.userRepo.GetRankedList(ctx, 0, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get ranked users: %v", err)
		return nil, errorx.Unknown
	}

	performers := []model.TopPerformer{}
	for i, user := range users {
		performers = append(performers, model.TopPerformer{
			Rank:        int64(i + 1),
			Name:        user.Name,
			Points:      user.TotalPoints,
			SharesCount: user.SharesCount,
		})
	}

	return &model.GetTopPerformersResponse{TopPerformers: performers}, nil
}
