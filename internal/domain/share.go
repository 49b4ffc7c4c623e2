package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shareboost/backend/internal/common"
	"github.com/shareboost/backend/internal/domain/leaderboard"
	"github.com/shareboost/backend/internal/domain/ranking"
	"github.com/shareboost/backend/internal/entity"
	"github.com/shareboost/backend/internal/model"
	"github.com/shareboost/backend/internal/repository"
	"github.com/shareboost/backend/pkg/enum"
	"github.com/shareboost/backend/pkg/errorx"
	"github.com/shareboost/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ShareDomain interface {
	Share(ctx context.Context, req *model.ShareRequest) (*model.ShareResponse, error)
	GetMyShareHistory(ctx context.Context, req *model.GetMyShareHistoryRequest) (*model.GetMyShareHistoryResponse, error)
}

type shareDomain struct {
	userRepo         repository.UserRepository
	shareEventRepo   repository.ShareEventRepository
	rankingEngine    ranking.Engine
	leaderboardCache leaderboard.Cache
}

func NewShareDomain(
	userRepo repository.UserRepository,
	shareEventRepo repository.ShareEventRepository,
	rankingEngine ranking.Engine,
	leaderboardCache leaderboard.Cache,
) *shareDomain {
	return &shareDomain{
		userRepo:         userRepo,
		shareEventRepo:   shareEventRepo,
		rankingEngine:    rankingEngine,
		leaderboardCache: leaderboardCache,
	}
}

func (d *shareDomain) Share(ctx context.Context, req *model.ShareRequest) (*model.ShareResponse, error) {
	platform, err := enum.ToEnum[entity.Platform](req.Platform)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid platform %s", req.Platform)
	}

	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	// A repeated share on the same platform is a no-op, not an error. The
	// client treats it as a successful request that earned nothing.
	existing, err := d.shareEventRepo.GetByUserAndPlatform(ctx, userID, platform)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check existing share: %v", err)
		return nil, errorx.Unknown
	}

	if existing != nil {
		return &model.ShareResponse{
			Platform:     string(platform),
			PointsEarned: 0,
			TotalPoints:  user.TotalPoints,
			Timestamp:    existing.CreatedAt,
			Message:      fmt.Sprintf("Already shared on %s, no additional points", platform),
		}, nil
	}

	points := entity.PlatformPoints[platform]
	event := &entity.ShareEvent{
		Base:         entity.Base{ID: uuid.NewString()},
		UserID:       userID,
		Platform:     platform,
		PointsEarned: points,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.shareEventRepo.Create(ctx, event); err != nil {
		// The unique index catches the race where two requests pass the
		// existence check at once. Only one of them may award points.
		xcontext.Logger(ctx).Warnf("Cannot create share event: %v", err)
		return nil, errorx.New(errorx.AlreadyExists, "Already shared on %s", platform)
	}

	if err := d.userRepo.IncreasePoints(ctx, userID, points); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase user points: %v", err)
		return nil, errorx.Unknown
	}

	newRank, err := d.rankingEngine.UpdateUserRank(ctx, userID)
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	// Invalidation must follow the commit. A leaderboard read landing
	// between a pre-commit invalidation and the commit would repopulate the
	// cache with the old ranking for a full TTL.
	d.leaderboardCache.Invalidate(ctx)

	common.PromCounters[common.ShareEventTotal].
		WithLabelValues(string(platform)).Inc()

	return &model.ShareResponse{
		ShareID:      event.ID,
		Platform:     string(platform),
		PointsEarned: points,
		TotalPoints:  user.TotalPoints + points,
		NewRank:      newRank,
		Timestamp:    event.CreatedAt,
		Message:      fmt.Sprintf("Earned %d points for sharing on %s", points, platform),
	}, nil
}

func (d *shareDomain) GetMyShareHistory(
	ctx context.Context, req *model.GetMyShareHistoryRequest,
) (*model.GetMyShareHistoryResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	events, err := d.shareEventRepo.GetList(ctx, repository.GetListShareEventFilter{UserID: userID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get share history: %v", err)
		return nil, errorx.Unknown
	}

	shares := []model.ShareHistoryItem{}
	var totalPoints int64
	for _, event := range events {
		totalPoints += event.PointsEarned
		shares = append(shares, model.ShareHistoryItem{
			ShareID:      event.ID,
			Platform:     string(event.Platform),
			PointsEarned: event.PointsEarned,
			CreatedAt:    event.CreatedAt,
		})
	}

	return &model.GetMyShareHistoryResponse{
		Shares:      shares,
		TotalPoints: totalPoints,
	}, nil
}
