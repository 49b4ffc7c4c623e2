package ranking

import (
	"context"
	"errors"
	"math"

	"github.com/shareboost/backend/internal/domain/leaderboard"
	"github.com/shareboost/backend/internal/entity"
	"github.com/shareboost/backend/internal/model"
	"github.com/shareboost/backend/internal/repository"
	"github.com/shareboost/backend/pkg/errorx"
	"github.com/shareboost/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// Engine owns both rank fields of every user. The default rank reflects the
// signup order among non-admin users and is written exactly once; the
// current rank follows the total order (points descending, registration
// time ascending) and is recomputed after every point change.
type Engine interface {
	// AssignDefaultRank is called exactly once, right after a non-admin
	// user is persisted.
	AssignDefaultRank(ctx context.Context, userID string) (int64, error)

	// CalculateRank computes the rank of a user without persisting
	// anything. Users with zero points keep their default rank.
	CalculateRank(ctx context.Context, userID string) (int64, error)

	// UpdateUserRank is the incremental hot path invoked after any point
	// change. It persists the recomputed rank. The caller owns the
	// surrounding transaction and must invalidate the leaderboard cache
	// after committing it, never before.
	UpdateUserRank(ctx context.Context, userID string) (int64, error)

	// UpdateAllRanks recomputes every non-admin user's current rank from
	// scratch. It is the canonical reconciliation against which the
	// incremental path must agree.
	UpdateAllRanks(ctx context.Context) (int64, error)

	// GetUserRankInfo returns the read-only rank aggregate of a user.
	GetUserRankInfo(ctx context.Context, userID string) (*model.RankInfo, error)

	// PreviewRankAfter computes the rank a user would hold after a
	// hypothetical point increase, without mutating state.
	PreviewRankAfter(ctx context.Context, userID string, pointsToAdd int64) (int64, error)
}

type engine struct {
	userRepo         repository.UserRepository
	leaderboardCache leaderboard.Cache
}

func New(userRepo repository.UserRepository, leaderboardCache leaderboard.Cache) *engine {
	return &engine{userRepo: userRepo, leaderboardCache: leaderboardCache}
}

func (e *engine) AssignDefaultRank(ctx context.Context, userID string) (int64, error) {
	totalUsers, err := e.userRepo.CountNonAdmin(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count users for default rank: %v", err)
		return 0, errorx.Unknown
	}

	// The newest user always takes the last position.
	defaultRank := totalUsers

	if _, err := e.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The user vanished between creation and rank assignment. A
			// recoverable inconsistency, not fatal.
			xcontext.Logger(ctx).Warnf("User %s disappeared before rank assignment", userID)
			return 1, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get user %s: %v", userID, err)
		return 0, errorx.Unknown
	}

	if err := e.userRepo.SetDefaultRank(ctx, userID, defaultRank); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot assign default rank to user %s: %v", userID, err)
		return 0, errorx.Unknown
	}

	return defaultRank, nil
}

func (e *engine) CalculateRank(ctx context.Context, userID string) (int64, error) {
	user, err := e.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user %s: %v", userID, err)
		return 0, errorx.Unknown
	}

	// Zero-point users never move from their registration position, even
	// when that outranks a point-earning user. This mirrors the product
	// behavior and must not be "fixed" here.
	if user.TotalPoints == 0 {
		return defaultRankOf(user), nil
	}

	rank, err := e.userRepo.RankOf(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return defaultRankOf(user), nil
		}

		xcontext.Logger(ctx).Errorf("Cannot resolve rank of user %s: %v", userID, err)
		return 0, errorx.Unknown
	}

	return rank, nil
}

func (e *engine) UpdateUserRank(ctx context.Context, userID string) (int64, error) {
	newRank, err := e.CalculateRank(ctx, userID)
	if err != nil {
		return 0, err
	}

	if err := e.userRepo.SetCurrentRank(ctx, userID, newRank); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot persist rank of user %s: %v", userID, err)
		return 0, errorx.Unknown
	}

	return newRank, nil
}

func (e *engine) UpdateAllRanks(ctx context.Context) (int64, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	users, err := e.userRepo.GetRankedList(ctx, 0, 0)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load ranked users: %v", err)
		return 0, errorx.Unknown
	}

	for i, user := range users {
		rank := int64(i + 1)
		if user.TotalPoints == 0 {
			rank = defaultRankOf(&user)
		}

		if err := e.userRepo.SetCurrentRank(ctx, user.ID, rank); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update rank of user %s: %v", user.ID, err)
			return 0, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	e.leaderboardCache.Invalidate(ctx)

	xcontext.Logger(ctx).Infof("Updated ranks of %d users", len(users))
	return int64(len(users)), nil
}

func (e *engine) GetUserRankInfo(ctx context.Context, userID string) (*model.RankInfo, error) {
	user, err := e.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user %s: %v", userID, err)
		return nil, errorx.Unknown
	}

	totalUsers, err := e.userRepo.CountNonAdmin(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count users: %v", err)
		return nil, errorx.Unknown
	}

	currentRank := currentRankOf(user)
	defaultRank := defaultRankOf(user)

	percentile := 0.0
	if totalUsers > 0 && currentRank > 0 {
		percentile = float64(totalUsers-currentRank+1) / float64(totalUsers) * 100
		percentile = math.Round(percentile*10) / 10
	}

	pointsToNextRank := int64(0)
	if currentRank > 1 {
		nextUser, err := e.userRepo.GetByCurrentRank(ctx, currentRank-1)
		if err == nil {
			gap := nextUser.TotalPoints - user.TotalPoints + 1
			if gap > 0 {
				pointsToNextRank = gap
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user at rank %d: %v", currentRank-1, err)
			return nil, errorx.Unknown
		}
	}

	return &model.RankInfo{
		UserID:           user.ID,
		Name:             user.Name,
		TotalPoints:      user.TotalPoints,
		DefaultRank:      defaultRank,
		CurrentRank:      currentRank,
		RankImprovement:  defaultRank - currentRank,
		Percentile:       percentile,
		PointsToNextRank: pointsToNextRank,
		TotalUsers:       totalUsers,
	}, nil
}

func (e *engine) PreviewRankAfter(ctx context.Context, userID string, pointsToAdd int64) (int64, error) {
	user, err := e.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user %s: %v", userID, err)
		return 0, errorx.Unknown
	}

	newTotal := user.TotalPoints + pointsToAdd
	outranking, err := e.userRepo.CountOutranking(ctx, newTotal, user.CreatedAt)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count outranking users: %v", err)
		return 0, errorx.Unknown
	}

	return outranking + 1, nil
}

func defaultRankOf(user *entity.User) int64 {
	if user.DefaultRank.Valid {
		return user.DefaultRank.Int64
	}

	return 1
}

func currentRankOf(user *entity.User) int64 {
	if user.CurrentRank.Valid {
		return user.CurrentRank.Int64
	}

	return defaultRankOf(user)
}
