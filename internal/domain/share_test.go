package domain

import (
	"context"
	"testing"

	"github.com/shareboost/backend/internal/common"
	"github.com/shareboost/backend/internal/domain/leaderboard"
	"github.com/shareboost/backend/internal/domain/ranking"
	"github.com/shareboost/backend/internal/entity"
	"github.com/shareboost/backend/internal/model"
	"github.com/shareboost/backend/internal/repository"
	"github.com/shareboost/backend/pkg/testutil"
	"github.com/shareboost/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newShareDomain(cache leaderboard.Cache) *shareDomain {
	userRepo := repository.NewUserRepository()
	shareEventRepo := repository.NewShareEventRepository()
	return NewShareDomain(userRepo, shareEventRepo, ranking.New(userRepo, cache), cache)
}

func Test_shareDomain_Share(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newShareDomain(leaderboard.NewCache(&testutil.MockRedisClient{}))

	ctx = xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	resp, err := domain.Share(ctx, &model.ShareRequest{Platform: "linkedin"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ShareID)
	require.Equal(t, int64(5), resp.PointsEarned)
	require.Equal(t, testutil.User1.TotalPoints+5, resp.TotalPoints)

	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.TotalPoints+5, user.TotalPoints)
	require.Equal(t, testutil.User1.SharesCount+1, user.SharesCount)
}

func Test_shareDomain_Share_pointsPerPlatform(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newShareDomain(leaderboard.NewCache(&testutil.MockRedisClient{}))

	userRepo := repository.NewUserRepository()
	user := &entity.User{
		Base:  entity.Base{ID: "sharer"},
		Name:  "sharer",
		Email: "sharer@example.com",
		Role:  entity.RoleUser,
	}
	require.NoError(t, userRepo.Create(ctx, user))
	ctx = xcontext.WithRequestUserID(ctx, user.ID)

	platformPoints := map[string]int64{
		"twitter":   1,
		"instagram": 2,
		"facebook":  3,
		"linkedin":  5,
	}

	var total int64
	for platform, points := range platformPoints {
		resp, err := domain.Share(ctx, &model.ShareRequest{Platform: platform})
		require.NoError(t, err)
		require.Equal(t, points, resp.PointsEarned)
		total += points
	}

	reloaded, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, total, reloaded.TotalPoints)
	require.Equal(t, int64(len(platformPoints)), reloaded.SharesCount)
}

func Test_shareDomain_Share_duplicateIsNoop(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newShareDomain(leaderboard.NewCache(&testutil.MockRedisClient{}))

	// User1 already shared on twitter in the fixture. Sharing again is a
	// successful request that earns nothing and changes nothing.
	ctx = xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	resp, err := domain.Share(ctx, &model.ShareRequest{Platform: "twitter"})
	require.NoError(t, err)
	require.Empty(t, resp.ShareID)
	require.Equal(t, int64(0), resp.PointsEarned)
	require.Equal(t, testutil.User1.TotalPoints, resp.TotalPoints)

	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.TotalPoints, user.TotalPoints)
	require.Equal(t, testutil.User1.SharesCount, user.SharesCount)
}

func Test_shareDomain_Share_invalidPlatform(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newShareDomain(leaderboard.NewCache(&testutil.MockRedisClient{}))

	ctx = xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err := domain.Share(ctx, &model.ShareRequest{Platform: "myspace"})
	require.Error(t, err)
	require.Equal(t, "Invalid platform myspace", err.Error())
}

func Test_shareDomain_Share_updatesRank(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newShareDomain(leaderboard.NewCache(&testutil.MockRedisClient{}))

	// User2 has 3 points; a linkedin share brings them to 8, ahead of
	// User3's 5 points.
	ctx = xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	resp, err := domain.Share(ctx, &model.ShareRequest{Platform: "linkedin"})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.NewRank)

	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), user.CurrentRank.Int64)
}

func Test_shareDomain_Share_invalidatesLeaderboardCache(t *testing.T) {
	baseCtx := testutil.MockContext()
	testutil.CreateFixtureDb(baseCtx)

	invalidated := false
	redisClient := &testutil.MockRedisClient{
		KeysFunc: func(ctx context.Context, pattern string) ([]string, error) {
			require.Equal(t, common.RedisPatternLeaderboard(), pattern)
			return []string{common.RedisKeyLeaderboard(1, 10)}, nil
		},
		DelFunc: func(ctx context.Context, key ...string) error {
			invalidated = true

			// The share must be committed by the time the cache is
			// dropped, otherwise a concurrent leaderboard read could
			// repopulate the cache with stale data. Reading through the
			// root database handle only succeeds after the commit.
			user, err := repository.NewUserRepository().GetByID(baseCtx, testutil.User2.ID)
			require.NoError(t, err)
			require.Equal(t, testutil.User2.TotalPoints+2, user.TotalPoints)
			return nil
		},
	}

	domain := newShareDomain(leaderboard.NewCache(redisClient))
	ctx := xcontext.WithRequestUserID(baseCtx, testutil.User2.ID)
	_, err := domain.Share(ctx, &model.ShareRequest{Platform: "instagram"})
	require.NoError(t, err)
	require.True(t, invalidated)
}

func Test_shareDomain_GetMyShareHistory(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newShareDomain(leaderboard.NewCache(&testutil.MockRedisClient{}))

	ctx = xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	resp, err := domain.GetMyShareHistory(ctx, &model.GetMyShareHistoryRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Shares, 1)
	require.Equal(t, testutil.Share3.ID, resp.Shares[0].ShareID)
	require.Equal(t, "linkedin", resp.Shares[0].Platform)
	require.Equal(t, int64(5), resp.TotalPoints)
}
