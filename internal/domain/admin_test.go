package domain

import (
	"testing"

	"github.com/shareboost/backend/internal/domain/leaderboard"
	"github.com/shareboost/backend/internal/domain/ranking"
	"github.com/shareboost/backend/internal/entity"
	"github.com/shareboost/backend/internal/model"
	"github.com/shareboost/backend/internal/repository"
	"github.com/shareboost/backend/pkg/testutil"
	"github.com/shareboost/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newAdminDomain() *adminDomain {
	userRepo := repository.NewUserRepository()
	shareEventRepo := repository.NewShareEventRepository()
	return NewAdminDomain(userRepo, shareEventRepo,
		ranking.New(userRepo, leaderboard.NewCache(&testutil.MockRedisClient{})))
}

func Test_adminDomain_GetUsers(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newAdminDomain()

	ctx = xcontext.WithRequestUserID(ctx, testutil.SuperAdmin.ID)
	resp, err := domain.GetUsers(ctx, &model.GetUsersRequest{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(4), resp.Total)
	require.Len(t, resp.Users, 4)

	resp, err = domain.GetUsers(ctx, &model.GetUsersRequest{Limit: 10, Q: "alice"})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Total)
	require.Equal(t, testutil.User1.ID, resp.Users[0].ID)
}

func Test_adminDomain_GetUsers_permissionDenied(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newAdminDomain()

	ctx = xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err := domain.GetUsers(ctx, &model.GetUsersRequest{Limit: 10})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())
}

func Test_adminDomain_PromoteUser(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newAdminDomain()

	ctx = xcontext.WithRequestUserID(ctx, testutil.SuperAdmin.ID)
	_, err := domain.PromoteUser(ctx, &model.PromoteUserRequest{UserID: testutil.User3.ID})
	require.NoError(t, err)

	userRepo := repository.NewUserRepository()
	promoted, err := userRepo.GetByID(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.True(t, promoted.IsAdmin())

	// With User3 out of the ranked population, User2 takes the first
	// position.
	user2, err := userRepo.GetByID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), user2.CurrentRank.Int64)

	// Promoting an admin again fails.
	_, err = domain.PromoteUser(ctx, &model.PromoteUserRequest{UserID: testutil.User3.ID})
	require.Error(t, err)
	require.Equal(t, "User is already an admin", err.Error())
}

func Test_adminDomain_PromoteUser_requiresSuperAdmin(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newAdminDomain()

	userRepo := repository.NewUserRepository()
	ctx = xcontext.WithRequestUserID(ctx, testutil.SuperAdmin.ID)
	_, err := domain.PromoteUser(ctx, &model.PromoteUserRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	// A plain admin cannot promote.
	ctx = xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err = domain.PromoteUser(ctx, &model.PromoteUserRequest{UserID: testutil.User1.ID})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())

	user1, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.False(t, user1.IsAdmin())
}

func Test_adminDomain_RecomputeRanks(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newAdminDomain()

	// Scramble the persisted ranks, then recompute.
	userRepo := repository.NewUserRepository()
	require.NoError(t, userRepo.SetCurrentRank(ctx, testutil.User3.ID, 99))

	ctx = xcontext.WithRequestUserID(ctx, testutil.SuperAdmin.ID)
	resp, err := domain.RecomputeRanks(ctx, &model.RecomputeRanksRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(3), resp.UpdatedUsers)

	user3, err := userRepo.GetByID(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), user3.CurrentRank.Int64)
}

func Test_adminDomain_GetDashboard(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newAdminDomain()

	// The fixture shares all happened in the past. Record one share today
	// so the daily counters have something to report.
	shareEventRepo := repository.NewShareEventRepository()
	require.NoError(t, shareEventRepo.Create(ctx, &entity.ShareEvent{
		Base:         entity.Base{ID: "share_today"},
		UserID:       testutil.User1.ID,
		Platform:     entity.PlatformInstagram,
		PointsEarned: 2,
	}))

	ctx = xcontext.WithRequestUserID(ctx, testutil.SuperAdmin.ID)
	resp, err := domain.GetDashboard(ctx, &model.GetDashboardRequest{})
	require.NoError(t, err)

	require.Equal(t, int64(4), resp.Overview.TotalUsers)
	require.Equal(t, int64(4), resp.Overview.TotalShares)
	require.Equal(t, int64(11), resp.Overview.TotalPointsDistributed)
	require.Equal(t, int64(1), resp.Overview.SharesToday)
	require.Equal(t, int64(2), resp.Overview.PointsToday)
	require.Equal(t, int64(0), resp.Overview.NewUsersLast7Days)

	require.Len(t, resp.PlatformBreakdown, 4)
	for _, item := range resp.PlatformBreakdown {
		require.Equal(t, int64(1), item.TotalShares)
		require.Equal(t, 25.0, item.Percentage)
	}

	// Carol climbed from rank 3 to 1, Bob stayed put, Alice dropped from
	// rank 1 to 3. The gains sum to zero across the population.
	require.Equal(t, int64(1), resp.RankImprovement.ImprovedUsers)
	require.Equal(t, 0.0, resp.RankImprovement.AverageImprovement)
	require.Equal(t, int64(2), resp.RankImprovement.BestImprovement)
}

func Test_adminDomain_GetDashboard_permissionDenied(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newAdminDomain()

	ctx = xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err := domain.GetDashboard(ctx, &model.GetDashboardRequest{})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())
}

func Test_adminDomain_GetPlatformStats(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newAdminDomain()

	ctx = xcontext.WithRequestUserID(ctx, testutil.SuperAdmin.ID)
	resp, err := domain.GetPlatformStats(ctx, &model.GetPlatformStatsRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(3), resp.TotalShares)
	require.Len(t, resp.Platforms, 3)

	byPlatform := map[string]model.PlatformStat{}
	for _, stat := range resp.Platforms {
		byPlatform[stat.Platform] = stat
	}
	require.Equal(t, int64(1), byPlatform["twitter"].TotalPoints)
	require.Equal(t, int64(3), byPlatform["facebook"].TotalPoints)
	require.Equal(t, int64(5), byPlatform["linkedin"].TotalPoints)
}

func Test_adminDomain_GetShareHistory(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newAdminDomain()

	ctx = xcontext.WithRequestUserID(ctx, testutil.SuperAdmin.ID)
	resp, err := domain.GetShareHistory(ctx, &model.GetShareHistoryRequest{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(3), resp.Total)
	require.Len(t, resp.Shares, 3)

	// Newest first.
	require.Equal(t, testutil.Share3.ID, resp.Shares[0].ShareID)
	require.Equal(t, testutil.User3.Name, resp.Shares[0].UserName)

	resp, err = domain.GetShareHistory(ctx, &model.GetShareHistoryRequest{
		Limit:    10,
		Platform: "twitter",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Total)
	require.Equal(t, testutil.Share1.ID, resp.Shares[0].ShareID)
}
