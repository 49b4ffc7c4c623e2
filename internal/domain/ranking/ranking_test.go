package ranking

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shareboost/backend/internal/domain/leaderboard"
	"github.com/shareboost/backend/internal/entity"
	"github.com/shareboost/backend/internal/repository"
	"github.com/shareboost/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestEngine() (Engine, repository.UserRepository) {
	userRepo := repository.NewUserRepository()
	return New(userRepo, leaderboard.NewCache(&testutil.MockRedisClient{})), userRepo
}

func createUser(ctx context.Context, t *testing.T, userRepo repository.UserRepository, role entity.GlobalRole) *entity.User {
	t.Helper()

	user := &entity.User{
		Base:     entity.Base{ID: uuid.NewString()},
		Name:     uuid.NewString(),
		Email:    uuid.NewString() + "@example.com",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, userRepo.Create(ctx, user))
	return user
}

func Test_engine_AssignDefaultRank_sequential(t *testing.T) {
	ctx := testutil.MockContext()
	engine, userRepo := newTestEngine()

	for i := 1; i <= 5; i++ {
		user := createUser(ctx, t, userRepo, entity.RoleUser)
		rank, err := engine.AssignDefaultRank(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, int64(i), rank)

		reloaded, err := userRepo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, int64(i), reloaded.DefaultRank.Int64)
		require.Equal(t, int64(i), reloaded.CurrentRank.Int64)
	}
}

func Test_engine_AssignDefaultRank_ignoresAdmins(t *testing.T) {
	ctx := testutil.MockContext()
	engine, userRepo := newTestEngine()

	createUser(ctx, t, userRepo, entity.RoleSuperAdmin)
	createUser(ctx, t, userRepo, entity.RoleAdmin)

	user := createUser(ctx, t, userRepo, entity.RoleUser)
	rank, err := engine.AssignDefaultRank(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), rank)
}

func Test_engine_CalculateRank_zeroPointsKeepsDefault(t *testing.T) {
	ctx := testutil.MockContext()
	engine, userRepo := newTestEngine()

	first := createUser(ctx, t, userRepo, entity.RoleUser)
	_, err := engine.AssignDefaultRank(ctx, first.ID)
	require.NoError(t, err)

	second := createUser(ctx, t, userRepo, entity.RoleUser)
	_, err = engine.AssignDefaultRank(ctx, second.ID)
	require.NoError(t, err)

	// The second user earns points, the first does not. The first keeps
	// a current rank equal to its default rank no matter what everyone
	// else does.
	require.NoError(t, userRepo.IncreasePoints(ctx, second.ID, 5))
	_, err = engine.UpdateUserRank(ctx, second.ID)
	require.NoError(t, err)

	rank, err := engine.CalculateRank(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), rank)
}

func Test_engine_UpdateAllRanks_totalOrder(t *testing.T) {
	ctx := testutil.MockContext()
	engine, userRepo := newTestEngine()

	points := []int64{3, 10, 7, 1}
	users := make([]*entity.User, 0, len(points))
	for _, p := range points {
		user := createUser(ctx, t, userRepo, entity.RoleUser)
		_, err := engine.AssignDefaultRank(ctx, user.ID)
		require.NoError(t, err)
		require.NoError(t, userRepo.IncreasePoints(ctx, user.ID, p))
		users = append(users, user)
	}

	updated, err := engine.UpdateAllRanks(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(4), updated)

	wantRanks := []int64{3, 1, 2, 4}
	for i, user := range users {
		reloaded, err := userRepo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, wantRanks[i], reloaded.CurrentRank.Int64)
	}
}

func Test_engine_UpdateAllRanks_tieBrokenByRegistrationTime(t *testing.T) {
	ctx := testutil.MockContext()
	engine, userRepo := newTestEngine()

	early := createUser(ctx, t, userRepo, entity.RoleUser)
	_, err := engine.AssignDefaultRank(ctx, early.ID)
	require.NoError(t, err)

	late := createUser(ctx, t, userRepo, entity.RoleUser)
	_, err = engine.AssignDefaultRank(ctx, late.ID)
	require.NoError(t, err)

	require.NoError(t, userRepo.IncreasePoints(ctx, early.ID, 5))
	require.NoError(t, userRepo.IncreasePoints(ctx, late.ID, 5))

	_, err = engine.UpdateAllRanks(ctx)
	require.NoError(t, err)

	reloadedEarly, err := userRepo.GetByID(ctx, early.ID)
	require.NoError(t, err)
	reloadedLate, err := userRepo.GetByID(ctx, late.ID)
	require.NoError(t, err)

	require.Equal(t, int64(1), reloadedEarly.CurrentRank.Int64)
	require.Equal(t, int64(2), reloadedLate.CurrentRank.Int64)
}

func Test_engine_scenario(t *testing.T) {
	ctx := testutil.MockContext()
	engine, userRepo := newTestEngine()

	// Alice, Bob and Carol register in order. Carol earns 8 points, Bob
	// earns 1, Alice earns nothing. Alice keeps her registration rank
	// even though Bob outscored her, which duplicates rank 1 on the
	// board. That anomaly is deliberate.
	alice := createUser(ctx, t, userRepo, entity.RoleUser)
	bob := createUser(ctx, t, userRepo, entity.RoleUser)
	carol := createUser(ctx, t, userRepo, entity.RoleUser)
	for i, user := range []*entity.User{alice, bob, carol} {
		rank, err := engine.AssignDefaultRank(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, int64(i+1), rank)
	}

	require.NoError(t, userRepo.IncreasePoints(ctx, carol.ID, 5))
	require.NoError(t, userRepo.IncreasePoints(ctx, carol.ID, 3))
	require.NoError(t, userRepo.IncreasePoints(ctx, bob.ID, 1))

	_, err := engine.UpdateAllRanks(ctx)
	require.NoError(t, err)

	reloadedAlice, err := userRepo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	reloadedBob, err := userRepo.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	reloadedCarol, err := userRepo.GetByID(ctx, carol.ID)
	require.NoError(t, err)

	require.Equal(t, int64(1), reloadedCarol.CurrentRank.Int64)
	require.Equal(t, int64(2), reloadedBob.CurrentRank.Int64)
	require.Equal(t, int64(1), reloadedAlice.CurrentRank.Int64)
}

func Test_engine_UpdateUserRank_matchesFullRecompute(t *testing.T) {
	ctx := testutil.MockContext()
	engine, userRepo := newTestEngine()

	users := make([]*entity.User, 0, 3)
	for i := 0; i < 3; i++ {
		user := createUser(ctx, t, userRepo, entity.RoleUser)
		_, err := engine.AssignDefaultRank(ctx, user.ID)
		require.NoError(t, err)
		users = append(users, user)
	}

	require.NoError(t, userRepo.IncreasePoints(ctx, users[2].ID, 5))
	incremental, err := engine.UpdateUserRank(ctx, users[2].ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), incremental)

	_, err = engine.UpdateAllRanks(ctx)
	require.NoError(t, err)

	reloaded, err := userRepo.GetByID(ctx, users[2].ID)
	require.NoError(t, err)
	require.Equal(t, incremental, reloaded.CurrentRank.Int64)
}

func Test_engine_GetUserRankInfo(t *testing.T) {
	ctx := testutil.MockContext()
	engine, userRepo := newTestEngine()

	var ids []string
	for i := 0; i < 4; i++ {
		user := createUser(ctx, t, userRepo, entity.RoleUser)
		_, err := engine.AssignDefaultRank(ctx, user.ID)
		require.NoError(t, err)
		ids = append(ids, user.ID)
	}

	for i, p := range []int64{10, 7, 3, 1} {
		require.NoError(t, userRepo.IncreasePoints(ctx, ids[i], p))
	}

	_, err := engine.UpdateAllRanks(ctx)
	require.NoError(t, err)

	info, err := engine.GetUserRankInfo(ctx, ids[1])
	require.NoError(t, err)
	require.Equal(t, int64(7), info.TotalPoints)
	require.Equal(t, int64(2), info.DefaultRank)
	require.Equal(t, int64(2), info.CurrentRank)
	require.Equal(t, int64(0), info.RankImprovement)
	require.Equal(t, int64(4), info.TotalUsers)
	require.Equal(t, 75.0, info.Percentile)
	require.Equal(t, int64(4), info.PointsToNextRank)
}

func Test_engine_GetUserRankInfo_rankImprovement(t *testing.T) {
	ctx := testutil.MockContext()
	engine, userRepo := newTestEngine()

	users := make([]*entity.User, 0, 3)
	for i := 0; i < 3; i++ {
		user := createUser(ctx, t, userRepo, entity.RoleUser)
		_, err := engine.AssignDefaultRank(ctx, user.ID)
		require.NoError(t, err)
		users = append(users, user)
	}

	// The last registered user earns points and climbs. A user who only
	// gains points can never end up worse than its default rank.
	require.NoError(t, userRepo.IncreasePoints(ctx, users[2].ID, 9))
	_, err := engine.UpdateAllRanks(ctx)
	require.NoError(t, err)

	info, err := engine.GetUserRankInfo(ctx, users[2].ID)
	require.NoError(t, err)
	require.Equal(t, int64(3), info.DefaultRank)
	require.Equal(t, int64(1), info.CurrentRank)
	require.Equal(t, int64(2), info.RankImprovement)
	require.GreaterOrEqual(t, info.RankImprovement, int64(0))
}

func Test_engine_PreviewRankAfter(t *testing.T) {
	ctx := testutil.MockContext()
	engine, userRepo := newTestEngine()

	users := make([]*entity.User, 0, 3)
	for i := 0; i < 3; i++ {
		user := createUser(ctx, t, userRepo, entity.RoleUser)
		_, err := engine.AssignDefaultRank(ctx, user.ID)
		require.NoError(t, err)
		users = append(users, user)
	}

	require.NoError(t, userRepo.IncreasePoints(ctx, users[0].ID, 10))
	require.NoError(t, userRepo.IncreasePoints(ctx, users[1].ID, 5))

	// With 6 more points the third user would pass the second but not the
	// first.
	preview, err := engine.PreviewRankAfter(ctx, users[2].ID, 6)
	require.NoError(t, err)
	require.Equal(t, int64(2), preview)

	// Previewing must not persist anything.
	reloaded, err := userRepo.GetByID(ctx, users[2].ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), reloaded.TotalPoints)
}

func Test_engine_UpdateAllRanks_excludesAdmins(t *testing.T) {
	ctx := testutil.MockContext()
	engine, userRepo := newTestEngine()

	admin := createUser(ctx, t, userRepo, entity.RoleAdmin)
	require.NoError(t, userRepo.IncreasePoints(ctx, admin.ID, 100))

	user := createUser(ctx, t, userRepo, entity.RoleUser)
	_, err := engine.AssignDefaultRank(ctx, user.ID)
	require.NoError(t, err)
	require.NoError(t, userRepo.IncreasePoints(ctx, user.ID, 1))

	updated, err := engine.UpdateAllRanks(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), updated)

	reloaded, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), reloaded.CurrentRank.Int64)

	reloadedAdmin, err := userRepo.GetByID(ctx, admin.ID)
	require.NoError(t, err)
	require.False(t, reloadedAdmin.DefaultRank.Valid)
}
