package repository_test

import (
	"testing"

	"github.com/shareboost/backend/internal/repository"
	"github.com/shareboost/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_userRepository_RankOf(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	userRepo := repository.NewUserRepository()

	// Ordered by points desc: User3 (5), User2 (3), User1 (1). The
	// super admin never appears in the ranking.
	rank, err := userRepo.RankOf(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), rank)

	rank, err = userRepo.RankOf(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), rank)

	rank, err = userRepo.RankOf(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3), rank)

	_, err = userRepo.RankOf(ctx, testutil.SuperAdmin.ID)
	require.Error(t, err)
}

func Test_userRepository_CountOutranking(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	userRepo := repository.NewUserRepository()

	// With 4 points, User1 would beat its own 1 point but stay behind
	// User3's 5. The tie with nobody leaves exactly one user ahead.
	count, err := userRepo.CountOutranking(ctx, 4, testutil.User1.CreatedAt)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	// With 5 points User1 ties User3, who registered later, so User1
	// wins the tie-break.
	count, err = userRepo.CountOutranking(ctx, 5, testutil.User1.CreatedAt)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)

	// The same 5 points for a user registered after User3 loses it.
	count, err = userRepo.CountOutranking(ctx, 5, testutil.User3.CreatedAt.Add(1))
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func Test_userRepository_GetRankedList(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	userRepo := repository.NewUserRepository()

	users, err := userRepo.GetRankedList(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.Equal(t, testutil.User3.ID, users[0].ID)
	require.Equal(t, testutil.User2.ID, users[1].ID)
	require.Equal(t, testutil.User1.ID, users[2].ID)

	users, err = userRepo.GetRankedList(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, testutil.User2.ID, users[0].ID)
}

func Test_userRepository_IncreasePoints(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	userRepo := repository.NewUserRepository()

	require.NoError(t, userRepo.IncreasePoints(ctx, testutil.User1.ID, 3))

	user, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.TotalPoints+3, user.TotalPoints)
	require.Equal(t, testutil.User1.SharesCount+1, user.SharesCount)
}
